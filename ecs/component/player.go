package component

// Input is the demo player's intent for the current tick, filled by the host
// before anything else runs.
type Input struct {
	MoveX       float64
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()

// Player holds the demo character's movement tuning and its jump timers.
// Timers count down in seconds.
type Player struct {
	MaxSpeed       float64
	Accel          float64
	TurnaroundMult float64
	JumpVelocity   float64
	CoyoteTime     float64
	BufferTime     float64
	JumpSkipTime   float64

	GoalVelocity float64
	CoyoteTimer  float64
	BufferTimer  float64
	JumpTimer    float64
}

var PlayerComponent = NewComponent[Player]()

package ecs

// System updates a world once per fixed tick.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) {
	f(w)
}

// Stage groups systems inside one fixed tick. Stages run in declaration
// order; systems inside a stage run in registration order.
type Stage int

const (
	StageInput Stage = iota
	StagePrePhysics
	StagePhysics
	StagePostPhysics

	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StagePrePhysics:
		return "pre_physics"
	case StagePhysics:
		return "physics"
	case StagePostPhysics:
		return "post_physics"
	default:
		return "unknown"
	}
}

// Plugin registers a related group of systems.
type Plugin interface {
	Build(s *Scheduler)
}

type Scheduler struct {
	stages [stageCount][]System
}

func NewScheduler(plugins ...Plugin) *Scheduler {
	s := &Scheduler{}
	for _, p := range plugins {
		s.AddPlugin(p)
	}
	return s
}

func (s *Scheduler) AddPlugin(p Plugin) {
	if p == nil {
		return
	}
	p.Build(s)
}

func (s *Scheduler) Add(stage Stage, system System) {
	if system == nil || stage < 0 || stage >= stageCount {
		return
	}
	s.stages[stage] = append(s.stages[stage], system)
}

// Update runs one fixed tick and then drops undrained events.
func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, systems := range s.stages {
		for _, system := range systems {
			system.Update(w)
		}
	}
	w.events.flush()
}

func (s *Scheduler) Systems(stage Stage) []System {
	if stage < 0 || stage >= stageCount {
		return nil
	}
	systems := make([]System, 0, len(s.stages[stage]))
	return append(systems, s.stages[stage]...)
}

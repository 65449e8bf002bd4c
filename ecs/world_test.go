package ecs

import (
	"errors"
	"strings"
	"testing"

	"github.com/milk9111/floater/ecs/component"
)

func TestSparseWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
		wantAlive    int
	}{
		{"single", 1, 0, 0},
		{"three_create_destroy_middle", 3, 1, 2},
		{"none_destroy", 2, -1, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
			if len(Entities(w)) != c.wantAlive {
				t.Fatalf("expected %d entities, got %d", c.wantAlive, len(Entities(w)))
			}
		})
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), reused.id())
	}
	if reused == old {
		t.Fatalf("reused entity must differ by generation")
	}
	if Has(w, reused, h.Kind()) {
		t.Fatalf("reused entity inherited a component from its previous owner")
	}
	if _, ok := Get(w, old, h.Kind()); ok {
		t.Fatalf("stale handle must not resolve components")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}

func TestSparseWorldComponentsAndQueries(t *testing.T) {
	t.Run("component_table", func(t *testing.T) {
		w := NewWorld()

		h1 := component.NewComponent[int]()
		h2 := component.NewComponent[string]()
		h3 := component.NewComponent[float64]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)

		tests := []struct {
			name     string
			setup    func() error
			check    func(t *testing.T)
			teardown func() bool
		}{
			{
				name:  "add_int_to_e1",
				setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
				check: func(t *testing.T) {
					v, ok := Get[int](w, e1, h1.Kind())
					if !ok || *v != 10 {
						t.Fatalf("expected 10, got %v ok=%v", v, ok)
					}
				},
				teardown: func() bool { return Remove[int](w, e1, h1.Kind()) },
			},
			{
				name: "add_str_to_e1_and_e2",
				setup: func() error {
					if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
						return err
					}
					return Add(w, e2, h2.Kind(), stringPtr("b"))
				},
				check: func(t *testing.T) {
					if !Has[string](w, e1, h2.Kind()) || !Has[string](w, e2, h2.Kind()) {
						t.Fatalf("expected both entities to have string component")
					}
				},
				teardown: func() bool { return Remove[string](w, e1, h2.Kind()) },
			},
			{
				name:  "add_float_and_remove",
				setup: func() error { return Add(w, e1, h3.Kind(), float64Ptr(1.23)) },
				check: func(t *testing.T) {
					if _, ok := Get[float64](w, e1, h3.Kind()); !ok {
						t.Fatalf("expected float present")
					}
				},
				teardown: func() bool { return Remove[float64](w, e1, h3.Kind()) },
			},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				if err := tc.setup(); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
				tc.check(t)
				if !tc.teardown() {
					t.Fatalf("teardown failed for %s", tc.name)
				}
			})
		}
	})

	t.Run("add_errors", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		e := CreateEntity(w)

		if err := Add(w, e, h.Kind(), nil); !errors.Is(err, component.ErrNilComponent) {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
		if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
			t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
		}
		DestroyEntity(w, e)
		if err := Add(w, e, h.Kind(), intPtr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
			t.Fatalf("expected ErrEntityNotAlive, got %v", err)
		}
	})

	t.Run("query_and_first", func(t *testing.T) {
		w := NewWorld()
		ka := component.NewComponent[int]().Kind()
		kb := component.NewComponent[string]().Kind()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		_ = Add(w, e1, ka, intPtr(1))
		_ = Add(w, e2, ka, intPtr(2))
		_ = Add(w, e2, kb, stringPtr("b"))

		got := w.Query(ka, kb)
		if len(got) != 1 || got[0] != e2 {
			t.Fatalf("expected only e2, got %v", got)
		}
		if first, ok := w.First(kb); !ok || first != e2 {
			t.Fatalf("expected First to return e2, got %v ok=%v", first, ok)
		}
		if _, ok := w.First(component.NewComponent[bool]().Kind()); ok {
			t.Fatalf("expected First on empty store to fail")
		}
	})
}

func TestForEach(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()

		e1 := CreateEntity(w)
		e2 := CreateEntity(w)
		e3 := CreateEntity(w)

		if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		var ents []Entity
		ForEach(w, h.Kind(), func(e Entity, _ *int) { ents = append(ents, e) })
		set := toSet(ents)

		if _, ok := set[e1]; !ok {
			t.Fatalf("expected e1 in ForEach result")
		}
		if _, ok := set[e3]; !ok {
			t.Fatalf("expected e3 in ForEach result")
		}
		if _, ok := set[e2]; ok {
			t.Fatalf("did not expect e2 in ForEach result")
		}
	})

	t.Run("mutates_in_place", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		e := CreateEntity(w)
		_ = Add(w, e, h.Kind(), intPtr(1))

		ForEach(w, h.Kind(), func(_ Entity, v *int) { *v += 41 })

		v, _ := Get(w, e, h.Kind())
		if *v != 42 {
			t.Fatalf("expected 42, got %d", *v)
		}
	})

	t.Run("destroy_during_iteration", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		for i := 0; i < 4; i++ {
			_ = Add(w, CreateEntity(w), h.Kind(), intPtr(i))
		}

		visited := 0
		ForEach(w, h.Kind(), func(e Entity, _ *int) {
			visited++
			DestroyEntity(w, e)
		})
		if visited != 4 {
			t.Fatalf("expected 4 visits, got %d", visited)
		}
		if len(Entities(w)) != 0 {
			t.Fatalf("expected all entities destroyed")
		}
	})
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)
				e4 := CreateEntity(w)

				ka := component.NewComponent[int]().Kind()
				kb := component.NewComponent[int]().Kind()
				kc := component.NewComponent[int]().Kind()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, intPtr(3)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kc, intPtr(5)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, intPtr(4)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e4, kc, intPtr(6)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponent[int]().Kind()
				kb := component.NewComponent[int]().Kind()
				kc := component.NewComponent[int]().Kind()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kb, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e, kc, intPtr(3)); err != nil {
					t.Fatal(err)
				}

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponent[int]().Kind()
				kb := component.NewComponent[int]().Kind()
				kc := component.NewComponent[int]().Kind()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEach4(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponent[int]().Kind()
	kb := component.NewComponent[int]().Kind()
	kc := component.NewComponent[int]().Kind()
	kd := component.NewComponent[int]().Kind()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	// e2 will be the only entity having all four
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, intPtr(3))
	_ = Add(w, e2, kc, intPtr(5))
	_ = Add(w, e2, kd, intPtr(7))

	var res []Entity
	ForEach4(w, ka, kb, kc, kd, func(e Entity, _ *int, _ *int, _ *int, _ *int) { res = append(res, e) })
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (r recordSystem) Update(*World) {
	*r.log = append(*r.log, r.name)
}

type recordPlugin struct {
	log *[]string
}

func (p recordPlugin) Build(s *Scheduler) {
	s.Add(StagePhysics, recordSystem{name: "physics", log: p.log})
	s.Add(StagePrePhysics, recordSystem{name: "probe", log: p.log})
	s.Add(StagePrePhysics, recordSystem{name: "correct", log: p.log})
}

func TestSchedulerStageOrder(t *testing.T) {
	var log []string
	s := NewScheduler(recordPlugin{log: &log})
	s.Add(StagePostPhysics, recordSystem{name: "post", log: &log})
	s.Add(StageInput, recordSystem{name: "input", log: &log})

	w := NewWorld()
	w.Events().Push(Event{Type: EventGroundedChanged})
	s.Update(w)

	want := []string{"input", "probe", "correct", "physics", "post"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
	if evts := w.Events().Drain(); len(evts) != 0 {
		t.Fatalf("expected events flushed after tick, got %v", evts)
	}
	if got := len(s.Systems(StagePrePhysics)); got != 2 {
		t.Fatalf("expected 2 pre-physics systems, got %d", got)
	}
}

func TestEventQueueDrainOf(t *testing.T) {
	w := NewWorld()
	a, b := CreateEntity(w), CreateEntity(w)
	q := w.Events()
	q.Push(Event{Type: EventGroundedChanged, Data: GroundedEvent{Entity: a, Grounded: true}})
	q.Push(Event{Type: "other", Data: 42})
	q.Push(Event{Type: EventGroundedChanged, Data: GroundedEvent{Entity: b, Grounded: false}})

	got := DrainOf[GroundedEvent](q)
	if len(got) != 2 || got[0].Entity != a || got[1].Entity != b || !got[0].Grounded || got[1].Grounded {
		t.Fatalf("unexpected grounded events %v", got)
	}
	if q.Len() != 1 {
		t.Fatalf("expected the unrelated event to stay queued, have %d", q.Len())
	}
	if rest := q.Drain(); rest[0].Data != 42 {
		t.Fatalf("unexpected remaining event %v", rest[0])
	}
	if got := DrainOf[GroundedEvent](q); got != nil {
		t.Fatalf("expected nothing from an empty queue, got %v", got)
	}
}

func TestAddErrorNamesComponent(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	DestroyEntity(w, e)
	h := component.NewComponent[component.Transform]()

	err := Add(w, e, h.Kind(), &component.Transform{})
	if !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if !strings.Contains(err.Error(), "Transform") {
		t.Fatalf("expected component name in %q", err.Error())
	}
}

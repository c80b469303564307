package ecs

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/character2d/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
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
		})
	}
}

func TestRecycledSlotInvalidatesOldHandle(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.slot() != old.slot() {
		t.Fatalf("expected slot reuse, got id %d vs %d", fresh.slot(), old.slot())
	}
	if fresh == old {
		t.Fatalf("expected a new epoch")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("recycled entity must not inherit components")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); !errors.Is(err, ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]()
	strs := component.NewComponent[string]()

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
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, ints.Kind()) {
					t.Fatalf("e2 should not have the int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, ints.Kind()) },
		},
		{
			name: "same_type_different_kinds",
			setup: func() error {
				if err := Add(w, e1, strs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				other := component.NewComponent[string]()
				if Has(w, e1, other.Kind()) {
					t.Fatalf("distinct kinds must not share a table")
				}
				v, _ := Get(w, e2, strs.Kind())
				if *v != "b" {
					t.Fatalf("expected b, got %s", *v)
				}
			},
			teardown: func() bool { return Remove(w, e1, strs.Kind()) },
		},
		{
			name:  "replace_value",
			setup: func() error { return Add(w, e2, ints.Kind(), intPtr(7)) },
			check: func(t *testing.T) {
				if err := Add(w, e2, ints.Kind(), intPtr(8)); err != nil {
					t.Fatal(err)
				}
				v, _ := Get(w, e2, ints.Kind())
				if *v != 8 {
					t.Fatalf("expected replaced value 8, got %d", *v)
				}
			},
			teardown: func() bool { return Remove(w, e2, ints.Kind()) },
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
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); !errors.Is(err, ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add(w, e, component.NewComponentKind[int](), nil); !errors.Is(err, ErrNilComponent) {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
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

	t.Run("mutation_during_iteration", func(t *testing.T) {
		w := NewWorld()
		h := component.NewComponent[int]()
		a := CreateEntity(w)
		b := CreateEntity(w)
		_ = Add(w, a, h.Kind(), intPtr(1))
		_ = Add(w, b, h.Kind(), intPtr(2))

		visited := 0
		ForEach(w, h.Kind(), func(e Entity, _ *int) {
			visited++
			// spawning and destroying while iterating must not disturb the pass
			n := CreateEntity(w)
			_ = Add(w, n, h.Kind(), intPtr(99))
			if e == a {
				DestroyEntity(w, b)
			}
		})
		if visited != 1 {
			t.Fatalf("expected destroyed entity to be skipped, visited %d", visited)
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

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e3, kb, intPtr(4))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].slot() != e2.slot() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))

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
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				_ = Add(w, e, ka, intPtr(1))

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

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[string]()

	if _, ok := First(w, ka); ok {
		t.Fatalf("expected no first entity in empty world")
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e1, ka, intPtr(1))
	_ = Add(w, e2, ka, intPtr(2))
	_ = Add(w, e2, kb, stringPtr("x"))

	if got, ok := First(w, ka); !ok || got != e1 {
		t.Fatalf("expected e1 first, got %v ok=%v", got, ok)
	}
	res := Query(w, ka.ID(), kb.ID())
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected [e2], got %v", res)
	}
	if res := Query(w, ka.ID(), component.NewComponentKind[bool]().ID()); res != nil {
		t.Fatalf("expected nil for unknown table, got %v", res)
	}
}

func TestSchedulerStageBarrier(t *testing.T) {
	w := NewWorld()
	s := NewScheduler()

	var order []string
	record := func(name string) System {
		return SystemFunc(func(*World) { order = append(order, name) })
	}
	// registered out of order on purpose
	s.Add(StageAdvance, record("advance-a"))
	s.Add(StageSync, record("sync-a"))
	s.Add(StageUpdate, record("update"))
	s.Add(StageAdvance, record("advance-b"))
	s.Add(StageSync, record("sync-b"))

	s.Tick(w, 16*time.Millisecond)

	want := []string{"update", "sync-a", "sync-b", "advance-a", "advance-b"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if got := w.Time(); got.Delta != 16*time.Millisecond || got.Frame != 1 {
		t.Fatalf("unexpected time %+v", got)
	}
}

func TestSchedulerDropsPreviousEvents(t *testing.T) {
	w := NewWorld()
	s := NewScheduler(SystemFunc(func(w *World) {
		if w.Time().Frame == 1 {
			w.Events().Push(Event{Type: "first"})
		}
	}))

	s.Tick(w, time.Millisecond)
	if got := w.Events().Of("first"); len(got) != 1 {
		t.Fatalf("expected event after first tick, got %v", got)
	}
	s.Tick(w, time.Millisecond)
	if got := w.Events().Drain(); got != nil {
		t.Fatalf("expected events flushed on next tick, got %v", got)
	}
}

func TestEntityPacking(t *testing.T) {
	tests := []struct {
		slot  slotIndex
		epoch epoch
		str   string
		valid bool
	}{
		{0, 0, "0:0", false},
		{1, 0, "1:0", true},
		{7, 3, "7:3", true},
		{1<<32 - 1, 1<<32 - 1, "4294967295:4294967295", true},
	}
	for _, tc := range tests {
		t.Run(tc.str, func(t *testing.T) {
			e := packEntity(tc.slot, tc.epoch)
			if e.slot() != tc.slot || e.epoch() != tc.epoch {
				t.Fatalf("expected %d:%d, got %d:%d", tc.slot, tc.epoch, e.slot(), e.epoch())
			}
			if e.String() != tc.str || e.Valid() != tc.valid {
				t.Fatalf("expected %q valid=%v, got %q valid=%v", tc.str, tc.valid, e.String(), e.Valid())
			}
		})
	}
}

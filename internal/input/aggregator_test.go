package input

import (
	"testing"

	"github.com/tomz197/pong/internal/sim"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(sim.CourtWidth, sim.CourtHeight)
}

func TestKeysMapToSides(t *testing.T) {
	a := newTestAggregator()
	a.Press(KeyW)
	a.Press(KeyArrowDown)

	c := a.Snapshot()
	if !c.Left.Up || c.Left.Down {
		t.Errorf("left intent = %+v, want up only", c.Left)
	}
	if c.Right.Up || !c.Right.Down {
		t.Errorf("right intent = %+v, want down only", c.Right)
	}

	a.Release(KeyW)
	if c := a.Snapshot(); c.Left.Up {
		t.Error("released key still held")
	}
}

func TestPointerSideByHalf(t *testing.T) {
	a := newTestAggregator()
	a.PointerDown(1, 100, 50)
	a.PointerDown(2, 700, 300)

	c := a.Snapshot()
	if !c.Left.HasTarget || c.Left.Target != 50 {
		t.Errorf("left target = %+v, want 50", c.Left)
	}
	if !c.Right.HasTarget || c.Right.Target != 300 {
		t.Errorf("right target = %+v, want 300", c.Right)
	}
}

func TestPointerTargetIsConsumed(t *testing.T) {
	a := newTestAggregator()
	a.PointerDown(MouseSource, 100, 200)

	if c := a.Snapshot(); !c.Left.HasTarget {
		t.Fatal("first snapshot has no target")
	}
	if c := a.Snapshot(); c.Left.HasTarget {
		t.Error("resting contact still sets a target")
	}

	a.PointerMove(MouseSource, 100, 220)
	if c := a.Snapshot(); !c.Left.HasTarget || c.Left.Target != 220 {
		t.Errorf("after move target = %+v, want 220", c.Left)
	}
}

func TestPointerClampedToCourt(t *testing.T) {
	a := newTestAggregator()
	a.PointerDown(1, 10, -40)
	a.PointerDown(2, 790, 900)

	c := a.Snapshot()
	if c.Left.Target != 0 {
		t.Errorf("left target = %v, want 0", c.Left.Target)
	}
	if c.Right.Target != sim.CourtHeight {
		t.Errorf("right target = %v, want %v", c.Right.Target, sim.CourtHeight)
	}
}

func TestHoverIsIgnored(t *testing.T) {
	a := newTestAggregator()
	a.PointerMove(MouseSource, 100, 100)
	if c := a.Snapshot(); c.Left.HasTarget {
		t.Error("move without press set a target")
	}
	if a.Contacts() != 0 {
		t.Errorf("contacts = %d, want 0", a.Contacts())
	}
}

func TestLatestContactWins(t *testing.T) {
	a := newTestAggregator()
	a.PointerDown(1, 100, 50)
	a.PointerDown(2, 200, 150)

	if c := a.Snapshot(); c.Left.Target != 150 {
		t.Errorf("target = %v, want 150 from the newer contact", c.Left.Target)
	}

	// Only the older contact moved, so it drives the paddle.
	a.PointerMove(1, 100, 80)
	if c := a.Snapshot(); c.Left.Target != 80 {
		t.Errorf("target = %v, want 80", c.Left.Target)
	}
}

func TestDragAcrossCentreSwitchesSide(t *testing.T) {
	a := newTestAggregator()
	a.PointerDown(1, 300, 100)
	a.Snapshot()

	a.PointerMove(1, 500, 120)
	c := a.Snapshot()
	if c.Left.HasTarget {
		t.Error("left still targeted after crossing the centre")
	}
	if !c.Right.HasTarget || c.Right.Target != 120 {
		t.Errorf("right target = %+v, want 120", c.Right)
	}
}

func TestPointerUpForgetsContact(t *testing.T) {
	a := newTestAggregator()
	a.PointerDown(1, 100, 100)
	a.PointerUp(1)
	if c := a.Snapshot(); c.Left.HasTarget {
		t.Error("lifted contact still sets a target")
	}

	a.PointerMove(1, 100, 140)
	if a.Contacts() != 0 {
		t.Error("move after lift revived the contact")
	}
}

func TestReleaseAll(t *testing.T) {
	a := newTestAggregator()
	a.Press(KeyS)
	a.Press(KeyArrowUp)
	a.PointerDown(3, 600, 10)
	a.ReleaseAll()

	c := a.Snapshot()
	if c != (sim.Controls{}) {
		t.Errorf("controls after ReleaseAll = %+v, want zero", c)
	}
}

func TestUnknownKeyIgnored(t *testing.T) {
	a := newTestAggregator()
	a.Press(Key(42))
	if a.Held(Key(42)) {
		t.Error("unknown key reported held")
	}
}

// Package input collapses keyboard and pointer events into the per-step
// controls snapshot consumed by the simulation.
package input

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/tomz197/pong/internal/physics"
	"github.com/tomz197/pong/internal/sim"
)

// SourceID identifies one pointer contact: a touch identifier, or
// MouseSource for the mouse.
type SourceID int

// MouseSource is the synthetic identifier used for the mouse pointer.
const MouseSource SourceID = -1

// Key is a movement key tracked by the aggregator.
type Key int

const (
	KeyW         Key = iota // Left paddle up
	KeyS                    // Left paddle down
	KeyArrowUp              // Right paddle up
	KeyArrowDown            // Right paddle down
	keyCount
)

// contact is the last observed state of one pointer.
type contact struct {
	side  sim.Side
	y     float64
	fresh bool // Moved since the last snapshot
}

// Aggregator accumulates input between simulation steps. Events may arrive
// in any order; Snapshot reads a consistent view once per step.
// Not safe for concurrent use.
type Aggregator struct {
	width    float64
	height   float64
	contacts *orderedmap.OrderedMap[SourceID, contact]
	held     [keyCount]bool
}

// NewAggregator creates an aggregator for a court of the given logical size.
func NewAggregator(width, height float64) *Aggregator {
	return &Aggregator{
		width:    width,
		height:   height,
		contacts: orderedmap.NewOrderedMap[SourceID, contact](),
	}
}

// PointerDown starts tracking a contact at court position (x, y).
func (a *Aggregator) PointerDown(id SourceID, x, y float64) {
	a.track(id, x, y)
}

// PointerMove updates a tracked contact. Moves of contacts that are not
// down (a hovering mouse) are ignored.
func (a *Aggregator) PointerMove(id SourceID, x, y float64) {
	if _, ok := a.contacts.Get(id); !ok {
		return
	}
	a.track(id, x, y)
}

// PointerUp stops tracking a contact.
func (a *Aggregator) PointerUp(id SourceID) {
	a.contacts.Delete(id)
}

// Contacts returns the number of tracked contacts.
func (a *Aggregator) Contacts() int {
	return a.contacts.Len()
}

// track records the contact's side and height. The side is re-evaluated on
// every update, so dragging across the centre line switches paddles.
func (a *Aggregator) track(id SourceID, x, y float64) {
	side := sim.Left
	if x >= a.width/2 {
		side = sim.Right
	}
	a.contacts.Set(id, contact{
		side:  side,
		y:     physics.Clamp(y, 0, a.height),
		fresh: true,
	})
}

// Press marks a movement key as held.
func (a *Aggregator) Press(k Key) { a.SetKey(k, true) }

// Release marks a movement key as no longer held.
func (a *Aggregator) Release(k Key) { a.SetKey(k, false) }

// SetKey sets the held state of a movement key.
func (a *Aggregator) SetKey(k Key, down bool) {
	if k < 0 || k >= keyCount {
		return
	}
	a.held[k] = down
}

// Held reports whether a movement key is held.
func (a *Aggregator) Held(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return a.held[k]
}

// ReleaseAll clears all held keys and forgets every contact.
func (a *Aggregator) ReleaseAll() {
	a.held = [keyCount]bool{}
	a.contacts = orderedmap.NewOrderedMap[SourceID, contact]()
}

// Snapshot returns the controls for the next step. Contacts that moved
// since the previous snapshot set a pointer target for their side; when
// several did, the most recently added contact wins. Taking a snapshot
// consumes that freshness, so a resting finger no longer overrides keys.
func (a *Aggregator) Snapshot() sim.Controls {
	c := sim.Controls{
		Left:  sim.PaddleIntent{Up: a.held[KeyW], Down: a.held[KeyS]},
		Right: sim.PaddleIntent{Up: a.held[KeyArrowUp], Down: a.held[KeyArrowDown]},
	}

	for el := a.contacts.Front(); el != nil; el = el.Next() {
		ct := el.Value
		if !ct.fresh {
			continue
		}
		in := &c.Left
		if ct.side == sim.Right {
			in = &c.Right
		}
		in.Target = ct.y
		in.HasTarget = true

		ct.fresh = false
		a.contacts.Set(el.Key, ct)
	}
	return c
}

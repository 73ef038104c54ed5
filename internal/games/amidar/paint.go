package amidar

import (
	"fmt"

	"github.com/vovakirdan/tui-toybox/internal/core"
)

// BoardUpdate is the outcome of one paint check.
type BoardUpdate struct {
	// Junctions is the (start, end) pair of the painted segment, if any.
	Junctions     *[2]uint32
	Vertical      int32
	Horizontal    int32
	NumBoxes      int32
	TriggersChase bool
}

// Happened reports whether the update carries anything worth applying.
func (u BoardUpdate) Happened() bool {
	return u.Junctions != nil ||
		u.Vertical != 0 ||
		u.Horizontal != 0 ||
		u.NumBoxes != 0 ||
		u.TriggersChase
}

// Points returns the score the update is worth. Vertical segments are worth
// one point regardless of length; horizontal segments pay their length.
func (u BoardUpdate) Points(boxBonus int32) int32 {
	return u.Horizontal + core.Signum(u.Vertical) + boxBonus*u.NumBoxes
}

// CheckPaint paints the segment between the two most recent distinct
// junctions in history and collapses history once something was scored.
func (b *Board) CheckPaint(history *History) BoardUpdate {
	var update BoardUpdate

	end, ok := history.Front()
	if !ok {
		return update
	}
	start, found := uint32(0), false
	for i := 0; i < history.Len(); i++ {
		if id := history.At(i); id != end {
			start, found = id, true
			break
		}
	}
	if !found {
		return update
	}

	t1 := b.LookupPosition(start)
	t2 := b.LookupPosition(end)
	dx := core.Signum(t2.TX - t1.TX)
	dy := core.Signum(t2.TY - t1.TY)
	if core.Abs(dx)+core.Abs(dy) != 1 {
		panic(fmt.Sprintf("amidar: junctions %d and %d are not on a straight run", start, end))
	}

	newlyPainted := b.Paint(t1)
	for t := t1; t != t2; {
		t = t.Translate(dx, dy)
		if b.Paint(t) {
			newlyPainted = true
		}
	}

	if newlyPainted {
		if dy != 0 {
			update.Vertical += core.Abs(t2.TY - t1.TY)
		} else {
			update.Horizontal += core.Abs(t2.TX - t1.TX)
		}
		triggers, boxes := b.checkBoxPainting(t1, t2)
		update.NumBoxes += boxes
		update.TriggersChase = triggers
		update.Junctions = &[2]uint32{start, end}
	}

	if update.Happened() {
		history.Clear()
		history.PushFront(end)
	}
	return update
}

// checkBoxPainting marks boxes touching t1 or t2 whose perimeter is now
// fully painted. It reports whether chase mode should start and how many
// boxes were completed.
func (b *Board) checkBoxPainting(t1, t2 TilePoint) (bool, int32) {
	var completed []int
	for i, gb := range b.Boxes {
		if (gb.Matches(t1) || gb.Matches(t2)) && gb.shouldUpdatePaint(b) {
			completed = append(completed, i)
		}
	}

	chaseChange := false
	for _, i := range completed {
		b.Boxes[i].Painted = true
		if b.Boxes[i].TriggersChase {
			chaseChange = true
		}
	}

	return chaseChange && b.ChaseBoxesPainted(), int32(len(completed)) //#nosec G115 -- bounded by box count
}

package amidar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func historyOf(ids ...uint32) *History {
	h := NewHistory(12)
	for _, id := range ids {
		h.PushFront(id)
	}
	return h
}

func TestCheckPaintHorizontalScoresLength(t *testing.T) {
	b := mustBoard(t, smallBoard)
	h := historyOf(0, 4)

	u := b.CheckPaint(h)

	require.Equal(t, int32(4), u.Horizontal)
	require.Zero(t, u.Vertical)
	require.Zero(t, u.NumBoxes)
	require.False(t, u.TriggersChase)
	require.Equal(t, &[2]uint32{0, 4}, u.Junctions)
	require.Equal(t, int32(4), u.Points(50))
	require.Equal(t, []uint32{4}, h.Items())
	for x := int32(0); x <= 4; x++ {
		require.True(t, b.IsPainted(NewTilePoint(x, 0)))
	}
	require.False(t, b.IsPainted(NewTilePoint(4, 1)))
}

func TestCheckPaintVerticalScoresOne(t *testing.T) {
	b := mustBoard(t, smallBoard)
	u := b.CheckPaint(historyOf(4, 14))

	require.Equal(t, int32(2), u.Vertical)
	require.Zero(t, u.Horizontal)
	require.Equal(t, int32(1), u.Points(50))
}

func TestCheckPaintCompletesBox(t *testing.T) {
	b := mustBoard(t, smallBoard)
	h := historyOf(0)

	var total int32
	for _, id := range []uint32{4, 14, 10} {
		h.PushFront(id)
		u := b.CheckPaint(h)
		require.Zero(t, u.NumBoxes)
		total += u.Points(50)
	}
	require.Equal(t, int32(4+1+4), total)

	h.PushFront(0)
	u := b.CheckPaint(h)
	require.Equal(t, int32(1), u.NumBoxes)
	require.True(t, u.TriggersChase)
	require.Equal(t, int32(1+50), u.Points(50))
	require.True(t, b.Boxes[0].Painted)
	require.True(t, b.BoardComplete())
}

func TestCheckPaintRepaintIsNoop(t *testing.T) {
	b := mustBoard(t, smallBoard)
	b.CheckPaint(historyOf(0, 4))

	h := historyOf(0, 4)
	u := b.CheckPaint(h)

	require.False(t, u.Happened())
	require.Equal(t, []uint32{4, 0}, h.Items())
}

func TestCheckPaintNeedsTwoJunctions(t *testing.T) {
	b := mustBoard(t, smallBoard)

	require.False(t, b.CheckPaint(historyOf()).Happened())
	require.False(t, b.CheckPaint(historyOf(4, 4)).Happened())
	require.Equal(t, 12, b.CountUnpainted())
}

func TestCheckPaintSkipsRepeatedFront(t *testing.T) {
	b := mustBoard(t, smallBoard)
	u := b.CheckPaint(historyOf(0, 4, 4))

	require.Equal(t, int32(4), u.Horizontal)
}

func TestCheckPaintPanicsOnDiagonal(t *testing.T) {
	b := mustBoard(t, smallBoard)
	require.Panics(t, func() { b.CheckPaint(historyOf(0, 14)) })
}

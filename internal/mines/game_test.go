package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testField builds a field with mines at the given points, so tests
// are not at the mercy of the generator's randomness.
func testField(t *testing.T, length, height int, mines ...point) *Minefield {
	t.Helper()
	o := Option{Length: length, Height: height, Density: 0}
	require.NoError(t, o.Validate())
	m := newMinefield(o)
	for _, p := range mines {
		m.mustContain(p.x, p.y)
		require.False(t, m.cells[p.y*length+p.x].Mine, "duplicate mine at %v", p)
		m.placeMine(p.x, p.y)
		m.numMines++
	}
	return m
}

func TestOpenCellSingle(t *testing.T) {
	t.Parallel()

	m := testField(t, 2, 2, point{0, 0})
	assert.Equal(t, uint8(1), m.CellAt(1, 1).Number)

	m.OpenCell(1, 1)
	assert.True(t, m.CellAt(1, 1).Opened)
	// number != 0, so nothing cascades
	assert.False(t, m.CellAt(0, 1).Opened)
	assert.False(t, m.CellAt(1, 0).Opened)
	assert.Equal(t, Running, m.State())
}

func TestOpenCellCascade(t *testing.T) {
	t.Parallel()

	// Single mine in a corner of a 5x5 field: opening the far corner
	// floods everything except the mine.
	m := testField(t, 5, 5, point{0, 0})
	m.OpenCell(4, 4)

	for y := range 5 {
		for x := range 5 {
			c := m.CellAt(x, y)
			if x == 0 && y == 0 {
				assert.False(t, c.Opened, "mine at (%d, %d) must stay closed", x, y)
			} else {
				assert.True(t, c.Opened, "cell (%d, %d) must be opened", x, y)
			}
		}
	}
	assert.Equal(t, Won, m.State())
}

func TestOpenCellCascadeSkipsFlagged(t *testing.T) {
	t.Parallel()

	m := testField(t, 5, 5, point{0, 0})
	m.ToggleFlag(4, 0)
	m.OpenCell(4, 4)

	assert.False(t, m.CellAt(4, 0).Opened)
	assert.True(t, m.CellAt(4, 0).Flagged)
	// One safe cell still closed, so the game is not yet won.
	assert.Equal(t, Running, m.State())
}

func TestOpenCellMine(t *testing.T) {
	t.Parallel()

	m := testField(t, 2, 2, point{0, 0})
	m.OpenCell(0, 0)
	assert.Equal(t, Lost, m.State())
	assert.True(t, m.CellAt(0, 0).Opened)

	// Terminal state: every operation is a no-op from here on.
	m.OpenCell(1, 1)
	assert.False(t, m.CellAt(1, 1).Opened)
	m.ToggleFlag(1, 1)
	assert.False(t, m.CellAt(1, 1).Flagged)
	assert.Equal(t, Lost, m.State())
}

func TestOpenCellFlaggedNoop(t *testing.T) {
	t.Parallel()

	m := testField(t, 2, 2, point{0, 0})
	m.ToggleFlag(0, 0)
	m.OpenCell(0, 0)
	assert.False(t, m.CellAt(0, 0).Opened)
	assert.Equal(t, Running, m.State())
}

func TestOpenCellChord(t *testing.T) {
	t.Parallel()

	// 3x3, one mine in the center. Open a corner, flag the mine, then
	// chord the corner: its remaining neighbors open.
	m := testField(t, 3, 3, point{1, 1})
	m.OpenCell(0, 0)
	require.True(t, m.CellAt(0, 0).Opened)
	require.Equal(t, uint8(1), m.CellAt(0, 0).Number)

	// Chord without a matching flag count does nothing.
	m.OpenCell(0, 0)
	assert.False(t, m.CellAt(1, 0).Opened)

	m.ToggleFlag(1, 1)
	m.OpenCell(0, 0)
	assert.True(t, m.CellAt(1, 0).Opened)
	assert.True(t, m.CellAt(0, 1).Opened)
	assert.False(t, m.CellAt(1, 1).Opened)
}

func TestOpenCellChordMisflagged(t *testing.T) {
	t.Parallel()

	// A wrong flag satisfies the chord count and blows up the real mine.
	m := testField(t, 3, 3, point{1, 1})
	m.OpenCell(0, 0)
	m.ToggleFlag(1, 0)
	m.OpenCell(0, 0)
	assert.Equal(t, Lost, m.State())
}

func TestOpenCellWin(t *testing.T) {
	t.Parallel()

	m := testField(t, 3, 1, point{0, 0})
	m.OpenCell(1, 0)
	assert.Equal(t, Running, m.State())
	m.OpenCell(2, 0)
	assert.Equal(t, Won, m.State())

	m.OpenCell(0, 0)
	assert.Equal(t, Won, m.State())
	assert.False(t, m.CellAt(0, 0).Opened)
}

func TestToggleFlag(t *testing.T) {
	t.Parallel()

	m := testField(t, 2, 2, point{0, 0})
	m.ToggleFlag(1, 1)
	assert.True(t, m.CellAt(1, 1).Flagged)
	assert.Equal(t, 1, m.NumFlagged())

	m.ToggleFlag(1, 1)
	assert.False(t, m.CellAt(1, 1).Flagged)
	assert.Equal(t, 0, m.NumFlagged())
}

func TestToggleFlagQuick(t *testing.T) {
	t.Parallel()

	// Mines at (1,1) and (2,2). Opening (0,0), (1,0) and (0,1) leaves
	// the corner with exactly one unopened neighbor, the center mine,
	// so quick-flag from the corner flags it.
	m := testField(t, 3, 3, point{1, 1}, point{2, 2})
	m.OpenCell(0, 0)
	m.OpenCell(1, 0)
	m.OpenCell(0, 1)
	require.Equal(t, Running, m.State())

	m.ToggleFlag(0, 0)
	assert.True(t, m.CellAt(1, 1).Flagged)
	assert.Equal(t, 1, m.NumFlagged())

	// Quick-flag never unflags.
	m.ToggleFlag(0, 0)
	assert.True(t, m.CellAt(1, 1).Flagged)
	assert.Equal(t, 1, m.NumFlagged())
}

func TestToggleFlagQuickCountMismatch(t *testing.T) {
	t.Parallel()

	// Corner opened next to one mine but with three unopened
	// neighbors: no match, no flags.
	m := testField(t, 3, 3, point{1, 1})
	m.OpenCell(0, 0)
	m.ToggleFlag(0, 0)
	assert.Equal(t, 0, m.NumFlagged())
	assert.False(t, m.CellAt(1, 1).Flagged)
}

func TestOutOfBoundsPanics(t *testing.T) {
	t.Parallel()

	m := testField(t, 2, 2, point{0, 0})
	assert.Panics(t, func() { m.OpenCell(2, 0) })
	assert.Panics(t, func() { m.ToggleFlag(0, -1) })
	assert.Panics(t, func() { m.CellAt(0, 2) })
	assert.Panics(t, func() { m.SetHover(-1, 0) })
}

func TestView(t *testing.T) {
	t.Parallel()

	m := testField(t, 2, 2, point{0, 0})
	m.OpenCell(1, 1)
	m.ToggleFlag(0, 1)

	view := m.View()
	assert.Equal(t, GridView{Covered, Covered, Flag, CellView(1)}, view)
	assert.Equal(t, "- -\n* 1\n", view.ToString(2))
}

package mines

import "fmt"

// GameState tracks the session outcome. Transitions only run forward:
// Running may become Won or Lost, both of which are terminal.
type GameState int8

const (
	Running GameState = iota
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("GameState(%d)", int8(s))
	}
}

// Cell is a single field position. Number caches the count of mines in
// the clipped 8-neighborhood; it is computed while mines are placed
// (at generation or load) and never recomputed afterward.
type Cell struct {
	Opened  bool
	Mine    bool
	Flagged bool
	Number  uint8
}

// Minefield is the grid under play plus its aggregate counters and the
// cursor position the UI last hovered. Cells are stored row-major,
// height rows of length cells each. A Minefield is exclusively owned
// by the session that holds it; callers read state through accessors
// and mutate only through the engine operations.
type Minefield struct {
	cells      []Cell
	length     int
	height     int
	numMines   int
	numFlagged int
	hoverX     int
	hoverY     int
	difficulty Option
	state      GameState
}

func newMinefield(o Option) *Minefield {
	return &Minefield{
		cells:      make([]Cell, o.Length*o.Height),
		length:     o.Length,
		height:     o.Height,
		difficulty: o,
		state:      Running,
	}
}

func (m *Minefield) Length() int        { return m.length }
func (m *Minefield) Height() int        { return m.height }
func (m *Minefield) NumMines() int      { return m.numMines }
func (m *Minefield) NumFlagged() int    { return m.numFlagged }
func (m *Minefield) Hover() (int, int)  { return m.hoverX, m.hoverY }
func (m *Minefield) Difficulty() Option { return m.difficulty }
func (m *Minefield) State() GameState   { return m.state }

// CellAt returns a copy of the cell at (x, y). Out-of-bounds
// coordinates are a caller bug and panic.
func (m *Minefield) CellAt(x, y int) Cell {
	m.mustContain(x, y)
	return m.cells[y*m.length+x]
}

// SetHover moves the cursor. The cursor has no gameplay meaning; it is
// persisted so a loaded game resumes where the player left off.
func (m *Minefield) SetHover(x, y int) {
	m.mustContain(x, y)
	m.hoverX, m.hoverY = x, y
}

func (m *Minefield) mustContain(x, y int) {
	if x < 0 || x >= m.length || y < 0 || y >= m.height {
		panic(fmt.Sprintf(
			"mines: cell (%d, %d) outside %dx%d field", x, y, m.length, m.height,
		))
	}
}

// eachNeighbor calls fn for every cell in the 8-neighborhood of
// (x, y), clipped at the field edges. (x, y) itself is skipped.
func (m *Minefield) eachNeighbor(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= m.length || ny < 0 || ny >= m.height {
				continue
			}
			fn(nx, ny)
		}
	}
}

// placeMine marks (x, y) as a mine and bumps Number on each neighbor.
// The placed mine never increments its own cell; mines placed later
// still count it as their neighbor.
func (m *Minefield) placeMine(x, y int) {
	m.cells[y*m.length+x].Mine = true
	m.eachNeighbor(x, y, func(nx, ny int) {
		m.cells[ny*m.length+nx].Number++
	})
}

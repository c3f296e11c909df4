package mines

import (
	"strconv"
	"strings"
)

// CellView is what the player is allowed to know about one cell.
type CellView int8

const (
	Covered  CellView = -2 // unopened, unflagged
	Flag     CellView = -1
	Exploded CellView = 65
	// 0-8: opened, with that many mined neighbors
)

func (v CellView) String() string {
	switch {
	case v == Covered:
		return "-"
	case v == Flag:
		return "*"
	case v == Exploded:
		return "X"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

type GridView []CellView

// View renders the player-visible grid, row-major. Mines stay hidden
// behind Covered until the cell that holds them is opened.
func (m *Minefield) View() GridView {
	view := make(GridView, len(m.cells))
	for i, c := range m.cells {
		switch {
		case c.Opened && c.Mine:
			view[i] = Exploded
		case c.Opened:
			view[i] = CellView(c.Number)
		case c.Flagged:
			view[i] = Flag
		default:
			view[i] = Covered
		}
	}
	return view
}

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for i, v := range g {
		b.WriteString(v.String())
		if (i+1)%width == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

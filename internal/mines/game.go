package mines

import "github.com/gammazero/deque"

type point struct{ x, y int }

// OpenCell opens the cell at (x, y) and runs the cascading reveal.
//
// A flagged target is ignored. An already-opened target is a chord
// request: when exactly Number neighbors are flagged, every unopened
// unflagged neighbor is opened as if clicked. Opening a mine ends the
// game as Lost immediately; cells opened earlier in the same call stay
// opened. Zero-numbered cells flood their unopened unflagged neighbors
// through an explicit FIFO worklist, so arbitrarily large empty
// regions cost no stack depth. After a non-losing call the field is
// scanned once for the win condition: every non-mine cell opened.
//
// No-op outside Running. Out-of-bounds coordinates panic.
func (m *Minefield) OpenCell(x, y int) {
	m.mustContain(x, y)
	if m.state != Running {
		return
	}
	target := m.cells[y*m.length+x]
	if target.Flagged {
		return
	}

	var queue deque.Deque[point]
	if target.Opened {
		flagged := 0
		var closed []point
		m.eachNeighbor(x, y, func(nx, ny int) {
			c := m.cells[ny*m.length+nx]
			switch {
			case c.Flagged:
				flagged++
			case !c.Opened:
				closed = append(closed, point{nx, ny})
			}
		})
		if flagged != int(target.Number) {
			return
		}
		for _, p := range closed {
			queue.PushBack(p)
		}
	} else {
		queue.PushBack(point{x, y})
	}

	for queue.Len() > 0 {
		p := queue.PopFront()
		c := &m.cells[p.y*m.length+p.x]
		if c.Opened {
			continue
		}
		c.Opened = true
		if c.Mine {
			m.state = Lost
			return
		}
		if c.Number == 0 {
			m.eachNeighbor(p.x, p.y, func(nx, ny int) {
				n := m.cells[ny*m.length+nx]
				if !n.Opened && !n.Flagged {
					queue.PushBack(point{nx, ny})
				}
			})
		}
	}

	for i := range m.cells {
		if !m.cells[i].Mine && !m.cells[i].Opened {
			return
		}
	}
	m.state = Won
}

// ToggleFlag flips the flag on an unopened cell. On an opened cell it
// is a quick-flag request: when the count of unopened neighbors
// exactly equals the cell's Number, every unflagged one of them gets
// flagged. Quick-flag never removes flags.
//
// No-op outside Running. Out-of-bounds coordinates panic.
func (m *Minefield) ToggleFlag(x, y int) {
	m.mustContain(x, y)
	if m.state != Running {
		return
	}
	c := &m.cells[y*m.length+x]
	if !c.Opened {
		if c.Flagged {
			c.Flagged = false
			m.numFlagged--
		} else {
			c.Flagged = true
			m.numFlagged++
		}
		return
	}

	var closed []*Cell
	m.eachNeighbor(x, y, func(nx, ny int) {
		n := &m.cells[ny*m.length+nx]
		if !n.Opened {
			closed = append(closed, n)
		}
	})
	if len(closed) != int(c.Number) {
		return
	}
	for _, n := range closed {
		if !n.Flagged {
			n.Flagged = true
			m.numFlagged++
		}
	}
}

package mines

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
)

// Generator places mines into a fresh Minefield by rejection sampling
// and exposes a progress percentage for a concurrent observer. The
// zero value is ready to use; one Generator runs one generation at a
// time. Expected work is O(mineCount) on sparse fields and degrades as
// density approaches 100%, which is acceptable for bounded fields.
type Generator struct {
	progress atomic.Int64
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Progress reports the percentage of mines placed so far, 0 to 100,
// monotonically non-decreasing within one generation. It is safe to
// call from another goroutine while Generate runs; it reads 100 only
// once generation has fully completed.
func (g *Generator) Progress() int {
	return int(g.progress.Load())
}

// Generate builds a Minefield for o using r as the randomness source.
// The field is not visible to anyone until Generate returns, so the
// progress counter is the only state shared mid-flight.
func (g *Generator) Generate(o Option, r *rand.Rand) (*Minefield, error) {
	mineCount, err := CalculateMines(o)
	if err != nil {
		return nil, err
	}

	g.progress.Store(0)
	m := newMinefield(o)

	placed := 0
	for placed < mineCount {
		x, y := r.IntN(o.Length), r.IntN(o.Height)
		if m.cells[y*o.Length+x].Mine {
			continue
		}
		m.placeMine(x, y)
		placed++
		g.progress.Store(int64(math.Round(
			float64(placed) / float64(mineCount) * 100,
		)))
	}
	m.numMines = mineCount

	Log.WithField("option", o.String()).
		WithField("mines", mineCount).
		Debug("minefield generated")

	return m, nil
}

package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

// countNeighborMines recounts (x, y)'s clipped 8-neighborhood from the
// mine layout, independently of the cached Numbers.
func countNeighborMines(m *Minefield, x, y int) uint8 {
	var n uint8
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= m.Length() || ny < 0 || ny >= m.Height() {
				continue
			}
			if m.CellAt(nx, ny).Mine {
				n++
			}
		}
	}
	return n
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		option Option
	}{
		{"5x5(20%)", Option{Length: 5, Height: 5, Density: 20}},
		{"9x9(12%)", Option{Length: 9, Height: 9, Density: 12}},
		{"30x16(20%)", Option{Length: 30, Height: 16, Density: 20}},
		{"16x16(90%)", Option{Length: 16, Height: 16, Density: 90}},
		{"3x1(100%)", Option{Length: 3, Height: 1, Density: 100}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			gen := NewGenerator()
			m, err := gen.Generate(test.option, r)
			require.NoError(t, err)

			wantMines, err := CalculateMines(test.option)
			require.NoError(t, err)

			var mines int
			for y := range m.Height() {
				for x := range m.Length() {
					c := m.CellAt(x, y)
					if c.Mine {
						mines++
					}
					assert.False(t, c.Opened)
					assert.False(t, c.Flagged)
					assert.Equal(t, countNeighborMines(m, x, y), c.Number,
						"number mismatch at (%d, %d)", x, y)
				}
			}
			assert.Equal(t, wantMines, mines)
			assert.Equal(t, wantMines, m.NumMines())
			assert.Equal(t, 0, m.NumFlagged())
			assert.Equal(t, Running, m.State())
			assert.Equal(t, test.option, m.Difficulty())

			hx, hy := m.Hover()
			assert.Equal(t, 0, hx)
			assert.Equal(t, 0, hy)

			assert.Equal(t, 100, gen.Progress())
		})
	}
}

func TestGenerateInvalidOption(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	m, err := NewGenerator().Generate(Option{Length: 1, Height: 1, Density: 50}, r)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

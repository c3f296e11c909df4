package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		option Option
		want   int
	}{
		{
			name:   "9x9(12%)",
			option: Option{Length: 9, Height: 9, Density: 12},
			want:   9,
		},
		{
			name:   "16x16(15%)",
			option: Option{Length: 16, Height: 16, Density: 15},
			want:   38,
		},
		{
			name:   "zero density still yields one mine",
			option: Option{Length: 10, Height: 10, Density: 0},
			want:   1,
		},
		{
			name:   "full density keeps one safe cell",
			option: Option{Length: 3, Height: 1, Density: 100},
			want:   2,
		},
		{
			name:   "2x2 full density",
			option: Option{Length: 2, Height: 2, Density: 100},
			want:   3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := CalculateMines(test.option)
			assert.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestCalculateMinesBounds(t *testing.T) {
	t.Parallel()

	for length := 1; length <= 8; length++ {
		for height := 1; height <= 8; height++ {
			if length*height < 2 {
				continue
			}
			for density := 0; density <= 100; density += 5 {
				o := Option{Length: length, Height: height, Density: density}
				count, err := CalculateMines(o)
				if assert.NoError(t, err, o.String()) {
					assert.GreaterOrEqual(t, count, 1, o.String())
					assert.LessOrEqual(t, count, length*height-1, o.String())
				}
			}
		}
	}
}

func TestOptionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		option Option
	}{
		{"zero length", Option{Length: 0, Height: 5, Density: 10}},
		{"zero height", Option{Length: 5, Height: 0, Density: 10}},
		{"single cell", Option{Length: 1, Height: 1, Density: 50}},
		{"oversized length", Option{Length: MaxDim + 1, Height: 5, Density: 10}},
		{"oversized height", Option{Length: 5, Height: MaxDim + 1, Density: 10}},
		{"negative density", Option{Length: 5, Height: 5, Density: -1}},
		{"density over 100", Option{Length: 5, Height: 5, Density: 101}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, test.option.Validate(), ErrInvalidOption)
			_, err := CalculateMines(test.option)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

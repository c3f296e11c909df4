package mines

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// MaxDim is the largest supported field dimension per axis. The save
// file header stores each dimension minus one in 10 bits.
const MaxDim = 1024

var ErrInvalidOption = errors.New("invalid field option")

// Option describes field geometry and mine density. It is immutable
// once a field has been generated from it.
type Option struct {
	Length  int
	Height  int
	Density int // percentage of cells intended to be mines
}

func (o Option) String() string {
	return fmt.Sprintf("%dx%d(%d%%)", o.Length, o.Height, o.Density)
}

func (o Option) Validate() error {
	if o.Length < 1 || o.Length > MaxDim {
		return fmt.Errorf(
			"%w: length %d outside [1, %d]", ErrInvalidOption, o.Length, MaxDim,
		)
	}
	if o.Height < 1 || o.Height > MaxDim {
		return fmt.Errorf(
			"%w: height %d outside [1, %d]", ErrInvalidOption, o.Height, MaxDim,
		)
	}
	if o.Density < 0 || o.Density > 100 {
		return fmt.Errorf(
			"%w: density %d%% outside [0, 100]", ErrInvalidOption, o.Density,
		)
	}
	if o.Length*o.Height < 2 {
		// A playable field needs room for a mine and a safe cell.
		return fmt.Errorf(
			"%w: %dx%d field is too small", ErrInvalidOption, o.Length, o.Height,
		)
	}
	return nil
}

func (o Option) Contains(x, y int) bool {
	return 0 <= x && x < o.Length && 0 <= y && y < o.Height
}

// CalculateMines converts an Option into a concrete mine count:
// floor(length*height*density/100), clamped so the field keeps at
// least one mine and at least one safe cell.
func CalculateMines(o Option) (int, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	cells := o.Length * o.Height
	count := cells * o.Density / 100
	if count < 1 {
		count = 1
	}
	if count > cells-1 {
		count = cells - 1
	}
	return count, nil
}

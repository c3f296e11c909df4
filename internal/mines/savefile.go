package mines

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

var (
	ErrNoSave      = errors.New("no saved minefield")
	ErrCorruptSave = errors.New("corrupt save data")
)

/*
 * Save layout, all integers big-endian and unsigned.
 *
 * Header, 5 bytes: four 10-bit fields packed MSB-first, in order
 * length-1, height-1, hoverX, hoverY.
 *
 * Body: one 3-bit record per cell, row-major, 8 records per 3-byte
 * block with record 0 in the top 3 bits. Each record is
 * (opened<<2)|(mine<<1)|flagged. The last block is zero-padded; spare
 * bits are dropped on read. Numbers are never written - the reader
 * rebuilds them from the mine layout.
 */

const headerSize = 5

// Encode writes the minefield to w in the save-file layout.
func (m *Minefield) Encode(w io.Writer) error {
	header := uint64(m.length-1)<<30 |
		uint64(m.height-1)<<20 |
		uint64(m.hoverX)<<10 |
		uint64(m.hoverY)
	buf := []byte{
		byte(header >> 32),
		byte(header >> 24),
		byte(header >> 16),
		byte(header >> 8),
		byte(header),
	}

	var block uint32
	packed := 0
	for _, c := range m.cells {
		var record uint32
		if c.Opened {
			record |= 0b100
		}
		if c.Mine {
			record |= 0b010
		}
		if c.Flagged {
			record |= 0b001
		}
		block |= record << (21 - 3*packed)
		packed++
		if packed == 8 {
			buf = append(buf, byte(block>>16), byte(block>>8), byte(block))
			block, packed = 0, 0
		}
	}
	if packed > 0 {
		buf = append(buf, byte(block>>16), byte(block>>8), byte(block))
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("unable to write save data: %w", err)
	}
	return nil
}

// Decode reads a minefield back from the save-file layout. Cell
// Numbers, the mine and flag totals and the recovered density are
// rebuilt while scanning; the loaded game always resumes as Running.
func Decode(r io.Reader) (*Minefield, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrCorruptSave, err)
	}
	h := uint64(header[0])<<32 |
		uint64(header[1])<<24 |
		uint64(header[2])<<16 |
		uint64(header[3])<<8 |
		uint64(header[4])
	var (
		length = int(h>>30&0x3ff) + 1
		height = int(h>>20&0x3ff) + 1
		hoverX = int(h >> 10 & 0x3ff)
		hoverY = int(h & 0x3ff)
	)
	if hoverX >= length || hoverY >= height {
		return nil, fmt.Errorf(
			"%w: hover (%d, %d) outside %dx%d field",
			ErrCorruptSave, hoverX, hoverY, length, height,
		)
	}

	cells := length * height
	body := make([]byte, (cells+7)/8*3)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: short body: %v", ErrCorruptSave, err)
	}

	m := newMinefield(Option{Length: length, Height: height})
	m.hoverX, m.hoverY = hoverX, hoverY
	for i := 0; i < cells; i++ {
		block := uint32(body[i/8*3])<<16 |
			uint32(body[i/8*3+1])<<8 |
			uint32(body[i/8*3+2])
		record := block >> (21 - 3*(i%8)) & 0b111
		c := &m.cells[i]
		c.Opened = record&0b100 != 0
		c.Flagged = record&0b001 != 0
		if record&0b010 != 0 {
			m.placeMine(i%length, i/length)
			m.numMines++
		}
		if c.Flagged {
			m.numFlagged++
		}
	}

	// The recovered density is approximate, for display only; it is
	// never fed back into generation.
	m.difficulty = Option{
		Length:  length,
		Height:  height,
		Density: m.numMines * 100 / cells,
	}
	return m, nil
}

// Save rewrites the file at path with the current field state. The
// write is a whole-file replacement, not an append.
func (m *Minefield) Save(path string) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("unable to write save file: %w", err)
	}
	return nil
}

// Load reads a saved minefield from path. It returns [ErrNoSave] when
// no file exists and [ErrCorruptSave] when the file is shorter than
// its own header promises.
func Load(path string) (*Minefield, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoSave, path)
	} else if err != nil {
		return nil, fmt.Errorf("unable to read save file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

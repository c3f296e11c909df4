// minegen generates a minefield offline and writes it to a save file
// in the same format the server stores, printing generation progress
// and the resulting board along the way.
package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/ashmarin/minefield-server/internal/mines"
)

var (
	length  = flag.Int("length", 9, "field length")
	height  = flag.Int("height", 9, "field height")
	density = flag.Int("density", 12, "mine density, percent")
	output  = flag.String("o", "minefield.save", "output save file")
	reveal  = flag.Bool("reveal", false, "print mine positions instead of the player view")
)

func main() {
	flag.Parse()

	logger := slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}),
	)

	option := mines.Option{
		Length:  *length,
		Height:  *height,
		Density: *density,
	}
	if err := option.Validate(); err != nil {
		logger.Error("invalid field option", "error", err)
		os.Exit(1)
	}

	rnd := rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
	gen := mines.NewGenerator()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				logger.Info("generating", "progress", gen.Progress())
			}
		}
	}()

	field, err := gen.Generate(option, rnd)
	close(done)
	if err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}

	logger.Info("minefield generated",
		"option", option.String(),
		"mines", field.NumMines(),
	)

	if err := field.Save(*output); err != nil {
		logger.Error("unable to save minefield", "error", err)
		os.Exit(1)
	}
	logger.Info("minefield saved", "path", *output)

	if *reveal {
		fmt.Print(mineMap(field))
	} else {
		fmt.Print(field.View().ToString(field.Length()))
	}
}

func mineMap(m *mines.Minefield) string {
	out := ""
	for y := range m.Height() {
		for x := range m.Length() {
			if m.CellAt(x, y).Mine {
				out += "* "
			} else {
				out += fmt.Sprintf("%d ", m.CellAt(x, y).Number)
			}
		}
		out += "\n"
	}
	return out
}

package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"
	"time"

	"github.com/maruel/ansi256"

	"github.com/jechtern/rf433d/internal/config"
	"github.com/jechtern/rf433d/internal/pulse"
)

// histogramLoop periodically snapshots the ring and prints a
// pulse-length histogram to stderr until ctx is cancelled.
func histogramLoop(ctx context.Context, ring *pulse.Ring, cfg config.Config) {
	var lastPos uint32
	ticker := time.NewTicker(cfg.DecoderDelay())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			head := ring.Head()
			if head <= lastPos {
				continue
			}
			low, _ := ring.Slice(lastPos, head)
			lastPos = head
			counts := make(map[uint8]int)
			for _, us := range low {
				counts[uint8(us/100)]++
			}
			printHistogram(os.Stderr, counts)
		}
	}
}

// printHistogram renders a simple pulse-length histogram, colored by
// each symbol's occurrence rank, for the -c / --histogram CLI flag.
// Grounded on periph-extra's use of maruel/ansi256 + mattn/go-colorable
// for terminal-safe 256-color output.
func printHistogram(w io.Writer, counts map[uint8]int) {
	type row struct {
		symbol uint8
		count  int
	}
	rows := make([]row, 0, len(counts))
	for s, c := range counts {
		rows = append(rows, row{s, c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].count > rows[j].count })

	for rank, r := range rows {
		gray := byte(255 - min(rank*8, 255))
		swatch := ansi256.Default.Block(color.NRGBA{R: gray, G: gray, B: gray, A: 255})
		fmt.Fprintf(w, "%s%3d us: %s (%d)\x1b[0m\n", swatch, int(r.symbol)*100, bar(r.count), r.count)
	}
}

func bar(n int) string {
	if n > 60 {
		n = 60
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = '#'
	}
	return string(b)
}

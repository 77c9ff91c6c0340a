package decoder

import "github.com/jechtern/rf433d/internal/protocol"

// findSync implements spec section 4.D step 9: for each candidate
// symbol in the L alphabet, find every position holding it within the
// working span, compute their pairwise distances, and declare a sync
// symbol/frame-length pair when at least MinSyncRepeats of those
// distances agree and are at least MinSyncDistance apart.
func (d *Decoder) findSync() (sym uint8, frameLen int, ok bool) {
	for _, entry := range d.L.Entries {
		positions := d.positionsOf(entry.Symbol)
		if len(positions) < 2 {
			continue
		}
		counts := map[int]int{}
		for i := 0; i < len(positions); i++ {
			for j := i + 1; j < len(positions); j++ {
				dist := positions[j] - positions[i]
				counts[dist]++
			}
		}
		for dist, n := range counts {
			if n >= d.cfg.MinSyncRepeats && dist >= int(d.cfg.MinSyncDistance) {
				return entry.Symbol, dist, true
			}
		}
	}
	return 0, 0, false
}

func (d *Decoder) positionsOf(sym uint8) []int {
	var positions []int
	for i := d.from; i <= d.to && i < len(d.lStream); i++ {
		if d.lStream[i] == sym {
			positions = append(positions, i)
		}
	}
	return positions
}

// decodeFrames implements spec section 4.D step 10: for each sync
// occurrence at position p, extract the frame preceding it
// [p-frameLen, p-1] and the frame following it [p+1, p+frameLen],
// comparing each L_stream bit position against min(L[0], L[1]) —
// above is 1, at-or-below is 0.
func (d *Decoder) decodeFrames(syncSym uint8, frameLen int) []Result {
	min1, min2 := d.L.Smallest()
	threshold := min1
	if min2 < threshold {
		threshold = min2
	}

	var results []Result
	for p := d.from; p <= d.to && p < len(d.lStream); p++ {
		if d.lStream[p] != syncSym {
			continue
		}
		if before, ok := d.decodeBitRun(p-frameLen, p-1, threshold); ok {
			results = append(results, Result{Protocol: protocol.Analyze, Raw: before, Bits: frameLen})
		}
		if after, ok := d.decodeBitRun(p+1, p+frameLen, threshold); ok {
			results = append(results, Result{Protocol: protocol.Analyze, Raw: after, Bits: frameLen})
		}
	}
	return results
}

func (d *Decoder) decodeBitRun(start, end int, threshold uint8) (uint64, bool) {
	if start < 0 || end >= len(d.lStream) || start > end {
		return 0, false
	}
	var code uint64
	for i := start; i <= end; i++ {
		bit := uint64(0)
		if d.lStream[i] > threshold {
			bit = 1
		}
		code = (code << 1) | bit
	}
	return code, true
}

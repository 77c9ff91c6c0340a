package decoder

// sniff implements spec section 4.D step 2: walk the stream in
// 4-symbol blocks from pos, looking for one that "matches" (all
// equal, symmetric pairs, alternating pairs, or 3-of-4 equal, with no
// zero symbol), then expand the matching region left and right in
// 4-symbol steps until a block fails to match.
func sniff(stream []uint8, pos int) (from, to int, ok bool) {
	if pos+4 > len(stream) {
		return 0, 0, false
	}
	if !blockMatches(stream[pos : pos+4]) {
		return 0, 0, false
	}
	from, to = pos, pos+3
	for to+5 <= len(stream) && blockMatches(stream[to+1:to+5]) {
		to += 4
	}
	for from-4 >= 0 && blockMatches(stream[from-4:from]) {
		from -= 4
	}
	return from, to, true
}

func blockMatches(b []uint8) bool {
	for _, v := range b {
		if v == 0 {
			return false
		}
	}
	allEqual := b[0] == b[1] && b[1] == b[2] && b[2] == b[3]
	symmetricPairs := b[0] == b[3] && b[1] == b[2]
	alternating := b[0] == b[2] && b[1] == b[3]
	threeOfFour := countEqualToFirst(b) >= 3 || countEqualToFirst(b[1:]) >= 3
	return allEqual || symmetricPairs || alternating || threeOfFour
}

func countEqualToFirst(b []uint8) int {
	n := 0
	for _, v := range b {
		if v == b[0] {
			n++
		}
	}
	return n
}

// biggestAllowedSymbol bounds the probe error counter (spec step 3:
// "stop when e exceeds the biggest allowed symbol"); it tracks the
// largest symbol learned so far in either alphabet, defaulting to a
// bootstrap floor before anything has been learned.
func (d *Decoder) biggestAllowedSymbol() int {
	biggest := 64
	for _, e := range d.L.Entries {
		if int(e.Symbol) > biggest {
			biggest = int(e.Symbol)
		}
	}
	for _, e := range d.H.Entries {
		if int(e.Symbol) > biggest {
			biggest = int(e.Symbol)
		}
	}
	return biggest
}

// probe implements spec section 4.D step 3: expand the candidate span
// rightward then leftward from the sniffed core, maintaining a
// floating error counter that learns unknown symbols and stops on an
// end-of-transmission indicator.
func (d *Decoder) probe() {
	d.probeRight()
	d.probeLeft()
}

func (d *Decoder) probeRight() {
	e := 0
	pos := d.to
	for pos+1 < len(d.lStream) {
		pos++
		l, h := d.lStream[pos], d.hStream[pos]
		if d.L.Has(l) {
			e -= int(l)
		} else {
			d.L.Learn(l)
			e++
		}
		if d.H.Has(h) {
			e -= int(h)
		} else if int(h) <= 255-d.lMin()-d.hMin() {
			// Right learning admits larger symbols up to
			// UINT8_MAX - (Lmin + Hmin), capturing long SYNC pulses.
			d.H.Learn(h)
			e++
		}
		d.to = pos
		if e > d.biggestAllowedSymbol() {
			break
		}
	}
}

func (d *Decoder) probeLeft() {
	e := 0
	pos := d.from
	for pos-1 >= 0 {
		pos--
		l, h := d.lStream[pos], d.hStream[pos]
		smallestL := d.lMin()
		admit := int(l) < smallestL || (smallestL > 0 && int(l)%smallestL == 0)
		if d.L.Has(l) {
			e -= int(l)
		} else if admit {
			// Left learning admits smaller symbols or integer
			// multiples of the current smallest L symbol, capturing
			// bit-timing pulses.
			d.L.Learn(l)
			e++
		}
		if !d.H.Has(h) && admit {
			d.H.Learn(h)
		}
		d.from = pos
		if e > d.biggestAllowedSymbol() {
			break
		}
	}
}

func (d *Decoder) lMin() int {
	min1, _ := d.L.Smallest()
	if min1 == 255 {
		return 1
	}
	return int(min1)
}

func (d *Decoder) hMin() int {
	min1, _ := d.H.Smallest()
	if min1 == 255 {
		return 1
	}
	return int(min1)
}

// filter implements spec section 4.D step 4: sort both alphabets by
// descending occurrence, condense gaps, then align (merge closest
// pairs while the minimum pairwise distance is below cardinality).
func (d *Decoder) filter() {
	for _, a := range []*Alphabet{&d.L, &d.H} {
		a.Sort()
		a.Condense()
		a.Align()
	}
}

// melt implements spec section 4.D step 5: L-symbols strictly smaller
// than the two smallest canonical L symbols are treated as glitches —
// folded into the following L slot along with their paired H sample,
// and the stream is shifted to remove the gap.
func (d *Decoder) melt() {
	min1, min2 := d.L.Smallest()
	threshold := min1
	if min2 < threshold {
		threshold = min2
	}
	out := make([]uint8, 0, len(d.lStream))
	outH := make([]uint8, 0, len(d.hStream))
	carry := uint8(0)
	for i := d.from; i <= d.to && i < len(d.lStream); i++ {
		l, h := d.lStream[i], d.hStream[i]
		if l < threshold {
			carry += l + h
			continue
		}
		out = append(out, l+carry)
		outH = append(outH, h)
		carry = 0
	}
	if len(out) == 0 {
		return
	}
	copy(d.lStream[d.from:], out)
	copy(d.hStream[d.from:], outH)
	d.to = d.from + len(out) - 1
}

// tune implements spec section 4.D step 6: shrink the left and right
// span boundaries until both L[pos] and H[pos] match an alphabet
// entry within the fine-tune tolerance.
func (d *Decoder) tune() {
	tol := d.cfg.FineTuneTolerance
	for d.from < d.to {
		_, lok := d.L.Match(d.lStream[d.from], tol)
		_, hok := d.H.Match(d.hStream[d.from], tol)
		if lok && hok {
			break
		}
		d.from++
	}
	for d.to > d.from {
		_, lok := d.L.Match(d.lStream[d.to], tol)
		_, hok := d.H.Match(d.hStream[d.to], tol)
		if lok && hok {
			break
		}
		d.to--
	}
}

// iron implements spec section 4.D step 7: for increasing tolerances
// from 0 up to the alphabet's minimum pairwise distance, replace each
// symbol by its closest alphabet match at that tolerance.
func (d *Decoder) iron() {
	maxTol := d.L.MinPairwiseDistance()
	if hTol := d.H.MinPairwiseDistance(); hTol < maxTol {
		maxTol = hTol
	}
	for tol := uint8(0); tol <= maxTol; tol++ {
		for i := d.from; i <= d.to && i < len(d.lStream); i++ {
			if m, ok := d.L.Match(d.lStream[i], tol); ok {
				d.lStream[i] = m
			}
			if m, ok := d.H.Match(d.hStream[i], tol); ok {
				d.hStream[i] = m
			}
		}
	}
}

// HammerReport records a position that required hard correction
// (spec step 8: "report the positions that required hard
// correction").
type HammerReport struct {
	Position int
}

// hammer implements spec section 4.D step 8: any symbol still
// failing alphabet validation at the final tolerance is replaced with
// its best match regardless of distance.
func (d *Decoder) hammer() []HammerReport {
	var reports []HammerReport
	tol := d.L.MinPairwiseDistance()
	for i := d.from; i <= d.to && i < len(d.lStream); i++ {
		if _, ok := d.L.Match(d.lStream[i], tol); !ok {
			if best, ok := d.L.Match(d.lStream[i], 255); ok {
				d.lStream[i] = best
				reports = append(reports, HammerReport{Position: i})
			}
		}
		if _, ok := d.H.Match(d.hStream[i], tol); !ok {
			if best, ok := d.H.Match(d.hStream[i], 255); ok {
				d.hStream[i] = best
			}
		}
	}
	return reports
}

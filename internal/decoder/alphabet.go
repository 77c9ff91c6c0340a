package decoder

import "sort"

// maxAlphabetSize is the "up to 32 entries" cap from spec section 3's
// alphabet table.
const maxAlphabetSize = 32

// AlphabetEntry is one canonical symbol length and how many times it
// has been observed.
type AlphabetEntry struct {
	Symbol uint8
	Count  uint16
}

// Alphabet is a per-polarity (LOW or HIGH) table of canonical symbol
// lengths, spec section 3's "Alphabet table". It never contains 0 or
// 255 (those are sentinel/noise values filtered before learning).
type Alphabet struct {
	Entries []AlphabetEntry
}

// NewAlphabet returns an empty alphabet with capacity reserved.
func NewAlphabet() *Alphabet {
	return &Alphabet{Entries: make([]AlphabetEntry, 0, maxAlphabetSize)}
}

// Learn records one observation of sym, adding a new entry if sym is
// unseen and there is room, or incrementing an existing entry's
// count. Symbols 0 and 255 are never learned.
func (a *Alphabet) Learn(sym uint8) bool {
	if sym == 0 || sym == 255 {
		return false
	}
	for i := range a.Entries {
		if a.Entries[i].Symbol == sym {
			a.Entries[i].Count++
			return true
		}
	}
	if len(a.Entries) >= maxAlphabetSize {
		return false
	}
	a.Entries = append(a.Entries, AlphabetEntry{Symbol: sym, Count: 1})
	return true
}

// Has reports whether sym is already a member.
func (a *Alphabet) Has(sym uint8) bool {
	for _, e := range a.Entries {
		if e.Symbol == sym {
			return true
		}
	}
	return false
}

// Sort orders entries by descending occurrence count (spec step 4).
func (a *Alphabet) Sort() {
	sort.SliceStable(a.Entries, func(i, j int) bool {
		return a.Entries[i].Count > a.Entries[j].Count
	})
}

// Condense removes zero-count gaps, compacting the table in place.
// Learn never leaves gaps and Align removes a merged entry outright,
// so on tables built through those two this finds nothing to drop.
func (a *Alphabet) Condense() {
	out := a.Entries[:0]
	for _, e := range a.Entries {
		if e.Count > 0 {
			out = append(out, e)
		}
	}
	a.Entries = out
}

// minPairwiseDistance returns the smallest absolute difference
// between any two distinct members' symbol values, and the index
// pair that achieves it. Returns ok=false for fewer than 2 entries.
func (a *Alphabet) minPairwiseDistance() (dist uint8, i, j int, ok bool) {
	dist = 255
	ok = false
	for x := 0; x < len(a.Entries); x++ {
		for y := x + 1; y < len(a.Entries); y++ {
			d := absDiff(a.Entries[x].Symbol, a.Entries[y].Symbol)
			if d < dist {
				dist, i, j, ok = d, x, y, true
			}
		}
	}
	return
}

// MinPairwiseDistance exposes the minimum pairwise symbol distance
// for the alphabet-curation invariant test (spec section 8).
func (a *Alphabet) MinPairwiseDistance() uint8 {
	d, _, _, ok := a.minPairwiseDistance()
	if !ok {
		return 255
	}
	return d
}

// Align repeatedly merges the two closest symbols while the minimum
// pairwise distance is smaller than the table's cardinality, folding
// the loser's count into the survivor (spec step 4). The entry with
// the larger count survives; on a tie the entry that comes first in
// the table survives.
func (a *Alphabet) Align() {
	for {
		d, i, j, ok := a.minPairwiseDistance()
		if !ok || int(d) >= len(a.Entries) {
			return
		}
		a.merge(i, j)
	}
}

func (a *Alphabet) merge(i, j int) {
	ei, ej := a.Entries[i], a.Entries[j]
	survivor := i
	loser := j
	if ej.Count > ei.Count {
		survivor, loser = j, i
	}
	a.Entries[survivor].Count += a.Entries[loser].Count
	// Drop the loser by swapping with the last element.
	last := len(a.Entries) - 1
	a.Entries[loser] = a.Entries[last]
	a.Entries = a.Entries[:last]
	_ = survivor
}

// Smallest returns the two smallest symbol values currently in the
// table (spec step 5/10 both reference "the two smallest canonical L
// symbols" / "min(L[0], L[1])" after Sort+Condense+Align, which is
// symbol-value order, not occurrence order, so this scans for value).
func (a *Alphabet) Smallest() (min1, min2 uint8) {
	min1, min2 = 255, 255
	for _, e := range a.Entries {
		if e.Symbol < min1 {
			min2 = min1
			min1 = e.Symbol
		} else if e.Symbol < min2 {
			min2 = e.Symbol
		}
	}
	return
}

// Match finds the closest alphabet member to sym within tolerance,
// preferring an exact match. ok is false if nothing is within range.
func (a *Alphabet) Match(sym uint8, tolerance uint8) (match uint8, ok bool) {
	best := uint8(255)
	bestDist := uint8(255)
	found := false
	for _, e := range a.Entries {
		if e.Symbol == sym {
			return sym, true
		}
		d := absDiff(sym, e.Symbol)
		if d <= tolerance && d < bestDist {
			best, bestDist, found = e.Symbol, d, true
		}
	}
	return best, found
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

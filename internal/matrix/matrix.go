// Package matrix holds the pending (protocol, raw_code) entries
// described in spec section 4.E, deduplicating repeats seen within a
// quiescence window before they are dispatched to the protocol codecs.
// The store is a growable slice, not a fixed-size ring: entries leave
// it only through Dispatch and are never overwritten.
package matrix

import (
	"time"

	"github.com/jechtern/rf433d/internal/protocol"
)

// TTL is the default quiescence window: an entry becomes eligible for
// dispatch once it has gone unrepeated for this long.
const TTL = 500 * time.Millisecond

// Entry is one slot in the matrix ring.
type Entry struct {
	Protocol protocol.Protocol
	Raw      uint64
	Seen     time.Time
	Repeat   int
}

type key struct {
	proto protocol.Protocol
	raw   uint64
}

// Store is a list of pending Entry values, keyed by (protocol, raw).
// It grows past its initial capacity as needed.
// Store is not safe for concurrent use by multiple goroutines; the
// decoder and its dispatch run on the same goroutine (spec section 5:
// "the matrix is likewise SPSC between decoder and dispatcher — same
// thread, synchronous").
type Store struct {
	ttl                   time.Duration
	collectIdenticalCodes bool

	entries []Entry
	index   map[key]int // key -> position in entries, -1 once dispatched
}

// New builds a Store with room preallocated for capacity entries; it
// is not an upper bound. collectIdenticalCodes
// mirrors the config flag of the same name: when false, every stored
// entry is dispatched with Repeat == 0 instead of being coalesced.
func New(capacity int, collectIdenticalCodes bool) *Store {
	return &Store{
		ttl:                   TTL,
		collectIdenticalCodes: collectIdenticalCodes,
		entries:               make([]Entry, 0, capacity),
		index:                 make(map[key]int, capacity),
	}
}

// Store records a freshly decoded raw code at time now, coalescing it
// into an existing pending entry for the same (protocol, raw) if one
// is still pending.
func (s *Store) Store(proto protocol.Protocol, raw uint64, now time.Time) {
	k := key{proto, raw}
	if s.collectIdenticalCodes {
		if pos, ok := s.index[k]; ok {
			e := &s.entries[pos]
			e.Seen = now
			e.Repeat++
			return
		}
		s.entries = append(s.entries, Entry{Protocol: proto, Raw: raw, Seen: now, Repeat: 1})
		s.index[k] = len(s.entries) - 1
		return
	}
	// collect_identical_codes is false: every entry is dispatched with
	// repeat = 0 (spec section 4.E), no coalescing attempted.
	s.entries = append(s.entries, Entry{Protocol: proto, Raw: raw, Seen: now, Repeat: 0})
	s.index[k] = len(s.entries) - 1
}

// Dispatch removes and returns every entry whose most recent
// occurrence is at least the TTL old as of now, in insertion order.
func (s *Store) Dispatch(now time.Time) []Entry {
	var ready []Entry
	var kept []Entry
	for _, e := range s.entries {
		if now.Sub(e.Seen) >= s.ttl {
			ready = append(ready, e)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	s.index = make(map[key]int, cap(s.entries))
	for i, e := range s.entries {
		s.index[key{e.Protocol, e.Raw}] = i
	}
	return ready
}

// Len reports how many entries are currently pending.
func (s *Store) Len() int {
	return len(s.entries)
}

package matrix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jechtern/rf433d/internal/protocol"
)

func TestDeduplicatesWithinWindow(t *testing.T) {
	s := New(16, true)
	base := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		s.Store(protocol.Flamingo28, 0xabc, base.Add(time.Duration(i)*10*time.Millisecond))
	}
	require.Equal(t, 1, s.Len())

	dispatched := s.Dispatch(base.Add(40*time.Millisecond + TTL))
	require.Len(t, dispatched, 1)
	assert.Equal(t, 5, dispatched[0].Repeat)
	assert.Equal(t, uint64(0xabc), dispatched[0].Raw)
}

func TestDistinctCodesStayDistinct(t *testing.T) {
	s := New(16, true)
	now := time.Unix(0, 0)
	s.Store(protocol.Nexus, 1, now)
	s.Store(protocol.Nexus, 2, now)
	s.Store(protocol.Flamingo28, 1, now)
	assert.Equal(t, 3, s.Len())
}

func TestCollectIdenticalCodesDisabled(t *testing.T) {
	s := New(16, false)
	now := time.Unix(0, 0)
	s.Store(protocol.Nexus, 42, now)
	s.Store(protocol.Nexus, 42, now.Add(10*time.Millisecond))
	require.Equal(t, 2, s.Len())

	dispatched := s.Dispatch(now.Add(TTL + time.Second))
	require.Len(t, dispatched, 2)
	for _, e := range dispatched {
		assert.Equal(t, 0, e.Repeat)
	}
}

func TestDispatchOnlyEmitsQuiescentEntries(t *testing.T) {
	s := New(16, true)
	now := time.Unix(0, 0)
	s.Store(protocol.Nexus, 1, now)
	dispatched := s.Dispatch(now.Add(100 * time.Millisecond))
	assert.Empty(t, dispatched)
	assert.Equal(t, 1, s.Len())
}

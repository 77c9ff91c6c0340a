package nexus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jechtern/rf433d/internal/xerr"
)

// encode packs fields using the same bit layout Decode expects, so
// round-tripping through these two functions exercises the frame
// layout independent of any particular hex literal's bit grouping.
func encode(id uint8, battery bool, channel uint8, tempTenths int16, humidity uint8) uint64 {
	var raw uint64
	raw |= uint64(id) << 28
	if battery {
		raw |= 1 << 27
	}
	raw |= uint64(channel&0x7) << 24
	var tempRaw uint16
	if tempTenths < 0 {
		tempRaw = (0xfff - uint16(-tempTenths)) | 0x800
	} else {
		tempRaw = uint16(tempTenths)
	}
	raw |= uint64(tempRaw&0xfff) << 12
	raw |= uint64(constNibble) << 8
	raw |= uint64(humidity)
	return raw
}

func TestDecodeScenario(t *testing.T) {
	// Scenario 3: id=0xE7, battery=0, channel=0, temp_raw=0x0FC,
	// const=0xF, humi=0x64 -> id:231, channel:0, battery:0,
	// temp:+25.2, humi:100.
	raw := encode(0xE7, false, 0, 0x0FC, 0x64)
	f, err := Decode(raw, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 231, f.ID)
	assert.False(t, f.Battery)
	assert.EqualValues(t, 0, f.Channel)
	assert.InDelta(t, 25.2, f.Temperature(), 0.05)
	assert.EqualValues(t, 100, f.Humidity)
}

func TestDecodeNegativeTemperature(t *testing.T) {
	raw := encode(0x01, true, 2, -53, 40)
	f, err := Decode(raw, 5)
	require.NoError(t, err)
	assert.InDelta(t, -5.3, f.Temperature(), 0.05)
	assert.True(t, f.Battery)
}

func TestDecodeRejectsInsufficientRepeat(t *testing.T) {
	raw := encode(0x01, true, 0, 10, 50)
	_, err := Decode(raw, 2)
	assert.ErrorIs(t, err, xerr.ErrRepeatInsufficient)
}

func TestDecodeAllowsZeroRepeatPassthrough(t *testing.T) {
	// repeat == 0 is the matrix store's collect_identical_codes=false
	// signal, not an unreliable first occurrence, so it must not be
	// rejected the way repeat in [1, minRepeat) is.
	raw := encode(0x01, true, 0, 10, 50)
	f, err := Decode(raw, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.ID)
}

func TestDecodeRejectsBadConstNibble(t *testing.T) {
	raw := encode(0x01, true, 0, 10, 50)
	raw &^= uint64(0xf) << 8 // zero out the constant nibble
	_, err := Decode(raw, 5)
	assert.ErrorIs(t, err, xerr.ErrValidationFailed)
}

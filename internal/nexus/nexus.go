// Package nexus decodes the 36-bit NEXUS weather-sensor telemetry
// frame, grounded on rfcodec-nexus.c.
package nexus

import "github.com/jechtern/rf433d/internal/xerr"

// constNibble is the validation nibble at bits 11..8; a frame whose
// nibble doesn't match this is not a NEXUS frame.
const constNibble = 0xf

// minRepeat is the repeat count below which a frame is considered
// unreliable sampler lock-on noise and discarded.
const minRepeat = 3

// Frame is a decoded NEXUS telemetry reading.
type Frame struct {
	ID          uint8
	Battery     bool // true = OK, false = LOW
	Channel     uint8
	TempTenthsC int16 // temperature in tenths of a degree Celsius
	Humidity    uint8 // percent
}

// Temperature returns the decoded temperature in whole-and-tenths
// degrees Celsius, e.g. 25.2.
func (f Frame) Temperature() float64 {
	return float64(f.TempTenthsC) / 10.0
}

// Decode unpacks a 36-bit raw code into a Frame. repeat is the
// matrix store's coalesced repeat count for this raw code; frames
// seen fewer than minRepeat times are rejected with
// xerr.ErrRepeatInsufficient since the sampler is presumed to still
// be locking on. repeat == 0 is let through deliberately: it is the
// matrix store's signal that collect_identical_codes is disabled, not
// that the frame is an unreliable first occurrence. A constant-nibble
// mismatch is rejected with xerr.ErrValidationFailed.
func Decode(raw uint64, repeat int) (Frame, error) {
	if repeat >= 1 && repeat < minRepeat {
		return Frame{}, xerr.ErrRepeatInsufficient
	}

	id := uint8((raw >> 28) & 0xff)
	battery := (raw>>27)&0x1 != 0
	channel := uint8((raw >> 24) & 0x7)
	tempRaw := uint16((raw >> 12) & 0xfff)
	nibble := uint8((raw >> 8) & 0xf)
	humidity := uint8(raw & 0xff)

	if nibble != constNibble {
		return Frame{}, xerr.ErrValidationFailed
	}

	var temp int16
	if tempRaw&0x800 != 0 {
		temp = -int16(0xfff - tempRaw)
	} else {
		temp = int16(tempRaw)
	}

	return Frame{
		ID:          id,
		Battery:     battery,
		Channel:     channel,
		TempTenthsC: temp,
		Humidity:    humidity,
	}, nil
}

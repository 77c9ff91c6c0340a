// Package dispatch turns a matrix entry into a decoded bus.Event,
// applying the protocol codecs and transmitter-id validation from
// spec section 4.F and section 4.F's "Transmitter-ID validation"
// subsection.
package dispatch

import (
	"github.com/jechtern/rf433d/internal/bus"
	"github.com/jechtern/rf433d/internal/config"
	"github.com/jechtern/rf433d/internal/flamingo"
	"github.com/jechtern/rf433d/internal/matrix"
	"github.com/jechtern/rf433d/internal/nexus"
	"github.com/jechtern/rf433d/internal/protocol"
	"github.com/jechtern/rf433d/internal/xerr"
)

// Decode maps one matrix entry to a bus.Event. It returns an error
// (one of the xerr sentinels) when the frame is rejected rather than
// dispatched — callers should drop the frame (optionally logging it
// in verbose mode) rather than publish anything.
func Decode(entry matrix.Entry, cfg config.Config) (bus.Event, error) {
	switch entry.Protocol {
	case protocol.Nexus:
		return decodeNexus(entry, cfg)
	case protocol.Flamingo28:
		return decodeF28(entry, cfg)
	case protocol.Flamingo24:
		return decodeF24(entry, cfg)
	case protocol.Flamingo32:
		return decodeF32(entry, cfg)
	default:
		return bus.Event{
			Protocol: entry.Protocol,
			Raw:      entry.Raw,
			Repeat:   entry.Repeat,
			Seen:     entry.Seen,
		}, nil
	}
}

func decodeNexus(entry matrix.Entry, cfg config.Config) (bus.Event, error) {
	f, err := nexus.Decode(entry.Raw, entry.Repeat)
	if err != nil {
		return bus.Event{}, err
	}
	battery := 0
	if f.Battery {
		battery = 1
	}
	return bus.Event{
		Protocol: protocol.Nexus,
		DeviceID: uint32(f.ID),
		Channel:  int(f.Channel),
		Repeat:   entry.Repeat,
		IKey1:    bus.Humidity,
		IValue1:  int(f.Humidity),
		IKey2:    bus.Battery,
		IValue2:  battery,
		FKey1:    bus.Temperature,
		FValue1:  f.Temperature(),
		Raw:      entry.Raw,
		Seen:     entry.Seen,
	}, nil
}

func decodeF28(entry matrix.Entry, cfg config.Config) (bus.Event, error) {
	f := flamingo.DecryptAndDecodeF28(uint32(entry.Raw))
	if cfg.ValidateTransmitterIDs && !cfg.IsKnownTransmitter(f.Xmitter) {
		return bus.Event{}, xerr.ErrValidationFailed
	}
	return bus.Event{
		Protocol: protocol.Flamingo28,
		DeviceID: uint32(f.Xmitter),
		Channel:  int(f.Channel),
		Repeat:   entry.Repeat,
		Key:      bus.Button,
		Value:    int(f.Command),
		IKey1:    bus.Rolling,
		IValue1:  int(f.Rolling),
		IKey2:    bus.Payload,
		IValue2:  int(f.Payload),
		Raw:      entry.Raw,
		Seen:     entry.Seen,
	}, nil
}

func decodeF24(entry matrix.Entry, cfg config.Config) (bus.Event, error) {
	f := flamingo.DecodeF24(uint32(entry.Raw))
	return bus.Event{
		Protocol:    protocol.Flamingo24,
		Repeat:      entry.Repeat,
		Key:         bus.Payload,
		Value:       int(f.Raw),
		MessageText: "FLAMINGO-24 payload semantics unconfirmed; raw code only",
		Raw:         entry.Raw,
		Seen:        entry.Seen,
	}, nil
}

func decodeF32(entry matrix.Entry, cfg config.Config) (bus.Event, error) {
	f, err := flamingo.DecodeF32(entry.Raw)
	if err != nil {
		return bus.Event{}, err
	}
	if cfg.ValidateTransmitterIDs && !cfg.IsKnownTransmitter(f.Xmitter) {
		return bus.Event{}, xerr.ErrValidationFailed
	}
	return bus.Event{
		Protocol: protocol.Flamingo32,
		DeviceID: uint32(f.Xmitter),
		Channel:  int(f.Channel),
		Repeat:   entry.Repeat,
		Key:      bus.Button,
		Value:    int(f.Command),
		IKey1:    bus.Payload,
		IValue1:  int(f.Payload),
		Raw:      entry.Raw,
		Seen:     entry.Seen,
	}, nil
}

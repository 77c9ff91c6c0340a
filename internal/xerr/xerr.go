// Package xerr enumerates the recoverable error kinds from spec
// section 7 as sentinel errors, so callers can use errors.Is instead
// of string matching.
package xerr

import "errors"

var (
	// ErrTransientNoise is a pulse below the noise threshold or above
	// the 22ms abort ceiling; dropped at the sampler.
	ErrTransientNoise = errors.New("xerr: transient noise")

	// ErrFrameTimeout is the realtime state machine giving up on a
	// frame before it collected its expected bit count.
	ErrFrameTimeout = errors.New("xerr: frame timeout")

	// ErrSymbolUnlearned marks a stream-decoder symbol that needed
	// ironing or hammering to match the alphabet.
	ErrSymbolUnlearned = errors.New("xerr: symbol unlearned")

	// ErrValidationFailed is a NEXUS constant-nibble mismatch or an
	// unrecognized FLAMINGO transmitter id.
	ErrValidationFailed = errors.New("xerr: validation failed")

	// ErrRepeatInsufficient is a NEXUS frame seen fewer than 3 times.
	ErrRepeatInsufficient = errors.New("xerr: repeat insufficient")

	// ErrInitFailed is a fatal GPIO or priority setup failure.
	ErrInitFailed = errors.New("xerr: init failed")
)

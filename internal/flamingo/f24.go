package flamingo

// Frame24 exposes a captured FLAMINGO-24 frame. The original source
// never fully decodes this variant's payload — only its capture and
// transmit pulse shape are known (spec section 9's open question) —
// so rf433d surfaces the raw 24-bit code and nothing more.
//
// TODO: the payload nibble layout (presumed similar to F28's
// channel/command/rolling split, given the shared sync-and-bit-divider
// timing in spec section 4.C) is unconfirmed; do not guess it here.
type Frame24 struct {
	Raw uint32 // low 24 bits significant
}

// DecodeF24 wraps a captured 24-bit raw code without attempting field
// extraction.
func DecodeF24(raw uint32) Frame24 {
	return Frame24{Raw: raw & 0xffffff}
}

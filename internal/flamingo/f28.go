package flamingo

// Frame28 is a decoded FLAMINGO-28 plaintext: payload, transmitter
// id, rolling index, command, and channel (spec section 4.F's
// FLAMINGO-28 plaintext layout).
type Frame28 struct {
	Payload uint8 // 4 bits
	Xmitter uint16 // 16 bits
	Rolling uint8 // 2 bits, 0..3
	Command uint8 // presented as 0 (OFF) / 1 (ON); wire field is 0 or 2
	Channel uint8 // 4 bits
}

// EncodeF28 packs f into a 28-bit plaintext word.
func EncodeF28(f Frame28) uint32 {
	rawCommand := uint32(f.Command&1) << 1 // 0 -> 0, 1 -> 2
	word := uint32(f.Payload&0xf) << 24
	word |= uint32(f.Xmitter) << 8
	word |= uint32(f.Rolling&0x3) << 6
	word |= rawCommand << 4
	word |= uint32(f.Channel & 0xf)
	return word
}

// DecodeF28 unpacks a 28-bit plaintext word (already decrypted) into
// its fields.
func DecodeF28(word uint32) Frame28 {
	rawCommand := (word >> 4) & 0x3
	return Frame28{
		Payload: uint8((word >> 24) & 0xf),
		Xmitter: uint16((word >> 8) & 0xffff),
		Rolling: uint8((word >> 6) & 0x3),
		Command: uint8(rawCommand >> 1),
		Channel: uint8(word & 0xf),
	}
}

// DecryptAndDecodeF28 is the common receive-path composition:
// ciphertext off the air, straight to a decoded Frame28.
func DecryptAndDecodeF28(ciphertext uint32) Frame28 {
	return DecodeF28(Decrypt(ciphertext))
}

// EncodeAndEncryptF28 is the common transmit-path composition: a
// Frame28 straight to ciphertext ready for the pulse-bang transmitter.
func EncodeAndEncryptF28(f Frame28) uint32 {
	return Encrypt(EncodeF28(f))
}

package flamingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for code := uint32(0); code < (1 << 16); code += 37 {
		got := Encrypt(Decrypt(code & 0xfffffff))
		assert.Equal(t, code&0xfffffff, got)
	}
}

func TestDecryptKnownCiphertext(t *testing.T) {
	// Scenario 1: decrypt 0x0e5afff5 -> xmitter 0x835a, channel 5,
	// command 1 (ON), rolling 3, payload 0x0.
	f := DecryptAndDecodeF28(0x0e5afff5)
	assert.Equal(t, uint16(0x835a), f.Xmitter)
	assert.EqualValues(t, 5, f.Channel)
	assert.EqualValues(t, 1, f.Command)
	assert.EqualValues(t, 3, f.Rolling)
	assert.EqualValues(t, 0, f.Payload)
}

func TestEncryptRoundTripsThroughEncodeDecode(t *testing.T) {
	// Scenario 2.
	f := Frame28{Xmitter: 0x53cc, Channel: 2, Command: 1, Payload: 0x5, Rolling: 0}
	code := EncodeAndEncryptF28(f)
	got := DecryptAndDecodeF28(code)
	assert.Equal(t, f, got)
}

func TestBruteForceKnownXmitter(t *testing.T) {
	// Scenario 4: the known "White 1 ON" ciphertexts all decrypt to
	// plaintexts whose xmitter field is 0x53cc.
	ciphertexts := []uint32{0x0e6bd68d, 0x0e7be29d, 0x0e70a7f5, 0x0e763e15}
	for _, ct := range ciphertexts {
		f := DecryptAndDecodeF28(ct)
		assert.Equal(t, uint16(0x53cc), f.Xmitter, "ciphertext 0x%x", ct)
	}
}

func TestF28FieldRoundTrip(t *testing.T) {
	f := Frame28{Payload: 0xa, Xmitter: 0xbeef, Rolling: 2, Command: 1, Channel: 9}
	got := DecodeF28(EncodeF28(f))
	assert.Equal(t, f, got)
}

func TestManchesterRoundTrip(t *testing.T) {
	words := []uint32{0, 0xffffffff, 0x12345678, 0xdeadbeef, 0xa5a5a5a5}
	for _, w := range words {
		raw := ManchesterEncode(w)
		got, err := ManchesterDecode(raw)
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
}

func TestManchesterDecodeRejectsInvalidPair(t *testing.T) {
	// 00 is neither 01 nor 10.
	_, err := ManchesterDecode(0x0000000000000000 | 0x00)
	require.Error(t, err)
}

func TestF32FieldRoundTrip(t *testing.T) {
	f := Frame32{Payload: 0x42, Xmitter: 0xcafe, Command: 0x3, Channel: 0x7}
	got := DecodeF32Fields(EncodeF32Fields(f))
	assert.Equal(t, f, got)
}

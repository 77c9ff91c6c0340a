// Package flamingo implements the FLAMINGO-28/24/32 cipher and frame
// codecs (ELRO FA500R family), grounded on flamingocrypt.c and
// rfcodec-flamingo.c.
package flamingo

// CKEY is the forward-encryption S-box.
var CKEY = [16]uint8{9, 6, 3, 8, 10, 0, 2, 12, 4, 14, 7, 5, 1, 15, 11, 13}

// DKEY is CKEY's inverse, used by Decrypt.
var DKEY = [16]uint8{5, 12, 6, 2, 8, 11, 1, 10, 3, 0, 4, 14, 7, 15, 9, 13}

// nibbles unpacks a 28-bit word into its seven nibbles, n[0] holding
// bits 3..0 up to n[6] holding bits 27..24.
func nibbles(word uint32) [7]uint8 {
	var n [7]uint8
	for i := 0; i < 7; i++ {
		n[i] = uint8((word >> (4 * i)) & 0xf)
	}
	return n
}

func pack(n [7]uint8) uint32 {
	var word uint32
	for i := 6; i >= 0; i-- {
		word = (word << 4) | uint32(n[i]&0xf)
	}
	return word
}

func mod16(v int) uint8 {
	v %= 16
	if v < 0 {
		v += 16
	}
	return uint8(v)
}

// rotr2 rotates a 28-bit word right by 2 bits: the two lowest bits
// become the new bits 26 and 27.
func rotr2(word uint32) uint32 {
	const mask = (1 << 28) - 1
	word &= mask
	return ((word >> 2) | (word << 26)) & mask
}

// rotl2 is rotr2's inverse.
func rotl2(word uint32) uint32 {
	const mask = (1 << 28) - 1
	word &= mask
	return ((word << 2) | (word >> 26)) & mask
}

// Encrypt maps a 28-bit plaintext word to its 28-bit ciphertext.
func Encrypt(plaintext uint32) uint32 {
	n := nibbles(plaintext & ((1 << 28) - 1))
	for r := 0; r <= 1; r++ {
		n[0] = CKEY[mod16(int(n[0])-r+1)]
		for i := 1; i <= 5; i++ {
			n[i] = CKEY[mod16(int(n[i]^n[i-1])-r+1)]
		}
	}
	n[6] ^= 9
	word := pack(n)
	return rotr2(word)
}

// Decrypt maps a 28-bit ciphertext word back to its plaintext.
func Decrypt(ciphertext uint32) uint32 {
	word := rotl2(ciphertext & ((1 << 28) - 1))
	n := nibbles(word)
	n[6] ^= 9
	for _, r := range [...]int{0, 1} {
		for i := 5; i >= 1; i-- {
			n[i] = mod16(int(DKEY[n[i]])-r) ^ n[i-1]
		}
		n[0] = mod16(int(DKEY[n[0]]) - r)
	}
	return pack(n)
}

// Package chacha20 implements the ChaCha20 stream cipher and its HChaCha20 /
// XChaCha20 extensions described in RFC 8439 and RFC 7539bis, built from the
// quarter-round up rather than delegating to an existing AEAD package.
package chacha20

import (
	"encoding/binary"
	"math/bits"
)

// KeySize is the size in bytes of a ChaCha20 key.
const KeySize = 32

// NonceSize is the size in bytes of the standard (non-extended) ChaCha20 nonce.
const NonceSize = 12

// BlockSize is the size in bytes of one ChaCha20 keystream block.
const BlockSize = 64

// constant is the 4-word ASCII constant "expand 32-byte k", never mutated.
var constant = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// Block is the 16-word ChaCha20 state vector: 4 constant words, 8 key words,
// 1 counter word, 3 nonce words.
type Block [16]uint32

// NewBlock builds the initial state vector from a 32-byte key, a 12-byte
// nonce and a 32-bit counter.
func NewBlock(key [KeySize]byte, nonce [NonceSize]byte, counter uint32) Block {
	var b Block
	b[0], b[1], b[2], b[3] = constant[0], constant[1], constant[2], constant[3]
	for i := 0; i < 8; i++ {
		b[4+i] = binary.LittleEndian.Uint32(key[i*4 : i*4+4])
	}
	b[12] = counter
	b[13] = binary.LittleEndian.Uint32(nonce[0:4])
	b[14] = binary.LittleEndian.Uint32(nonce[4:8])
	b[15] = binary.LittleEndian.Uint32(nonce[8:12])
	return b
}

// QuarterRound performs the ChaCha20 quarter-round mixing function on four
// state words, returning the updated (a, b, c, d).
func QuarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)
	return a, b, c, d
}

// columnRound applies the four column-indexed quarter-rounds.
func (s *Block) columnRound() {
	s[0], s[4], s[8], s[12] = QuarterRound(s[0], s[4], s[8], s[12])
	s[1], s[5], s[9], s[13] = QuarterRound(s[1], s[5], s[9], s[13])
	s[2], s[6], s[10], s[14] = QuarterRound(s[2], s[6], s[10], s[14])
	s[3], s[7], s[11], s[15] = QuarterRound(s[3], s[7], s[11], s[15])
}

// diagonalRound applies the four diagonal-indexed quarter-rounds.
func (s *Block) diagonalRound() {
	s[0], s[5], s[10], s[15] = QuarterRound(s[0], s[5], s[10], s[15])
	s[1], s[6], s[11], s[12] = QuarterRound(s[1], s[6], s[11], s[12])
	s[2], s[7], s[8], s[13] = QuarterRound(s[2], s[7], s[8], s[13])
	s[3], s[4], s[9], s[14] = QuarterRound(s[3], s[4], s[9], s[14])
}

// innerBlock runs the 20 ChaCha20 rounds (10 column/diagonal pairs) in place.
func (s *Block) innerBlock() {
	for i := 0; i < 10; i++ {
		s.columnRound()
		s.diagonalRound()
	}
}

// Generate computes the 64-byte keystream block for this state vector: the
// working copy runs the 20 rounds, then the original state is added back
// word-by-word (wrapping), and the result is serialized little-endian.
func (s Block) Generate() [BlockSize]byte {
	working := s
	working.innerBlock()
	for i := range working {
		working[i] += s[i]
	}
	var out [BlockSize]byte
	for i, w := range working {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], w)
	}
	return out
}

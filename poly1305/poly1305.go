// Package poly1305 implements the RFC 8439 Poly1305 one-time authenticator
// over GF(2^130-5), built on math/big for the modular arithmetic rather than
// a fixed-width limb schedule.
package poly1305

import "math/big"

// KeySize is the size in bytes of a Poly1305 one-time key (r || s).
const KeySize = 32

// TagSize is the size in bytes of a Poly1305 tag.
const TagSize = 16

// BlockSize is the size in bytes of one Poly1305 message block.
const BlockSize = 16

var p *big.Int    // 2^130 - 5
var twoTo128 *big.Int

func init() {
	p = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 130), big.NewInt(5))
	twoTo128 = new(big.Int).Lsh(big.NewInt(1), 128)
}

// Hasher is an incremental Poly1305 authenticator. It buffers up to 15
// bytes across Write calls, folding every full 16-byte block into the
// running accumulator eagerly; Finalize does not destroy the accumulator,
// so it may be read after further Write calls continue the message (it is
// not, however, meaningful to Finalize twice and expect different keys).
type Hasher struct {
	r   *big.Int
	s   *big.Int
	cum *big.Int

	buf    [BlockSize]byte
	bufLen int
}

// NewHasher constructs a Hasher from a 32-byte one-time key.
func NewHasher(key [KeySize]byte) *Hasher {
	var rBytes [16]byte
	copy(rBytes[:], key[0:16])
	clamp(&rBytes)

	return &Hasher{
		r:   leToBig(rBytes[:]),
		s:   leToBig(key[16:32]),
		cum: new(big.Int),
	}
}

// clamp zeroes bits 4-7 of bytes 3, 7, 11, 15, and the low two bits of
// bytes 4, 8, 12, per RFC 8439 2.5.
func clamp(r *[16]byte) {
	r[3] &= 0x0f
	r[7] &= 0x0f
	r[11] &= 0x0f
	r[15] &= 0x0f
	r[4] &= 0xfc
	r[8] &= 0xfc
	r[12] &= 0xfc
}

// Write folds data into the running accumulator, buffering any trailing
// partial block for the next call. It never returns an error.
func (h *Hasher) Write(data []byte) (int, error) {
	n := len(data)

	if h.bufLen > 0 {
		k := copy(h.buf[h.bufLen:], data)
		h.bufLen += k
		data = data[k:]
		if h.bufLen < BlockSize {
			return n, nil
		}
		h.foldBlock(h.buf[:])
		h.bufLen = 0
	}

	for len(data) >= BlockSize {
		h.foldBlock(data[:BlockSize])
		data = data[BlockSize:]
	}

	if len(data) > 0 {
		h.bufLen = copy(h.buf[:], data)
	}

	return n, nil
}

// foldBlock folds one full 16-byte block into cum: cum = (cum + block‖0x01) * r mod p.
func (h *Hasher) foldBlock(block []byte) {
	h.foldPartial(block)
}

// foldPartial folds a block of 1-16 bytes (appending the 0x01 terminator
// byte per RFC 8439) into cum: cum = (cum + n) * r mod p.
func (h *Hasher) foldPartial(block []byte) {
	padded := make([]byte, len(block)+1)
	copy(padded, block)
	padded[len(block)] = 0x01

	n := leToBig(padded)
	h.cum.Add(h.cum, n)
	h.cum.Mul(h.cum, h.r)
	h.cum.Mod(h.cum, p)
}

// Finalize folds any trailing partial block and returns the 16-byte tag
// computed as the low 16 bytes of (cum + s) mod 2^128. The hasher's
// accumulator is left in a valid, continuable state.
func (h *Hasher) Finalize() [TagSize]byte {
	cum := new(big.Int).Set(h.cum)
	if h.bufLen > 0 {
		padded := make([]byte, h.bufLen+1)
		copy(padded, h.buf[:h.bufLen])
		padded[h.bufLen] = 0x01
		n := leToBig(padded)
		cum.Add(cum, n)
		cum.Mul(cum, h.r)
		cum.Mod(cum, p)
	}

	cum.Add(cum, h.s)
	cum.Mod(cum, twoTo128)

	var tag [TagSize]byte
	bigToLE(cum, tag[:])
	return tag
}

// MAC computes the one-shot Poly1305 tag of msg under the given key.
func MAC(key [KeySize]byte, msg []byte) [TagSize]byte {
	h := NewHasher(key)
	_, _ = h.Write(msg)
	return h.Finalize()
}

// leToBig interprets a little-endian byte slice as a big.Int.
func leToBig(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

// bigToLE serializes n into out as a little-endian, zero-padded value,
// truncating any bytes beyond len(out).
func bigToLE(n *big.Int, out []byte) {
	be := n.Bytes()
	for i := 0; i < len(out); i++ {
		out[i] = 0
	}
	for i, v := range be {
		pos := len(be) - 1 - i
		if pos < len(out) {
			out[pos] = v
		}
	}
}

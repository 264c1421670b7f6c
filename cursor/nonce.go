// Package cursor implements the synchronous nonce-exchange and
// encrypt/decrypt cursors that splice a nonce prefix onto an otherwise
// opaque byte stream before handing the remainder to a ChaCha20 stream
// cipher.
package cursor

import (
	"crypto/rand"

	"github.com/aeadstream/chacha20stream/chacha20"
)

// Variant selects the nonce size, and therefore whether the underlying
// stream cipher is plain ChaCha20 or the extended-nonce XChaCha20.
type Variant int

const (
	// ChaCha20 selects a 12-byte nonce.
	ChaCha20 Variant = iota
	// XChaCha20 selects a 24-byte extended nonce.
	XChaCha20
)

// Size returns the nonce length in bytes for the variant.
func (v Variant) Size() int {
	if v == XChaCha20 {
		return chacha20.XNonceSize
	}
	return chacha20.NonceSize
}

// nonceReadCursor is the emitting side of nonce exchange: the nonce is
// generated once, up front, and consume marks bytes as having been written
// out to the peer.
type nonceReadCursor struct {
	nonce   []byte
	emitted int
}

func newNonceReadCursor(variant Variant) (*nonceReadCursor, error) {
	nonce := make([]byte, variant.Size())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return &nonceReadCursor{nonce: nonce}, nil
}

// remaining returns the not-yet-emitted suffix of the nonce.
func (n *nonceReadCursor) remaining() []byte {
	return n.nonce[n.emitted:]
}

// consume marks k more bytes of the nonce as emitted.
func (n *nonceReadCursor) consume(k int) {
	n.emitted += k
}

func (n *nonceReadCursor) done() bool {
	return n.emitted == len(n.nonce)
}

// nonceWriteCursor is the absorbing side of nonce exchange: bytes arrive
// from the wire and are copied into the nonce buffer until it is full.
type nonceWriteCursor struct {
	nonce  []byte
	filled int
}

func newNonceWriteCursor(variant Variant) *nonceWriteCursor {
	return &nonceWriteCursor{nonce: make([]byte, variant.Size())}
}

// collectFrom copies as much of src as is needed to complete the nonce
// buffer, returning the number of bytes consumed.
func (n *nonceWriteCursor) collectFrom(src []byte) int {
	k := copy(n.nonce[n.filled:], src)
	n.filled += k
	return k
}

func (n *nonceWriteCursor) done() bool {
	return n.filled == len(n.nonce)
}

// userDataCursor wraps a live stream cipher once the nonce exchange has
// completed; the cursor's lifecycle is strictly one-way into this state.
type userDataCursor struct {
	cipher *chacha20.StreamCipher
}

func (u *userDataCursor) xor(buf []byte) {
	u.cipher.Encrypt(buf)
}

// streamCipherForNonce constructs the ChaCha20 or XChaCha20 StreamCipher
// appropriate for variant from the given key and full nonce bytes.
func streamCipherForNonce(key [chacha20.KeySize]byte, variant Variant, nonce []byte) *chacha20.StreamCipher {
	if variant == XChaCha20 {
		var xnonce [chacha20.XNonceSize]byte
		copy(xnonce[:], nonce)
		return chacha20.NewXChaCha20StreamCipher(key, xnonce, 1)
	}
	var n [chacha20.NonceSize]byte
	copy(n[:], nonce)
	return chacha20.NewStreamCipher(key, n, 1)
}

// chacha20NonceForOTK reduces the (possibly 24-byte) nonce to the 12-byte
// ChaCha20 nonce used for Poly1305 one-time-key derivation: itself for the
// ChaCha20 variant, or "[0;4] ‖ nonce[16:24]" for XChaCha20.
func chacha20NonceForOTK(variant Variant, nonce []byte) [chacha20.NonceSize]byte {
	if variant == XChaCha20 {
		var xnonce [chacha20.XNonceSize]byte
		copy(xnonce[:], nonce)
		return chacha20.ChaCha20NonceFromXNonce(xnonce)
	}
	var n [chacha20.NonceSize]byte
	copy(n[:], nonce)
	return n
}

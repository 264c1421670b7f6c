// Package chacha20poly1305 derives the Poly1305 one-time key from a ChaCha20
// key and nonce, and provides one-shot AEAD sealing/opening built on this
// module's own chacha20 and poly1305 packages (never golang.org/x/crypto).
package chacha20poly1305

import (
	"github.com/aeadstream/chacha20stream/chacha20"
)

// OneTimeKeyGen derives the Poly1305 one-time key for a given (cipher key,
// nonce) pair: ChaCha20 block 0 is generated and its first 32 bytes are
// returned. The caller MUST never reuse the resulting key for another
// message under the same (key, nonce).
func OneTimeKeyGen(key [chacha20.KeySize]byte, nonce [chacha20.NonceSize]byte) [32]byte {
	block := chacha20.NewBlock(key, nonce, 0).Generate()
	var otk [32]byte
	copy(otk[:], block[:32])
	return otk
}

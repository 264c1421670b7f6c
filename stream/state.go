package stream

import (
	"io"

	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/aeadstream/chacha20stream/poly1305"
)

// ChaCha20ReadState layers ChaCha20 decryption (and, optionally, Poly1305
// hashing of the ciphertext) over an underlying io.Reader. Per RFC 8439
// Encrypt-then-MAC, hashing happens over ciphertext, before decryption.
type ChaCha20ReadState struct {
	cipher *chacha20.StreamCipher
	hasher *poly1305.Hasher
}

// NewChaCha20ReadState constructs a ChaCha20ReadState. hasher may be nil if
// the stream carries no trailing authentication tag.
func NewChaCha20ReadState(cipher *chacha20.StreamCipher, hasher *poly1305.Hasher) *ChaCha20ReadState {
	return &ChaCha20ReadState{cipher: cipher, hasher: hasher}
}

// Read reads up to len(buf) bytes from r, hashes the ciphertext if
// configured to, then decrypts the filled region of buf in place.
func (s *ChaCha20ReadState) Read(r io.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if n > 0 {
		if s.hasher != nil {
			_, _ = s.hasher.Write(buf[:n])
		}
		s.cipher.Encrypt(buf[:n])
	}
	return n, err
}

// ChaCha20WriteState layers ChaCha20 encryption (and, optionally, Poly1305
// hashing of the ciphertext) over an underlying io.Writer. Each call to
// Write stages a private encrypted copy of the caller's buffer so the
// caller's own slice is never mutated, then drains the staging buffer to
// the underlying writer, looping internally if the writer makes partial
// progress, before reporting success.
type ChaCha20WriteState struct {
	cipher *chacha20.StreamCipher
	hasher *poly1305.Hasher
}

// NewChaCha20WriteState constructs a ChaCha20WriteState. hasher may be nil
// if the stream carries no trailing authentication tag.
func NewChaCha20WriteState(cipher *chacha20.StreamCipher, hasher *poly1305.Hasher) *ChaCha20WriteState {
	return &ChaCha20WriteState{cipher: cipher, hasher: hasher}
}

// Write encrypts buf into a private staging copy, hashes the ciphertext if
// configured to, and writes the staging buffer to w in full.
func (s *ChaCha20WriteState) Write(w io.Writer, buf []byte) (int, error) {
	staging := append([]byte(nil), buf...)
	s.cipher.Encrypt(staging)
	if s.hasher != nil {
		_, _ = s.hasher.Write(staging)
	}
	if err := writeAll(w, staging); err != nil {
		return 0, err
	}
	return len(buf), nil
}

package stream

import (
	"crypto/rand"
	"io"

	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/aeadstream/chacha20stream/chacha20poly1305"
	"github.com/aeadstream/chacha20stream/cursor"
	"github.com/aeadstream/chacha20stream/poly1305"
)

// TagSize is the size in bytes of a trailing Poly1305 authentication tag.
const TagSize = poly1305.TagSize

// buildCipherAndHasher constructs the StreamCipher (counter starts at 1,
// since block 0 is reserved for the Poly1305 one-time key) and, if hash is
// requested, the Poly1305 Hasher seeded with that one-time key.
func buildCipherAndHasher(key [chacha20.KeySize]byte, variant cursor.Variant, nonce []byte, hash bool) (*chacha20.StreamCipher, *poly1305.Hasher) {
	var cipher *chacha20.StreamCipher
	var chachaNonce [chacha20.NonceSize]byte

	if variant == cursor.XChaCha20 {
		var xnonce [chacha20.XNonceSize]byte
		copy(xnonce[:], nonce)
		cipher = chacha20.NewXChaCha20StreamCipher(key, xnonce, 1)
		chachaNonce = chacha20.ChaCha20NonceFromXNonce(xnonce)
	} else {
		copy(chachaNonce[:], nonce)
		cipher = chacha20.NewStreamCipher(key, chachaNonce, 1)
	}

	var hasher *poly1305.Hasher
	if hash {
		otk := chacha20poly1305.OneTimeKeyGen(key, chachaNonce)
		hasher = poly1305.NewHasher(otk)
	}
	return cipher, hasher
}

// NonceCiphertextReader reads a nonce prefix (once, lazily, on the first
// Read), then delegates to a ChaCha20ReadState for the remainder of the
// stream. If configured to hash, it can report the running Poly1305 tag
// via Finalize, for comparison against a tag carried out-of-band or read
// with TagReader.
type NonceCiphertextReader struct {
	r       io.Reader
	key     [chacha20.KeySize]byte
	variant cursor.Variant
	hash    bool

	state *ChaCha20ReadState
}

// NewNonceCiphertextReader constructs a NonceCiphertextReader.
func NewNonceCiphertextReader(r io.Reader, key [chacha20.KeySize]byte, variant cursor.Variant, hash bool) *NonceCiphertextReader {
	return &NonceCiphertextReader{r: r, key: key, variant: variant, hash: hash}
}

// ensureReady absorbs the nonce prefix on first use, constructing the
// underlying ChaCha20ReadState.
func (n *NonceCiphertextReader) ensureReady() error {
	if n.state != nil {
		return nil
	}
	nonce := make([]byte, n.variant.Size())
	if err := readFullMapEOF(n.r, nonce); err != nil {
		return err
	}
	cipher, hasher := buildCipherAndHasher(n.key, n.variant, nonce, n.hash)
	n.state = NewChaCha20ReadState(cipher, hasher)
	return nil
}

// Read absorbs the nonce prefix if this is the first call, then reads and
// decrypts ciphertext from the underlying transport.
func (n *NonceCiphertextReader) Read(buf []byte) (int, error) {
	if err := n.ensureReady(); err != nil {
		return 0, err
	}
	return n.state.Read(n.r, buf)
}

// Finalize returns the Poly1305 tag computed over the ciphertext read so
// far. It must only be called when this reader was constructed with
// hash = true.
func (n *NonceCiphertextReader) Finalize() [TagSize]byte {
	return n.state.hasher.Finalize()
}

// NonceCiphertextTagWriter writes a nonce prefix (once, before the first
// user write), then delegates to a ChaCha20WriteState. If configured to
// hash, Close computes and appends the trailing 16-byte tag before closing
// the underlying writer (if it implements io.Closer).
type NonceCiphertextTagWriter struct {
	w       io.Writer
	key     [chacha20.KeySize]byte
	variant cursor.Variant
	hash    bool

	nonce []byte
	state *ChaCha20WriteState
}

// NewNonceCiphertextTagWriter constructs a NonceCiphertextTagWriter with a
// freshly generated random nonce of the size dictated by variant.
func NewNonceCiphertextTagWriter(w io.Writer, key [chacha20.KeySize]byte, variant cursor.Variant, hash bool) (*NonceCiphertextTagWriter, error) {
	nonce := make([]byte, variant.Size())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return &NonceCiphertextTagWriter{w: w, key: key, variant: variant, hash: hash, nonce: nonce}, nil
}

// ensureReady writes the nonce prefix on first use, constructing the
// underlying ChaCha20WriteState.
func (n *NonceCiphertextTagWriter) ensureReady() error {
	if n.state != nil {
		return nil
	}
	if err := writeAll(n.w, n.nonce); err != nil {
		return err
	}
	cipher, hasher := buildCipherAndHasher(n.key, n.variant, n.nonce, n.hash)
	n.state = NewChaCha20WriteState(cipher, hasher)
	return nil
}

// Write writes the nonce prefix if this is the first call, then encrypts
// and writes buf.
func (n *NonceCiphertextTagWriter) Write(buf []byte) (int, error) {
	if err := n.ensureReady(); err != nil {
		return 0, err
	}
	return n.state.Write(n.w, buf)
}

// Close computes and writes the trailing tag (if hashing is enabled), then
// closes the underlying writer if it implements io.Closer.
func (n *NonceCiphertextTagWriter) Close() error {
	if err := n.ensureReady(); err != nil {
		return err
	}
	if n.hash {
		tag := n.state.hasher.Finalize()
		if err := writeAll(n.w, tag[:]); err != nil {
			return err
		}
	}
	if c, ok := n.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// TagReader reads exactly TagSize bytes from r and exposes them as the
// transmitted tag, for the caller to compare (in constant time) against a
// NonceCiphertextReader's Finalize() result.
type TagReader struct {
	r io.Reader
}

// NewTagReader constructs a TagReader.
func NewTagReader(r io.Reader) *TagReader {
	return &TagReader{r: r}
}

// ReadTag reads the trailing tag, mapping a short read to
// io.ErrUnexpectedEOF.
func (t *TagReader) ReadTag() ([TagSize]byte, error) {
	var tag [TagSize]byte
	if err := readFullMapEOF(t.r, tag[:]); err != nil {
		return tag, err
	}
	return tag, nil
}

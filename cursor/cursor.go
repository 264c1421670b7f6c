package cursor

import (
	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/aeadstream/chacha20stream/chacha20poly1305"
)

// NonceMapFunc optionally transforms the raw wire nonce before it is used
// to derive the Poly1305 one-time key, e.g. to differentiate tag-key
// derivation in a composite protocol that layers more than one MAC over the
// same underlying nonce.
type NonceMapFunc func(nonce []byte) []byte

// EncryptCursor is the sending-side synchronous framing cursor: it first
// emits a randomly generated nonce prefix, then encrypts user data in
// place. The NonceExchange -> UserData transition happens exactly once and
// is represented by userData becoming non-nil and readCursor being
// discarded.
type EncryptCursor struct {
	key      [chacha20.KeySize]byte
	variant  Variant
	nonceMap NonceMapFunc

	readCursor *nonceReadCursor
	userData   *userDataCursor
	rawNonce   []byte
}

// NewEncryptCursor constructs an EncryptCursor with a freshly generated
// random nonce of the size dictated by variant.
func NewEncryptCursor(key [chacha20.KeySize]byte, variant Variant, nonceMap NonceMapFunc) (*EncryptCursor, error) {
	rc, err := newNonceReadCursor(variant)
	if err != nil {
		return nil, err
	}
	return &EncryptCursor{key: key, variant: variant, nonceMap: nonceMap, readCursor: rc}, nil
}

// Encrypt copies as much of the remaining nonce as fits into to, then, once
// the nonce is fully emitted, copies and encrypts user data from "from"
// into whatever room remains in "to". It returns the number of bytes
// consumed from "from" and the total number of bytes written into "to"
// (nonce bytes plus ciphertext bytes) during this call.
func (c *EncryptCursor) Encrypt(from, to []byte) (read, written int) {
	if c.readCursor != nil {
		remaining := c.readCursor.remaining()
		n := copy(to, remaining)
		c.readCursor.consume(n)
		written += n
		to = to[n:]

		if !c.readCursor.done() {
			return 0, written
		}

		c.rawNonce = c.readCursor.nonce
		cipher := streamCipherForNonce(c.key, c.variant, c.rawNonce)
		c.userData = &userDataCursor{cipher: cipher}
		c.readCursor = nil
	}

	n := len(from)
	if len(to) < n {
		n = len(to)
	}
	copy(to[:n], from[:n])
	c.userData.xor(to[:n])
	read = n
	written += n
	return read, written
}

// Done reports whether the nonce has been fully emitted (i.e. the cursor
// has transitioned to UserData).
func (c *EncryptCursor) Done() bool {
	return c.userData != nil
}

// OneTimeKey returns the Poly1305 one-time key for this cursor's (key,
// nonce) pair. It must only be called once the nonce has been fully
// emitted (Done() == true).
func (c *EncryptCursor) OneTimeKey() [32]byte {
	nonce := c.rawNonce
	if c.nonceMap != nil {
		nonce = c.nonceMap(nonce)
	}
	return chacha20poly1305.OneTimeKeyGen(c.key, chacha20NonceForOTK(c.variant, nonce))
}

// DecryptCursor is the receiving-side synchronous framing cursor: it first
// absorbs a nonce prefix from the wire, then decrypts user data in place.
type DecryptCursor struct {
	key      [chacha20.KeySize]byte
	variant  Variant
	nonceMap NonceMapFunc

	writeCursor *nonceWriteCursor
	userData    *userDataCursor
	rawNonce    []byte
}

// NewDecryptCursor constructs a DecryptCursor awaiting a nonce of the size
// dictated by variant.
func NewDecryptCursor(key [chacha20.KeySize]byte, variant Variant, nonceMap NonceMapFunc) *DecryptCursor {
	return &DecryptCursor{key: key, variant: variant, nonceMap: nonceMap, writeCursor: newNonceWriteCursor(variant)}
}

// Decrypt absorbs as much of buf as is needed to complete the nonce, then,
// once the nonce is fully absorbed, decrypts the remainder of buf in
// place. It returns userDataStart, the offset within buf at which user
// data begins (0 once the cursor was already past the nonce on entry), and
// stillAtNonce, true if buf was exhausted before the nonce completed (in
// which case none of buf was user data).
func (c *DecryptCursor) Decrypt(buf []byte) (userDataStart int, stillAtNonce bool) {
	if c.writeCursor != nil {
		n := c.writeCursor.collectFrom(buf)

		if !c.writeCursor.done() {
			return 0, true
		}

		c.rawNonce = c.writeCursor.nonce
		cipher := streamCipherForNonce(c.key, c.variant, c.rawNonce)
		c.userData = &userDataCursor{cipher: cipher}
		c.writeCursor = nil

		rest := buf[n:]
		c.userData.xor(rest)
		return n, false
	}

	c.userData.xor(buf)
	return 0, false
}

// Done reports whether the nonce has been fully absorbed.
func (c *DecryptCursor) Done() bool {
	return c.userData != nil
}

// OneTimeKey returns the Poly1305 one-time key for this cursor's (key,
// nonce) pair. It must only be called once the nonce has been fully
// absorbed (Done() == true).
func (c *DecryptCursor) OneTimeKey() [32]byte {
	nonce := c.rawNonce
	if c.nonceMap != nil {
		nonce = c.nonceMap(nonce)
	}
	return chacha20poly1305.OneTimeKeyGen(c.key, chacha20NonceForOTK(c.variant, nonce))
}

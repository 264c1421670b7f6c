package chacha20poly1305

import "github.com/aeadstream/chacha20stream/chacha20"

// StdEncrypter encrypts a single buffer in one call, mirroring this pack's
// convention of a small stateful encrypter object whose Error field is
// checked after construction rather than a function that returns an error.
type StdEncrypter struct {
	key   [chacha20.KeySize]byte
	nonce [chacha20.NonceSize]byte
	aad   []byte
	Error error
}

// NewStdEncrypter validates key and nonce sizes and returns a StdEncrypter;
// a size mismatch is recorded on Error rather than returned, so callers
// check Error once after construction instead of at every call site.
func NewStdEncrypter(key, nonce, aad []byte) *StdEncrypter {
	e := &StdEncrypter{aad: aad}
	if len(key) != chacha20.KeySize {
		e.Error = KeySizeError(len(key))
		return e
	}
	if len(nonce) != chacha20.NonceSize {
		e.Error = InvalidNonceSizeError{Size: len(nonce)}
		return e
	}
	copy(e.key[:], key)
	copy(e.nonce[:], nonce)
	return e
}

// Encrypt seals src, returning ciphertext‖tag.
func (e *StdEncrypter) Encrypt(src []byte) (dst []byte, err error) {
	if e.Error != nil {
		return nil, e.Error
	}
	return Seal(e.key, e.nonce, src, e.aad), nil
}

// StdDecrypter opens a single ciphertext‖tag buffer in one call.
type StdDecrypter struct {
	key   [chacha20.KeySize]byte
	nonce [chacha20.NonceSize]byte
	aad   []byte
	Error error
}

// NewStdDecrypter validates key and nonce sizes and returns a StdDecrypter.
func NewStdDecrypter(key, nonce, aad []byte) *StdDecrypter {
	d := &StdDecrypter{aad: aad}
	if len(key) != chacha20.KeySize {
		d.Error = KeySizeError(len(key))
		return d
	}
	if len(nonce) != chacha20.NonceSize {
		d.Error = InvalidNonceSizeError{Size: len(nonce)}
		return d
	}
	copy(d.key[:], key)
	copy(d.nonce[:], nonce)
	return d
}

// Decrypt opens src (ciphertext‖tag), returning the plaintext.
func (d *StdDecrypter) Decrypt(src []byte) (dst []byte, err error) {
	if d.Error != nil {
		return nil, d.Error
	}
	return Open(d.key, d.nonce, src, d.aad)
}

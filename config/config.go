// Package config normalizes an arbitrary-length user-supplied key into the
// fixed 32-byte cipher key the chacha20/chacha20poly1305/cursor/stream
// packages require, by hashing it with BLAKE3.
package config

import (
	"encoding/base64"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/aeadstream/chacha20stream/utils"
)

// KeySize is the size in bytes of a normalized cipher key.
const KeySize = 32

// Config holds a normalized, immutable 32-byte cipher key.
type Config struct {
	key [KeySize]byte
}

// New hashes an arbitrary-length raw key with BLAKE3 and returns the
// resulting Config. The raw key need not be any particular length.
func New(rawKey []byte) Config {
	h := blake3.New()
	_, _ = h.Write(rawKey)
	var key [KeySize]byte
	copy(key[:], h.Sum(nil))
	return Config{key: key}
}

// Key returns the normalized 32-byte cipher key.
func (c Config) Key() [KeySize]byte {
	return c.key
}

// NewFromString hashes a string key without copying it to a byte slice
// first, for the common case of a passphrase held as a string.
func NewFromString(rawKey string) Config {
	return New(utils.String2Bytes(rawKey))
}

// DecodeError is returned by NewFromBase64 when the supplied string is not
// valid unpadded standard base64.
type DecodeError struct {
	Key string
	Err error
}

// Error returns a formatted error message naming both the underlying
// decode error and the offending key string.
func (e DecodeError) Error() string {
	return fmt.Sprintf("config: %v, key = `%s`", e.Err, e.Key)
}

// NewFromBase64 decodes an unpadded standard-base64 key string and
// normalizes it into a Config, mirroring the reference ConfigBuilder.
func NewFromBase64(encoded string) (Config, error) {
	raw, err := base64.RawStdEncoding.DecodeString(encoded)
	if err != nil {
		return Config{}, DecodeError{Key: encoded, Err: err}
	}
	return New(raw), nil
}

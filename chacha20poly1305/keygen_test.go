package chacha20poly1305

import (
	"encoding/hex"
	"testing"

	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/stretchr/testify/assert"
)

func TestOneTimeKeyGenRFC8439(t *testing.T) {
	var key [chacha20.KeySize]byte
	for i := range key {
		key[i] = byte(0x80 + i)
	}
	nonce := [chacha20.NonceSize]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}

	want, err := hex.DecodeString("8ad5a08b905f81cc815040274ab29471a833b637e3fd0da508dbb8e2fdd1a646")
	assert.Nil(t, err)

	otk := OneTimeKeyGen(key, nonce)
	assert.Equal(t, want, otk[:])
}

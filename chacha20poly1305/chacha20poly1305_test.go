package chacha20poly1305

import (
	"testing"

	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/stretchr/testify/assert"
)

func testKeyNonce() ([chacha20.KeySize]byte, [chacha20.NonceSize]byte) {
	var key [chacha20.KeySize]byte
	var nonce [chacha20.NonceSize]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(i + 1)
	}
	return key, nonce
}

func TestSealOpenRoundtrip(t *testing.T) {
	key, nonce := testKeyNonce()
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("header")

	sealed := Seal(key, nonce, plaintext, aad)
	opened, err := Open(key, nonce, sealed, aad)
	assert.Nil(t, err)
	assert.Equal(t, plaintext, opened)
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key, nonce := testKeyNonce()
	sealed := Seal(key, nonce, []byte("payload"), nil)
	sealed[0] ^= 0xff

	_, err := Open(key, nonce, sealed, nil)
	assert.Equal(t, AuthenticationError{}, err)
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	key, nonce := testKeyNonce()
	sealed := Seal(key, nonce, []byte("payload"), []byte("aad-a"))

	_, err := Open(key, nonce, sealed, []byte("aad-b"))
	assert.Equal(t, AuthenticationError{}, err)
}

func TestStdEncrypterDecrypterRoundtrip(t *testing.T) {
	key := make([]byte, chacha20.KeySize)
	nonce := make([]byte, chacha20.NonceSize)
	for i := range key {
		key[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(i + 1)
	}

	enc := NewStdEncrypter(key, nonce, []byte("aad"))
	assert.Nil(t, enc.Error)
	sealed, err := enc.Encrypt([]byte("hello, world"))
	assert.Nil(t, err)

	dec := NewStdDecrypter(key, nonce, []byte("aad"))
	assert.Nil(t, dec.Error)
	plaintext, err := dec.Decrypt(sealed)
	assert.Nil(t, err)
	assert.Equal(t, []byte("hello, world"), plaintext)
}

func TestStdEncrypterRejectsBadKeySize(t *testing.T) {
	enc := NewStdEncrypter(make([]byte, 10), make([]byte, chacha20.NonceSize), nil)
	assert.NotNil(t, enc.Error)
	_, err := enc.Encrypt([]byte("x"))
	assert.NotNil(t, err)
}

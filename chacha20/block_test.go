package chacha20

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	assert.Nil(t, err)
	return b
}

func TestQuarterRound(t *testing.T) {
	a, b, c, d := QuarterRound(0x11111111, 0x01020304, 0x9b8d6f43, 0x01234567)
	assert.Equal(t, uint32(0xea2a92f4), a)
	assert.Equal(t, uint32(0xcb1cf8ce), b)
	assert.Equal(t, uint32(0x4581472e), c)
	assert.Equal(t, uint32(0x5881c4bb), d)
}

func TestBlockFunction(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce := [NonceSize]byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}

	state := NewBlock(key, nonce, 1)

	// RFC 8439 2.3.2: the initial state before the 20 rounds.
	assert.Equal(t, uint32(0x61707865), state[0])
	assert.Equal(t, uint32(0x3320646e), state[1])
	assert.Equal(t, uint32(0x00000001), state[12])
	assert.Equal(t, uint32(0x09000000), state[13])

	block := state.Generate()
	var words [16]uint32
	for i := range words {
		words[i] = uint32(block[i*4]) | uint32(block[i*4+1])<<8 | uint32(block[i*4+2])<<16 | uint32(block[i*4+3])<<24
	}
	assert.Equal(t, uint32(0xe4e7f110), words[0])
	assert.Equal(t, uint32(0x4e3c50a2), words[15])
}

func TestStreamEncryptionRFC8439(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce := [NonceSize]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

	wantStart := mustHex(t, "6e2e359a2568f98041ba0728dd0d6981")
	wantEnd := mustHex(t, "874d")

	t.Run("one call", func(t *testing.T) {
		buf := append([]byte(nil), plaintext...)
		NewStreamCipher(key, nonce, 1).Encrypt(buf)
		assert.Equal(t, wantStart, buf[:len(wantStart)])
		assert.Equal(t, wantEnd, buf[len(buf)-len(wantEnd):])
	})

	t.Run("split at 1", func(t *testing.T) {
		buf := append([]byte(nil), plaintext...)
		c := NewStreamCipher(key, nonce, 1)
		c.Encrypt(buf[:1])
		c.Encrypt(buf[1:])
		assert.Equal(t, wantStart, buf[:len(wantStart)])
		assert.Equal(t, wantEnd, buf[len(buf)-len(wantEnd):])
	})

	t.Run("split at 64", func(t *testing.T) {
		buf := append([]byte(nil), plaintext...)
		c := NewStreamCipher(key, nonce, 1)
		c.Encrypt(buf[:64])
		c.Encrypt(buf[64:])
		assert.Equal(t, wantStart, buf[:len(wantStart)])
		assert.Equal(t, wantEnd, buf[len(buf)-len(wantEnd):])
	})
}

func TestHChaCha20RFC7539bis(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	input := [16]byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00, 0x31, 0x41, 0x59, 0x27}

	subkey := HChaCha20(key, input)
	want := mustHex(t, "82413b4227b27bfed30e42508a877d73a0f9e4d58a74a853c12ec41326d3ecdc")
	assert.Equal(t, want, subkey[:])
}

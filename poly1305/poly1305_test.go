package poly1305

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func hexKey(t *testing.T, s string) [KeySize]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	assert.Nil(t, err)
	var k [KeySize]byte
	copy(k[:], b)
	return k
}

func TestMACRFC8439(t *testing.T) {
	key := hexKey(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	msg := []byte("Cryptographic Forum Research Group")

	want, err := hex.DecodeString("a8061dc1305136c6c22b8baf0c0127a9")
	assert.Nil(t, err)

	tag := MAC(key, msg)
	assert.Equal(t, want, tag[:])
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	key := hexKey(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	msg := []byte("Cryptographic Forum Research Group")

	oneShot := MAC(key, msg)

	h := NewHasher(key)
	_, _ = h.Write(msg[:10])
	_, _ = h.Write(msg[10:])
	incremental := h.Finalize()

	assert.Equal(t, oneShot, incremental)
}

func TestHashAssociativity(t *testing.T) {
	key := hexKey(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	a := []byte("hello, ")
	b := []byte("world! this spans more than one Poly1305 block boundary")

	h1 := NewHasher(key)
	_, _ = h1.Write(a)
	_, _ = h1.Write(b)
	tag1 := h1.Finalize()

	h2 := NewHasher(key)
	_, _ = h2.Write(append(append([]byte(nil), a...), b...))
	tag2 := h2.Finalize()

	assert.Equal(t, tag1, tag2)
}

func TestByteAtATimeMatchesOneShot(t *testing.T) {
	key := hexKey(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	msg := []byte("Cryptographic Forum Research Group, with extra padding to cross several 16-byte blocks")

	oneShot := MAC(key, msg)

	h := NewHasher(key)
	for i := range msg {
		_, _ = h.Write(msg[i : i+1])
	}
	assert.Equal(t, oneShot, h.Finalize())
}

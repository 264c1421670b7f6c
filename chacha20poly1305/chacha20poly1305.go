package chacha20poly1305

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/aeadstream/chacha20stream/poly1305"
)

// Overhead is the size in bytes of the authentication tag appended by Seal.
const Overhead = poly1305.TagSize

// Seal encrypts and authenticates plaintext, authenticates additionalData,
// and returns ciphertext‖tag, following the RFC 8439 2.8 AEAD construction
// (Poly1305 over zero-padded AAD, zero-padded ciphertext, and little-endian
// 64-bit length fields for each).
func Seal(key [chacha20.KeySize]byte, nonce [chacha20.NonceSize]byte, plaintext, additionalData []byte) []byte {
	otk := OneTimeKeyGen(key, nonce)

	ciphertext := append([]byte(nil), plaintext...)
	chacha20.NewStreamCipher(key, nonce, 1).Encrypt(ciphertext)

	tag := computeTag(otk, additionalData, ciphertext)

	out := make([]byte, 0, len(ciphertext)+Overhead)
	out = append(out, ciphertext...)
	out = append(out, tag[:]...)
	return out
}

// Open authenticates additionalData and the ciphertext (which must include
// the trailing tag), and if successful returns the decrypted plaintext. If
// authentication fails, it returns an AuthenticationError and the returned
// slice is nil; no partial plaintext is handed back in that case.
func Open(key [chacha20.KeySize]byte, nonce [chacha20.NonceSize]byte, ciphertextAndTag, additionalData []byte) ([]byte, error) {
	if len(ciphertextAndTag) < Overhead {
		return nil, AuthenticationError{}
	}
	ciphertext := ciphertextAndTag[:len(ciphertextAndTag)-Overhead]
	wantTag := ciphertextAndTag[len(ciphertextAndTag)-Overhead:]

	otk := OneTimeKeyGen(key, nonce)
	gotTag := computeTag(otk, additionalData, ciphertext)

	if subtle.ConstantTimeCompare(gotTag[:], wantTag) != 1 {
		return nil, AuthenticationError{}
	}

	plaintext := append([]byte(nil), ciphertext...)
	chacha20.NewStreamCipher(key, nonce, 1).Encrypt(plaintext)
	return plaintext, nil
}

// computeTag runs RFC 8439 2.8's Poly1305 input construction:
// aad ‖ pad16(aad) ‖ ciphertext ‖ pad16(ciphertext) ‖ len(aad) ‖ len(ciphertext)
// with the two length fields little-endian uint64.
func computeTag(otk [32]byte, aad, ciphertext []byte) [poly1305.TagSize]byte {
	h := poly1305.NewHasher(otk)

	_, _ = h.Write(aad)
	_, _ = h.Write(pad16(len(aad)))
	_, _ = h.Write(ciphertext)
	_, _ = h.Write(pad16(len(ciphertext)))

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:8], uint64(len(aad)))
	binary.LittleEndian.PutUint64(lengths[8:16], uint64(len(ciphertext)))
	_, _ = h.Write(lengths[:])

	return h.Finalize()
}

// pad16 returns the zero padding needed to bring n bytes up to a multiple
// of 16 (an empty slice if n is already block-aligned).
func pad16(n int) []byte {
	rem := n % 16
	if rem == 0 {
		return nil
	}
	return make([]byte, 16-rem)
}

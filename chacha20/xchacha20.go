package chacha20

import "encoding/binary"

// XNonceSize is the size in bytes of the extended XChaCha20 nonce.
const XNonceSize = 24

// HChaCha20 derives a 32-byte subkey from a key and a 16-byte input, used to
// build XChaCha20's extended-nonce construction. Unlike a full ChaCha20
// block, the working state is NOT added back into the initial state after
// the 20 rounds; the subkey is words 0-3 and 12-15 of the permuted state.
func HChaCha20(key [KeySize]byte, input [16]byte) [KeySize]byte {
	var counter uint32 = binary.LittleEndian.Uint32(input[0:4])
	var nonce [NonceSize]byte
	copy(nonce[:], input[4:16])

	state := NewBlock(key, nonce, counter)
	state.innerBlock()

	var subkey [KeySize]byte
	binary.LittleEndian.PutUint32(subkey[0:4], state[0])
	binary.LittleEndian.PutUint32(subkey[4:8], state[1])
	binary.LittleEndian.PutUint32(subkey[8:12], state[2])
	binary.LittleEndian.PutUint32(subkey[12:16], state[3])
	binary.LittleEndian.PutUint32(subkey[16:20], state[12])
	binary.LittleEndian.PutUint32(subkey[20:24], state[13])
	binary.LittleEndian.PutUint32(subkey[24:28], state[14])
	binary.LittleEndian.PutUint32(subkey[28:32], state[15])
	return subkey
}

// ChaCha20NonceFromXNonce derives the inner 12-byte ChaCha20 nonce used by
// XChaCha20 from the trailing 8 bytes of the 24-byte extended nonce: four
// zero bytes followed by nonce[16:24].
func ChaCha20NonceFromXNonce(xnonce [XNonceSize]byte) [NonceSize]byte {
	var nonce [NonceSize]byte
	copy(nonce[4:], xnonce[16:24])
	return nonce
}

// NewXChaCha20StreamCipher constructs a StreamCipher for the XChaCha20
// extended-nonce construction: the subkey is derived via HChaCha20 over the
// first 16 bytes of the extended nonce, and the inner ChaCha20 nonce is
// built from its last 8 bytes.
func NewXChaCha20StreamCipher(key [KeySize]byte, xnonce [XNonceSize]byte, counter uint32) *StreamCipher {
	var hnonce [16]byte
	copy(hnonce[:], xnonce[0:16])
	subkey := HChaCha20(key, hnonce)
	nonce := ChaCha20NonceFromXNonce(xnonce)
	return NewStreamCipher(subkey, nonce, counter)
}

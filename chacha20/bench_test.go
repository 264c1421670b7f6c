package chacha20

import "testing"

func benchmarkEncrypt(b *testing.B, size int) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(i)
	}
	buf := make([]byte, size)
	b.SetBytes(int64(size))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewStreamCipher(key, nonce, 0).Encrypt(buf)
	}
}

func BenchmarkEncrypt64B(b *testing.B) {
	benchmarkEncrypt(b, 64)
}

func BenchmarkEncrypt4KiB(b *testing.B) {
	benchmarkEncrypt(b, 4*1024)
}

func BenchmarkEncrypt1MiB(b *testing.B) {
	benchmarkEncrypt(b, 1024*1024)
}

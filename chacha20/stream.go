package chacha20

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelBlockThreshold is the number of full 64-byte blocks a single
// Encrypt call must touch before the keystream generation for those blocks
// is fanned out across a worker pool. Below the threshold, dispatch cost
// dominates the savings, so the serial path is faster.
var ParallelBlockThreshold = 320

// StreamCipher XORs plaintext/ciphertext against the ChaCha20 keystream
// derived from a fixed key and nonce, carrying a counter and any unused
// keystream bytes ("leftover") across calls so that splitting a buffer into
// arbitrary consecutive slices and encrypting them in order yields the same
// result as encrypting the whole buffer at once.
type StreamCipher struct {
	key     [KeySize]byte
	nonce   [NonceSize]byte
	counter uint32

	leftover       [BlockSize]byte
	leftoverOffset int // valid range [0, BlockSize); BlockSize means "no leftover"
}

// NewStreamCipher constructs a StreamCipher starting at the given counter.
func NewStreamCipher(key [KeySize]byte, nonce [NonceSize]byte, counter uint32) *StreamCipher {
	return &StreamCipher{
		key:            key,
		nonce:          nonce,
		counter:        counter,
		leftoverOffset: BlockSize,
	}
}

// Encrypt XORs buf in place with the next len(buf) keystream bytes.
func (c *StreamCipher) Encrypt(buf []byte) {
	// Step 1: consume any leftover keystream from a previous partial block.
	if c.leftoverOffset < BlockSize {
		avail := BlockSize - c.leftoverOffset
		k := len(buf)
		if k > avail {
			k = avail
		}
		xorInto(buf[:k], c.leftover[c.leftoverOffset:c.leftoverOffset+k])
		c.leftoverOffset += k
		buf = buf[k:]
		if len(buf) == 0 {
			return
		}
	}

	fullBlocks := len(buf) / BlockSize
	tailLen := len(buf) % BlockSize

	if fullBlocks > 0 {
		if fullBlocks > ParallelBlockThreshold {
			c.encryptBlocksParallel(buf[:fullBlocks*BlockSize], fullBlocks)
		} else {
			c.encryptBlocksSerial(buf[:fullBlocks*BlockSize], fullBlocks)
		}
	}

	// Counter advances by the number of 64-byte chunks touched from this
	// point on, counting a trailing partial chunk as one full increment.
	chunksTouched := fullBlocks
	if tailLen > 0 {
		chunksTouched++
	}

	if tailLen > 0 {
		tail := buf[fullBlocks*BlockSize:]
		block := NewBlock(c.key, c.nonce, c.counter+uint32(fullBlocks)).Generate()
		xorInto(tail, block[:tailLen])
		c.leftover = block
		c.leftoverOffset = tailLen
	}

	c.counter += uint32(chunksTouched)
}

// encryptBlocksSerial XORs fullBlocks worth of keystream into buf on the
// calling goroutine.
func (c *StreamCipher) encryptBlocksSerial(buf []byte, fullBlocks int) {
	for i := 0; i < fullBlocks; i++ {
		block := NewBlock(c.key, c.nonce, c.counter+uint32(i)).Generate()
		xorInto(buf[i*BlockSize:(i+1)*BlockSize], block[:])
	}
}

// encryptBlocksParallel is the same operation as encryptBlocksSerial but
// fans the per-block keystream generation out across a worker pool, since
// each block's keystream depends only on (key, nonce, counter+i) and the
// blocks may therefore be computed and XORed in any order.
func (c *StreamCipher) encryptBlocksParallel(buf []byte, fullBlocks int) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < fullBlocks; i++ {
		i := i
		g.Go(func() error {
			block := NewBlock(c.key, c.nonce, c.counter+uint32(i)).Generate()
			xorInto(buf[i*BlockSize:(i+1)*BlockSize], block[:])
			return nil
		})
	}
	_ = g.Wait() // the worker functions never return an error
}

// xorInto XORs src into dst in place; len(dst) bytes are consumed from src.
func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

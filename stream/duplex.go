package stream

import (
	"errors"
	"io"

	"github.com/aeadstream/chacha20stream/chacha20"
	"github.com/aeadstream/chacha20stream/config"
	"github.com/aeadstream/chacha20stream/cursor"
)

// DuplexStream is a passive join of an independent read half and write
// half: each method simply forwards to the corresponding half. There is no
// cross-half state, so the two halves may be driven from different
// goroutines.
type DuplexStream struct {
	R io.Reader
	W io.Writer
}

// NewDuplexStream joins r and w into a single io.ReadWriter.
func NewDuplexStream(r io.Reader, w io.Writer) *DuplexStream {
	return &DuplexStream{R: r, W: w}
}

// Read forwards to the read half.
func (d *DuplexStream) Read(buf []byte) (int, error) {
	return d.R.Read(buf)
}

// Write forwards to the write half.
func (d *DuplexStream) Write(buf []byte) (int, error) {
	return d.W.Write(buf)
}

// Close closes the write half if it is a Closer, then the read half if it
// is a Closer. Errors from either are joined; a nil Close on one half
// does not suppress an error from the other.
func (d *DuplexStream) Close() error {
	var werr, rerr error
	if c, ok := d.W.(io.Closer); ok {
		werr = c.Close()
	}
	if c, ok := d.R.(io.Closer); ok {
		rerr = c.Close()
	}
	return errors.Join(werr, rerr)
}

// WholeStream is a DuplexStream whose halves are a NonceCiphertextReader
// and a NonceCiphertextTagWriter, i.e. a full authenticated-streaming
// connection built directly from a transport and a key.
type WholeStream struct {
	*DuplexStream
	Reader *NonceCiphertextReader
	Writer *NonceCiphertextTagWriter
}

// NewWholeStream builds a WholeStream over rw using the same key for both
// directions (each direction still gets its own independently random
// nonce, so this is safe).
func NewWholeStream(rw io.ReadWriter, key config.Config, variant cursor.Variant, hash bool) (*WholeStream, error) {
	return WholeStreamFromKeyHalves(rw, rw, key, key, variant, hash)
}

// WholeStreamFromKeyHalves builds a WholeStream from independent read and
// write keys, e.g. when the two directions of a connection are preshared
// with different secrets; variant selects the nonce size (12-byte ChaCha20
// or 24-byte XChaCha20) for both directions.
func WholeStreamFromKeyHalves(r io.Reader, w io.Writer, readKey, writeKey config.Config, variant cursor.Variant, hash bool) (*WholeStream, error) {
	var keyBytes [chacha20.KeySize]byte

	keyBytes = readKey.Key()
	reader := NewNonceCiphertextReader(r, keyBytes, variant, hash)

	keyBytes = writeKey.Key()
	writer, err := NewNonceCiphertextTagWriter(w, keyBytes, variant, hash)
	if err != nil {
		return nil, err
	}

	return &WholeStream{
		DuplexStream: NewDuplexStream(reader, writer),
		Reader:       reader,
		Writer:       writer,
	}, nil
}

// WholeStreamFromKeyHalvesX is WholeStreamFromKeyHalves pinned to the
// 24-byte XChaCha20 extended-nonce variant.
func WholeStreamFromKeyHalvesX(r io.Reader, w io.Writer, readKey, writeKey config.Config, hash bool) (*WholeStream, error) {
	return WholeStreamFromKeyHalves(r, w, readKey, writeKey, cursor.XChaCha20, hash)
}

package stream

import "fmt"

// WriteError represents a zero-progress or failing write to the underlying
// transport; it signals a saturated or broken sink and is fatal for the
// stream.
type WriteError struct {
	Err error
}

// Error returns a formatted error message describing the write failure.
func (e WriteError) Error() string {
	return fmt.Sprintf("stream: failed to write: %v", e.Err)
}

// ReadError represents a failing read from the underlying transport.
type ReadError struct {
	Err error
}

// Error returns a formatted error message describing the read failure.
func (e ReadError) Error() string {
	return fmt.Sprintf("stream: failed to read: %v", e.Err)
}

// AuthenticationError indicates that a received tag did not match the tag
// computed over the decrypted stream. Plaintext already produced MUST be
// discarded by the caller; the stream cannot be safely resumed.
type AuthenticationError struct{}

// Error returns a formatted error message describing the authentication failure.
func (e AuthenticationError) Error() string {
	return "stream: message authentication failed"
}

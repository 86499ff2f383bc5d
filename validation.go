package enigmatrix

import "fmt"

// Input validation helpers for defensive programming at API boundaries.

// ValidateBuffer checks that a buffer is non-nil and at least minSize bytes.
func ValidateBuffer(buf []byte, name string, minSize int) error {
	if buf == nil {
		return &InvalidKeyError{Field: name, Message: "buffer cannot be nil"}
	}
	if minSize > 0 && len(buf) < minSize {
		return &InvalidKeyError{
			Field:   name,
			Value:   len(buf),
			Message: fmt.Sprintf("buffer too small: got %d bytes, need at least %d bytes", len(buf), minSize),
		}
	}
	return nil
}

// ValidateOffset checks that a file offset is non-negative.
func ValidateOffset(offset int64, name string) error {
	if offset < 0 {
		return &InvalidKeyError{Field: name, Value: offset, Message: "offset cannot be negative"}
	}
	return nil
}

// ValidatePassphrase enforces MinKeyLen on a raw passphrase.
func ValidatePassphrase(passphrase []byte) error {
	if len(passphrase) < MinKeyLen {
		return &InvalidKeyError{
			Field:   "passphrase",
			Value:   len(passphrase),
			Message: fmt.Sprintf("passphrase too short: got %d bytes, need at least %d", len(passphrase), MinKeyLen),
		}
	}
	return nil
}

// ValidateBlock checks that buf is exactly BlockSize bytes.
func ValidateBlock(buf []byte) error {
	if len(buf) != BlockSize {
		return NewShapeError("block", len(buf), BlockSize)
	}
	return nil
}

// ValidateCores checks that a requested worker count is sane, returning a
// corrected value when cores == 0 (mirrors the teacher's "0 means
// runtime.NumCPU()" convention).
func ValidateCores(cores int) (int, error) {
	if cores < 0 {
		return 0, &InvalidKeyError{Field: "cores", Value: cores, Message: "cores cannot be negative"}
	}
	if cores == 0 {
		return DefaultPipelineConfig().Cores, nil
	}
	return cores, nil
}

// ValidateBlockIndex checks that index is within [0, maxIndex].
func ValidateBlockIndex(index, maxIndex int64, context string) error {
	if index < 0 || index > maxIndex {
		return &InvalidKeyError{
			Field:   "block_index",
			Value:   index,
			Message: fmt.Sprintf("%s: block index %d exceeds maximum %d", context, index, maxIndex),
		}
	}
	return nil
}

// ValidateFilePath checks that a file path is not empty.
func ValidateFilePath(path string) error {
	if path == "" {
		return &InvalidKeyError{Field: "path", Message: "file path cannot be empty"}
	}
	return nil
}

// ValidateReadWrite checks common preconditions for positioned read/write.
func ValidateReadWrite(buf []byte, position int64) error {
	if buf == nil {
		return ErrNilBuffer
	}
	if position < 0 {
		return ErrNegativeOffset
	}
	return nil
}

package enigmatrix

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Header is the fixed on-disk container header: an RSA flag, an optional
// length-prefixed RSA-wrapped passphrase, and the last block's original
// (pre-padding) size. Grounded on the teacher's FileHeader
// WriteTo/ReadFrom idiom (bytes.Buffer-free here since the header is
// small and fully known up front).
//
// The two size fields are written little-endian. The reference tool
// packs them with Python's native-endian struct "I"/"Q" words, which
// spec.md leaves as an implementation choice for non-Python
// implementations to fix and document; little-endian is chosen here to
// match the teacher's exclusive use of binary.LittleEndian.
//
// OpID is a random, non-cryptographic identifier stamped into every
// header purely for log/diagnostic correlation — it plays no role in key
// derivation or the cipher. ReadHeader leaves it as the zero UUID only
// when the stream ends before the 16 trailer bytes; on a header without
// the trailer that is followed by ciphertext, the next 16 bytes are read
// as the OpID and Size() still counts them.
type Header struct {
	RSAFlag       bool
	WrappedKey    []byte
	LastBlockSize int64
	OpID          uuid.UUID
}

// Size returns the header's on-disk size in bytes, including the op-id
// trailer.
func (h *Header) Size() int {
	n := 1 + 8 + 16
	if h.RSAFlag {
		n += 4 + len(h.WrappedKey)
	}
	return n
}

// WriteHeader writes a new container header. Pass a non-nil wrappedKey to
// set the RSA flag and embed the wrapped passphrase.
func WriteHeader(w io.Writer, wrappedKey []byte, lastBlockSize int64) (*Header, error) {
	h := &Header{
		RSAFlag:       wrappedKey != nil,
		WrappedKey:    wrappedKey,
		LastBlockSize: lastBlockSize,
		OpID:          uuid.New(),
	}

	var flag uint8
	if h.RSAFlag {
		flag = 1
	}
	if err := binary.Write(w, binary.LittleEndian, flag); err != nil {
		return nil, NewIOError("write", "", err)
	}

	if h.RSAFlag {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(wrappedKey))); err != nil {
			return nil, NewIOError("write", "", err)
		}
		if _, err := w.Write(wrappedKey); err != nil {
			return nil, NewIOError("write", "", err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(lastBlockSize)); err != nil {
		return nil, NewIOError("write", "", err)
	}

	opIDBytes, _ := h.OpID.MarshalBinary()
	if _, err := w.Write(opIDBytes); err != nil {
		return nil, NewIOError("write", "", err)
	}

	return h, nil
}

// ReadHeader reads and validates a container header from r.
func ReadHeader(r io.Reader) (*Header, error) {
	var flag uint8
	if err := binary.Read(r, binary.LittleEndian, &flag); err != nil {
		return nil, NewNotEncryptedError("", "file is too short to contain a header")
	}
	if flag != 0 && flag != 1 {
		return nil, NewNotEncryptedError("", fmt.Sprintf("unrecognized header byte 0x%02x", flag))
	}

	h := &Header{RSAFlag: flag == 1}

	if h.RSAFlag {
		var keySize uint32
		if err := binary.Read(r, binary.LittleEndian, &keySize); err != nil {
			return nil, NewIOError("read", "", err)
		}
		h.WrappedKey = make([]byte, keySize)
		if _, err := io.ReadFull(r, h.WrappedKey); err != nil {
			return nil, NewIOError("read", "", err)
		}
	}

	var lcs uint64
	if err := binary.Read(r, binary.LittleEndian, &lcs); err != nil {
		return nil, NewIOError("read", "", err)
	}
	h.LastBlockSize = int64(lcs)

	var opIDBytes [16]byte
	if _, err := io.ReadFull(r, opIDBytes[:]); err == nil {
		_ = h.OpID.UnmarshalBinary(opIDBytes[:])
	}
	// A short read here means an older header with no op-id trailer;
	// OpID is simply left as the zero UUID.

	return h, nil
}

// IsEncryptedHeader reports whether firstByte is a recognized container
// leading byte (the RSA flag), mirroring utils.check_encrypted's
// first-byte sniff so callers can fail fast with NotEncryptedError
// before attempting a full header parse.
func IsEncryptedHeader(firstByte byte) bool {
	return firstByte == 0 || firstByte == 1
}

// EstimateEncryptedSize rounds plaintextSize up to the next whole
// BlockSize boundary, the way utils.estimate_encrypted_size does,
// excluding header overhead (callers that need an exact allocation size
// should add Header{}.Size() for their RSA mode).
func EstimateEncryptedSize(plaintextSize int64) int64 {
	remainder := plaintextSize % BlockSize
	if remainder == 0 {
		return plaintextSize
	}
	return plaintextSize + (BlockSize - remainder)
}

package enigmatrix

import (
	"crypto/sha512"
	"encoding/binary"
	"hash"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// hashAlgorithms mirrors key_utils.algorithms from the reference
// implementation: the set of hash constructors ExpandSubkey is allowed to
// use. Only "sha512" is exercised by DeriveSubkey's current call path —
// "blake2b" is kept addressable for hosts replaying subkey streams
// produced by the legacy sequential expansion this package intentionally
// does not reproduce.
var hashAlgorithms = map[string]func() hash.Hash{
	"sha512":  sha512.New,
	"blake2b": newBlake2b512,
}

func newBlake2b512() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		// blake2b.New512 with a nil key never errors.
		panic(err)
	}
	return h
}

// PrimaryHash is SHA-512 of the raw passphrase bytes.
func PrimaryHash(passphrase []byte) []byte {
	sum := sha512.Sum512(passphrase)
	return sum[:]
}

// ExtractPRNGSeeds splits a 64-byte primary hash into four 16-byte
// quarters and XORs the first against the third, and the second against
// the fourth, yielding the two schedule-planner seeds.
func ExtractPRNGSeeds(primaryHash []byte) (seed1, seed2 *big.Int) {
	half := len(primaryHash) / 2
	quarter := half / 2

	part1 := new(big.Int).SetBytes(primaryHash[:quarter])
	part2 := new(big.Int).SetBytes(primaryHash[quarter:half])
	part3 := new(big.Int).SetBytes(primaryHash[half : half+quarter])
	part4 := new(big.Int).SetBytes(primaryHash[half+quarter:])

	seed1 = new(big.Int).Xor(part1, part3)
	seed2 = new(big.Int).Xor(part2, part4)
	return seed1, seed2
}

// ExpandSubkey expands initialSeed into a full BlockSize subkey using an
// XOR-feedback hash chain: H(0) = hash(seed), H(n) = hash(H(n-1)),
// and each output block is H(n) XOR H(n-1).
func ExpandSubkey(initialSeed []byte, algName string) []byte {
	newHash, ok := hashAlgorithms[algName]
	if !ok {
		newHash = sha512.New
	}

	h := newHash()
	h.Write(initialSeed)
	prev := h.Sum(nil)

	expanded := make([]byte, 0, BlockSize+len(prev))
	for len(expanded) < BlockSize {
		h = newHash()
		h.Write(prev)
		next := h.Sum(nil)

		xored := make([]byte, len(prev))
		for i := range xored {
			xored[i] = prev[i] ^ next[i]
		}
		expanded = append(expanded, xored...)
		prev = next
	}
	return expanded[:BlockSize]
}

// DeriveSubkey produces the deterministic subkey for block blockIndex.
// It is a pure function of the primary hash, the passphrase, and the
// block index — unlike the reference implementation's stateful,
// alternating-algorithm generator (key_expansion_stream), which this
// package deliberately does not reproduce: a pure per-block derivation
// lets blocks be generated independently and out of order, which the
// bounded-parallel pipeline requires.
func DeriveSubkey(primaryHash, passphrase []byte, blockIndex int64) []byte {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(blockIndex))

	h := sha512.New()
	h.Write(primaryHash)
	h.Write(passphrase)
	h.Write(idx[:])
	seed := h.Sum(nil)

	initial := make([]byte, 0, len(seed)+len(passphrase))
	initial = append(initial, seed...)
	initial = append(initial, passphrase...)

	return ExpandSubkey(initial, "sha512")
}

package enigmatrix

import (
	"bytes"
	"math/big"
	"testing"
)

func randomBlock(seed int64) []byte {
	g := newMT19937(big.NewInt(seed))
	buf := make([]byte, BlockSize)
	for i := 0; i < BlockSize; i += 4 {
		v := g.genrandUint32()
		buf[i] = byte(v)
		if i+1 < BlockSize {
			buf[i+1] = byte(v >> 8)
		}
		if i+2 < BlockSize {
			buf[i+2] = byte(v >> 16)
		}
		if i+3 < BlockSize {
			buf[i+3] = byte(v >> 24)
		}
	}
	return buf
}

func TestEncryptDecryptBlockRoundTrip(t *testing.T) {
	primaryHash := PrimaryHash([]byte("round trip passphrase"))
	seed1, seed2 := ExtractPRNGSeeds(primaryHash)
	sched := PlanSchedule(seed1, seed2)

	plainBytes := randomBlock(42)
	subkeyBytes := DeriveSubkey(primaryHash, []byte("round trip passphrase"), 0)

	block, err := NewMatrix(plainBytes)
	if err != nil {
		t.Fatal(err)
	}
	subkey, err := NewMatrix(subkeyBytes)
	if err != nil {
		t.Fatal(err)
	}

	cipher := EncryptBlock(sched, block, subkey)
	if bytes.Equal(cipher.Bytes(), plainBytes) {
		t.Fatal("ciphertext should not equal plaintext")
	}

	recovered := DecryptBlock(sched, cipher, subkey)
	if !bytes.Equal(recovered.Bytes(), plainBytes) {
		t.Fatal("DecryptBlock(EncryptBlock(x)) != x")
	}
}

func TestEncryptDecryptBlockRoundTripMultipleBlockIndices(t *testing.T) {
	passphrase := []byte("another round trip passphrase")
	primaryHash := PrimaryHash(passphrase)
	seed1, seed2 := ExtractPRNGSeeds(primaryHash)
	sched := PlanSchedule(seed1, seed2)

	for _, idx := range []int64{0, 1, 2, 100} {
		plainBytes := randomBlock(1000 + idx)
		subkeyBytes := DeriveSubkey(primaryHash, passphrase, idx)

		block, err := NewMatrix(plainBytes)
		if err != nil {
			t.Fatal(err)
		}
		subkey, err := NewMatrix(subkeyBytes)
		if err != nil {
			t.Fatal(err)
		}

		cipher := EncryptBlock(sched, block, subkey)
		recovered := DecryptBlock(sched, cipher, subkey)
		if !bytes.Equal(recovered.Bytes(), plainBytes) {
			t.Fatalf("round trip failed for block index %d", idx)
		}
	}
}

func TestApplyXORIsSelfInverse(t *testing.T) {
	block, _ := NewMatrix(randomBlock(7))
	subkey, _ := NewMatrix(randomBlock(8))

	once := applyXOR(block, subkey)
	twice := applyXOR(once, subkey)

	if !bytes.Equal(twice.Bytes(), block.Bytes()) {
		t.Fatal("applyXOR is not its own inverse")
	}
}

func TestApplyModularAddSubRoundTrip(t *testing.T) {
	block, _ := NewMatrix(randomBlock(11))
	subkey, _ := NewMatrix(randomBlock(12))

	added := applyModular(block, subkey, "add", false)
	back := applyModular(added, subkey, "sub", false)

	if !bytes.Equal(back.Bytes(), block.Bytes()) {
		t.Fatal("add then sub with the same transpose flag must round trip")
	}
}

func TestApplyPermutationRoundTrip(t *testing.T) {
	block, _ := NewMatrix(randomBlock(13))
	sched := PlanSchedule(big.NewInt(321), big.NewInt(654))

	permuted := applyPermutation(block, sched.RowSwaps, sched.ColSwaps, sched.PermutationOrder)
	restored := reversePermutation(permuted, sched.RowSwaps, sched.ColSwaps, sched.PermutationOrder)

	if !bytes.Equal(restored.Bytes(), block.Bytes()) {
		t.Fatal("reversePermutation did not undo applyPermutation")
	}
}

func TestEncryptBlockDeterministic(t *testing.T) {
	sched := PlanSchedule(big.NewInt(1), big.NewInt(2))
	plainBytes := randomBlock(55)
	subkeyBytes := randomBlock(56)

	block, _ := NewMatrix(plainBytes)
	subkey, _ := NewMatrix(subkeyBytes)

	c1 := EncryptBlock(sched, block, subkey)
	c2 := EncryptBlock(sched, block, subkey)

	if !bytes.Equal(c1.Bytes(), c2.Bytes()) {
		t.Fatal("EncryptBlock is not deterministic for identical inputs")
	}
}

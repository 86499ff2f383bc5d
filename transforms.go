package enigmatrix

// applyXOR returns a new Matrix holding block XOR subkey, byte-wise. XOR
// is its own inverse, so the same function serves both directions.
func applyXOR(block, subkey *Matrix) *Matrix {
	out := make([]byte, BlockSize)
	b, k := block.Bytes(), subkey.Bytes()
	for i := range out {
		out[i] = b[i] ^ k[i]
	}
	return &Matrix{data: out}
}

// applyModular adds or subtracts subkey from block mod 256. transpose
// applies only to the subkey operand — the block itself is never
// transposed. Go's uint8 wraparound arithmetic gives mod-256 addition and
// subtraction for free.
func applyModular(block, subkey *Matrix, op string, transpose bool) *Matrix {
	key := subkey
	if transpose {
		key = subkey.Transposed()
	}

	out := make([]byte, BlockSize)
	b, k := block.Bytes(), key.Bytes()
	if op == "add" {
		for i := range out {
			out[i] = b[i] + k[i]
		}
	} else {
		for i := range out {
			out[i] = b[i] - k[i]
		}
	}
	return &Matrix{data: out}
}

// applyPermutation swaps rows then columns, or columns then rows,
// depending on order[0].
func applyPermutation(block *Matrix, rowSwaps, colSwaps []SwapPair, order [2]string) *Matrix {
	out := block.Clone()
	if order[0] == "row" {
		for _, p := range rowSwaps {
			out.SwapRows(p.I, p.J)
		}
		for _, p := range colSwaps {
			out.SwapColumns(p.I, p.J)
		}
	} else {
		for _, p := range colSwaps {
			out.SwapColumns(p.I, p.J)
		}
		for _, p := range rowSwaps {
			out.SwapRows(p.I, p.J)
		}
	}
	return out
}

// reversePermutation undoes applyPermutation: the later-applied axis is
// unwound first, and each axis's swap list is walked in reverse order (a
// swap is its own inverse, so only the application order needs undoing).
func reversePermutation(block *Matrix, rowSwaps, colSwaps []SwapPair, order [2]string) *Matrix {
	out := block.Clone()
	if order[0] == "row" {
		for i := len(colSwaps) - 1; i >= 0; i-- {
			out.SwapColumns(colSwaps[i].I, colSwaps[i].J)
		}
		for i := len(rowSwaps) - 1; i >= 0; i-- {
			out.SwapRows(rowSwaps[i].I, rowSwaps[i].J)
		}
	} else {
		for i := len(rowSwaps) - 1; i >= 0; i-- {
			out.SwapRows(rowSwaps[i].I, rowSwaps[i].J)
		}
		for i := len(colSwaps) - 1; i >= 0; i-- {
			out.SwapColumns(colSwaps[i].I, colSwaps[i].J)
		}
	}
	return out
}

// EncryptBlock runs the schedule's three major operations, in op_order,
// against one plaintext block and its subkey.
func EncryptBlock(sched *Schedule, block, subkey *Matrix) *Matrix {
	current := block
	for _, op := range sched.OpOrder {
		switch op {
		case "xor":
			current = applyXOR(current, subkey)
		case "modular":
			for t, modOp := range sched.ModOrder {
				current = applyModular(current, subkey, modOp, t == 1)
			}
		case "permutation":
			current = applyPermutation(current, sched.RowSwaps, sched.ColSwaps, sched.PermutationOrder)
		}
	}
	return current
}

// DecryptBlock reverses EncryptBlock: the three major operations run in
// reverse order. The modular step's two sub-passes are walked in the same
// index order as encryption (not reversed) with the transpose flag on
// the opposite sub-pass — the pair of passes is self-cancelling only
// when matched up this way, because mod_order always holds exactly one
// "add" and one "sub".
func DecryptBlock(sched *Schedule, block, subkey *Matrix) *Matrix {
	current := block
	for i := len(sched.OpOrder) - 1; i >= 0; i-- {
		op := sched.OpOrder[i]
		switch op {
		case "permutation":
			current = reversePermutation(current, sched.RowSwaps, sched.ColSwaps, sched.PermutationOrder)
		case "modular":
			for t, modOp := range sched.ModOrder {
				current = applyModular(current, subkey, modOp, t == 0)
			}
		case "xor":
			current = applyXOR(current, subkey)
		}
	}
	return current
}

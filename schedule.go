package enigmatrix

import "math/big"

// SwapPair is a single row or column index pair drawn by the planner.
type SwapPair struct {
	I, J int
}

// Schedule is the full, deterministic operation plan for every block in a
// given file: which major transforms run and in what order, which rows
// and columns get swapped, and in what order the two modular
// sub-operations and the two permutation axes are applied. It is derived
// once per file from seed1/seed2 and reused for every block — only the
// subkey varies block to block.
type Schedule struct {
	OpOrder          [3]string
	RowSwaps         []SwapPair
	ColSwaps         []SwapPair
	ModOrder         [2]string
	PermutationOrder [2]string
}

// PlanSchedule derives the Schedule from the two PRNG seeds extracted from
// a file's primary hash.
//
// Draw order is exact and must not be reordered: operation sequence from
// seed1, then from seed2 in turn row_swaps, col_swaps, mod_order,
// permutation_order. The two shuffles at the end are drawn in that
// order — mod_order before permutation_order — even though it reads more
// naturally the other way; the reference implementation draws mod_order
// first and this package matches it so schedules replay identically.
func PlanSchedule(seed1, seed2 *big.Int) *Schedule {
	opGen := newMT19937(seed1)
	ops := operations
	opSlice := ops[:]
	opGen.shuffle(opSlice)

	subGen := newMT19937(seed2)

	rowSwaps := make([]SwapPair, SwapCount)
	for i := range rowSwaps {
		rowSwaps[i] = SwapPair{
			I: subGen.randint(0, MatrixSize-1),
			J: subGen.randint(0, MatrixSize-1),
		}
	}

	colSwaps := make([]SwapPair, SwapCount)
	for i := range colSwaps {
		colSwaps[i] = SwapPair{
			I: subGen.randint(0, MatrixSize-1),
			J: subGen.randint(0, MatrixSize-1),
		}
	}

	mo := modOrder
	moSlice := mo[:]
	subGen.shuffle(moSlice)

	po := permutationOrder
	poSlice := po[:]
	subGen.shuffle(poSlice)

	return &Schedule{
		OpOrder:          ops,
		RowSwaps:         rowSwaps,
		ColSwaps:         colSwaps,
		ModOrder:         mo,
		PermutationOrder: po,
	}
}

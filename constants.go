package enigmatrix

// Fixed dimensions of the block cipher. Every block is a square byte
// matrix of MatrixSize x MatrixSize bytes, which is exactly BlockSize
// bytes (1 MiB).
const (
	MatrixSize = 1024
	BlockSize  = MatrixSize * MatrixSize

	// RSAKeySize is the modulus size, in bits, used by GenerateRSAKeypair.
	RSAKeySize = 2048

	// MinKeyLen is the minimum accepted passphrase length in bytes.
	MinKeyLen = 8

	// SwapCount is the fixed number of row (and, separately, column)
	// transposition pairs drawn per block schedule. Published as a build
	// constant rather than derived, per the planner's "draw order must be
	// exact" contract: changing it changes every ciphertext this package
	// has ever produced.
	SwapCount = 512
)

// KeyKind identifies whether a PEM file holds an RSA private or public key.
type KeyKind uint8

const (
	KeyKindUnknown KeyKind = iota
	KeyKindPrivate
	KeyKindPublic
)

func (k KeyKind) String() string {
	switch k {
	case KeyKindPrivate:
		return "private"
	case KeyKindPublic:
		return "public"
	default:
		return "unknown"
	}
}

// operations names the three major transform kernels, in the order the
// planner shuffles them.
var operations = [3]string{"permutation", "xor", "modular"}

// modOrder names the two modular sub-operations.
var modOrder = [2]string{"add", "sub"}

// permutationOrder names the two permutation axes.
var permutationOrder = [2]string{"row", "column"}

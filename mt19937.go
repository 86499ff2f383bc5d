package enigmatrix

import "math/big"

// mt19937 is a from-scratch port of CPython's random.Random: the
// Mersenne Twister generator seeded and consumed the same way
// random.seed(int)/random.shuffle/random.randint are, so that given the
// same integer seed this type draws exactly the same sequence of values
// CPython would. The schedule planner depends on bit-for-bit agreement
// with the original tool's reference vectors, so every step below
// (init_by_array, genrand_uint32, getrandbits, _randbelow, shuffle,
// randint) follows the reference algorithm rather than a simplified
// approximation.
type mt19937 struct {
	state [624]uint32
	index int
}

const (
	mtN          = 624
	mtM          = 397
	mtMatrixA    = 0x9908b0df
	mtUpperMask  = 0x80000000
	mtLowerMask  = 0x7fffffff
)

// newMT19937 seeds a generator the way CPython's random.seed(n) does for
// an arbitrary-precision integer n: init_by_array keyed from the
// little-endian 32-bit words of abs(n).
func newMT19937(seed *big.Int) *mt19937 {
	m := &mt19937{}
	m.initByArray(seedKeyWords(seed))
	return m
}

// seedKeyWords converts abs(seed) into the little-endian array of 32-bit
// words CPython's random_seed() builds before calling init_by_array.
func seedKeyWords(seed *big.Int) []uint32 {
	n := new(big.Int).Abs(seed)
	if n.Sign() == 0 {
		return []uint32{0}
	}

	bits := n.BitLen()
	numWords := (bits-1)/32 + 1
	key := make([]uint32, numWords)

	tmp := new(big.Int).Set(n)
	mask := big.NewInt(0xffffffff)
	for i := 0; i < numWords; i++ {
		word := new(big.Int).And(tmp, mask)
		key[i] = uint32(word.Uint64())
		tmp.Rsh(tmp, 32)
	}
	return key
}

func (m *mt19937) initGenrand(s uint32) {
	m.state[0] = s
	for i := 1; i < mtN; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = mtN
}

func (m *mt19937) initByArray(key []uint32) {
	m.initGenrand(19650218)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := m.state[i-1]
		m.state[i] = (m.state[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			m.state[0] = m.state[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := m.state[i-1]
		m.state[i] = (m.state[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			m.state[0] = m.state[mtN-1]
			i = 1
		}
	}
	m.state[0] = 0x80000000
}

var mtMag01 = [2]uint32{0, mtMatrixA}

func (m *mt19937) genrandUint32() uint32 {
	if m.index >= mtN {
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y := (m.state[kk] & mtUpperMask) | (m.state[kk+1] & mtLowerMask)
			m.state[kk] = m.state[kk+mtM] ^ (y >> 1) ^ mtMag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y := (m.state[kk] & mtUpperMask) | (m.state[kk+1] & mtLowerMask)
			m.state[kk] = m.state[kk+(mtM-mtN)] ^ (y >> 1) ^ mtMag01[y&1]
		}
		y := (m.state[mtN-1] & mtUpperMask) | (m.state[0] & mtLowerMask)
		m.state[mtN-1] = m.state[mtM-1] ^ (y >> 1) ^ mtMag01[y&1]
		m.index = 0
	}

	y := m.state[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// getrandbits returns the next k random bits as a big.Int, matching
// random.getrandbits(k).
func (m *mt19937) getrandbits(k int) *big.Int {
	if k <= 0 {
		return big.NewInt(0)
	}
	if k <= 32 {
		r := m.genrandUint32() >> uint(32-k)
		return new(big.Int).SetUint64(uint64(r))
	}

	words := (k-1)/32 + 1
	wordarray := make([]uint32, words)
	remaining := k
	for i := 0; i < words; i++ {
		r := m.genrandUint32()
		if remaining < 32 {
			r >>= uint(32 - remaining)
		}
		wordarray[i] = r
		remaining -= 32
	}

	result := new(big.Int)
	for i := words - 1; i >= 0; i-- {
		result.Lsh(result, 32)
		result.Or(result, new(big.Int).SetUint64(uint64(wordarray[i])))
	}
	return result
}

func bitLength(n int) int {
	bl := 0
	for n > 0 {
		bl++
		n >>= 1
	}
	return bl
}

// randbelow returns a uniform random int in [0, n), matching
// random._randbelow via rejection sampling over getrandbits.
func (m *mt19937) randbelow(n int) int {
	if n <= 0 {
		return 0
	}
	k := bitLength(n)
	bound := big.NewInt(int64(n))
	for {
		r := m.getrandbits(k)
		if r.Cmp(bound) < 0 {
			return int(r.Int64())
		}
	}
}

// randint returns a uniform random int in [a, b], matching random.randint.
func (m *mt19937) randint(a, b int) int {
	return a + m.randbelow(b-a+1)
}

// shuffle permutes x in place using the Fisher-Yates walk random.shuffle
// performs: from the last index down to 1, swap with a uniform earlier
// (or equal) index.
func (m *mt19937) shuffle(x []string) {
	for i := len(x) - 1; i > 0; i-- {
		j := m.randbelow(i + 1)
		x[i], x[j] = x[j], x[i]
	}
}

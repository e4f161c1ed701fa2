package turbulence

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"
)

// RandomSource supplies the deviates consumed by the spectral sampler.
type RandomSource interface {
	// Uniform returns a deviate in [0, 1).
	Uniform() float64
	// Normal returns a standard-normal deviate.
	Normal() float64
}

// Random is a seedable Mersenne Twister (MT19937). Each synthesis owns one;
// instances are never shared implicitly.
type Random struct {
	mt      *prng.MT19937
	uniform distuv.Uniform
	normal  distuv.Normal
}

// NewRandom returns a generator seeded with seed.
func NewRandom(seed int64) *Random {
	mt := prng.NewMT19937()
	seedMT(mt, seed)
	return &Random{
		mt:      mt,
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: mt},
		normal:  distuv.Normal{Mu: 0, Sigma: 1, Src: mt},
	}
}

// Seed resets the generator state. The same seed always yields the same
// sequence of deviates.
func (r *Random) Seed(seed int64) {
	seedMT(r.mt, seed)
}

// seedMT initialises mt from all 64 bits of seed. Seeds in [0, 2³²) use the
// classic single-word initialisation; wider or negative seeds are split into
// two key words.
func seedMT(mt *prng.MT19937, seed int64) {
	if seed >= 0 && seed <= math.MaxUint32 {
		mt.Seed(uint64(seed))
		return
	}
	u := uint64(seed)
	mt.SeedFromKeys([]uint32{uint32(u), uint32(u >> 32)})
}

// Uniform returns a deviate in [0, 1).
func (r *Random) Uniform() float64 {
	return r.uniform.Rand()
}

// Normal returns a standard-normal deviate.
func (r *Random) Normal() float64 {
	return r.normal.Rand()
}

// streamSource is a PCG generator re-keyed per wavevector so that the draws
// for a given mode depend only on (seed, mode index). One instance per worker.
type streamSource struct {
	pcg     *rand.PCG
	uniform distuv.Uniform
	normal  distuv.Normal
}

func newStreamSource() *streamSource {
	pcg := rand.NewPCG(0, 0)
	return &streamSource{
		pcg:     pcg,
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: pcg},
		normal:  distuv.Normal{Mu: 0, Sigma: 1, Src: pcg},
	}
}

// key positions the stream at the start of the sub-stream for index.
func (s *streamSource) key(seed int64, index int) {
	s.pcg.Seed(mix64(uint64(seed)), mix64(uint64(index)^0x9e3779b97f4a7c15))
}

func (s *streamSource) Uniform() float64 { return s.uniform.Rand() }

func (s *streamSource) Normal() float64 { return s.normal.Rand() }

// mix64 is the splitmix64 finaliser; it spreads adjacent keys across the
// PCG state space.
func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

package otp

import (
	"math/rand/v2"
	"sync"

	"bms/config"
)

const (
	DefaultMin = 100000
	DefaultMax = 999999
)

// Generator draws one-time codes uniformly from a closed range.
type Generator interface {
	Generate() int
}

type generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	min int
	max int
}

// New returns a generator over [minCode, maxCode] driven by a PCG source seeded with seed.
func New(seed uint64, minCode, maxCode int) Generator {
	if minCode <= 0 || maxCode < minCode {
		minCode, maxCode = DefaultMin, DefaultMax
	}

	return &generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		min: minCode,
		max: maxCode,
	}
}

// NewFromConfig seeds from OTP_SEED when set, otherwise from the runtime source.
func NewFromConfig(cfg *config.Config) Generator {
	seed := uint64(cfg.OTP.Seed) //nolint:gosec
	if seed == 0 {
		seed = rand.Uint64()
	}

	return New(seed, cfg.OTP.Min, cfg.OTP.Max)
}

func (g *generator) Generate() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.min + g.rng.IntN(g.max-g.min+1)
}

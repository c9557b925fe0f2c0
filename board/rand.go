package board

// PseudoRand is a xorshift64* generator used to draw the zobrist keys.
type PseudoRand struct {
	s uint64
}

func NewPseudoRand(seed uint64) *PseudoRand {
	r := &PseudoRand{}
	r.Seed(seed)
	return r
}

// Seed resets the generator. A zero seed would lock xorshift at zero, so it is remapped.
func (r *PseudoRand) Seed(seed uint64) {
	if seed == 0 {
		seed = defaultZobristSeed
	}
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

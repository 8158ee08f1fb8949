package exercise

import (
	"math/rand/v2"
)

// Source is the random source used for draws. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a seeded source. Seed 0 draws a random seed.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Weight returns the selection weight of a group. Each step toward weaker
// mastery triples the weight.
func Weight(g Group) int {
	switch g {
	case GroupMastered:
		return 1
	case GroupFamiliar:
		return 3
	case GroupLearning:
		return 9
	case GroupWeak:
		return 27
	default:
		return 0
	}
}

// PendingRepeat is the one missed exercise scheduled for re-presentation.
// It is shown on the draw after the one following the miss.
type PendingRepeat struct {
	Exercise *Ref
	Due      bool
}

// Active reports whether a repeat is outstanding.
func (p PendingRepeat) Active() bool {
	return p.Exercise != nil
}

// Advance moves the repeat one draw forward: a waiting repeat becomes due,
// and a repeat that was just shown is cleared.
func (p PendingRepeat) Advance() PendingRepeat {
	switch {
	case p.Exercise != nil && !p.Due:
		return PendingRepeat{Exercise: p.Exercise, Due: true}
	case p.Due:
		return PendingRepeat{}
	default:
		return p
	}
}

// Selector draws the next exercise, biased toward weaker groups.
type Selector struct {
	rng Source
}

// NewSelector creates a Selector. A nil source is replaced with a random one.
func NewSelector(rng Source) *Selector {
	if rng == nil {
		rng = NewSource(0)
	}
	return &Selector{rng: rng}
}

// Next picks the next exercise. A due repeat is returned as is; otherwise
// the draw excludes previous and any repeat that is not yet due. Next never
// fails: an empty pool falls back to the first registry exercise.
func (s *Selector) Next(reg Registry, pending PendingRepeat, previous *Ref) Exercise {
	if pending.Due && pending.Exercise != nil {
		if e, ok := reg.Get(pending.Exercise.A, pending.Exercise.B); ok {
			return e
		}
	}

	all := reg.Ordered()
	pool := make([]Exercise, 0, len(all))
	total := 0
	for _, e := range all {
		if previous != nil && e.A == previous.A && e.B == previous.B {
			continue
		}
		if pending.Exercise != nil && !pending.Due && e.A == pending.Exercise.A && e.B == pending.Exercise.B {
			continue
		}
		w := Weight(e.Group)
		if w == 0 {
			continue
		}
		pool = append(pool, e)
		total += w
	}

	if len(pool) == 0 || total == 0 {
		return reg.First()
	}

	r := s.rng.IntN(total)
	for _, e := range pool {
		w := Weight(e.Group)
		if r < w {
			return e
		}
		r -= w
	}
	return pool[0]
}

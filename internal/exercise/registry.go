package exercise

// Registry holds every exercise of a profile, keyed by Key(a, b).
// It always contains exactly Count entries; only groups change.
type Registry map[string]Exercise

// canonicalRefs lists all pairs in registry order: 1×1, 1×2, ..., 10×10.
var canonicalRefs = func() []Ref {
	refs := make([]Ref, 0, Count)
	for a := MinFactor; a <= MaxFactor; a++ {
		for b := MinFactor; b <= MaxFactor; b++ {
			refs = append(refs, Ref{A: a, B: b})
		}
	}
	return refs
}()

// CanonicalRefs returns all exercise identities in registry order.
func CanonicalRefs() []Ref {
	out := make([]Ref, len(canonicalRefs))
	copy(out, canonicalRefs)
	return out
}

// NewRegistry creates all exercises in their initial groups.
func NewRegistry() Registry {
	r := make(Registry, Count)
	for _, ref := range canonicalRefs {
		r[ref.Key()] = Exercise{A: ref.A, B: ref.B, Group: InitialGroup(ref.A, ref.B)}
	}
	return r
}

// Get returns the exercise for a×b.
func (r Registry) Get(a, b int) (Exercise, bool) {
	e, ok := r[Key(a, b)]
	return e, ok
}

// Ordered returns the exercises in registry order, skipping missing keys.
func (r Registry) Ordered() []Exercise {
	out := make([]Exercise, 0, len(r))
	for _, ref := range canonicalRefs {
		if e, ok := r[ref.Key()]; ok {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first exercise in registry order.
// An empty registry yields 1×1 in its initial group.
func (r Registry) First() Exercise {
	for _, ref := range canonicalRefs {
		if e, ok := r[ref.Key()]; ok {
			return e
		}
	}
	return Exercise{A: MinFactor, B: MinFactor, Group: InitialGroup(MinFactor, MinFactor)}
}

// RecordMiss moves a×b one group weaker, capped at GroupWeak.
// It returns the new group and false when the exercise is unknown.
func (r Registry) RecordMiss(a, b int) (Group, bool) {
	e, ok := r.Get(a, b)
	if !ok {
		return 0, false
	}
	if e.Group < GroupWeak {
		e.Group++
	}
	r[e.Key()] = e
	return e.Group, true
}

// RecordHit moves a×b one group stronger, floored at GroupMastered.
func (r Registry) RecordHit(a, b int) (Group, bool) {
	e, ok := r.Get(a, b)
	if !ok {
		return 0, false
	}
	if e.Group > GroupMastered {
		e.Group--
	}
	r[e.Key()] = e
	return e.Group, true
}

// ByGroup partitions the exercises by mastery group, each sorted by (a, b).
func (r Registry) ByGroup() map[Group][]Exercise {
	groups := make(map[Group][]Exercise, 4)
	for _, g := range AllGroups() {
		groups[g] = []Exercise{}
	}
	for _, e := range r {
		if !e.Group.Valid() {
			continue
		}
		groups[e.Group] = append(groups[e.Group], e)
	}
	for _, list := range groups {
		sortExercises(list)
	}
	return groups
}

// Clone returns an independent copy of the registry.
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

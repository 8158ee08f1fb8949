package exercise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeight(t *testing.T) {
	tests := []struct {
		group Group
		want  int
	}{
		{GroupMastered, 1},
		{GroupFamiliar, 3},
		{GroupLearning, 9},
		{GroupWeak, 27},
		{Group(0), 0},
		{Group(5), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Weight(tt.group), "Weight(%d)", tt.group)
	}
}

func TestSelector_NeverRepeatsPrevious(t *testing.T) {
	sel := NewSelector(NewSource(7))
	reg := NewRegistry()

	prev := Ref{A: 6, B: 7}
	for i := 0; i < 5000; i++ {
		e := sel.Next(reg, PendingRepeat{}, &prev)
		require.False(t, e.A == prev.A && e.B == prev.B, "draw %d repeated %s", i, prev.Key())
		prev = e.Ref()
	}
}

func TestSelector_DueRepeatIsForced(t *testing.T) {
	sel := NewSelector(NewSource(1))
	reg := NewRegistry()
	ref := Ref{A: 3, B: 4}

	for i := 0; i < 100; i++ {
		e := sel.Next(reg, PendingRepeat{Exercise: &ref, Due: true}, &Ref{A: 1, B: 1})
		require.Equal(t, ref, e.Ref())
	}
}

func TestSelector_WaitingRepeatIsExcluded(t *testing.T) {
	sel := NewSelector(NewSource(3))
	reg := NewRegistry()
	ref := Ref{A: 8, B: 9}

	for i := 0; i < 5000; i++ {
		e := sel.Next(reg, PendingRepeat{Exercise: &ref}, nil)
		require.NotEqual(t, ref, e.Ref(), "waiting repeat drawn early at %d", i)
	}
}

func TestSelector_SpacedRepetition(t *testing.T) {
	sel := NewSelector(NewSource(11))
	reg := NewRegistry()
	missed := Ref{A: 7, B: 8}

	// The miss was just answered; it is also the previous exercise.
	pending := PendingRepeat{Exercise: &missed}
	prev := missed

	first := sel.Next(reg, pending, &prev)
	pending = pending.Advance()
	assert.NotEqual(t, missed, first.Ref(), "repeat must not come back immediately")
	assert.True(t, pending.Due)

	prev = first.Ref()
	second := sel.Next(reg, pending, &prev)
	pending = pending.Advance()
	assert.Equal(t, missed, second.Ref(), "repeat should be forced two draws after the miss")
	assert.False(t, pending.Active(), "repeat should clear after being shown")
}

func TestSelector_WeightedBias(t *testing.T) {
	reg := NewRegistry()
	for k, e := range reg {
		e.Group = GroupMastered
		reg[k] = e
	}
	weak := Ref{A: 4, B: 6}
	reg[weak.Key()] = Exercise{A: weak.A, B: weak.B, Group: GroupWeak}

	sel := NewSelector(NewSource(42))
	const draws = 100000
	counts := make(map[Ref]int)
	for i := 0; i < draws; i++ {
		counts[sel.Next(reg, PendingRepeat{}, nil).Ref()]++
	}

	weakCount := float64(counts[weak])
	mastered := float64(draws-counts[weak]) / float64(Count-1)
	ratio := weakCount / mastered

	if math.Abs(ratio-27) > 3 {
		t.Errorf("group 4 / group 1 frequency ratio = %.2f, want ~27", ratio)
	}
}

func TestSelector_EmptyPoolFallsBack(t *testing.T) {
	sel := NewSelector(NewSource(5))

	only := Registry{Key(2, 3): {A: 2, B: 3, Group: GroupLearning}}
	e := sel.Next(only, PendingRepeat{}, &Ref{A: 2, B: 3})
	assert.Equal(t, Ref{A: 2, B: 3}, e.Ref())

	e = sel.Next(Registry{}, PendingRepeat{}, nil)
	assert.Equal(t, Ref{A: 1, B: 1}, e.Ref())
}

func TestSelector_DueRepeatMissingFromRegistry(t *testing.T) {
	sel := NewSelector(NewSource(9))
	reg := NewRegistry()
	ghost := Ref{A: 12, B: 3}

	e := sel.Next(reg, PendingRepeat{Exercise: &ghost, Due: true}, nil)
	assert.True(t, e.Ref().Valid())
}

func TestPendingRepeat_Advance(t *testing.T) {
	ref := Ref{A: 3, B: 4}

	p := PendingRepeat{}
	assert.Equal(t, PendingRepeat{}, p.Advance())

	p = PendingRepeat{Exercise: &ref}
	p = p.Advance()
	assert.True(t, p.Due)
	assert.Equal(t, &ref, p.Exercise)

	p = p.Advance()
	assert.False(t, p.Active())
	assert.False(t, p.Due)
}

package character

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsRequiredForStage(t *testing.T) {
	tests := []struct{ stage, want int }{
		{0, 30}, {1, 60}, {2, 90},
	}
	for _, tt := range tests {
		if got := PointsRequiredForStage(tt.stage); got != tt.want {
			t.Errorf("PointsRequiredForStage(%d) = %d, want %d", tt.stage, got, tt.want)
		}
	}
}

func TestAdvance_Gating(t *testing.T) {
	var s State

	err := s.Advance(29, string(ColorWhite))
	if !errors.Is(err, ErrNotEnoughPoints) {
		t.Fatalf("Advance(29) err = %v, want ErrNotEnoughPoints", err)
	}
	if s.Current.Stage != 0 || s.Current.Color != "" {
		t.Fatalf("state mutated on rejection: %+v", s.Current)
	}

	if err := s.Advance(30, string(ColorWhite)); err != nil {
		t.Fatalf("Advance(30): %v", err)
	}
	if s.Current.Stage != 1 || s.Current.Color != ColorWhite {
		t.Errorf("after advance: %+v", s.Current)
	}
}

func TestAdvance_RequiresStageOption(t *testing.T) {
	var s State

	// A skin is not a valid pick for stage 0.
	err := s.Advance(100, string(SkinWinter))
	assert.ErrorIs(t, err, ErrWrongOption)
	assert.Equal(t, 0, s.Current.Stage)

	require.NoError(t, s.Advance(100, string(ColorBrown)))
	assert.ErrorIs(t, s.Advance(100, string(ColorBrown)), ErrWrongOption)
	require.NoError(t, s.Advance(100, string(SkinFestive)))
	require.NoError(t, s.Advance(100, string(AnimationSpin)))

	assert.Equal(t, Character{Stage: 3, Color: ColorBrown, Skin: SkinFestive, Animation: AnimationSpin}, s.Current)
	assert.ErrorIs(t, s.Advance(1000, string(AnimationJump)), ErrMaxStage)
}

func TestAdvance_FullLadder(t *testing.T) {
	var s State
	require.NoError(t, s.Advance(30, "white"))
	assert.ErrorIs(t, s.Advance(59, "winter"), ErrNotEnoughPoints)
	require.NoError(t, s.Advance(60, "winter"))
	assert.ErrorIs(t, s.Advance(89, "jump"), ErrNotEnoughPoints)
	require.NoError(t, s.Advance(90, "jump"))
	assert.False(t, s.CanAdvance(10_000))
}

func TestComplete(t *testing.T) {
	var s State
	_, err := s.Complete(time.Now())
	assert.ErrorIs(t, err, ErrNotComplete)

	require.NoError(t, s.Advance(90, "skin"))
	require.NoError(t, s.Advance(90, "summer"))
	require.NoError(t, s.Advance(90, "smile"))

	now := time.UnixMilli(1_760_000_000_000)
	done, err := s.Complete(now)
	require.NoError(t, err)

	assert.Equal(t, Completed{Color: ColorSkin, Skin: SkinSummer, Animation: AnimationSmile, CompletedAt: now.UnixMilli()}, done)
	assert.Equal(t, Character{}, s.Current)
	assert.Len(t, s.Completed, 1)
}

func TestComplete_RequiresAllChoices(t *testing.T) {
	s := State{Current: Character{Stage: MaxStage, Color: ColorBrown, Skin: SkinFestive}}
	_, err := s.Complete(time.Now())
	assert.ErrorIs(t, err, ErrNotComplete)
	assert.Empty(t, s.Completed)
	assert.Equal(t, MaxStage, s.Current.Stage)

	s.Current = Character{Stage: MaxStage}
	_, err = s.Complete(time.Now())
	assert.ErrorIs(t, err, ErrNotComplete)
}

func TestCharacter_Supported(t *testing.T) {
	tests := []struct {
		c    Character
		want int
	}{
		{Character{}, 0},
		{Character{Color: ColorWhite}, 1},
		{Character{Color: ColorWhite, Skin: SkinWinter}, 2},
		{Character{Color: ColorWhite, Skin: SkinWinter, Animation: AnimationJump}, 3},
		{Character{Color: ColorWhite, Animation: AnimationJump}, 1},
		{Character{Color: "purple", Skin: SkinWinter}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.c.Supported(), "%+v", tt.c)
	}
}

func TestThreshold_ContinuesAfterCompletion(t *testing.T) {
	s := State{Completed: []Completed{{Color: ColorWhite, Skin: SkinWinter, Animation: AnimationJump}}}

	assert.Equal(t, 120, s.Threshold())
	assert.False(t, s.CanAdvance(119))
	assert.True(t, s.CanAdvance(120))

	s.Current.Stage = 2
	assert.Equal(t, 180, s.Threshold())
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []string{"white", "brown", "skin"}, Options(0))
	assert.Equal(t, []string{"winter", "festive", "summer"}, Options(1))
	assert.Equal(t, []string{"jump", "smile", "spin"}, Options(2))
	assert.Nil(t, Options(3))
	assert.Equal(t, "skin", OptionLabel(1))
}

func TestClone(t *testing.T) {
	s := State{Completed: []Completed{{Color: ColorWhite}}}
	c := s.Clone()
	c.Completed[0].Color = ColorBrown
	assert.Equal(t, ColorWhite, s.Completed[0].Color)
}

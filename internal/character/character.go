package character

import (
	"errors"
	"slices"
	"time"
)

// MaxStage is the final stage of a character. A character at MaxStage can
// only be completed.
const MaxStage = 3

// StagePoints is the lifetime-point cost of each stage.
const StagePoints = 30

var (
	ErrNotEnoughPoints = errors.New("not enough points")
	ErrWrongOption     = errors.New("option not available at this stage")
	ErrWrongStage      = errors.New("stage is not the next stage")
	ErrMaxStage        = errors.New("character is fully grown")
	ErrNotComplete     = errors.New("character is not fully grown")
)

// Color is chosen on the way to stage 1.
type Color string

const (
	ColorWhite Color = "white"
	ColorBrown Color = "brown"
	ColorSkin  Color = "skin"
)

// Skin is chosen on the way to stage 2.
type Skin string

const (
	SkinWinter  Skin = "winter"
	SkinFestive Skin = "festive"
	SkinSummer  Skin = "summer"
)

// Animation is chosen on the way to stage 3.
type Animation string

const (
	AnimationJump  Animation = "jump"
	AnimationSmile Animation = "smile"
	AnimationSpin  Animation = "spin"
)

var (
	colors     = []string{string(ColorWhite), string(ColorBrown), string(ColorSkin)}
	skins      = []string{string(SkinWinter), string(SkinFestive), string(SkinSummer)}
	animations = []string{string(AnimationJump), string(AnimationSmile), string(AnimationSpin)}
)

func (c Color) Valid() bool     { return slices.Contains(colors, string(c)) }
func (s Skin) Valid() bool      { return slices.Contains(skins, string(s)) }
func (a Animation) Valid() bool { return slices.Contains(animations, string(a)) }

// Options returns the choices offered when advancing from stage.
func Options(stage int) []string {
	switch stage {
	case 0:
		return slices.Clone(colors)
	case 1:
		return slices.Clone(skins)
	case 2:
		return slices.Clone(animations)
	default:
		return nil
	}
}

// OptionLabel names what is being picked when advancing from stage.
func OptionLabel(stage int) string {
	switch stage {
	case 0:
		return "color"
	case 1:
		return "skin"
	case 2:
		return "animation"
	default:
		return ""
	}
}

// Character is the character currently being grown.
type Character struct {
	Stage     int       `json:"stage"`
	Color     Color     `json:"color,omitempty"`
	Skin      Skin      `json:"skin,omitempty"`
	Animation Animation `json:"animation,omitempty"`
}

// Completed is a snapshot of a fully grown character.
type Completed struct {
	Color       Color     `json:"color"`
	Skin        Skin      `json:"skin"`
	Animation   Animation `json:"animation"`
	CompletedAt int64     `json:"completedAt"`
}

// State is the character part of a profile document.
type State struct {
	Current   Character   `json:"currentCharacter"`
	Completed []Completed `json:"completedCharacters"`
}

// PointsRequiredForStage returns the points needed to leave stage within
// one character.
func PointsRequiredForStage(stage int) int {
	return (stage + 1) * StagePoints
}

// Threshold returns the lifetime total needed to leave the current stage.
// Completed characters keep their cost, so a new character continues the
// ladder instead of restarting at zero.
func (s State) Threshold() int {
	return len(s.Completed)*PointsRequiredForStage(MaxStage-1) + PointsRequiredForStage(s.Current.Stage)
}

// CanAdvance reports whether totalPoints unlocks the next stage.
func (s State) CanAdvance(totalPoints int) bool {
	return s.Current.Stage < MaxStage && totalPoints >= s.Threshold()
}

// Advance moves the current character one stage forward using choice,
// which must be one of Options(stage).
func (s *State) Advance(totalPoints int, choice string) error {
	stage := s.Current.Stage
	if stage >= MaxStage {
		return ErrMaxStage
	}
	if totalPoints < s.Threshold() {
		return ErrNotEnoughPoints
	}
	if !slices.Contains(Options(stage), choice) {
		return ErrWrongOption
	}

	switch stage {
	case 0:
		s.Current.Color = Color(choice)
	case 1:
		s.Current.Skin = Skin(choice)
	case 2:
		s.Current.Animation = Animation(choice)
	}
	s.Current.Stage++
	return nil
}

// Supported returns the highest stage the filled choices can back: a color
// is needed from stage 1, a skin from stage 2 and an animation at stage 3.
func (c Character) Supported() int {
	switch {
	case !c.Color.Valid():
		return 0
	case !c.Skin.Valid():
		return 1
	case !c.Animation.Valid():
		return 2
	}
	return MaxStage
}

// Complete archives a fully grown character and starts a new one.
func (s *State) Complete(now time.Time) (Completed, error) {
	if s.Current.Stage < MaxStage || s.Current.Supported() < MaxStage {
		return Completed{}, ErrNotComplete
	}
	done := Completed{
		Color:       s.Current.Color,
		Skin:        s.Current.Skin,
		Animation:   s.Current.Animation,
		CompletedAt: now.UnixMilli(),
	}
	s.Completed = append(s.Completed, done)
	s.Current = Character{}
	return done, nil
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.Completed = slices.Clone(s.Completed)
	return s
}

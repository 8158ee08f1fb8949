package character

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/character"
	"github.com/abhisek/timesdrill/internal/ui/theme"
)

const artEgg = `  ╭───╮
 ╱     ╲
│  ? ?  │
 ╲     ╱
  ╰───╯`

const artHatchling = ` ╭─────╮
 │ ◉ ◉ │
 │  ▽  │
 ╰─┬─┬─╯
   ╵ ╵`

const artDressed = `  ▲▲▲▲▲
 ╭─────╮
 │ ◉ ◉ │
 │  ▽  │
 ╰─┬─┬─╯
   ╵ ╵`

const artGrown = `  ▲▲▲▲▲
 ╭─────╮
 │ ★ ★ │ ♪
 │  ◡  │
 ╰─┬─┬─╯
  ╱   ╲`

var colorValues = map[character.Color]color.Color{
	character.ColorWhite: lipgloss.Color("#F8FAFC"),
	character.ColorBrown: lipgloss.Color("#A16207"),
	character.ColorSkin:  lipgloss.Color("#FDBA74"),
}

var skinNames = map[character.Skin]string{
	character.SkinWinter:  "in a winter hat",
	character.SkinFestive: "in party clothes",
	character.SkinSummer:  "in sunglasses",
}

var animationNames = map[character.Animation]string{
	character.AnimationJump:  "jumps",
	character.AnimationSmile: "smiles",
	character.AnimationSpin:  "spins",
}

// renderCharacter draws c in its chosen color.
func renderCharacter(c character.Character) string {
	art := artEgg
	switch c.Stage {
	case 1:
		art = artHatchling
	case 2:
		art = artDressed
	case 3:
		art = artGrown
	}
	fg, ok := colorValues[c.Color]
	if !ok {
		fg = theme.TextDim
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}

// describe returns a short sentence about c.
func describe(c character.Character) string {
	if c.Stage == 0 {
		return "An egg. Earn points to hatch it!"
	}
	s := "A " + string(c.Color) + " friend"
	if c.Skin != "" {
		s += " " + skinNames[c.Skin]
	}
	if c.Animation != "" {
		s += " that " + animationNames[c.Animation]
	}
	return s
}

package components

import (
	"strings"
	"testing"
)

func TestContentWidth(t *testing.T) {
	tests := []struct {
		frame, want int
	}{
		{10, 20},
		{50, 44},
		{200, 60},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.frame); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.frame, got, tt.want)
		}
	}
}

func TestStageMeter(t *testing.T) {
	tests := []struct {
		stage int
		want  string
	}{
		{0, "☆☆☆"},
		{2, "★★☆"},
		{3, "★★★"},
		{9, "★★★"},
	}
	for _, tt := range tests {
		if got := StageMeter(tt.stage, 3); got != tt.want {
			t.Errorf("StageMeter(%d) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

func TestStageCard(t *testing.T) {
	card := StageCard(2, 3, "Pick a skin", 40)
	for _, want := range []string{"★★☆", "unlock stage 2", "Pick a skin"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

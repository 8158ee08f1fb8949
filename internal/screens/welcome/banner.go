package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/timesdrill/internal/ui/theme"
)

const bannerArt = `
 ████████╗██╗███╗   ███╗███████╗███████╗
 ╚══██╔══╝██║████╗ ████║██╔════╝██╔════╝
    ██║   ██║██╔████╔██║█████╗  ███████╗
    ██║   ██║██║╚██╔╝██║██╔══╝  ╚════██║
    ██║   ██║██║ ╚═╝ ██║███████╗███████║
    ╚═╝   ╚═╝╚═╝     ╚═╝╚══════╝╚══════╝`

const bannerCompact = "T I M E S   D R I L L"

// RenderBanner returns the banner styled in the primary color. Terminals
// narrower than 44 columns get a compact fallback.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 44 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt) + "\n" + style.Render("D R I L L")
}

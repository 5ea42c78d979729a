package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/counterline/internal/ui/theme"
)

const bannerArt = `
  ___  __   _  _  __ _  ____  ____  ____  __    __  __ _  ____
 / __)/  \ / )( \(  ( \(_  _)(  __)(  _ \(  )  (  )(  ( \(  __)
( (__(  O )) \/ (/    /  )(   ) _)  )   // (_/\ )( /    / ) _)
 \___)\__/ \____/\_)__) (__) (____)(__\_)\____/(__)\_)__)(____)`

const bannerCompact = "C O U N T E R L I N E"

// RenderBanner returns the banner styled in the primary color. Uses a
// compact fallback for terminals narrower than 66 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 66 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	pink    = lipgloss.Color("#ff69b4")
	rose    = lipgloss.Color("#d63384")
	crimson = lipgloss.Color("#dc143c")
	muted   = lipgloss.Color("#8a8a8a")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(pink)
	userStyle   = lipgloss.NewStyle().Bold(true).Foreground(rose)
	botStyle    = lipgloss.NewStyle().Bold(true).Foreground(pink)
	noticeStyle = lipgloss.NewStyle().Foreground(rose).Italic(true)
	errorStyle  = lipgloss.NewStyle().Foreground(crimson).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(muted)
)

// ConfigureColor drops to a colorless profile when NO_COLOR is set and returns
// the glamour style matching the chosen profile.
func ConfigureColor() string {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		lipgloss.SetColorProfile(termenv.Ascii)
		return "notty"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

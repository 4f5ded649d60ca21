package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	errorColor  = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	okColor     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	focusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	disabledStyle = lipgloss.NewStyle().Foreground(dimColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor).PaddingLeft(2)
	statusStyle   = lipgloss.NewStyle().Foreground(okColor)
)

// buttonStyle returns the submit button style for the given focus state.
func buttonStyle(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	if focused {
		return s.BorderForeground(accentColor).Foreground(accentColor).Bold(true)
	}
	return s.BorderForeground(dimColor)
}

// label renders a field label, highlighted when its control has focus.
func label(text string, focused bool) string {
	if focused {
		return focusedStyle.Render("> " + text)
	}
	return labelStyle.Render("  " + text)
}

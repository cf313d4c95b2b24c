package styles

import "github.com/charmbracelet/lipgloss"

// Theme colors
var (
	CBg      = lipgloss.Color("#0B0F14") // near-black
	CPanel   = lipgloss.Color("#0F1720") // slightly lighter
	CBorder  = lipgloss.Color("#874BFD")
	CMuted   = lipgloss.Color("#8AA0B6")
	CText    = lipgloss.Color("#D6E2F0")
	CAccent  = lipgloss.Color("#7EE787") // green-ish
	CAccent2 = lipgloss.Color("#79C0FF") // blue-ish
	CWarn    = lipgloss.Color("#FFA657") // orange
	CError   = lipgloss.Color("#c01c28")
	CPink    = lipgloss.Color("#F25D94")
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent2).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	// OwnerBadge marks the contract owner in the header
	OwnerBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(CPink).
			Padding(0, 1)

	VoterBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#888B7E")).
			Padding(0, 1)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Notice renders a status line in the color of its level: 0 info, 1 success, 2 error.
func Notice(level int, text string) string {
	switch level {
	case 1:
		return lipgloss.NewStyle().Foreground(CAccent).Bold(true).Render("✓ " + text)
	case 2:
		return lipgloss.NewStyle().Foreground(CWarn).Bold(true).Render("⚠ " + text)
	default:
		return lipgloss.NewStyle().Foreground(CAccent2).Render(text)
	}
}

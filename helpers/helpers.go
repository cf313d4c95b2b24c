package helpers

import (
	"image/color"
	"regexp"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	addressPattern = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")
	printer        = message.NewPrinter(language.English)
)

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// IsValidEthAddress checks if a string is a valid Ethereum address
func IsValidEthAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// FormatVotes renders a vote count with thousands separators
func FormatVotes(n uint64) string {
	if n == 1 {
		return "1 vote"
	}
	return printer.Sprintf("%d votes", n)
}

// SyncedAt describes when the view was last refreshed
func SyncedAt(t time.Time, syncing bool) string {
	if syncing {
		return "syncing…"
	}
	if t.IsZero() {
		return "never synced"
	}
	return "synced " + humanize.Time(t)
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(s))
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	if len(colors) == 0 {
		return str
	}
	var result string
	for i, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		result += baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c))
	}
	return result
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Clamp bounds i to [0, n-1]; it returns 0 when n is 0.
func Clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	return Min(i, n-1)
}

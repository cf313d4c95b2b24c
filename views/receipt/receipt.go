package receipt

import (
	"strings"

	"charm-voting-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"
)

// QR renders text as a half-block terminal QR code
func QR(text string) string {
	var b strings.Builder
	qrterminal.GenerateHalfBlock(text, qrterminal.L, &b)
	return b.String()
}

// Render renders the last transaction as a scannable explorer link
func Render(url, copiedMsg string) string {
	content := styles.TitleStyle.Render("Last Transaction") + "\n\n"
	if url == "" {
		return content + styles.MutedStyle.Render("No transaction submitted yet.")
	}

	content += QR(url) + "\n"
	content += lipgloss.NewStyle().Foreground(styles.CAccent).Render("Explorer:") + "\n\n" + url
	content += "\n\n" + styles.MutedStyle.Render("Scan to follow the transaction on the block explorer")
	content += "\n" + styles.MutedStyle.Render("Press t to copy the hash • ESC or q to close")
	if copiedMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render(copiedMsg)
	}
	return content
}

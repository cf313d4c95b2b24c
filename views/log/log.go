package log

import (
	"fmt"

	"charm-voting-tui/helpers"
	"charm-voting-tui/styles"
	"charm-voting-tui/voting"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// PanelHeight is the viewport height the log panel gets on a screen of the given height
func PanelHeight(height int) int {
	// header (3 lines), nav (1 line), title + borders (4 lines), margins (2 lines)
	availableHeight := helpers.Max(5, height-10)
	return helpers.Min(availableHeight, helpers.Min(height/3, 15))
}

// phaseBadge colors the session phase: busy phases in blue, idle connected in green
func phaseBadge(p voting.Phase) string {
	color := styles.CAccent
	switch p {
	case voting.PhaseDisconnected:
		color = styles.CMuted
	case voting.PhaseConnecting, voting.PhaseSynchronizing, voting.PhaseVoting, voting.PhaseSubmittingCandidate:
		color = styles.CAccent2
	}
	return lipgloss.NewStyle().Foreground(color).Render("● " + p.String())
}

// header is the panel title line: session phase, pending tx and scroll position
func header(st voting.State, vp viewport.Model, logReady bool) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Session log")

	line := title + "  " + phaseBadge(st.Phase)
	if st.Pending == voting.OpVoting || st.Pending == voting.OpSubmittingCandidate {
		if st.LastTx != (common.Hash{}) {
			line += styles.MutedStyle.Render("  tx " + helpers.ShortenAddr(st.LastTx.Hex()))
		}
	}
	if logReady && vp.TotalLineCount() > vp.Height {
		line += styles.MutedStyle.Render(fmt.Sprintf("  [%d%%]", int(vp.ScrollPercent()*100)))
	}
	return line
}

// Render renders the log panel under a header that tracks the voting session
func Render(width, height int, st voting.State, logReady bool, logSpinnerView string, vp viewport.Model) string {
	panelHeight := PanelHeight(height)
	vp.Height = panelHeight

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2)).
		Height(panelHeight + 2)

	body := vp.View()
	if !logReady {
		body = "initializing...\n" + logSpinnerView
	}
	return border.Render(header(st, vp, logReady) + "\n\n" + body)
}

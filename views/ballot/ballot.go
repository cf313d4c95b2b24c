package ballot

import (
	"fmt"
	"strings"

	"charm-voting-tui/helpers"
	"charm-voting-tui/styles"
	"charm-voting-tui/voting"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Nav returns the navigation bar for the ballot view
func Nav(width int, st voting.State, adding bool) string {
	var keys []string
	switch {
	case adding:
		keys = []string{
			styles.Key("Enter") + " submit",
			styles.Key("Esc") + " cancel",
		}
	case !st.Connected:
		keys = []string{
			styles.Key("c") + " connect wallet",
			styles.Key("s") + " settings",
			styles.Key("l") + " logger",
			styles.Key("Esc") + " quit",
		}
	default:
		vote := styles.Key("Enter") + " vote"
		if st.HasVoted {
			vote = styles.MutedStyle.Render("already voted")
		}
		keys = []string{
			styles.Key("↑/↓") + " select",
			vote,
		}
		if st.IsOwner {
			keys = append(keys, styles.Key("a")+" add candidate")
		}
		keys = append(keys,
			styles.Key("w")+" winner",
			styles.Key("r")+" refresh",
			styles.Key("y")+" copy account",
		)
		if st.LastTx != (common.Hash{}) {
			keys = append(keys, styles.Key("t")+" copy tx", styles.Key("q")+" QR")
		}
		keys = append(keys,
			styles.Key("c")+" reconnect",
			styles.Key("l")+" logger",
			styles.Key("Esc")+" quit",
		)
	}

	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// RenderList renders the candidates in contract order
func RenderList(candidates []voting.Candidate, selectedIdx int, leader int) string {
	if len(candidates) == 0 {
		return styles.MutedStyle.Render("No candidates yet.")
	}

	var items []string
	for i, c := range candidates {
		var marker string
		var name string
		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			name = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render(c.Name)
		} else {
			marker = "  "
			name = helpers.FadeString(c.Name, "#F25D94", "#EDFF82")
		}

		votes := lipgloss.NewStyle().Foreground(styles.CText).Render(helpers.FormatVotes(c.Votes))
		line := fmt.Sprintf("%s%s %s  %s", marker, styles.MutedStyle.Render(fmt.Sprintf("#%d", i)), name, votes)
		if i == leader {
			line += lipgloss.NewStyle().Foreground(styles.CAccent).Render("  ★")
		}
		items = append(items, line)
	}
	return strings.Join(items, "\n")
}

// Leader returns the index with the most votes, or -1 when nobody has votes.
// Ties resolve to the lowest index.
func Leader(candidates []voting.Candidate) int {
	leader := -1
	var best uint64
	for i, c := range candidates {
		if c.Votes > best {
			best, leader = c.Votes, i
		}
	}
	return leader
}

// Render renders the full ballot view
func Render(st voting.State, selectedIdx int, spinnerView string) string {
	header := styles.TitleStyle.Render("Ballot")
	subtitle := styles.MutedStyle.Render("Candidates as stored by the contract")

	if !st.Connected {
		hint := lipgloss.NewStyle().Foreground(styles.CWarn).Render("Wallet not connected.") + " " +
			styles.MutedStyle.Render("Press ") + styles.Key("c") + styles.MutedStyle.Render(" to connect.")
		if st.Phase == voting.PhaseConnecting {
			hint = spinnerView + " waiting for the wallet…"
		}
		return header + "\n" + subtitle + "\n\n" + hint
	}

	listView := RenderList(st.Candidates, selectedIdx, Leader(st.Candidates))

	var status []string
	switch st.Phase {
	case voting.PhaseVoting:
		status = append(status, spinnerView+" waiting for the vote to confirm…")
	case voting.PhaseSubmittingCandidate:
		status = append(status, spinnerView+" waiting for the candidate to confirm…")
	case voting.PhaseSynchronizing:
		status = append(status, spinnerView+" reading the contract…")
	}

	if st.HasWinner {
		status = append(status, lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("Winner: ")+
			helpers.FadeString(st.Winner, "#7EE787", "#82CFFD"))
	}

	count := fmt.Sprintf("%d candidates", len(st.Candidates))
	if len(st.Candidates) == 1 {
		count = "1 candidate"
	}
	statusBar := styles.MutedStyle.Render(count + " • " + helpers.SyncedAt(st.LastSync, st.Phase == voting.PhaseSynchronizing))

	content := header + "\n" + subtitle + "\n\n" + listView
	if len(status) > 0 {
		content += "\n\n" + strings.Join(status, "\n")
	}
	return content + "\n\n" + statusBar
}

package account

import (
	"fmt"
	"strings"

	"charm-voting-tui/styles"
	"charm-voting-tui/voting"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Render renders the connected account panel. explorer links the address and the
// last transaction when set.
func Render(st voting.State, explorer string, copiedMsg string) string {
	h := styles.TitleStyle.Render("Account")

	if !st.Connected {
		hint := styles.MutedStyle.Render("Tip: set ") + lipgloss.NewStyle().Foreground(styles.CAccent).Render("ETH_RPC_URL") +
			styles.MutedStyle.Render(" and a key source, then press ") + styles.Key("c") + styles.MutedStyle.Render(" to connect.")
		return h + "\n\n" + hint
	}

	addr := st.Account.Hex()
	addrStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := link(explorer, "address", addr, addrStyle.Render(addr))
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}

	role := styles.VoterBadge.Render("voter")
	if st.IsOwner {
		role = styles.OwnerBadge.Render("owner")
	}

	voted := lipgloss.NewStyle().Foreground(styles.CAccent2).Render("Not voted yet")
	if st.HasVoted {
		voted = lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("Already Voted")
	}

	lines := []string{h, sub, "", role + "  " + voted}

	if st.LastTx != (common.Hash{}) {
		tx := st.LastTx.Hex()
		lines = append(lines, "",
			styles.MutedStyle.Render("Last transaction"),
			link(explorer, "tx", tx, lipgloss.NewStyle().Foreground(styles.CText).Render(tx)),
		)
	}

	return strings.Join(lines, "\n")
}

// link wraps text in an OSC 8 hyperlink to the explorer page of kind/id
func link(explorer, kind, id, text string) string {
	if explorer == "" {
		return text
	}
	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(explorer, "/"), kind, id)
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}

package settings

import (
	"fmt"
	"strings"

	"charm-voting-tui/config"
	"charm-voting-tui/helpers"
	"charm-voting-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for settings view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("l") + " logger",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render shows the resolved connection settings. Secrets are never shown.
func Render(cfg config.Config, configPath string) string {
	h := styles.TitleStyle.Render("Connection Settings")

	label := lipgloss.NewStyle().Foreground(styles.CMuted).Width(18)
	value := lipgloss.NewStyle().Foreground(styles.CText)

	row := func(k, v string) string {
		if v == "" {
			v = styles.MutedStyle.Render("not set")
		} else {
			v = value.Render(v)
		}
		return label.Render(k) + v
	}

	keySource := "none"
	switch {
	case cfg.PrivateKey != "":
		keySource = "private key (environment)"
	case cfg.KeystoreDir != "":
		keySource = "keystore " + cfg.KeystoreDir
		if cfg.Account != "" {
			keySource += " (" + helpers.ShortenAddr(cfg.Account) + ")"
		}
	}

	lines := []string{
		h,
		"",
		row("RPC endpoint", cfg.RPCURL),
		row("Network", fmt.Sprintf("%s (chain %d)", cfg.ChainName, cfg.ChainID)),
		row("Contract", cfg.ContractAddress),
		row("Explorer", cfg.ExplorerURL),
		row("Key source", keySource),
		row("RPC timeout", cfg.RPCTimeout().String()),
		row("Confirm timeout", cfg.ConfirmTimeout().String()),
		"",
		styles.MutedStyle.Render("Edit ") + lipgloss.NewStyle().Foreground(styles.CAccent).Render(configPath) +
			styles.MutedStyle.Render(" or set VOTING_* variables, then restart."),
	}

	return strings.Join(lines, "\n")
}

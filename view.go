package main

import (
	"fmt"
	"strings"

	"charm-voting-tui/helpers"
	"charm-voting-tui/styles"
	"charm-voting-tui/views/account"
	ballotview "charm-voting-tui/views/ballot"
	logview "charm-voting-tui/views/log"
	"charm-voting-tui/views/receipt"
	"charm-voting-tui/views/settings"
	"charm-voting-tui/voting"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

func (m *model) renderApprovalDialog() string {
	dialogBoxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(1, 2).
		Background(cPanel)

	msg := helpers.FadeString("The wallet asks for your approval", "#F25D94", "#EDFF82")
	question := lipgloss.NewStyle().Width(56).Align(lipgloss.Center).Render(msg)

	help := lipgloss.NewStyle().
		Foreground(cMuted).
		Align(lipgloss.Center).
		Width(56).
		MarginTop(1).
		Render("Enter: confirm • Esc: decline")

	ui := lipgloss.JoinVertical(lipgloss.Center, question, "", m.approvalForm.View(), help)

	return lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		dialogBoxStyle.Render(ui),
	)
}

func (m *model) renderQRPanel() string {
	url := m.cfg.TxURL(m.state.LastTx.Hex())
	contentWidth := max(0, m.w-8)
	centeredContent := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center).Render(receipt.Render(url, m.copiedMsg))
	content := panelStyle.Width(max(0, m.w-4)).Render(centeredContent)
	return appStyle.Render(lipgloss.Place(
		m.w, m.h,
		lipgloss.Center, lipgloss.Center,
		content,
	))
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding
	st := m.state

	var addrDisplay string
	if st.Connected {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cAccent2).
			Bold(true).
			Render("Account: " + helpers.FadeString(helpers.ShortenAddr(st.Account.Hex()), "#F25D94", "#EDFF82"))
		if st.IsOwner {
			addrDisplay += " " + styles.OwnerBadge.Render("owner")
		}
	} else {
		addrDisplay = lipgloss.NewStyle().
			Foreground(cMuted).
			Render("Account: Wallet not connected")
	}

	// Network status with colored dot
	statusIcon := "○"
	statusColor := cError
	var statusText string
	switch st.Phase {
	case voting.PhaseDisconnected:
		statusText = m.cfg.ChainName + " • offline"
		if m.cfg.RPCURL == "" {
			statusText = "No RPC"
		}
	case voting.PhaseConnecting:
		statusText = "Connecting..."
	default:
		statusIcon = "●"
		statusColor = cAccent
		statusText = fmt.Sprintf("%s (%d)", m.cfg.ChainName, st.ChainID)
	}

	netDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("on-chain ballot", "#7EE787", "#82CFFD"))

	addrWidth := lipgloss.Width(addrDisplay)
	netWidth := lipgloss.Width(netDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + netWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + netDisplay
	} else {
		// Three-column layout: Account | Title (centered) | Network
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding

		headerLine = addrDisplay + strings.Repeat(" ", max(1, leftPadding)) + titleText + strings.Repeat(" ", max(1, rightPadding)) + netDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// noticeLine renders the controller's latest notice
func (m *model) noticeLine() string {
	n := m.state.Notice
	if n.Text == "" {
		return ""
	}
	return styles.Notice(int(n.Level), n.Text)
}

func (m *model) View() string {
	if m.approval != nil && m.approvalForm != nil {
		return m.renderApprovalDialog()
	}
	if m.showQR {
		return m.renderQRPanel()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())

	var pageContent string
	var nav string

	switch m.activePage {
	case pageSettings:
		pageContent = panelStyle.Width(max(0, m.w-2)).Render(settings.Render(m.cfg, m.configPath))
		nav = settings.Nav(m.w - 2)

	default:
		ballotContent := ballotview.Render(m.state, m.selected, m.spin.View())

		if m.adding {
			inputView := m.input.View() + "\n"
			if m.submitting {
				inputView += m.spin.View() + " submitting…\n"
			}
			inputView += hotkeyStyle.Render("Enter") + " submit   " +
				hotkeyStyle.Render("Esc") + " cancel"
			ballotContent += "\n\n" + panelStyle.
				BorderForeground(cAccent2).
				Render(inputView)
		}

		if notice := m.noticeLine(); notice != "" {
			ballotContent += "\n\n" + notice
		}

		accountContent := account.Render(m.state, m.cfg.ExplorerURL, m.copiedMsg)

		// split 60/40
		listWidth := max(0, (m.w*6)/10-2)
		accountWidth := max(0, (m.w*4)/10-2)

		leftPanel := panelStyle.Width(listWidth).Render(ballotContent)
		rightPanel := panelStyle.
			Width(accountWidth + 1).
			Height(max(0, lipgloss.Height(leftPanel)-2)).
			Render(accountContent)

		pageContent = lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)
		nav = ballotview.Nav(m.w-2, m.state, m.adding)
	}

	sections := []string{headerPanel, pageContent, nav}

	// Render log panel only if enabled
	if m.logEnabled {
		m.logViewport.Height = logview.PanelHeight(m.h)
		sections = append(sections, logview.Render(m.w, m.h, m.state, m.logReady, m.logSpinner.View(), m.logViewport))
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

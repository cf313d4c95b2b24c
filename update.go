package main

import (
	"errors"
	"fmt"
	"strings"

	"charm-voting-tui/chainerr"
	"charm-voting-tui/config"
	"charm-voting-tui/helpers"
	"charm-voting-tui/voting"
	"charm-voting-tui/wallet"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempApprove    bool
	tempPassphrase string
)

func (m *model) createApprovalForm(req wallet.ApprovalRequest) tea.Cmd {
	tempApprove = true
	tempPassphrase = ""

	var fields []huh.Field
	if req.NeedsSecret {
		fields = append(fields,
			huh.NewInput().
				Title("Keystore Passphrase").
				Description("Unlocks "+req.Account.Hex()).
				EchoMode(huh.EchoModePassword).
				Value(&tempPassphrase),
		)
	}
	fields = append(fields,
		huh.NewConfirm().
			Title("Connect "+helpers.ShortenAddr(req.Account.Hex())+"?").
			Description(fmt.Sprintf("Allow this app to sign voting transactions on chain %s", req.ChainID)).
			Affirmative("Approve").
			Negative("Reject").
			Value(&tempApprove),
	)

	m.approvalForm = huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin())
	return m.approvalForm.Init()
}

// answerApproval unblocks the wallet waiting on the prompt
func (m *model) answerApproval(approved bool) {
	if m.approval == nil {
		return
	}
	reply := approvalReply{approval: wallet.Approval{Passphrase: tempPassphrase}}
	if !approved {
		reply = approvalReply{err: errDeclined}
	}
	m.approval.reply <- reply
	m.approval = nil
	m.approvalForm = nil
	tempPassphrase = ""

	if approved {
		m.addLog("info", "Wallet access approved")
	} else {
		m.addLog("warning", "Wallet access declined")
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var formCmd tea.Cmd

	// The approval form owns the keyboard while open; other messages still flow.
	if m.approval != nil && m.approvalForm != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.answerApproval(false)
				return m, nil
			case "ctrl+c":
				return m, m.shutdown()
			}
		}

		form, cmd := m.approvalForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.approvalForm = f
			switch m.approvalForm.State {
			case huh.StateCompleted:
				m.answerApproval(tempApprove)
			case huh.StateAborted:
				m.answerApproval(false)
			}
		}
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		formCmd = cmd
	}

	return m, tea.Batch(formCmd, m.handle(msg))
}

func (m *model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return nil
		}
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return nil

	case stateChangedMsg:
		m.state = m.ctrl.State()
		m.selected = helpers.Clamp(m.selected, len(m.state.Candidates))
		if m.state.LastTx == (common.Hash{}) {
			m.showQR = false
		}
		m.updateLogViewport()
		return waitForChange(m.changes.ch)

	case approvalRequestedMsg:
		prompt := msg.prompt
		m.approval = &prompt
		m.addLog("info", "Wallet approval requested for "+helpers.ShortenAddr(prompt.req.Account.Hex()))
		return tea.Batch(m.createApprovalForm(prompt.req), waitForApproval(m.approver.prompts))

	case connectedMsg:
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("Connection failed: %s", chainerr.Message(msg.err)))
			return nil
		}
		m.selected = 0
		m.addLog("success", fmt.Sprintf("Connected `%s`", helpers.ShortenAddr(msg.account.Hex())))
		return nil

	case writeDoneMsg:
		if msg.op == "addCandidate" {
			m.submitting = false
			if msg.err == nil {
				m.input.SetValue("")
				m.input.Blur()
				m.adding = false
			}
		}
		if msg.err != nil {
			m.addLog("error", fmt.Sprintf("%s failed: %v", msg.op, msg.err))
		} else {
			m.addLog("success", msg.op+" confirmed")
		}
		return nil

	case winnerMsg:
		if msg.err != nil {
			m.addLog("warning", "Winner lookup failed: "+msg.err.Error())
		} else {
			m.addLog("success", "Winner: "+msg.name)
		}
		return nil

	case syncedMsg:
		if msg.err != nil && !errors.Is(msg.err, voting.ErrNotConnected) {
			m.addLog("warning", "Refresh incomplete: "+msg.err.Error())
		}
		return nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height

		if m.logEnabled {
			// Width accounts for border and padding
			m.logViewport.Width = max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		// Update log spinner too if log is enabled but not ready
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return tea.Batch(cmds...)

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied " + msg.what + "!"
		m.addLog("info", "Copied "+msg.what+" to clipboard")
		return clearClipboardMsg()

	case clearCopiedMsg:
		m.copiedMsg = ""
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward anything else (cursor blink) to the active input
	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// QR panel first
	if m.showQR {
		switch msg.String() {
		case "ctrl+c":
			return m.shutdown()
		case "t":
			return copyToClipboard(m.state.LastTx.Hex(), "transaction hash")
		case "esc", "q", "enter":
			m.showQR = false
		}
		return nil
	}

	// add-candidate input
	if m.adding {
		switch msg.String() {
		case "ctrl+c":
			return m.shutdown()
		case "esc":
			if !m.submitting {
				m.adding = false
				m.input.Blur()
			}
			return nil
		case "enter":
			if m.submitting {
				return nil
			}
			m.submitting = true
			name := strings.TrimSpace(m.input.Value())
			m.addLog("info", fmt.Sprintf("Submitting candidate `%s`", name))
			return addCandidate(m.ctx, m.ctrl, name)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	// global keys
	switch msg.String() {
	case "ctrl+c":
		return m.shutdown()

	case "esc":
		if m.activePage != pageBallot {
			m.activePage = pageBallot
			return nil
		}
		return m.shutdown()

	case "l", "L":
		return m.toggleLogger()

	case "s":
		if m.activePage == pageSettings {
			m.activePage = pageBallot
		} else {
			m.activePage = pageSettings
		}
		return nil

	case "pageup", "pagedown":
		// Allow scrolling in log viewport when enabled
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return cmd
		}
		return nil
	}

	if m.activePage != pageBallot {
		return nil
	}

	st := m.state
	switch msg.String() {
	case "c":
		m.addLog("info", "Connecting wallet…")
		return connectWallet(m.ctx, m.ctrl)

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(st.Candidates)-1 {
			m.selected++
		}

	case "enter", "v":
		if !st.Connected {
			return nil
		}
		m.addLog("info", fmt.Sprintf("Voting for #%d", m.selected))
		return castVote(m.ctx, m.ctrl, m.selected)

	case "a":
		if !st.IsOwner {
			m.addLog("warning", "Only the contract owner can add candidates")
			return nil
		}
		m.adding = true
		m.input.SetValue("")
		m.input.Focus()
		return textinput.Blink

	case "w":
		return requestWinner(m.ctx, m.ctrl)

	case "r":
		return refresh(m.ctx, m.ctrl)

	case "y":
		if st.Connected {
			return copyToClipboard(st.Account.Hex(), "account")
		}

	case "t":
		if st.LastTx != (common.Hash{}) {
			return copyToClipboard(st.LastTx.Hex(), "transaction hash")
		}

	case "q":
		if st.LastTx != (common.Hash{}) {
			m.showQR = true
		}
	}
	return nil
}

// toggleLogger shows or hides the log panel and persists the choice
func (m *model) toggleLogger() tea.Cmd {
	m.logEnabled = !m.logEnabled

	fileCfg := config.LoadOrCreate(m.configPath)
	fileCfg.Logger = m.logEnabled
	if err := config.Save(m.configPath, fileCfg); err != nil {
		m.logger.Error("save config", "err", err)
	}

	if m.logEnabled {
		if m.w > 0 {
			m.logViewport.Width = m.w - 6
		}
		m.logReady = false
		return tea.Batch(initLogViewport(), m.logSpinner.Tick)
	}
	// Clear logs when disabling
	m.logBuffer.Reset()
	m.logReady = false
	return nil
}

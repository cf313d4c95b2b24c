package main

import (
	"context"
	"time"

	"charm-voting-tui/voting"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// waitForChange blocks until the controller reports a change
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return stateChangedMsg{}
	}
}

// waitForApproval blocks until the wallet asks the user for approval
func waitForApproval(prompts <-chan approvalPrompt) tea.Cmd {
	return func() tea.Msg {
		return approvalRequestedMsg{prompt: <-prompts}
	}
}

// connectWallet runs the connection flow, including the first synchronization
func connectWallet(ctx context.Context, c *voting.Controller) tea.Cmd {
	return func() tea.Msg {
		account, err := c.Connect(ctx)
		return connectedMsg{account: account, err: err}
	}
}

// castVote submits a vote and waits for it to confirm
func castVote(ctx context.Context, c *voting.Controller, index int) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{op: "vote", err: c.Vote(ctx, index)}
	}
}

// addCandidate submits a new candidate and waits for it to confirm
func addCandidate(ctx context.Context, c *voting.Controller, name string) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{op: "addCandidate", err: c.AddCandidate(ctx, name)}
	}
}

// requestWinner asks the contract for the current winner
func requestWinner(ctx context.Context, c *voting.Controller) tea.Cmd {
	return func() tea.Msg {
		name, err := c.RequestWinner(ctx)
		return winnerMsg{name: name, err: err}
	}
}

// refresh re-reads the contract
func refresh(ctx context.Context, c *voting.Controller) tea.Cmd {
	return func() tea.Msg {
		return syncedMsg{err: c.Synchronize(ctx)}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		if err == nil {
			return clipboardCopiedMsg{what: what}
		}
		return nil
	}
}

// clearClipboardMsg waits 2 seconds then sends a message to clear clipboard feedback
func clearClipboardMsg() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a UI-side log entry
func (m *model) addLog(logType, message string) {
	if m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logEnabled || !m.logReady || m.logBuffer == nil {
		return
	}

	m.logViewport.SetContent(m.logBuffer.String())
	// Scroll to bottom to show latest entries
	m.logViewport.GotoBottom()
}


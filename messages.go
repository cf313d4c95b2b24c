package main

import (
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// stateChangedMsg signals that the voting session changed
type stateChangedMsg struct{}

// approvalRequestedMsg carries a wallet approval the user must answer
type approvalRequestedMsg struct {
	prompt approvalPrompt
}

// connectedMsg contains the result of a connect attempt
type connectedMsg struct {
	account common.Address
	err     error
}

// writeDoneMsg contains the result of a vote or candidate submission
type writeDoneMsg struct {
	op  string // "vote" or "addCandidate"
	err error
}

// winnerMsg contains the result of a winner lookup
type winnerMsg struct {
	name string
	err  error
}

// syncedMsg contains the result of a user-initiated refresh
type syncedMsg struct {
	err error
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
}

// clearCopiedMsg clears clipboard feedback
type clearCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

package voting

import "errors"

// Client-side rejections; none of these contact the contract.
var (
	ErrNotConnected     = errors.New("wallet not connected")
	ErrBusy             = errors.New("another operation is in progress")
	ErrAlreadyVoted     = errors.New("already voted")
	ErrEmptyName        = errors.New("candidate name is empty")
	ErrUnknownCandidate = errors.New("no candidate at that position")
)

package chainerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure at the wallet or contract boundary
type Kind int

const (
	KindUnknown Kind = iota
	KindNoProvider
	KindWrongNetwork
	KindUserRejected
	KindRemoteRead
	KindWriteRejected
	KindTimeout
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNoProvider:
		return "no provider"
	case KindWrongNetwork:
		return "wrong network"
	case KindUserRejected:
		return "user rejected"
	case KindRemoteRead:
		return "remote read failure"
	case KindWriteRejected:
		return "write rejected"
	case KindTimeout:
		return "transaction timeout"
	case KindNetwork:
		return "network error"
	default:
		return "unknown"
	}
}

// Error is a normalized wallet/contract failure
type Error struct {
	Kind   Kind
	Op     string // remote operation, e.g. "vote" or "proposalCount"
	Reason string // remote-provided reason (revert string), if any
	// Reverted is set when the contract itself refused the call, with or without a reason.
	Reverted bool
	Err      error
}

// Sentinels for errors.Is; matching compares Kind only.
var (
	ErrNoProvider    = &Error{Kind: KindNoProvider}
	ErrWrongNetwork  = &Error{Kind: KindWrongNetwork}
	ErrUserRejected  = &Error{Kind: KindUserRejected}
	ErrRemoteRead    = &Error{Kind: KindRemoteRead}
	ErrWriteRejected = &Error{Kind: KindWriteRejected}
	ErrTimeout       = &Error{Kind: KindTimeout}
	ErrNetwork       = &Error{Kind: KindNetwork}
)

// New builds an Error of the given kind
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// WithReason builds an Error carrying a remote reason
func WithReason(kind Kind, op, reason string, err error) *Error {
	return &Error{Kind: kind, Op: op, Reason: reason, Err: err}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Revert builds an Error for a call the contract refused
func Revert(kind Kind, op, reason string, err error) *Error {
	return &Error{Kind: kind, Op: op, Reason: reason, Reverted: true, Err: err}
}

// IsRevert reports whether err is a contract-level refusal
func IsRevert(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Reverted
}

// ReasonOf returns the remote reason carried by err, if any
func ReasonOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}

// Message renders err for the user: the remote reason when present, otherwise a
// generic message for its kind.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if reason := ReasonOf(err); reason != "" {
		return reason
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case KindNoProvider:
		return "No wallet provider found. Configure an RPC URL and a key source."
	case KindWrongNetwork:
		return "Connected to the wrong network."
	case KindUserRejected:
		return "Request rejected in the wallet."
	case KindTimeout:
		return "Timed out waiting for the transaction to confirm."
	case KindNetwork:
		return "Network error while talking to the node."
	case KindWriteRejected:
		return "Transaction was rejected by the contract."
	case KindRemoteRead:
		return "Could not read from the contract."
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s failed", e.Op)
}

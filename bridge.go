package main

import (
	"context"
	"errors"
	"strings"
	"sync"

	"charm-voting-tui/chainerr"
	"charm-voting-tui/wallet"
)

// -------------------- BRIDGES --------------------
// The controller runs inside tea.Cmd goroutines; these types carry its callbacks
// back into the Update loop.

// approvalPrompt is a pending wallet approval waiting for the user
type approvalPrompt struct {
	req   wallet.ApprovalRequest
	reply chan approvalReply
}

type approvalReply struct {
	approval wallet.Approval
	err      error
}

// tuiApprover forwards approval requests to the UI and blocks until answered
type tuiApprover struct {
	prompts chan approvalPrompt
}

func newTUIApprover() *tuiApprover {
	return &tuiApprover{prompts: make(chan approvalPrompt)}
}

func (a *tuiApprover) Approve(ctx context.Context, req wallet.ApprovalRequest) (wallet.Approval, error) {
	p := approvalPrompt{req: req, reply: make(chan approvalReply, 1)}
	select {
	case a.prompts <- p:
	case <-ctx.Done():
		return wallet.Approval{}, ctx.Err()
	}

	select {
	case r := <-p.reply:
		return r.approval, r.err
	case <-ctx.Done():
		return wallet.Approval{}, ctx.Err()
	}
}

var errDeclined = chainerr.WithReason(chainerr.KindUserRejected, "approve", "Connection request declined.", errors.New("declined by user"))

// changeNotifier coalesces controller notifications; the UI re-reads the snapshot
type changeNotifier struct {
	ch chan struct{}
}

func newChangeNotifier() *changeNotifier {
	return &changeNotifier{ch: make(chan struct{}, 1)}
}

func (n *changeNotifier) notify() {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// logBuffer is the log panel's backing store; the controller writes from command
// goroutines while View reads.
type logBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (l *logBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *logBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

func (l *logBuffer) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.b.Reset()
}

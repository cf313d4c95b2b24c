package voting

import (
	"context"
	"fmt"
	"strings"

	"charm-voting-tui/ballot"
	"charm-voting-tui/chainerr"

	"github.com/charmbracelet/log"
)

// Vote casts a vote for the candidate at index and waits for confirmation. Checks made
// here are advisory; the contract has the final say.
func (c *Controller) Vote(ctx context.Context, index int) error {
	c.mu.Lock()
	err := c.s.checkWrite()
	if err == nil && c.s.hasVoted {
		err = ErrAlreadyVoted
	}
	if err == nil && (index < 0 || index >= len(c.s.candidates)) {
		err = fmt.Errorf("%w: %d", ErrUnknownCandidate, index)
	}
	if err != nil {
		c.s.notify(NoticeError, "Voting failed: "+userMessage(err))
		c.mu.Unlock()
		c.changed()
		return err
	}
	c.s.writing = OpVoting
	w := c.beginWrite()
	c.mu.Unlock()
	c.changed()

	w.log.Info("voting", "index", index)
	err = c.submit(ctx, w, func(ctx context.Context) (ballot.Transaction, error) {
		return w.contract.Vote(ctx, uint64(index))
	})
	if err != nil {
		c.apply(w.epoch, func(s *session) {
			s.writing = OpNone
			s.notify(NoticeError, "Voting failed: "+chainerr.Message(err))
		})
		return err
	}

	c.apply(w.epoch, func(s *session) {
		s.writing = OpNone
		s.hasVoted = true
		s.notify(NoticeSuccess, "Vote confirmed")
		s.syncing++
	})
	_ = c.runSync(ctx, w.epoch)
	return nil
}

// AddCandidate registers a new candidate and waits for confirmation. Only the owner may
// add candidates; that rule is left to the contract.
func (c *Controller) AddCandidate(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	err := c.s.checkWrite()
	if err == nil && name == "" {
		err = ErrEmptyName
	}
	if err != nil {
		c.s.notify(NoticeError, "Add failed: "+userMessage(err))
		c.mu.Unlock()
		c.changed()
		return err
	}
	c.s.writing = OpSubmittingCandidate
	w := c.beginWrite()
	c.mu.Unlock()
	c.changed()

	w.log.Info("adding candidate", "name", name)
	err = c.submit(ctx, w, func(ctx context.Context) (ballot.Transaction, error) {
		return w.contract.AddCandidate(ctx, name)
	})
	if err != nil {
		c.apply(w.epoch, func(s *session) {
			s.writing = OpNone
			s.notify(NoticeError, "Add failed: "+chainerr.Message(err))
		})
		return err
	}

	c.apply(w.epoch, func(s *session) {
		s.writing = OpNone
		s.notify(NoticeSuccess, "Candidate added!")
		s.syncing++
	})
	_ = c.runSync(ctx, w.epoch)
	return nil
}

// checkWrite enforces one write at a time on a connected session
func (s *session) checkWrite() error {
	if !s.connected {
		return ErrNotConnected
	}
	if op := s.pending(); op != OpNone {
		return fmt.Errorf("%w (%s)", ErrBusy, op)
	}
	return nil
}

type write struct {
	epoch    uint64
	contract Contract
	log      *log.Logger
}

// beginWrite captures what a write needs; c.mu must be held.
func (c *Controller) beginWrite() write {
	return write{epoch: c.s.epoch, contract: c.s.contract, log: c.log}
}

// submit sends the transaction and waits for it to be mined. The hash is recorded as
// soon as it is known, so it survives a failed confirmation.
func (c *Controller) submit(ctx context.Context, w write, send func(context.Context) (ballot.Transaction, error)) error {
	tx, err := send(ctx)
	if err != nil {
		w.log.Error("submission failed", "kind", chainerr.KindOf(err), "err", err)
		return err
	}

	hash := tx.Hash()
	c.apply(w.epoch, func(s *session) { s.lastTx = hash })
	w.log.Info("submitted", "tx", hash.Hex())

	if err := tx.Wait(ctx); err != nil {
		w.log.Error("confirmation failed", "tx", hash.Hex(), "kind", chainerr.KindOf(err), "err", err)
		return err
	}
	w.log.Info("confirmed", "tx", hash.Hex())
	return nil
}

// userMessage renders a client-side rejection
func userMessage(err error) string {
	switch {
	case chainerr.KindOf(err) != chainerr.KindUnknown:
		return chainerr.Message(err)
	default:
		return err.Error()
	}
}

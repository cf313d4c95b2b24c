package voting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm-voting-tui/chainerr"
)

// maxCandidates bounds the proposal count accepted from the contract
const maxCandidates = 10000

// Synchronize re-reads the candidates, the vote status and the owner. It may overlap
// a synchronization already in flight; the last one to finish wins.
func (c *Controller) Synchronize(ctx context.Context) error {
	c.mu.Lock()
	if !c.s.connected {
		c.mu.Unlock()
		return ErrNotConnected
	}
	c.s.syncing++
	epoch := c.s.epoch
	c.mu.Unlock()
	c.changed()

	return c.runSync(ctx, epoch)
}

// runSync reads the three groups independently. A failed group is logged and leaves its
// field as it was, except the owner flag which falls back to false. The caller has
// already counted this run in session.syncing.
func (c *Controller) runSync(ctx context.Context, epoch uint64) error {
	c.mu.Lock()
	contract, account, logger := c.s.contract, c.s.account, c.log
	c.mu.Unlock()

	defer c.apply(epoch, func(s *session) {
		s.syncing--
		s.synced = true
		s.lastSync = time.Now()
	})

	var errs []error

	candidates, err := readCandidates(ctx, contract)
	if err != nil {
		logger.Warn("candidates not refreshed", "err", err)
		errs = append(errs, err)
	} else {
		c.apply(epoch, func(s *session) { s.candidates = candidates })
		logger.Debug("candidates", "count", len(candidates))
	}

	voted, err := contract.HasVote(ctx, account)
	if err != nil {
		logger.Warn("vote status not refreshed", "err", err)
		errs = append(errs, err)
	} else if voted {
		c.apply(epoch, func(s *session) { s.hasVoted = true })
	}

	owner, err := contract.Owner(ctx)
	isOwner := err == nil && strings.EqualFold(owner.Hex(), account.Hex())
	if err != nil {
		logger.Warn("owner lookup failed", "err", err)
		errs = append(errs, err)
	}
	c.apply(epoch, func(s *session) { s.isOwner = isOwner })

	if len(errs) > 0 {
		return fmt.Errorf("synchronize: %w", errors.Join(errs...))
	}
	return nil
}

// readCandidates reads proposals 0..count-1 in order. The result replaces the session's
// list only when every read succeeded.
func readCandidates(ctx context.Context, contract Contract) ([]Candidate, error) {
	count, err := contract.ProposalCount(ctx)
	if err != nil {
		return nil, err
	}
	if count > maxCandidates {
		return nil, chainerr.New(chainerr.KindRemoteRead, "proposalCount", fmt.Errorf("count %d exceeds %d", count, maxCandidates))
	}
	candidates := make([]Candidate, 0, count)
	for i := uint64(0); i < count; i++ {
		p, err := contract.Proposal(ctx, i)
		if err != nil {
			return nil, fmt.Errorf("proposal %d: %w", i, err)
		}
		candidates = append(candidates, p)
	}
	return candidates, nil
}

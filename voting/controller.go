package voting

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"

	"charm-voting-tui/ballot"
	"charm-voting-tui/chainerr"
	"charm-voting-tui/helpers"
	"charm-voting-tui/wallet"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// Provider is the wallet as seen by the session
type Provider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Signer(ctx context.Context) (*wallet.Signer, error)
}

// Contract is the remote ballot surface the session drives
type Contract interface {
	ProposalCount(ctx context.Context) (uint64, error)
	Proposal(ctx context.Context, index uint64) (ballot.Candidate, error)
	HasVote(ctx context.Context, addr common.Address) (bool, error)
	Owner(ctx context.Context) (common.Address, error)
	GetWinner(ctx context.Context) (string, error)
	Vote(ctx context.Context, index uint64) (ballot.Transaction, error)
	AddCandidate(ctx context.Context, name string) (ballot.Transaction, error)
}

// Options wires a Controller
type Options struct {
	Network Network
	// Discover locates the wallet provider; it fails with a NoProvider-kind error
	// when none is available.
	Discover func(ctx context.Context) (Provider, error)
	// Bind builds the contract binding for a signing identity.
	Bind     func(signer *wallet.Signer) (Contract, error)
	Logger   *log.Logger
	OnChange func()
}

// Controller owns the voting session. All methods are safe for concurrent use;
// remote calls run outside the lock.
type Controller struct {
	net      Network
	discover func(ctx context.Context) (Provider, error)
	bind     func(signer *wallet.Signer) (Contract, error)
	onChange func()

	root *log.Logger

	mu       sync.Mutex
	s        session
	log      *log.Logger // root plus the current session id
	provider Provider
}

// New creates a disconnected controller
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		net:      opts.Network,
		discover: opts.Discover,
		bind:     opts.Bind,
		onChange: opts.OnChange,
		root:     logger,
		log:      logger,
	}
}

// State returns a snapshot of the session
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.snapshot()
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// apply mutates the session if it still belongs to epoch
func (c *Controller) apply(epoch uint64, fn func(s *session)) bool {
	c.mu.Lock()
	ok := c.s.epoch == epoch
	if ok {
		fn(&c.s)
	}
	c.mu.Unlock()
	if ok {
		c.changed()
	}
	return ok
}

func (c *Controller) logger() *log.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log
}

// Connect acquires a validated signing identity and binds the contract. On success the
// session is reset for the new account and synchronized once; on failure the previous
// session is left as it was.
func (c *Controller) Connect(ctx context.Context) (common.Address, error) {
	c.mu.Lock()
	if op := c.s.pending(); op != OpNone {
		c.mu.Unlock()
		return common.Address{}, fmt.Errorf("connect: %w (%s)", ErrBusy, op)
	}
	c.s.connecting = true
	c.mu.Unlock()
	c.changed()

	logger := c.root.With("session", uuid.NewString()[:8])
	logger.Info("connecting wallet")

	provider, signer, contract, err := c.establish(ctx)

	c.mu.Lock()
	c.s.connecting = false
	if err != nil {
		c.s.notify(NoticeError, chainerr.Message(err))
		c.mu.Unlock()
		c.changed()
		logger.Error("connection failed", "kind", chainerr.KindOf(err), "err", err)
		if provider != c.currentProvider() {
			closeProvider(provider)
		}
		return common.Address{}, err
	}

	old := c.provider
	c.provider = provider
	c.log = logger
	c.s = session{
		account:   signer.Address,
		connected: true,
		chainID:   c.net.ChainID,
		contract:  contract,
		epoch:     c.s.epoch + 1,
		syncing:   1,
		notice:    c.s.notice,
	}
	c.s.notify(NoticeSuccess, "Connected as "+helpers.ShortenAddr(signer.Address.Hex()))
	epoch := c.s.epoch
	c.mu.Unlock()
	c.changed()

	if old != provider {
		closeProvider(old)
	}
	logger.Info("connected", "account", signer.Address.Hex(), "chain", c.net.ChainID)

	// account and binding exist: first synchronization
	_ = c.runSync(ctx, epoch)
	return signer.Address, nil
}

func (c *Controller) establish(ctx context.Context) (Provider, *wallet.Signer, Contract, error) {
	if c.discover == nil {
		return nil, nil, nil, chainerr.ErrNoProvider
	}
	provider, err := c.discover(ctx)
	if err != nil {
		if chainerr.KindOf(err) == chainerr.KindUnknown {
			err = chainerr.New(chainerr.KindNoProvider, "connect", err)
		}
		return nil, nil, nil, err
	}
	if provider == nil {
		return nil, nil, nil, chainerr.ErrNoProvider
	}

	chainID, err := provider.ChainID(ctx)
	if err != nil {
		return provider, nil, nil, err
	}
	if err := c.net.ValidateNetwork(chainID); err != nil {
		return provider, nil, nil, err
	}

	signer, err := provider.Signer(ctx)
	if err != nil {
		return provider, nil, nil, err
	}

	contract, err := c.bind(signer)
	if err != nil {
		return provider, nil, nil, fmt.Errorf("bind contract: %w", err)
	}
	return provider, signer, contract, nil
}

// Close releases the wallet provider
func (c *Controller) Close() {
	c.mu.Lock()
	p := c.provider
	c.provider = nil
	c.mu.Unlock()
	closeProvider(p)
}

func (c *Controller) currentProvider() Provider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provider
}

func closeProvider(p Provider) {
	if cl, ok := p.(interface{ Close() }); ok {
		cl.Close()
	}
}

// RequestWinner reads the winner. Failure leaves the winner field as it was.
func (c *Controller) RequestWinner(ctx context.Context) (string, error) {
	c.mu.Lock()
	if !c.s.connected {
		c.mu.Unlock()
		return "", ErrNotConnected
	}
	contract, epoch, logger := c.s.contract, c.s.epoch, c.log
	c.mu.Unlock()

	winner, err := contract.GetWinner(ctx)
	if err != nil {
		logger.Warn("winner lookup failed", "err", err)
		c.apply(epoch, func(s *session) {
			s.notify(NoticeError, winnerFailure(err, s.isOwner))
		})
		return "", err
	}

	c.apply(epoch, func(s *session) {
		s.winner = winner
		s.hasWinner = true
	})
	logger.Info("winner", "name", winner)
	return winner, nil
}

// winnerFailure prefers the contract's own reason; a reasonless failure for a
// non-owner is reported as the access rule the contract enforces.
func winnerFailure(err error, isOwner bool) string {
	if reason := chainerr.ReasonOf(err); reason != "" {
		return "Winner unavailable: " + reason
	}
	if !isOwner && chainerr.IsRevert(err) {
		return "Only the contract owner can call this"
	}
	return "Winner lookup failed: " + chainerr.Message(err)
}

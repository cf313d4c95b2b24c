package ballot

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"charm-voting-tui/chainerr"
	"charm-voting-tui/wallet"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Candidate is one proposal as stored by the contract
type Candidate struct {
	Name  string
	Votes uint64
}

// Transaction is a submitted write awaiting confirmation
type Transaction interface {
	Hash() common.Hash
	// Wait blocks until the transaction is mined and fails if it reverted.
	Wait(ctx context.Context) error
}

type transactor interface {
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// Binding couples the voting contract to one signing identity
type Binding struct {
	address  common.Address
	abi      abi.ABI
	from     common.Address
	caller   ethereum.ContractCaller
	contract transactor
	opts     *bind.TransactOpts
	receipts bind.DeployBackend

	confirmTimeout time.Duration
}

// Option configures a Binding
type Option func(*Binding)

// WithConfirmTimeout bounds the confirmation wait of every transaction
func WithConfirmTimeout(d time.Duration) Option {
	return func(b *Binding) { b.confirmTimeout = d }
}

// Bind builds a binding without touching the network. The descriptor and address are
// compile-time constants, so a parse failure is a programming error.
func Bind(address common.Address, descriptor string, signer *wallet.Signer, opts ...Option) (*Binding, error) {
	if signer == nil || signer.Backend == nil || signer.Opts == nil {
		return nil, errors.New("ballot: incomplete signer")
	}
	parsed, err := abi.JSON(strings.NewReader(descriptor))
	if err != nil {
		return nil, fmt.Errorf("ballot: parse descriptor: %w", err)
	}
	contract := bind.NewBoundContract(address, parsed, signer.Backend, signer.Backend, signer.Backend)
	return newBinding(address, parsed, signer.Address, signer.Backend, contract, signer.Opts, signer.Backend, opts...), nil
}

func newBinding(address common.Address, parsed abi.ABI, from common.Address, caller ethereum.ContractCaller, contract transactor, txOpts *bind.TransactOpts, receipts bind.DeployBackend, opts ...Option) *Binding {
	b := &Binding{
		address:  address,
		abi:      parsed,
		from:     from,
		caller:   caller,
		contract: contract,
		opts:     txOpts,
		receipts: receipts,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Address returns the bound contract address
func (b *Binding) Address() common.Address { return b.address }

// From returns the signing account
func (b *Binding) From() common.Address { return b.from }

// call performs an eth_call and unpacks the outputs
func (b *Binding) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	input, err := b.abi.Pack(method, args...)
	if err != nil {
		return nil, readError(method, err)
	}

	msg := ethereum.CallMsg{
		From: b.from,
		To:   &b.address,
		Data: input,
	}
	out, err := b.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, readError(method, err)
	}
	if len(out) == 0 {
		return nil, readError(method, errors.New("empty result (no contract at address?)"))
	}

	values, err := b.abi.Unpack(method, out)
	if err != nil {
		return nil, readError(method, err)
	}
	return values, nil
}

// ProposalCount returns the number of proposals
func (b *Binding) ProposalCount(ctx context.Context) (uint64, error) {
	out, err := b.call(ctx, "proposalCount")
	if err != nil {
		return 0, err
	}
	return toUint64("proposalCount", out[0])
}

// Proposal returns the proposal at index
func (b *Binding) Proposal(ctx context.Context, index uint64) (Candidate, error) {
	out, err := b.call(ctx, "proposal", new(big.Int).SetUint64(index))
	if err != nil {
		return Candidate{}, err
	}
	if len(out) != 2 {
		return Candidate{}, readError("proposal", fmt.Errorf("expected 2 outputs, got %d", len(out)))
	}
	name, ok := out[0].(string)
	if !ok {
		return Candidate{}, readError("proposal", fmt.Errorf("unexpected name type %T", out[0]))
	}
	votes, err := toUint64("proposal", out[1])
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Name: name, Votes: votes}, nil
}

// HasVote reports whether addr already voted
func (b *Binding) HasVote(ctx context.Context, addr common.Address) (bool, error) {
	out, err := b.call(ctx, "hasVote", addr)
	if err != nil {
		return false, err
	}
	voted, ok := out[0].(bool)
	if !ok {
		return false, readError("hasVote", fmt.Errorf("unexpected type %T", out[0]))
	}
	return voted, nil
}

// Owner returns the contract owner
func (b *Binding) Owner(ctx context.Context) (common.Address, error) {
	out, err := b.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, readError("owner", fmt.Errorf("unexpected type %T", out[0]))
	}
	return owner, nil
}

// GetWinner returns the leading proposal's name. The contract restricts it to the owner.
func (b *Binding) GetWinner(ctx context.Context) (string, error) {
	out, err := b.call(ctx, "getWinner")
	if err != nil {
		return "", err
	}
	winner, ok := out[0].(string)
	if !ok {
		return "", readError("getWinner", fmt.Errorf("unexpected type %T", out[0]))
	}
	return winner, nil
}

// Vote submits a vote for the proposal at index
func (b *Binding) Vote(ctx context.Context, index uint64) (Transaction, error) {
	return b.transact(ctx, "vote", new(big.Int).SetUint64(index))
}

// AddCandidate submits a new proposal
func (b *Binding) AddCandidate(ctx context.Context, name string) (Transaction, error) {
	return b.transact(ctx, "addCandidate", name)
}

func (b *Binding) transact(ctx context.Context, method string, args ...interface{}) (Transaction, error) {
	opts := *b.opts
	opts.Context = ctx

	tx, err := b.contract.Transact(&opts, method, args...)
	if err != nil {
		return nil, writeError(method, err)
	}
	return &pendingTx{
		op:      method,
		tx:      tx,
		binding: b,
		timeout: b.confirmTimeout,
	}, nil
}

type pendingTx struct {
	op      string
	tx      *types.Transaction
	binding *Binding
	timeout time.Duration
}

func (p *pendingTx) Hash() common.Hash { return p.tx.Hash() }

func (p *pendingTx) Wait(ctx context.Context) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// polls once a second and rides out failed lookups until ctx ends
	receipt, err := bind.WaitMinedHash(ctx, p.binding.receipts, p.tx.Hash())
	if err != nil {
		return waitError(p.op, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		reason := p.replay(ctx, receipt)
		return chainerr.Revert(chainerr.KindWriteRejected, p.op, reason, errors.New("transaction reverted"))
	}
	return nil
}

// replay re-executes a reverted transaction at its block to recover the revert reason.
func (p *pendingTx) replay(ctx context.Context, receipt *types.Receipt) string {
	to := p.tx.To()
	if to == nil {
		return ""
	}
	msg := ethereum.CallMsg{
		From:  p.binding.from,
		To:    to,
		Gas:   p.tx.Gas(),
		Value: p.tx.Value(),
		Data:  p.tx.Data(),
	}
	_, err := p.binding.caller.CallContract(ctx, msg, receipt.BlockNumber)
	reason, _ := revertReason(err)
	return reason
}

func toUint64(op string, v interface{}) (uint64, error) {
	n, ok := v.(*big.Int)
	if !ok {
		return 0, readError(op, fmt.Errorf("unexpected type %T", v))
	}
	if n.Sign() < 0 || !n.IsUint64() {
		return 0, readError(op, fmt.Errorf("value %s out of range", n))
	}
	return n.Uint64(), nil
}

package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"charm-voting-tui/chainerr"
	"charm-voting-tui/config"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Backend is everything a signing identity needs from the node
type Backend interface {
	bind.ContractBackend
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Signer is an unlocked signing identity bound to one account
type Signer struct {
	Address common.Address
	ChainID *big.Int
	Backend Backend
	Opts    *bind.TransactOpts
}

// ApprovalRequest describes what the user is asked to authorize
type ApprovalRequest struct {
	Account     common.Address
	ChainID     *big.Int
	NeedsSecret bool // keystore accounts ask for a passphrase
}

// Approval is the user's answer to an ApprovalRequest
type Approval struct {
	Passphrase string
}

// Approver asks the user to authorize access to an account. It may block until the
// user answers and returns a chainerr.ErrUserRejected-kind error when declined.
type Approver interface {
	Approve(ctx context.Context, req ApprovalRequest) (Approval, error)
}

// ApproverFunc adapts a function to Approver
type ApproverFunc func(ctx context.Context, req ApprovalRequest) (Approval, error)

func (f ApproverFunc) Approve(ctx context.Context, req ApprovalRequest) (Approval, error) {
	return f(ctx, req)
}

// Provider is the wallet: a node connection plus a local key source
type Provider struct {
	client   *ethclient.Client
	url      string
	keys     keySource
	approver Approver
}

// Open connects to the configured node. Missing configuration or an unreachable node is
// reported as a chainerr.ErrNoProvider-kind error.
func Open(ctx context.Context, cfg config.Config, approver Approver) (*Provider, error) {
	url := strings.TrimSpace(cfg.RPCURL)
	if url == "" {
		return nil, chainerr.WithReason(chainerr.KindNoProvider, "open", "no RPC URL configured (set VOTING_RPC_URL or ETH_RPC_URL)", nil)
	}
	if approver == nil {
		return nil, chainerr.New(chainerr.KindNoProvider, "open", errors.New("no approver"))
	}

	keys, err := newKeySource(cfg)
	if err != nil {
		return nil, err
	}

	client, err := dial(ctx, url, cfg.RPCTimeout())
	if err != nil {
		return nil, chainerr.WithReason(chainerr.KindNoProvider, "open", "cannot reach "+url, err)
	}

	return &Provider{
		client:   client,
		url:      url,
		keys:     keys,
		approver: approver,
	}, nil
}

// dial attempts to connect with a custom timeout; the same timeout bounds every
// subsequent HTTP request made through the client.
func dial(ctx context.Context, url string, timeout time.Duration) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	c, err := rpc.DialOptions(ctx, url, rpc.WithHTTPClient(&http.Client{Timeout: timeout}))
	if err != nil {
		return nil, err
	}
	return ethclient.NewClient(c), nil
}

// URL returns the node endpoint
func (p *Provider) URL() string { return p.url }

// ChainID queries the active network
func (p *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := p.client.ChainID(ctx)
	if err != nil {
		return nil, chainerr.New(chainerr.KindNetwork, "chainId", err)
	}
	return id, nil
}

// Signer asks the user for approval and unlocks the account
func (p *Provider) Signer(ctx context.Context) (*Signer, error) {
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return nil, err
	}

	req := ApprovalRequest{
		Account:     p.keys.account(),
		ChainID:     chainID,
		NeedsSecret: p.keys.needsSecret(),
	}
	approval, err := p.approver.Approve(ctx, req)
	if err != nil {
		if chainerr.KindOf(err) == chainerr.KindUserRejected {
			return nil, err
		}
		return nil, chainerr.New(chainerr.KindUserRejected, "approve", err)
	}

	opts, err := p.keys.transactor(approval, chainID)
	if err != nil {
		return nil, err
	}

	return &Signer{
		Address: opts.From,
		ChainID: chainID,
		Backend: p.client,
		Opts:    opts,
	}, nil
}

// Close releases the node connection
func (p *Provider) Close() {
	if p != nil && p.client != nil {
		p.client.Close()
	}
}

// keySource yields transactors for a single account
type keySource interface {
	account() common.Address
	needsSecret() bool
	transactor(a Approval, chainID *big.Int) (*bind.TransactOpts, error)
}

func newKeySource(cfg config.Config) (keySource, error) {
	if pk := strings.TrimSpace(cfg.PrivateKey); pk != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(pk, "0x"))
		if err != nil {
			return nil, chainerr.WithReason(chainerr.KindNoProvider, "open", "invalid private key", err)
		}
		return &privateKeySource{key: key}, nil
	}

	if cfg.KeystoreDir == "" {
		return nil, chainerr.WithReason(chainerr.KindNoProvider, "open", "no key source configured (set VOTING_KEYSTORE_DIR or VOTING_PRIVATE_KEY)", nil)
	}

	ks := keystore.NewKeyStore(cfg.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	return newKeystoreSource(ks, cfg.Account)
}

func newKeystoreSource(ks *keystore.KeyStore, selector string) (*keystoreSource, error) {
	accs := ks.Accounts()
	if len(accs) == 0 {
		return nil, chainerr.WithReason(chainerr.KindNoProvider, "open", "keystore has no accounts", nil)
	}
	if selector == "" {
		return &keystoreSource{ks: ks, acc: accs[0]}, nil
	}
	want := common.HexToAddress(selector)
	for _, a := range accs {
		if a.Address == want {
			return &keystoreSource{ks: ks, acc: a}, nil
		}
	}
	return nil, chainerr.WithReason(chainerr.KindNoProvider, "open", fmt.Sprintf("account %s not in keystore", want.Hex()), nil)
}

type privateKeySource struct {
	key *ecdsa.PrivateKey
}

func (s *privateKeySource) account() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

func (s *privateKeySource) needsSecret() bool { return false }

func (s *privateKeySource) transactor(_ Approval, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, chainerr.New(chainerr.KindNoProvider, "signer", err)
	}
	return opts, nil
}

type keystoreSource struct {
	ks  *keystore.KeyStore
	acc accounts.Account
}

func (s *keystoreSource) account() common.Address { return s.acc.Address }

func (s *keystoreSource) needsSecret() bool { return true }

func (s *keystoreSource) transactor(a Approval, chainID *big.Int) (*bind.TransactOpts, error) {
	if err := s.ks.Unlock(s.acc, a.Passphrase); err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, chainerr.WithReason(chainerr.KindUserRejected, "unlock", "wrong passphrase", err)
		}
		return nil, chainerr.New(chainerr.KindUserRejected, "unlock", err)
	}
	opts, err := bind.NewKeyStoreTransactorWithChainID(s.ks, s.acc, chainID)
	if err != nil {
		return nil, chainerr.New(chainerr.KindNoProvider, "signer", err)
	}
	return opts, nil
}

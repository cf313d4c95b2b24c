package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"charm-voting-tui/chainerr"
	"charm-voting-tui/config"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
)

// testKey is a throwaway key; never fund it.
const testKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

// newChainServer serves a minimal JSON-RPC endpoint answering eth_chainId.
func newChainServer(t *testing.T, chainID string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_chainId":
			resp["result"] = chainID
		default:
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func approveAll(pass string) Approver {
	return ApproverFunc(func(ctx context.Context, req ApprovalRequest) (Approval, error) {
		return Approval{Passphrase: pass}, nil
	})
}

func TestOpenWithoutProvider(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"no rpc url", config.Config{PrivateKey: testKey}},
		{"no key source", config.Config{RPCURL: "http://127.0.0.1:1"}},
		{"invalid private key", config.Config{RPCURL: "http://127.0.0.1:1", PrivateKey: "zz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.RPCTimeoutSeconds = 1
			p, err := Open(context.Background(), cfg, approveAll(""))
			if p != nil {
				p.Close()
			}
			if !errors.Is(err, chainerr.ErrNoProvider) {
				t.Fatalf("Expected NoProvider, got %v", err)
			}
		})
	}
}

func TestSignerWithPrivateKey(t *testing.T) {
	srv := newChainServer(t, "0xaa36a7")
	cfg := config.DefaultConfig()
	cfg.RPCURL = srv.URL
	cfg.PrivateKey = "0x" + testKey

	p, err := Open(context.Background(), cfg, approveAll(""))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	id, err := p.ChainID(context.Background())
	if err != nil {
		t.Fatalf("ChainID failed: %v", err)
	}
	if id.Uint64() != config.SepoliaChainID {
		t.Errorf("Expected chain id %d, got %s", config.SepoliaChainID, id)
	}

	signer, err := p.Signer(context.Background())
	if err != nil {
		t.Fatalf("Signer failed: %v", err)
	}

	key, _ := crypto.HexToECDSA(testKey)
	want := crypto.PubkeyToAddress(key.PublicKey)
	if signer.Address != want {
		t.Errorf("Expected signer %s, got %s", want.Hex(), signer.Address.Hex())
	}
	if signer.Opts == nil || signer.Opts.From != want {
		t.Error("Transactor not bound to the signer address")
	}
	if signer.Backend == nil {
		t.Error("Signer has no backend")
	}
}

func TestSignerRejected(t *testing.T) {
	srv := newChainServer(t, "0xaa36a7")
	cfg := config.DefaultConfig()
	cfg.RPCURL = srv.URL
	cfg.PrivateKey = testKey

	approvers := map[string]Approver{
		"declined": ApproverFunc(func(ctx context.Context, req ApprovalRequest) (Approval, error) {
			return Approval{}, chainerr.ErrUserRejected
		}),
		"prompt closed": ApproverFunc(func(ctx context.Context, req ApprovalRequest) (Approval, error) {
			return Approval{}, context.Canceled
		}),
	}

	for name, approver := range approvers {
		t.Run(name, func(t *testing.T) {
			p, err := Open(context.Background(), cfg, approver)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer p.Close()

			_, err = p.Signer(context.Background())
			if !errors.Is(err, chainerr.ErrUserRejected) {
				t.Errorf("Expected UserRejected, got %v", err)
			}
		})
	}
}

func TestSignerApprovalRequest(t *testing.T) {
	srv := newChainServer(t, "0xaa36a7")
	cfg := config.DefaultConfig()
	cfg.RPCURL = srv.URL
	cfg.PrivateKey = testKey

	var got ApprovalRequest
	p, err := Open(context.Background(), cfg, ApproverFunc(func(ctx context.Context, req ApprovalRequest) (Approval, error) {
		got = req
		return Approval{}, nil
	}))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer p.Close()

	if _, err := p.Signer(context.Background()); err != nil {
		t.Fatalf("Signer failed: %v", err)
	}
	if got.NeedsSecret {
		t.Error("raw keys should not ask for a passphrase")
	}
	if got.ChainID == nil || got.ChainID.Uint64() != config.SepoliaChainID {
		t.Errorf("approval request carries wrong chain id: %v", got.ChainID)
	}
}

func TestKeystoreSigner(t *testing.T) {
	srv := newChainServer(t, "0xaa36a7")
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	acc, err := ks.NewAccount("correct horse")
	if err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}

	src, err := newKeystoreSource(ks, acc.Address.Hex())
	if err != nil {
		t.Fatalf("newKeystoreSource failed: %v", err)
	}
	client, err := dial(context.Background(), srv.URL, config.DefaultConfig().RPCTimeout())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	t.Run("wrong passphrase", func(t *testing.T) {
		p := &Provider{client: client, url: srv.URL, keys: src, approver: approveAll("nope")}
		_, err := p.Signer(context.Background())
		if !errors.Is(err, chainerr.ErrUserRejected) {
			t.Fatalf("Expected UserRejected, got %v", err)
		}
		if chainerr.ReasonOf(err) != "wrong passphrase" {
			t.Errorf("Expected wrong passphrase reason, got %q", chainerr.ReasonOf(err))
		}
	})

	t.Run("unlocked", func(t *testing.T) {
		p := &Provider{client: client, url: srv.URL, keys: src, approver: approveAll("correct horse")}
		signer, err := p.Signer(context.Background())
		if err != nil {
			t.Fatalf("Signer failed: %v", err)
		}
		if signer.Address != acc.Address {
			t.Errorf("Expected %s, got %s", acc.Address.Hex(), signer.Address.Hex())
		}
	})
}

func TestKeystoreUnknownAccount(t *testing.T) {
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	if _, err := ks.NewAccount("pw"); err != nil {
		t.Fatalf("NewAccount failed: %v", err)
	}

	_, err := newKeystoreSource(ks, "0x0000000000000000000000000000000000000001")
	if !errors.Is(err, chainerr.ErrNoProvider) {
		t.Errorf("Expected NoProvider for unknown account, got %v", err)
	}
}

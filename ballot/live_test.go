package ballot

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// TestLiveReads exercises the read path against the deployed Sepolia contract.
func TestLiveReads(t *testing.T) {
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		t.Skip("ETH_RPC_URL not set, skipping live contract test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		t.Fatalf("chain id: %v", err)
	}
	if chainID.Uint64() != 11155111 {
		t.Skipf("ETH_RPC_URL points at chain %s, not Sepolia", chainID)
	}

	b := newBinding(contractAddr, mustABI(t), common.Address{}, client, nil, nil, client)

	t.Run("proposals", func(t *testing.T) {
		n, err := b.ProposalCount(ctx)
		if err != nil {
			t.Fatalf("proposalCount: %v", err)
		}
		t.Logf("✓ %d proposals", n)

		for i := uint64(0); i < n && i < 3; i++ {
			c, err := b.Proposal(ctx, i)
			if err != nil {
				t.Fatalf("proposal(%d): %v", i, err)
			}
			t.Logf("✓ #%d %s (%d votes)", i, c.Name, c.Votes)
		}
	})

	t.Run("owner", func(t *testing.T) {
		owner, err := b.Owner(ctx)
		if err != nil {
			t.Fatalf("owner: %v", err)
		}
		if owner == (common.Address{}) {
			t.Error("owner is the zero address")
		}
		t.Logf("✓ owner %s", owner.Hex())
	})

	t.Run("hasVote", func(t *testing.T) {
		if _, err := b.HasVote(ctx, voterAddr); err != nil {
			t.Fatalf("hasVote: %v", err)
		}
	})
}

package voting

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"charm-voting-tui/chainerr"
)

func TestValidateNetwork(t *testing.T) {
	n := Network{ChainID: 11155111, Name: "Sepolia"}

	tests := []struct {
		name   string
		active *big.Int
		ok     bool
	}{
		{"match", big.NewInt(11155111), true},
		{"mainnet", big.NewInt(1), false},
		{"missing", nil, false},
		{"overflow", new(big.Int).Lsh(big.NewInt(1), 80), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := n.ValidateNetwork(tt.active)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, chainerr.ErrWrongNetwork) {
				t.Fatalf("expected wrong network, got %v", err)
			}
			if !strings.Contains(chainerr.Message(err), "Sepolia") {
				t.Errorf("message should name the network: %q", chainerr.Message(err))
			}
		})
	}
}

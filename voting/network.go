package voting

import (
	"fmt"
	"math/big"

	"charm-voting-tui/chainerr"
)

// Network is the chain the session must be connected to
type Network struct {
	ChainID uint64
	Name    string
}

// ValidateNetwork checks the wallet's active chain against the requirement. It never
// attempts to switch networks.
func (n Network) ValidateNetwork(active *big.Int) error {
	if active != nil && active.IsUint64() && active.Uint64() == n.ChainID {
		return nil
	}
	got := "unknown"
	if active != nil {
		got = active.String()
	}
	reason := fmt.Sprintf("Please switch to the %s network (chain %d) in your wallet; it reports chain %s.", n.label(), n.ChainID, got)
	return chainerr.WithReason(chainerr.KindWrongNetwork, "connect", reason, nil)
}

func (n Network) label() string {
	if n.Name != "" {
		return n.Name
	}
	return "required"
}

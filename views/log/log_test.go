package log

import (
	"strings"
	"testing"

	"charm-voting-tui/voting"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/ethereum/go-ethereum/common"
)

func TestPanelHeight(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{12, 4},
		{30, 10},
		{90, 15},
	}
	for _, tt := range tests {
		if got := PanelHeight(tt.height); got != tt.want {
			t.Errorf("PanelHeight(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}

func TestHeaderTracksSession(t *testing.T) {
	vp := viewport.New(40, 5)

	idle := header(voting.State{Phase: voting.PhaseSynced}, vp, true)
	if !strings.Contains(idle, "synced") {
		t.Errorf("missing phase: %q", idle)
	}

	hash := common.HexToHash("0xabcdef")
	busy := header(voting.State{Phase: voting.PhaseVoting, Pending: voting.OpVoting, LastTx: hash}, vp, true)
	if !strings.Contains(busy, "tx "+hash.Hex()[:6]) {
		t.Errorf("missing pending tx: %q", busy)
	}
}

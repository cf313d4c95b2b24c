package ballot

import (
	"strings"
	"testing"

	"charm-voting-tui/voting"
)

func TestLeader(t *testing.T) {
	tests := []struct {
		name       string
		candidates []voting.Candidate
		want       int
	}{
		{"empty", nil, -1},
		{"no votes", []voting.Candidate{{Name: "Alice"}, {Name: "Bob"}}, -1},
		{"clear leader", []voting.Candidate{{"Alice", 2}, {"Bob", 5}, {"Carol", 0}}, 1},
		{"tie keeps first", []voting.Candidate{{"Alice", 3}, {"Bob", 3}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Leader(tt.candidates); got != tt.want {
				t.Errorf("Leader = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderDisconnected(t *testing.T) {
	out := Render(voting.State{}, 0, "")
	if !strings.Contains(out, "Wallet not connected") {
		t.Errorf("missing hint:\n%s", out)
	}
}

func TestRenderListKeepsOrder(t *testing.T) {
	out := RenderList([]voting.Candidate{{"Alice", 2}, {"Bob", 5}, {"Carol", 0}}, 0, 1)
	a, b, c := strings.Index(out, "#0"), strings.Index(out, "#1"), strings.Index(out, "#2")
	if a < 0 || b < a || c < b {
		t.Errorf("candidates out of order:\n%s", out)
	}
	if !strings.Contains(out, "5 votes") {
		t.Errorf("missing vote count:\n%s", out)
	}
}

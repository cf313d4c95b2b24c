package chainerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("vote: %w", WithReason(KindWriteRejected, "vote", "already voted", errors.New("execution reverted")))

	if !errors.Is(err, ErrWriteRejected) {
		t.Error("expected wrapped error to match ErrWriteRejected")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("write rejection must not match ErrTimeout")
	}
	if KindOf(err) != KindWriteRejected {
		t.Errorf("expected KindWriteRejected, got %v", KindOf(err))
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"reason wins", WithReason(KindWriteRejected, "addCandidate", "not owner", nil), "not owner"},
		{"generic timeout", New(KindTimeout, "vote", errors.New("context deadline exceeded")), "Timed out"},
		{"no provider", ErrNoProvider, "No wallet provider"},
		{"plain error", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Message(tt.err)
			if tt.want == "" && got != "" {
				t.Fatalf("expected empty message, got %q", got)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected message containing %q, got %q", tt.want, got)
			}
		})
	}
}

func TestErrorString(t *testing.T) {
	err := WithReason(KindRemoteRead, "getWinner", "only owner", nil)
	if got := err.Error(); got != "getWinner: remote read failure: only owner" {
		t.Errorf("unexpected error string: %q", got)
	}
}

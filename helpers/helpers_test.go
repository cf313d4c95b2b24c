package helpers

import (
	"testing"
	"time"
)

func TestShortenAddr(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0x378eD97cebED5D7a265510D11063b313C271EC0d", "0x378e…EC0d"},
		{"0x1234", "0x1234"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortenAddr(tt.in); got != tt.want {
			t.Errorf("ShortenAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidEthAddress(t *testing.T) {
	if !IsValidEthAddress("0x378eD97cebED5D7a265510D11063b313C271EC0d") {
		t.Error("valid address rejected")
	}
	for _, s := range []string{"", "0x123", "378eD97cebED5D7a265510D11063b313C271EC0d", "0xZZ8eD97cebED5D7a265510D11063b313C271EC0d"} {
		if IsValidEthAddress(s) {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestFormatVotes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 votes"},
		{1, "1 vote"},
		{5, "5 votes"},
		{12345, "12,345 votes"},
	}
	for _, tt := range tests {
		if got := FormatVotes(tt.n); got != tt.want {
			t.Errorf("FormatVotes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestSyncedAt(t *testing.T) {
	if got := SyncedAt(time.Time{}, false); got != "never synced" {
		t.Errorf("zero time: %q", got)
	}
	if got := SyncedAt(time.Now(), true); got != "syncing…" {
		t.Errorf("syncing: %q", got)
	}
	if got := SyncedAt(time.Now().Add(-3*time.Minute), false); got != "synced 3 minutes ago" {
		t.Errorf("got %q", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 0, 0},
		{-1, 3, 0},
		{5, 3, 2},
		{1, 3, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.i, tt.n); got != tt.want {
			t.Errorf("Clamp(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

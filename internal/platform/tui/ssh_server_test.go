package tui

import (
	"testing"
	"time"
)

func TestSessionSeed(t *testing.T) {
	tests := []struct {
		name    string
		cmd     []string
		want    uint32
		wantErr bool
	}{
		{"no command", nil, 0, false},
		{"seed", []string{"42"}, 42, false},
		{"max uint32", []string{"4294967295"}, 4294967295, false},
		{"too large", []string{"4294967296"}, 0, true},
		{"not a number", []string{"amidar"}, 0, true},
		{"extra args", []string{"1", "2"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sessionSeed(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sessionSeed(%v) error = %v, wantErr %v", tt.cmd, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("sessionSeed(%v) = %d, want %d", tt.cmd, got, tt.want)
			}
		})
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()

	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, want :23234", cfg.Address)
	}
	if cfg.GameID != "amidar" {
		t.Errorf("GameID = %q, want amidar", cfg.GameID)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, want 30m", cfg.IdleTimeout)
	}
	if cfg.MaxSessions <= 0 {
		t.Errorf("MaxSessions = %d, want a positive default", cfg.MaxSessions)
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rnwolfe/streakmap/internal/version"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		short   bool
		wantOut string
	}{
		{
			name:    "default version output",
			wantOut: fmt.Sprintf("streakmap %s", version.Get()),
		},
		{
			name:    "short flag version output",
			short:   true,
			wantOut: version.Version,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			versionShort = tt.short

			out := captureStdout(t, func() {
				if err := runVersion(nil, nil); err != nil {
					t.Errorf("runVersion: %v", err)
				}
			})

			if got := strings.TrimSpace(out); got != tt.wantOut {
				t.Errorf("output mismatch\nWant: %s\nGot: %s", tt.wantOut, got)
			}
		})
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	resetFlags(t)
	versionJSON = true

	out := captureStdout(t, func() {
		if err := runVersion(nil, nil); err != nil {
			t.Errorf("runVersion: %v", err)
		}
	})

	var info version.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if info.Version != version.Version {
		t.Errorf("version = %q, want %q", info.Version, version.Version)
	}
}

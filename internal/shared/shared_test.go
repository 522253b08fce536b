package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestShared(t *testing.T) {
	t.Run("NewLogger Writes To The Given Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger Creates Parent Directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}

		logger.Info("written to disk")
	})

	t.Run("GenerateID Is Unique", func(t *testing.T) {
		if GenerateID() == GenerateID() {
			t.Error("expected distinct ids")
		}
	})

	t.Run("GenerateState", func(t *testing.T) {
		first, err := GenerateState()
		if err != nil {
			t.Fatalf("failed to generate state: %v", err)
		}
		second, err := GenerateState()
		if err != nil {
			t.Fatalf("failed to generate state: %v", err)
		}

		if first == "" || first == second {
			t.Error("expected distinct non-empty state tokens")
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data := map[string]string{"name": "hei!local"}

		compact, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if strings.Contains(string(compact), "\n") {
			t.Error("expected compact output")
		}

		pretty, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		if !strings.Contains(string(pretty), "\n") {
			t.Error("expected indented output")
		}
	})
}

func TestBrowserCommand(t *testing.T) {
	restore := goos
	t.Cleanup(func() { goos = restore })

	launchers := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "cmd",
	}

	t.Run("Known Platforms Build A Launcher", func(t *testing.T) {
		for platform, binary := range launchers {
			goos = platform

			cmd, err := browserCommand("http://localhost:8787/callback")
			if err != nil {
				t.Fatalf("%s: unexpected error %v", platform, err)
			}
			if cmd.Args[0] != binary {
				t.Errorf("%s: expected %q launcher, got %q", platform, binary, cmd.Args[0])
			}
			if cmd.Args[len(cmd.Args)-1] != "http://localhost:8787/callback" {
				t.Errorf("%s: expected URL as final argument, got %v", platform, cmd.Args)
			}
		}
	})

	t.Run("Unknown Platform Errors", func(t *testing.T) {
		goos = "plan9"

		if _, err := browserCommand("http://localhost:8787/callback"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Swapped in tests to exercise per-platform launch commands.
var goos = runtime.GOOS

// browserCommand builds the launcher invocation for the current
// platform without starting it.
func browserCommand(url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("cmd", "/c", "start", url), nil
	}

	return nil, fmt.Errorf("no browser launcher for %s", goos)
}

// OpenBrowser hands the URL to the platform's default browser and
// returns without waiting for it to exit. The sign-in flow depends on
// this staying non-blocking so the callback server keeps serving.
func OpenBrowser(url string) error {
	cmd, err := browserCommand(url)
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

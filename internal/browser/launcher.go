// Package browser launches URLs in the operating system's default browser.
// It is the only OS-dependent collaborator of the dispatch engine.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens URLs in the system browser via the platform open command.
// The zero value is usable.
type Launcher struct {
	// GOOS overrides runtime.GOOS for command selection (tests only).
	GOOS string

	// Run executes the prepared command; defaults to (*exec.Cmd).Start so the
	// browser is not waited on.
	Run func(*exec.Cmd) error
}

// Open launches the URL in the default browser. Only http and https URLs are
// accepted.
func (l *Launcher) Open(url string) error {
	trimmed := strings.TrimSpace(url)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return fmt.Errorf("refusing to open non-http url: %s", trimmed)
	}

	cmd, err := l.command(trimmed)
	if err != nil {
		return err
	}

	run := (*exec.Cmd).Start
	if l != nil && l.Run != nil {
		run = l.Run
	}
	if err := run(cmd); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

func (l *Launcher) command(url string) (*exec.Cmd, error) {
	goos := runtime.GOOS
	if l != nil && l.GOOS != "" {
		goos = l.GOOS
	}

	switch goos {
	case "windows":
		return exec.Command("cmd", "/c", "start", `""`, url), nil
	case "darwin":
		return exec.Command("open", url), nil
	case "linux":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

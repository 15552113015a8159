package browser

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenRejectsNonHTTP(t *testing.T) {
	l := &Launcher{GOOS: "linux", Run: func(*exec.Cmd) error { return nil }}

	require.Error(t, l.Open("ftp://example.com/file"))
	require.Error(t, l.Open("javascript:alert(1)"))
	require.Error(t, l.Open("Error: something went wrong"))
	require.Error(t, l.Open(""))
}

func TestOpenCommandPerPlatform(t *testing.T) {
	cases := map[string][]string{
		"linux":   {"xdg-open", "https://example.com"},
		"darwin":  {"open", "https://example.com"},
		"windows": {"cmd", "/c", "start", `""`, "https://example.com"},
	}

	for goos, want := range cases {
		t.Run(goos, func(t *testing.T) {
			var got []string
			l := &Launcher{GOOS: goos, Run: func(cmd *exec.Cmd) error {
				got = cmd.Args
				return nil
			}}

			require.NoError(t, l.Open("https://example.com"))
			require.Equal(t, want[0], got[0])
			require.Equal(t, want[1:], got[1:])
		})
	}
}

func TestOpenUnsupportedPlatform(t *testing.T) {
	l := &Launcher{GOOS: "plan9", Run: func(*exec.Cmd) error { return nil }}
	require.Error(t, l.Open("https://example.com"))
}

func TestOpenPropagatesRunFailure(t *testing.T) {
	l := &Launcher{GOOS: "linux", Run: func(*exec.Cmd) error {
		return errors.New("no display")
	}}
	err := l.Open("https://example.com")
	require.ErrorContains(t, err, "no display")
}

package cmd

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/searchlens/searchlens/internal/core"
	"github.com/searchlens/searchlens/internal/core/engine"
	"github.com/searchlens/searchlens/internal/observability"
	"github.com/searchlens/searchlens/internal/output"
)

type recordingLauncher struct {
	failOn map[string]bool
	opened []string
}

func (l *recordingLauncher) Open(url string) error {
	if l.failOn[url] {
		return errors.New("no display available")
	}
	l.opened = append(l.opened, url)
	return nil
}

func TestOpenRecordsCountsOnlyDispatchedRecords(t *testing.T) {
	observability.InitCLILogger("test", false)

	launcher := &recordingLauncher{failOn: map[string]bool{"https://two.example/?q=jane": true}}
	dispatcher := &engine.Dispatcher{Launcher: launcher}

	records := []core.SearchRecord{
		{Platform: "One", URL: "https://one.example/?q=jane"},
		{Platform: "Two", URL: "https://two.example/?q=jane"},
		{Platform: "Three", URL: "ftp://three.example/jane"},
		{Platform: "Four", Err: "pattern has no slot"},
	}

	opened, attempted := openRecords(dispatcher, records, 0)
	require.Equal(t, 1, opened)
	require.Equal(t, 2, attempted)
	require.Equal(t, []string{"https://one.example/?q=jane"}, launcher.opened)
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)

	require.Equal(t, "osint_results_jane-doe_20260831_143005.txt", exportFilename("Jane Doe", output.FormatText, at))
	require.Equal(t, "osint_results_jane-doe_20260831_143005.json", exportFilename("Jane Doe", output.FormatJSON, at))
	require.Equal(t, "osint_results_jane-doe_20260831_143005.md", exportFilename("Jane Doe", output.FormatMarkdown, at))
	require.Equal(t, "osint_results_output_20260831_143005.txt", exportFilename("///", output.FormatText, at))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "report", "report"},
		{"spaces and case", "Jane Doe Results", "jane-doe-results"},
		{"special chars", "a/b\\c:d*e", "a-b-c-d-e"},
		{"leading trailing junk", "--.report.--", "report"},
		{"empty", "   ", "output"},
		{"only junk", "///", "output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, sanitizeFilename(tt.input))
		})
	}
}

func TestNormalizeCategories(t *testing.T) {
	t.Run("splits comma lists", func(t *testing.T) {
		got := normalizeCategories([]string{"Social Media,Professional", "Public Records"})
		require.Equal(t, []string{"Social Media", "Professional", "Public Records"}, got)
	})

	t.Run("dedupes case-insensitively keeping first spelling", func(t *testing.T) {
		got := normalizeCategories([]string{"Social Media", "social media", "SOCIAL MEDIA"})
		require.Equal(t, []string{"Social Media"}, got)
	})

	t.Run("drops blanks", func(t *testing.T) {
		got := normalizeCategories([]string{" , ,Professional, "})
		require.Equal(t, []string{"Professional"}, got)
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		require.Nil(t, normalizeCategories(nil))
		require.Nil(t, normalizeCategories([]string{"", "  "}))
	})
}

func TestIsExitWord(t *testing.T) {
	for _, word := range []string{"quit", "exit", "q", "QUIT", " Exit ", "Q"} {
		require.True(t, isExitWord(word), word)
	}
	for _, word := range []string{"", "quitter", "exit now", "qq", "stop"} {
		require.False(t, isExitWord(word), word)
	}
}

func TestFriendlyValidationError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want string
	}{
		{"empty query", core.ErrEmptyQuery, "please enter a name to search"},
		{"no categories", core.ErrNoCategoriesSelected, "please select at least one search category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := friendlyValidationError(tt.in)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("passes through other errors", func(t *testing.T) {
		wrapped := fmt.Errorf("expanding pattern: %w", errors.New("boom"))
		require.Same(t, wrapped, friendlyValidationError(wrapped))
	})
}

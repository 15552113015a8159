package output

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/searchlens/searchlens/internal/core"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("txt")
	require.NoError(t, err)
	require.Equal(t, FormatText, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func sampleInvestigation() *core.Investigation {
	at := time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)
	return &core.Investigation{
		ID:      "inv-1",
		Subject: "Jane Doe",
		Categories: []string{
			"Social Media", "Professional",
		},
		Records: []core.SearchRecord{
			{Category: "Social Media", Platform: "LinkedIn", URL: "https://www.linkedin.com/search/results/people/?keywords=Jane+Doe", GeneratedAt: at},
			{Category: "Social Media", Platform: "Twitter/X", URL: "https://twitter.com/search?q=%22Jane+Doe%22", GeneratedAt: at},
			{Category: "Professional", Platform: "ORCID", Err: "expand template: pattern has no substitution slot", GeneratedAt: at},
		},
		Errors:      1,
		CompletedAt: at,
	}
}

func TestTextFormatterLayout(t *testing.T) {
	rendered, err := (&TextFormatter{}).FormatInvestigation(sampleInvestigation())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(rendered, "OSINT Investigation Results for: Jane Doe\n"))
	require.Contains(t, rendered, "Generated on: 2026-08-31 14:30:05")
	require.Contains(t, rendered, "\n[Social Media]\n")
	require.Contains(t, rendered, "\n[Professional]\n")
	require.Contains(t, rendered, "LinkedIn: https://www.linkedin.com/search/results/people/?keywords=Jane+Doe\n")
	require.Contains(t, rendered, "ORCID: Error: expand template: pattern has no substitution slot\n")

	// Category heading appears once even with multiple records underneath.
	require.Equal(t, 1, strings.Count(rendered, "[Social Media]"))
}

func TestJSONFormatter(t *testing.T) {
	rendered, err := (&JSONFormatter{Indent: true}).FormatInvestigation(sampleInvestigation())
	require.NoError(t, err)
	require.Contains(t, rendered, "\"subject\": \"Jane Doe\"")
	require.Contains(t, rendered, "\"platform\": \"LinkedIn\"")
	require.Contains(t, rendered, "\"errors\": 1")
}

func TestTableFormatter(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatInvestigation(sampleInvestigation())
	require.NoError(t, err)
	require.Contains(t, rendered, "LinkedIn")
	require.Contains(t, rendered, "2/3 generated")
	require.Contains(t, rendered, "error")
}

func TestMarkdownFormatterEscapesCells(t *testing.T) {
	inv := sampleInvestigation()
	inv.Records[1].Platform = "Twitter|X"

	rendered, err := (&MarkdownFormatter{}).FormatInvestigation(inv)
	require.NoError(t, err)
	require.Contains(t, rendered, "## Results for Jane Doe")
	require.Contains(t, rendered, `Twitter\|X`)
	require.Contains(t, rendered, "**Generated**: 2/3")
}

func TestFormattersNilInvestigation(t *testing.T) {
	for _, format := range []Format{FormatTable, FormatJSON, FormatMarkdown, FormatText} {
		rendered, err := NewFormatter(format).FormatInvestigation(nil)
		require.NoError(t, err)
		require.Empty(t, rendered)
	}
}

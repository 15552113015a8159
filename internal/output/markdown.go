package output

import (
	"fmt"
	"strings"

	"github.com/searchlens/searchlens/internal/core"
)

// MarkdownFormatter renders records as a markdown table.
type MarkdownFormatter struct{}

// FormatInvestigation renders an investigation as Markdown.
func (f *MarkdownFormatter) FormatInvestigation(inv *core.Investigation) (string, error) {
	if inv == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Results for %s\n\n", escapeMarkdownCell(inv.Subject)))
	sb.WriteString("| Category | Platform | Status | URL |\n")
	sb.WriteString("|----------|----------|--------|-----|\n")

	for _, r := range inv.Records {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			escapeMarkdownCell(r.Category),
			escapeMarkdownCell(r.Platform),
			escapeMarkdownCell(statusLabel(r)),
			escapeMarkdownCell(recordValue(r)),
		))
	}

	if len(inv.Records) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Generated**: %d/%d\n", len(inv.Records)-inv.Errors, len(inv.Records)))
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}

package output

import (
	"fmt"
	"strings"

	"github.com/searchlens/searchlens/internal/core"
)

// TextFormatter renders records as a plain-text report grouped by category.
// This is the layout written to exported .txt files.
type TextFormatter struct{}

// FormatInvestigation renders an investigation as plain text.
func (f *TextFormatter) FormatInvestigation(inv *core.Investigation) (string, error) {
	if inv == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("OSINT Investigation Results for: %s\n", inv.Subject))
	sb.WriteString(fmt.Sprintf("Generated on: %s\n", inv.CompletedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	currentCategory := ""
	for _, r := range inv.Records {
		if r.Category != currentCategory {
			currentCategory = r.Category
			sb.WriteString(fmt.Sprintf("\n[%s]\n", currentCategory))
			sb.WriteString(strings.Repeat("-", 40) + "\n")
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", r.Platform, recordValue(r)))
	}

	return sb.String(), nil
}

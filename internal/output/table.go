package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/searchlens/searchlens/internal/core"
)

// TableFormatter renders records as an ASCII table.
type TableFormatter struct{}

// FormatInvestigation renders an investigation as a table.
func (f *TableFormatter) FormatInvestigation(inv *core.Investigation) (string, error) {
	if inv == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Results for: %s", inv.Subject)
	t.AppendHeader(table.Row{"Category", "Platform", "Status", "URL"})

	for _, r := range inv.Records {
		t.AppendRow(table.Row{
			r.Category,
			r.Platform,
			statusLabel(r),
			recordValue(r),
		})
	}

	if len(inv.Records) > 0 {
		summary := fmt.Sprintf("%d/%d generated", len(inv.Records)-inv.Errors, len(inv.Records))
		t.AppendFooter(table.Row{"", "", summary, ""})
	}

	return t.Render(), nil
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/searchlens/searchlens/internal/output"
)

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show saved investigations",
	Long: `List recently saved investigations, or show the full record set for a
single investigation by id.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", 20, "Maximum number of investigations to list")
	historyCmd.Flags().String("output", "table", "Output format: table, json, markdown, text")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close() // nolint:errcheck // best-effort cleanup

	if len(args) == 1 {
		id := strings.TrimSpace(args[0])
		inv, err := db.GetInvestigation(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("no investigation with id %q", id)
		}

		format, err := resolveOutputFormat(cmd)
		if err != nil {
			return err
		}
		rendered, err := output.NewFormatter(format).FormatInvestigation(inv)
		if err != nil {
			return err
		}
		if rendered != "" {
			fmt.Println(rendered)
		}
		return nil
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	entries, err := db.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No saved investigations.")
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Subject", "Categories", "Records", "Errors", "Completed"})
	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.ID,
			entry.Subject,
			strings.Join(entry.Categories, ", "),
			entry.RecordCount,
			entry.ErrorCount,
			entry.CompletedAt.Local().Format(time.DateTime),
		})
	}
	fmt.Println(t.Render())
	return nil
}

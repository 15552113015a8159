package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/searchlens/searchlens/internal/browser"
	"github.com/searchlens/searchlens/internal/config"
	"github.com/searchlens/searchlens/internal/core"
	"github.com/searchlens/searchlens/internal/core/engine"
	"github.com/searchlens/searchlens/internal/core/registry"
	"github.com/searchlens/searchlens/internal/metrics"
	"github.com/searchlens/searchlens/internal/observability"
	"github.com/searchlens/searchlens/internal/output"
)

var investigateCmd = &cobra.Command{
	Use:   "investigate <name>",
	Short: "Generate OSINT search URLs for a name",
	Long: `Generate search URLs for a person's name across the selected platform
categories, then optionally open every generated URL in the browser and export
the results to a file.`,
	Args: cobra.ExactArgs(1),
	RunE: runInvestigate,
}

func init() {
	rootCmd.AddCommand(investigateCmd)

	investigateCmd.Flags().StringSlice("categories", nil, "Categories to search (default: all)")
	investigateCmd.Flags().Bool("open", false, "Open every generated URL in the browser")
	investigateCmd.Flags().Duration("delay", 0, "Delay between opened tabs (default from config)")
	investigateCmd.Flags().String("output", "table", "Output format: table, json, markdown, text")
	investigateCmd.Flags().String("out", "", "Write results to this file ('-' for stdout)")
	investigateCmd.Flags().String("out-dir", "", "Write results to a timestamped file in this directory")
	investigateCmd.Flags().Bool("save", false, "Save the investigation to local history")
}

func runInvestigate(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])

	categoriesRaw, err := cmd.Flags().GetStringSlice("categories")
	if err != nil {
		return err
	}
	openAll, err := cmd.Flags().GetBool("open")
	if err != nil {
		return err
	}
	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}

	format, err := resolveOutputFormat(cmd)
	if err != nil {
		return err
	}
	outPath, outDir, err := resolveOutputTargets(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("delay") {
		delay = cfg.Dispatch.Delay
	}
	if !openAll {
		openAll = cfg.Dispatch.AutoOpen
	}
	if !save {
		save = cfg.Dispatch.SaveHistory
	}

	reg := registry.Default()
	categories := normalizeCategories(categoriesRaw)
	if len(categories) == 0 {
		categories = reg.Categories()
	}

	dispatcher := &engine.Dispatcher{
		Registry: reg,
		Launcher: &browser.Launcher{},
	}

	inv, err := dispatcher.Generate(name, categories)
	if err != nil {
		return friendlyValidationError(err)
	}
	metrics.RecordInvestigation(len(inv.Records), inv.Errors)

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatInvestigation(inv)
	if err != nil {
		return err
	}

	sinkPath := outPath
	if outDir != "" {
		dir, err := ensureOutDir(outDir)
		if err != nil {
			return err
		}
		sinkPath = filepath.Join(dir, exportFilename(inv.Subject, format, inv.CompletedAt))
	}

	sink, err := openSink(sinkPath)
	if err != nil {
		return err
	}
	if rendered != "" {
		fmt.Fprintln(sink.writer, rendered)
	}
	if err := sink.close(); err != nil {
		return err
	}
	if sink.path != "-" {
		fmt.Printf("Results exported to %s\n", sink.path)
	}

	if save {
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup

		if err := db.SaveInvestigation(ctx, inv); err != nil {
			return fmt.Errorf("save investigation: %w", err)
		}
		observability.CLILogger.Debug("Investigation saved",
			zap.String("id", inv.ID))
	}

	if openAll {
		opened, attempted := openRecords(dispatcher, inv.Records, delay)
		fmt.Printf("Opened %d of %d search URLs\n", opened, attempted)
	}

	if format != output.FormatJSON {
		logThroughput(len(inv.Records), startedAt)
	}
	return nil
}

// openRecords streams open outcomes so failures surface as they happen rather
// than after the whole batch. attempted counts only records the dispatcher
// actually sent to the browser; error-marked and non-http(s) records never
// reach the outcome stream.
func openRecords(dispatcher *engine.Dispatcher, records []core.SearchRecord, delay time.Duration) (opened, attempted int) {
	failed := 0
	for outcome := range dispatcher.OpenAllAsync(records, delay) {
		attempted++
		if outcome.Opened {
			opened++
			continue
		}
		failed++
		observability.CLILogger.Warn("Failed to open URL",
			zap.String("platform", outcome.Record.Platform),
			zap.String("url", outcome.Record.URL),
			zap.String("error", outcome.Err))
	}
	metrics.RecordDispatch(opened, failed)
	return opened, attempted
}

func normalizeCategories(values []string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			item := strings.TrimSpace(part)
			if item == "" {
				continue
			}
			key := strings.ToLower(item)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, item)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Investigation throughput",
		zap.Int("records", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}

// friendlyValidationError rewrites the engine sentinels for terminal display.
func friendlyValidationError(err error) error {
	switch {
	case errors.Is(err, core.ErrEmptyQuery):
		return errors.New("please enter a name to search")
	case errors.Is(err, core.ErrNoCategoriesSelected):
		return errors.New("please select at least one search category")
	default:
		return err
	}
}

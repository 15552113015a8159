package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/searchlens/searchlens/internal/browser"
	"github.com/searchlens/searchlens/internal/config"
	"github.com/searchlens/searchlens/internal/core"
	"github.com/searchlens/searchlens/internal/core/engine"
	"github.com/searchlens/searchlens/internal/observability"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Open a Google search for a single query",
	Long: `Open the default browser with a Google search for the given query.

With --interactive, read queries in a loop until one of the exit words
(quit, exit, q) is entered.`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("interactive", "i", false, "Read queries in an interactive loop")
	searchCmd.Flags().Bool("print", false, "Print the search URL instead of opening it")
}

func runSearch(cmd *cobra.Command, args []string) error {
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}
	printOnly, err := cmd.Flags().GetBool("print")
	if err != nil {
		return err
	}

	launcher := &browser.Launcher{}

	if interactive {
		return searchLoop(launcher, printOnly)
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return cmd.Help()
	}

	return searchOnce(launcher, query, printOnly)
}

func searchOnce(launcher *browser.Launcher, query string, printOnly bool) error {
	searchURL, err := engine.QuickSearchURL(query)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			return errors.New("please enter a search query")
		}
		return err
	}

	if printOnly {
		fmt.Println(searchURL)
		return nil
	}

	if err := launcher.Open(searchURL); err != nil {
		return fmt.Errorf("error opening browser: %w", err)
	}
	fmt.Printf("Searching for: %s\n", query)
	return nil
}

// exit words recognized by the interactive loop
func isExitWord(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

func searchHistoryPath() string {
	dataDir := config.DefaultDataDir()
	if strings.TrimSpace(dataDir) == "" {
		dataDir = os.TempDir()
	}
	return filepath.Join(dataDir, "search_history")
}

// searchLoop reads queries with line editing and history until an exit word,
// Ctrl+C, or EOF.
func searchLoop(launcher *browser.Launcher, printOnly bool) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	historyPath := searchHistoryPath()
	if f, err := os.Open(historyPath); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0755); err != nil {
			return
		}
		f, err := os.OpenFile(historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return
		}
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}()

	fmt.Println("Enter a search query, or 'quit' to exit.")
	for {
		input, err := line.Prompt("search> ")
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println()
				return nil
			}
			// EOF (Ctrl+D) exits cleanly
			fmt.Println()
			return nil
		}

		query := strings.TrimSpace(input)
		if query == "" {
			fmt.Println("Please enter a search query.")
			continue
		}
		if isExitWord(query) {
			return nil
		}

		line.AppendHistory(query)
		if err := searchOnce(launcher, query, printOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			observability.CLILogger.Warn("Search failed",
				zap.String("query", query),
				zap.Error(err))
		}
	}
}

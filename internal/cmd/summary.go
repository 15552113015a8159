package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/searchlens/searchlens/internal/config"
	"github.com/searchlens/searchlens/internal/wiki"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <topic>",
	Short: "Print a short Wikipedia summary for a topic",
	Long: `Fetch the Wikipedia summary for a topic and print the first few
sentences. Useful for quick background on a person or organization before
opening search results.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().IntP("sentences", "n", 0, "Number of sentences to print (default from config)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return errors.New("please enter a topic")
	}

	sentences, err := cmd.Flags().GetInt("sentences")
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if sentences <= 0 {
		sentences = cfg.Wiki.Sentences
	}

	client := &wiki.Client{BaseURL: cfg.Wiki.BaseURL}
	summary, err := client.Summarize(cmd.Context(), topic, sentences)
	switch {
	case errors.Is(err, wiki.ErrNotFound):
		return fmt.Errorf("no article found for %q, try a different phrasing", topic)
	case errors.Is(err, wiki.ErrDisambiguation):
		return fmt.Errorf("%q matches several articles, be more specific", topic)
	case err != nil:
		return fmt.Errorf("summary lookup failed: %w", err)
	}

	fmt.Println(summary)
	return nil
}

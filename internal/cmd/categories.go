package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/searchlens/searchlens/internal/core/registry"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available search categories and platforms",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().String("output", "table", "Output format: table, json")
}

type categoryListing struct {
	Name      string   `json:"name"`
	Platforms []string `json:"platforms"`
}

func runCategories(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	reg := registry.Default()

	listings := make([]categoryListing, 0)
	for _, name := range reg.Categories() {
		templates, err := reg.TemplatesFor(name)
		if err != nil {
			return err
		}
		listing := categoryListing{Name: name, Platforms: make([]string, 0, len(templates))}
		for _, tmpl := range templates {
			listing.Platforms = append(listing.Platforms, tmpl.Platform)
		}
		listings = append(listings, listing)
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{"categories": listings})
	case "table", "":
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.AppendHeader(table.Row{"Category", "Platforms"})
		for _, listing := range listings {
			t.AppendRow(table.Row{listing.Name, strings.Join(listing.Platforms, ", ")})
		}
		t.AppendFooter(table.Row{"Total", fmt.Sprintf("%d platforms", reg.PlatformCount())})
		fmt.Println(t.Render())
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (use table or json)", format)
	}
}

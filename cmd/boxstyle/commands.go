// cmd/boxstyle/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/crunchvision/boxstylemcp/internal/app"
	"github.com/crunchvision/boxstylemcp/internal/config"
	"github.com/crunchvision/boxstylemcp/internal/di"
	"github.com/crunchvision/boxstylemcp/internal/models"
	"github.com/crunchvision/boxstylemcp/internal/services"
	"github.com/spf13/cobra"
)

// initPipeline loads configuration and wires services, then returns the
// catalog and prompt services every subcommand needs.
func initPipeline() (*services.CatalogService, *services.PromptService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}

	if err := app.InitServices(cfg); err != nil {
		return nil, nil, err
	}

	container := di.GetContainer()
	catalog := container.Get("catalog").(*services.CatalogService)
	prompt := container.Get("prompt").(*services.PromptService)
	return catalog, prompt, nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>",
		Short: "Decompose free text into semantic components",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prompt, err := initPipeline()
			if err != nil {
				return err
			}

			components := prompt.Parse(strings.Join(args, " "))
			return printJSON(components)
		},
	}
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the style categories in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := initPipeline()
			if err != nil {
				return err
			}

			summaries := catalog.Summaries()
			for _, name := range catalog.CategoryNames() {
				s := summaries[name]
				fmt.Printf("%-22s %s\n", name, s.Description)
			}
			return nil
		},
	}
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest the best-fitting category for a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prompt, err := initPipeline()
			if err != nil {
				return err
			}

			components := prompt.Parse(strings.Join(args, " "))
			return printJSON(prompt.SuggestCategory(components))
		},
	}
}

func newTransformCmd() *cobra.Command {
	var category string
	var full bool

	cmd := &cobra.Command{
		Use:   "transform <text>",
		Short: "Apply a category's visual language to a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prompt, err := initPipeline()
			if err != nil {
				return err
			}

			components := prompt.Parse(strings.Join(args, " "))
			transformed, err := prompt.Transform(components, category, nil)
			if err != nil {
				return err
			}

			if !full {
				return printJSON(transformed)
			}

			skeleton, err := prompt.Assemble(transformed, category, components.SemanticWeights)
			if err != nil {
				return err
			}
			return printJSON(skeleton)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "mascot_theater", "style category to apply")
	cmd.Flags().BoolVar(&full, "full", false, "assemble the full prompt skeleton")
	return cmd
}

func newVariantsCmd() *cobra.Command {
	var category string
	var count int

	cmd := &cobra.Command{
		Use:   "variants <text>",
		Short: "Generate preset-styled prompt variants",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, prompt, err := initPipeline()
			if err != nil {
				return err
			}

			components := prompt.Parse(strings.Join(args, " "))
			variants, err := prompt.GenerateVariants(components, category, count)
			if err != nil {
				return err
			}

			for _, v := range variants {
				fmt.Printf("== %s ==\n", v.Name)
				for _, section := range v.Skeleton.Sections {
					fmt.Printf("  %-14s %s\n", section.Name+":", section.Value)
				}
				fmt.Printf("  negative:      %s\n", v.Skeleton.NegativePrompt)
				fmt.Printf("  tokens:        %d\n\n", v.Skeleton.Metadata.EstimatedTokens)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "mascot_theater", "style category to apply")
	cmd.Flags().IntVarP(&count, "count", "n", len(models.VariantPresets()), "number of variants, 1 to 5")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

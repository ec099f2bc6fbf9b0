// cmd/boxstyle/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "boxstyle",
		Short: "Cereal-box aesthetic prompt pipeline",
		Long: "boxstyle turns plain image descriptions into structured, style-biased\n" +
			"synthesis prompts using a fixed catalog of cereal-box design categories.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newParseCmd(),
		newCategoriesCmd(),
		newSuggestCmd(),
		newTransformCmd(),
		newVariantsCmd(),
		newServeCmd(),
	)

	return root
}

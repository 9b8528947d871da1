package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/otdb/opentdb"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category ids and names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printCategories(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func printCategories(w io.Writer) {
	for _, c := range opentdb.Categories() {
		fmt.Fprintf(w, "%2d  %s\n", c.ID(), c)
	}
}

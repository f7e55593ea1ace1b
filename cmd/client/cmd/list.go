package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	listBrand  string
	listSearch string
	listJSON   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the price list",
	Long: `Fetches the current price list and prints it, filtered by brand
and an optional search term. The search matches code, brand and
description, case-insensitively.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := startSession(cmd); err != nil {
			return err
		}
		defer app.Close()

		app.SelectBrand(listBrand)
		app.Search(listSearch)
		view := app.View()

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(view.Prices)
		}

		printHeader(os.Stdout, view)
		printTable(os.Stdout, view.Prices)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listBrand, "brand", "b", "TODAS", "brand filter (TODAS shows every brand)")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search term")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
}

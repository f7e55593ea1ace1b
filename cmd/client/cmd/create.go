package cmd

import (
	"github.com/spf13/cobra"

	"pricelist/internal/domain/price"
)

var createFields struct {
	brand       string
	code        string
	value       float64
	description string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a price record",
	Long: `Adds a record to the price list. The record shows up immediately
and syncs with the server in the background; if the server rejects it,
the record is removed again.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := startSession(cmd); err != nil {
			return err
		}
		defer app.Close()

		fields := price.Fields{
			Brand:       createFields.brand,
			Code:        createFields.code,
			Value:       createFields.value,
			Description: createFields.description,
		}

		if _, err := app.Create(cmd.Context(), fields); err != nil {
			return err
		}

		app.Wait()
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&createFields.brand, "brand", "b", "", "brand (required)")
	createCmd.Flags().StringVarP(&createFields.code, "code", "c", "", "product code (required)")
	createCmd.Flags().Float64VarP(&createFields.value, "price", "p", 0, "price (required)")
	createCmd.Flags().StringVarP(&createFields.description, "description", "d", "", "description")
	createCmd.MarkFlagRequired("brand")
	createCmd.MarkFlagRequired("code")
	createCmd.MarkFlagRequired("price")
}

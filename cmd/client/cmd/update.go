package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricelist/internal/domain/price"
)

var updateFields struct {
	brand       string
	code        string
	value       float64
	description string
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a price record",
	Long: `Edits a record in place. Only the flags you pass change; the other
fields keep their current values. The edit shows up immediately and
syncs in the background; a server rejection restores the old values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := startSession(cmd); err != nil {
			return err
		}
		defer app.Close()

		id := args[0]
		current, ok := findRecord(id)
		if !ok {
			return fmt.Errorf("record %q not found", id)
		}

		fields := price.FieldsOf(current)
		if cmd.Flags().Changed("brand") {
			fields.Brand = updateFields.brand
		}
		if cmd.Flags().Changed("code") {
			fields.Code = updateFields.code
		}
		if cmd.Flags().Changed("price") {
			fields.Value = updateFields.value
		}
		if cmd.Flags().Changed("description") {
			fields.Description = updateFields.description
		}

		if err := app.Update(cmd.Context(), current.ID, fields); err != nil {
			return err
		}

		app.Wait()
		return nil
	},
}

// findRecord resolves an id argument against the synced collection. A
// full id wins; a unique prefix is accepted so users can paste the
// short form the table shows.
func findRecord(id string) (price.Price, bool) {
	var match price.Price
	var count int
	for _, p := range app.View().Prices {
		if p.ID == id {
			return p, true
		}
		if len(id) >= 8 && len(p.ID) > len(id) && p.ID[:len(id)] == id {
			match = p
			count++
		}
	}
	return match, count == 1
}

func init() {
	updateCmd.Flags().StringVarP(&updateFields.brand, "brand", "b", "", "brand")
	updateCmd.Flags().StringVarP(&updateFields.code, "code", "c", "", "product code")
	updateCmd.Flags().Float64VarP(&updateFields.value, "price", "p", 0, "price")
	updateCmd.Flags().StringVarP(&updateFields.description, "description", "d", "", "description")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a price record",
	Long: `Removes a record. The removal shows up immediately and syncs in the
background; if the server refuses, the record comes back.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := startSession(cmd); err != nil {
			return err
		}
		defer app.Close()

		current, ok := findRecord(args[0])
		if !ok {
			return fmt.Errorf("record %q not found", args[0])
		}

		if err := app.Delete(cmd.Context(), current.ID); err != nil {
			return err
		}

		app.Wait()
		return nil
	},
}

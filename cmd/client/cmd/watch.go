package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	watchBrand  string
	watchSearch string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the price list live",
	Long: `Keeps the price list on screen and updates it as other users change
it. The view repaints whenever a poll picks up a change, connectivity
flips, or a local edit applies. Ctrl-C exits.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := startSession(cmd); err != nil {
			return err
		}
		defer app.Close()

		app.SetRenderer(newScreenRenderer(os.Stdout))
		app.SelectBrand(watchBrand)
		app.Search(watchSearch)

		app.Run(ctx)

		// Run returns either on Ctrl-C or because the session guard
		// locked us out mid-watch.
		if !app.Authenticated() {
			printAccessDenied(app.PortalURL())
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchBrand, "brand", "b", "TODAS", "brand filter (TODAS shows every brand)")
	watchCmd.Flags().StringVarP(&watchSearch, "search", "s", "", "search term")
}

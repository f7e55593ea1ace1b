package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"pricelist/internal/app/client"
	"pricelist/internal/app/client/config"
	"pricelist/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
	app *client.App

	apiURL       string
	portalURL    string
	sessionToken string
)

var rootCmd = &cobra.Command{
	Use:   "tabela-precos",
	Short: "Price list client",
	Long: `Client for the shared price list.

Reads and edits go through the storage API; edits apply locally first
and reconcile with the server in the background, so the tool stays
usable through short server outages. Access requires a session issued
by the portal.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if portalURL != "" {
		cfg.PortalURL = portalURL
	}

	log = logger.New(cfg.Env)

	notifier := newNotifier(os.Stderr)
	app = client.New(cfg, nil, notifier, log)
	return nil
}

// startSession verifies the session before any command touches data.
// Denials get the full access-denied screen instead of a bare error.
func startSession(cmd *cobra.Command) error {
	err := app.Start(cmd.Context(), sessionToken)
	if err == nil {
		return nil
	}

	if errors.Is(err, client.ErrNoSession) || errors.Is(err, client.ErrSessionInvalid) {
		printAccessDenied(app.PortalURL())
		return err
	}
	return err
}

func printAccessDenied(portalURL string) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintln(os.Stderr, "Access denied")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "This tool requires an active portal session.")
	fmt.Fprintf(os.Stderr, "Sign in at %s and run again with --token,\n", portalURL)
	fmt.Fprintln(os.Stderr, "or append the token the portal hands you to the command.")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "server", "", "storage API base URL")
	rootCmd.PersistentFlags().StringVar(&portalURL, "portal", "", "portal base URL")
	rootCmd.PersistentFlags().StringVar(&sessionToken, "token", "", "portal session token")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(watchCmd)
}

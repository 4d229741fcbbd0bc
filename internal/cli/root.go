package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/devkit/internal/adapters/progress"
	"github.com/trebuchet-org/devkit/internal/app"
	"github.com/trebuchet-org/devkit/internal/config"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// Execute runs the root command and releases the network connection afterwards
func Execute(ctx context.Context) error {
	var cleanup func()
	rootCmd := NewRootCmd(&cleanup)
	defer func() {
		if cleanup != nil {
			cleanup()
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates the root command. cleanup receives the app's release func
// once a command has initialized the app.
func NewRootCmd(cleanup *func()) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devkit",
		Short: "Accounts, mocks and test funds for smart contract scripts",
		Long: `devkit picks the signing account, resolves the Chainlink-style contracts a
script depends on and funds contracts with test LINK. On local networks the
mocks are deployed on first use; on live networks addresses come from devkit.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsApp(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, release, err := app.InitApp(v, newSink())
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			if cleanup != nil {
				*cleanup = release
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., development, sepolia)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this long (default from config, 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	accountCmd := NewAccountCmd()
	accountCmd.GroupID = "main"
	rootCmd.AddCommand(accountCmd)

	contractCmd := NewContractCmd()
	contractCmd.GroupID = "main"
	rootCmd.AddCommand(contractCmd)

	fundCmd := NewFundCmd()
	fundCmd.GroupID = "main"
	rootCmd.AddCommand(fundCmd)

	mocksCmd := NewMocksCmd()
	mocksCmd.GroupID = "management"
	rootCmd.AddCommand(mocksCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether a command runs without a project
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// newSink reports progress on stderr. DEVKIT_QUIET silences it.
func newSink() usecase.ProgressSink {
	if os.Getenv("DEVKIT_QUIET") != "" {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

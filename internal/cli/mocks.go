package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/devkit/internal/cli/render"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// NewMocksCmd creates the mocks command group
func NewMocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mocks",
		Short: "Manage mock contracts on local networks",
	}

	cmd.AddCommand(newMocksDeployCmd())
	cmd.AddCommand(newMocksListCmd())
	cmd.AddCommand(newMocksResetCmd())

	return cmd
}

func newMocksDeployCmd() *cobra.Command {
	var (
		decimals     uint8
		initialValue string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a fresh price feed, LINK token and VRF coordinator mock set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployMocksParams{}
			if cmd.Flags().Changed("decimals") {
				params.Decimals = &decimals
			}
			if cmd.Flags().Changed("initial-value") {
				value, ok := new(big.Int).SetString(initialValue, 10)
				if !ok {
					return fmt.Errorf("invalid --initial-value %q", initialValue)
				}
				params.InitialValue = value
			}

			result, err := app.DeployMocks.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewContractRenderer(cmd.OutOrStdout()).RenderMocks(result)
		},
	}

	cmd.Flags().Uint8Var(&decimals, "decimals", domain.DefaultDecimals, "Price feed decimals")
	cmd.Flags().StringVar(&initialValue, "initial-value", "200000000000", "Price feed initial answer")

	return cmd
}

func newMocksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mocks recorded on the active chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListMocks.Run(cmd.Context())
			if err != nil {
				return err
			}

			return render.NewContractRenderer(cmd.OutOrStdout()).RenderHistory(result)
		},
	}
}

func newMocksResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget recorded mocks so the next resolution deploys a fresh set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := app.ListMocks.Reset(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Cleared mock deployments on %s", app.Config.Network.Name)))
			return nil
		},
	}
}

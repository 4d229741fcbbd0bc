package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/devkit/internal/cli/render"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// NewContractCmd creates the contract command
func NewContractCmd() *cobra.Command {
	var redeploy bool

	cmd := &cobra.Command{
		Use:   "contract NAME",
		Short: "Resolve a contract by name on the active network",
		Long: `Resolve a contract by its logical name (eth_usd_price_feed, link_token,
vrf_coordinator).

On local networks the most recent mock is returned, deploying the mock set
first if none exists. On other networks the address is read from
networks.<network>.<name> in devkit.yaml.`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return domain.DefaultRegistry().Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			contract, err := app.ResolveContract.Run(cmd.Context(), usecase.ResolveContractParams{
				Name:     args[0],
				Redeploy: redeploy,
			})
			if err != nil {
				return err
			}

			return render.NewContractRenderer(cmd.OutOrStdout()).RenderContract(contract)
		},
	}

	cmd.Flags().BoolVar(&redeploy, "redeploy", false, "Deploy a fresh mock set before resolving (local networks)")

	return cmd
}

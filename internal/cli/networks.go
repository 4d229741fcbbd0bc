package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/devkit/internal/cli/render"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Long: `List every network from devkit.yaml, foundry.toml [rpc_endpoints] and the
local/forked environment lists, with its kind, host and configured contracts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListNetworks.Run(cmd.Context(), usecase.ListNetworksParams{})
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout()).RenderNetworksList(result)
		},
	}

	return cmd
}

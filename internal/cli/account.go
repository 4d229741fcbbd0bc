package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/devkit/internal/cli/render"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// NewAccountCmd creates the account command
func NewAccountCmd() *cobra.Command {
	var (
		index  int
		id     string
		choose bool
	)

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show the account scripts will sign with",
		Long: `Show the account selected for the active network.

Selection order:
  --index N   the N-th development account
  --id NAME   a saved keystore account
  otherwise   development account 0 on local and forked networks,
              wallets.from_key everywhere else`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.SelectAccountParams{ID: id}
			if cmd.Flags().Changed("index") {
				params.Index = &index
			}

			if choose {
				ids, err := app.Keystore.List(cmd.Context())
				if err != nil {
					return err
				}
				if params.ID, err = app.Prompt.SelectID(cmd.Context(), ids, "Select account"); err != nil {
					return err
				}
			}

			account, err := app.SelectAccount.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewAccountRenderer(cmd.OutOrStdout()).RenderAccount(account, app.Config.Network.Name)
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", 0, "Development account index")
	cmd.Flags().StringVar(&id, "id", "", "Saved keystore account id")
	cmd.Flags().BoolVar(&choose, "choose", false, "Pick a saved keystore account interactively")
	cmd.MarkFlagsMutuallyExclusive("index", "id", "choose")

	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountImportCmd())

	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved keystore accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ids, err := app.Keystore.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list keystore: %w", err)
			}

			addresses := make(map[string]string, len(ids))
			for _, id := range ids {
				address, err := app.Keystore.Address(cmd.Context(), id)
				if err != nil {
					app.Log.Debug("skipping unreadable keystore entry", "id", id, "error", err)
					fmt.Fprintln(cmd.ErrOrStderr(), render.FormatWarning(fmt.Sprintf("Cannot read keystore entry '%s'", id)))
					continue
				}
				addresses[id] = address.Hex()
			}

			return render.NewAccountRenderer(cmd.OutOrStdout()).RenderSaved(ids, addresses)
		},
	}
}

func newAccountImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import ID",
		Short: "Encrypt a private key into the keystore under ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			id := args[0]

			rawKey, err := app.Prompt.Secret(cmd.Context(), "Private key")
			if err != nil {
				return err
			}
			key, err := domain.ParsePrivateKey(rawKey)
			if err != nil {
				return err
			}

			password, err := app.Prompt.Password(cmd.Context(), id)
			if err != nil {
				return err
			}

			account, err := app.Keystore.Save(cmd.Context(), id, key, password)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.FormatSuccess(fmt.Sprintf("Saved %s as '%s'", account.Address.Hex(), id)))
			return nil
		},
	}
}

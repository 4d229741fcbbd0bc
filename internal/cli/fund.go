package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/devkit/internal/cli/render"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// tokenDecimals is the precision of LINK
const tokenDecimals = 18

// NewFundCmd creates the fund command
func NewFundCmd() *cobra.Command {
	var (
		amount string
		index  int
		id     string
	)

	cmd := &cobra.Command{
		Use:   "fund TARGET",
		Short: "Send LINK to a contract",
		Long: `Send LINK from the selected account to TARGET and wait for one confirmation.

TARGET is an address or a contract name such as vrf_coordinator. --amount is
in LINK (0.25) or, with a "wei" suffix, in base units (250000000000000000wei).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			params := usecase.FundParams{}

			if common.IsHexAddress(args[0]) {
				params.Target = common.HexToAddress(args[0])
			} else {
				target, err := app.ResolveContract.Resolve(ctx, args[0])
				if err != nil {
					return err
				}
				params.Target = target.Address
			}

			if amount != "" {
				if params.Amount, err = parseAmount(amount); err != nil {
					return err
				}
			}

			selection := usecase.SelectAccountParams{ID: id}
			if cmd.Flags().Changed("index") {
				selection.Index = &index
			}
			if params.Account, err = app.SelectAccount.Run(ctx, selection); err != nil {
				return err
			}

			result, err := app.FundWithToken.Run(ctx, params)
			if err != nil {
				return err
			}

			return render.NewFundRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount of LINK to send (default 0.25)")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Send from this development account")
	cmd.Flags().StringVar(&id, "id", "", "Send from this saved keystore account")
	cmd.MarkFlagsMutuallyExclusive("index", "id")

	return cmd
}

// parseAmount converts "0.25" LINK or "250000000000000000wei" to base units
func parseAmount(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)

	if raw, ok := strings.CutSuffix(value, "wei"); ok {
		amount, ok := new(big.Int).SetString(raw, 10)
		if !ok || amount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrTransactionFailure, value)
		}
		return amount, nil
	}

	whole, frac, _ := strings.Cut(value, ".")
	if len(frac) > tokenDecimals {
		return nil, fmt.Errorf("%w: amount %q has more than %d decimals", domain.ErrTransactionFailure, value, tokenDecimals)
	}
	if whole == "" {
		whole = "0"
	}

	digits := whole + frac + strings.Repeat("0", tokenDecimals-len(frac))
	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok || amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: invalid amount %q", domain.ErrTransactionFailure, value)
	}
	return amount, nil
}

package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// FundRenderer renders a confirmed funding transfer
type FundRenderer struct {
	out io.Writer
}

// NewFundRenderer creates a new fund renderer
func NewFundRenderer(out io.Writer) *FundRenderer {
	return &FundRenderer{out: out}
}

func (r *FundRenderer) Render(result *usecase.FundResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Sent %s of %s to %s",
		result.Amount.String(), result.Token.Name, result.Target.Hex())))
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("From:"), result.From.Address.Hex())
	if result.Receipt != nil {
		fmt.Fprintf(r.out, "%s %s (block %s)\n", color.New(color.Bold).Sprint("Tx:  "),
			result.Receipt.TxHash.Hex(), result.Receipt.BlockNumber.String())
	}
	return nil
}

var _ Renderer[*usecase.FundResult] = (*FundRenderer)(nil)

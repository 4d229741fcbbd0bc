package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// ContractRenderer renders resolved contracts and deployed mock sets
type ContractRenderer struct {
	out io.Writer
}

// NewContractRenderer creates a new contract renderer
func NewContractRenderer(out io.Writer) *ContractRenderer {
	return &ContractRenderer{out: out}
}

// RenderContract prints a single resolved handle
func (r *ContractRenderer) RenderContract(contract *domain.Contract) error {
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Name:   "), contract.Name)
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Type:   "), contract.Type)
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Address:"), color.New(color.FgGreen).Sprint(contract.Address.Hex()))

	if contract.Deployed.IsZero() {
		fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Origin: "), "network configuration")
		return nil
	}

	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Origin: "), "mock deployment")
	if contract.TxHash != (common.Hash{}) {
		fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Tx:     "), contract.TxHash.Hex())
	}
	return nil
}

// RenderMocks prints a freshly deployed mock set
func (r *ContractRenderer) RenderMocks(result *usecase.DeployMocksResult) error {
	fmt.Fprintf(r.out, "Deployed %d mocks on %s (chain %d) from %s\n\n",
		len(result.Contracts), result.Network, result.ChainID, result.Deployer.Address.Hex())

	t := newTable()
	t.AppendHeader(table.Row{"NAME", "TYPE", "ADDRESS"})
	for _, contract := range result.Contracts {
		t.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(contract.Name),
			contract.Type,
			color.New(color.FgGreen).Sprint(contract.Address.Hex()),
		})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderHistory prints every mock recorded on the active chain, oldest first
func (r *ContractRenderer) RenderHistory(result *usecase.ListMocksResult) error {
	if len(result.Contracts) == 0 {
		fmt.Fprintf(r.out, "No mocks deployed on %s (chain %d)\n", result.Network, result.ChainID)
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"TYPE", "ADDRESS", "DEPLOYED"})
	for _, contract := range result.Contracts {
		t.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(contract.Type),
			color.New(color.FgGreen).Sprint(contract.Address.Hex()),
			contract.Deployed.Local().Format("2006-01-02 15:04:05"),
		})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

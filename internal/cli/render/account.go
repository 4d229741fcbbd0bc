package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/devkit/internal/domain"
)

// AccountRenderer renders selected and saved accounts
type AccountRenderer struct {
	out io.Writer
}

// NewAccountRenderer creates a new account renderer
func NewAccountRenderer(out io.Writer) *AccountRenderer {
	return &AccountRenderer{out: out}
}

// RenderAccount prints the selected account and how it was chosen
func (r *AccountRenderer) RenderAccount(account *domain.Account, network string) error {
	source := string(account.Source)
	if account.Label != "" {
		source = fmt.Sprintf("%s %s", source, account.Label)
	}

	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Account:"), color.New(color.FgGreen).Sprint(account.Address.Hex()))
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Source: "), source)
	fmt.Fprintf(r.out, "%s %s\n", color.New(color.Bold).Sprint("Network:"), network)
	return nil
}

// RenderSaved lists keystore ids with their addresses
func (r *AccountRenderer) RenderSaved(ids []string, addresses map[string]string) error {
	if len(ids) == 0 {
		fmt.Fprintln(r.out, "No saved accounts")
		return nil
	}

	t := newTable()
	t.AppendHeader(table.Row{"ID", "ADDRESS"})
	for _, id := range ids {
		address := addresses[id]
		if address == "" {
			address = color.New(color.Faint).Sprint("locked")
		}
		t.AppendRow(table.Row{color.New(color.FgCyan).Sprint(id), address})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

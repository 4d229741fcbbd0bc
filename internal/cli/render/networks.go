package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/devkit/internal/domain"
	"github.com/trebuchet-org/devkit/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the known networks as a table, the active one marked
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in devkit.yaml or foundry.toml")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := newTable()
	t.AppendHeader(table.Row{"", "NETWORK", "KIND", "HOST", "CONTRACTS"})

	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Active {
			marker = color.New(color.FgGreen, color.Bold).Sprint("*")
		}

		if network.Error != nil {
			t.AppendRow(table.Row{marker, network.Name, color.New(color.FgRed).Sprint("error"), network.Error.Error(), ""})
			continue
		}

		host := network.RPCURL
		switch {
		case network.InProcess:
			host = color.New(color.Faint).Sprint("in-process")
		case host == "":
			host = color.New(color.FgYellow).Sprint("not configured")
		}

		t.AppendRow(table.Row{marker, network.Name, kindColor(network.Kind), host, strings.Join(network.Contracts, ", ")})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}

func kindColor(kind domain.NetworkKind) string {
	switch kind {
	case domain.NetworkLocal:
		return color.New(color.FgCyan).Sprint(kind)
	case domain.NetworkForkedLocal:
		return color.New(color.FgMagenta).Sprint(kind)
	default:
		return color.New(color.FgBlue).Sprint(kind)
	}
}

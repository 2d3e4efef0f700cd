package main

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/prettycat/pkg/transform"
)

// printFilters renders the dispatch table: one row per transformer, in
// priority order, with its match rule and whether its tools are currently
// on PATH.
func printFilters() error {
	data := pterm.TableData{
		{"#", "Transformer", "Match rule", "Available"},
	}

	for i, tr := range transform.Registry() {
		available := "yes"
		if tools := tr.Tools(); len(tools) > 0 && transform.FirstAvailable(tools...) == "" {
			available = "no"
		}
		data = append(data, []string{
			pterm.Sprintf("%d", i+1),
			tr.Name(),
			tr.Describe(),
			available,
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

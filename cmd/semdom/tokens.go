package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/semanticdom/semdom/semdom"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Compare token cost across output formats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		markup, err := readInput(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := semdom.Parse(markup, "", cfg)
		if err != nil {
			return err
		}

		raw := semdom.EstimateTokens(markup)
		c := semdom.CompareTokenUsage(doc)
		fmt.Fprintf(os.Stdout, "%-10s %8s %8s\n", "format", "tokens", "vs html")
		row := func(name string, tokens int) {
			pct := 0.0
			if raw > 0 {
				pct = float64(tokens) / float64(raw) * 100
			}
			fmt.Fprintf(os.Stdout, "%-10s %8d %7.1f%%\n", name, tokens, pct)
		}
		row("html", raw)
		row("json", c.JSON)
		row("toon", c.TOON)
		row("summary", c.Summary)
		row("oneline", c.OneLiner)
		return nil
	},
}

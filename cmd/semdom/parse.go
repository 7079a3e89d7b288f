package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/spf13/cobra"

	"github.com/semanticdom/semdom/semdom"
)

var (
	parseFormat    string
	parseURL       string
	parseSelectors bool
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse HTML into a semantic document",
	Long: `Parse reads HTML from FILE (or stdin with "-") and prints the semantic
document in the chosen format:

  json      full document, nested JSON
  toon      compact line-oriented dump
  summary   sectioned digest for agents
  oneline   single-line page description
  nav       link targets and state transitions
  audio     prose suitable for speech output
  markdown  page content converted to markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		markup, err := readInput(args[0])
		if err != nil {
			return err
		}

		if parseFormat == "markdown" {
			return renderMarkdown(markup)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		doc, err := semdom.Parse(markup, parseURL, cfg)
		if err != nil {
			return err
		}
		slog.Debug("parsed document",
			"nodes", doc.NodeCount(),
			"landmarks", len(doc.Landmarks),
			"interactables", len(doc.Interactables))

		switch parseFormat {
		case "json":
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
		case "toon":
			fmt.Fprint(os.Stdout, semdom.EncodeTOON(doc, semdom.TOONOptions{Selectors: parseSelectors}))
		case "summary":
			fmt.Fprint(os.Stdout, semdom.AgentSummary(doc))
		case "oneline":
			fmt.Fprintln(os.Stdout, semdom.OneLiner(doc))
		case "nav":
			fmt.Fprint(os.Stdout, semdom.NavSummary(doc))
		case "audio":
			fmt.Fprintln(os.Stdout, semdom.AudioSummary(doc))
		default:
			return fmt.Errorf("unknown format %q", parseFormat)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format: json, toon, summary, oneline, nav, audio, markdown")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "source URL recorded in the document")
	parseCmd.Flags().BoolVar(&parseSelectors, "selectors", false, "include CSS selectors in toon output")
}

func renderMarkdown(markup string) error {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	var opts []converter.ConvertOptionFunc
	if parseURL != "" {
		opts = append(opts, converter.WithDomain(parseURL))
	}
	md, err := conv.ConvertString(markup, opts...)
	if err != nil {
		return fmt.Errorf("convert to markdown: %w", err)
	}
	fmt.Fprintln(os.Stdout, md)
	return nil
}

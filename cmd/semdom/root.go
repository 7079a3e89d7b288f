package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/semanticdom/semdom/semdom"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "semdom",
	Short: "Semantic page model for automated agents",
	Long: `semdom converts HTML into a semantically-typed tree: every element
gets a stable id, a role, a label, an inferred intent and accessibility
metadata. On top of the tree it scores agent readiness, derives a state
graph of the page, and renders compact token-efficient views.

File arguments accept "-" for stdin.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}

	rootCmd.AddCommand(parseCmd, validateCmd, tokensCmd, serveCmd)
}

// loadConfig resolves the parser config: the --config file when given,
// defaults otherwise.
func loadConfig() (semdom.Config, error) {
	if cfgFile == "" {
		return semdom.Config{}, nil
	}
	return semdom.LoadConfigFile(cfgFile)
}

// readInput reads a file argument, with "-" meaning stdin.
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

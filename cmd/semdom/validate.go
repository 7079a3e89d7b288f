package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/semanticdom/semdom/semdom"
)

var (
	validateLevel string
	validateCI    bool
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Score agent readiness of an HTML page",
	Long: `Validate parses FILE and prints the certification report: thirteen
weighted checks across structure, accessibility, navigation and
interoperability, an overall score out of 100 and a level (A, AA, AAA).

With --ci the command exits non-zero when the page misses --level.`,
	Args: cobra.ExactArgs(1),
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
		cert := doc.Certification

		fmt.Fprintf(os.Stdout, "Level: %s  Score: %.1f/100\n\n", strings.ToUpper(string(cert.Level)), cert.Score)
		for _, c := range cert.Checks {
			mark := "FAIL"
			if c.Passed {
				mark = "ok"
			}
			fmt.Fprintf(os.Stdout, "  [%-4s] %-12s %s", mark, c.ID, c.Name)
			if c.Details != "" {
				fmt.Fprintf(os.Stdout, " (%s)", c.Details)
			}
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, "\n%d/%d checks passed, completeness %.0f%%\n",
			cert.Stats.ChecksPassed, cert.Stats.ChecksTotal, cert.Stats.Completeness*100)

		if validateCI && !meetsLevel(cert.Level, validateLevel) {
			return fmt.Errorf("certification level %s below required %s", cert.Level, validateLevel)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateLevel, "level", "aa", "required level for --ci: a, aa, aaa")
	validateCmd.Flags().BoolVar(&validateCI, "ci", false, "exit non-zero below the required level")
}

func levelRank(l semdom.Level) int {
	switch l {
	case semdom.LevelAAA:
		return 3
	case semdom.LevelAA:
		return 2
	case semdom.LevelA:
		return 1
	default:
		return 0
	}
}

func meetsLevel(got semdom.Level, want string) bool {
	return levelRank(got) >= levelRank(semdom.Level(strings.ToLower(want)))
}

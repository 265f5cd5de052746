package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credstack/rdcalc/internal/compare"
	"github.com/credstack/rdcalc/internal/config"
)

var (
	compareBase    string
	compareRegimes []string
	compareFormat  string
)

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Calculate one input under every law regime and compare the outcomes",
	Long: `Run the same input through multiple law regimes side by side. The base
regime anchors the comparison; every other regime is reported as a delta
against it, with recommendations for the strongest alternatives.`,
	Args: cobra.ExactArgs(1),
	Run:  runComparison,
}

func init() {
	compareCmd.Flags().StringVar(&compareBase, "base", "", "Base regime id (default: RDCALC_REGIME or the table default)")
	compareCmd.Flags().StringSliceVar(&compareRegimes, "regimes", nil, "Regime ids to compare (default: all)")
	compareCmd.Flags().StringVar(&compareFormat, "format", "table", "Output format (table, csv, json)")
	compareCmd.Flags().String("regimes-file", "", "Path to a custom law regime table")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(compareCmd)
}

func runComparison(cmd *cobra.Command, args []string) {
	inputFile := args[0]

	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(inputFile)
	if err != nil {
		exitWithError(err)
	}

	engine, err := buildEngine(cmd)
	if err != nil {
		exitWithError(err)
	}

	baseID := compareBase
	if baseID == "" {
		baseID = os.Getenv("RDCALC_REGIME")
	}

	compareEngine := compare.NewCompareEngine(engine)
	comparisonSet, err := compareEngine.Compare(input, compare.CompareOptions{
		BaseRegimeID: baseID,
		RegimeIDs:    compareRegimes,
	})
	if err != nil {
		exitWithError(err)
	}
	comparisonSet.InputPath = inputFile

	var rendered string
	switch compareFormat {
	case "csv":
		formatter := &compare.CSVFormatter{}
		rendered, err = formatter.Format(comparisonSet)
	case "json":
		formatter := &compare.JSONFormatter{Pretty: true}
		rendered, err = formatter.Format(comparisonSet)
	case "table", "console", "":
		formatter := &compare.TableFormatter{}
		rendered = formatter.Format(comparisonSet)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format: %s (valid: table, csv, json)\n", compareFormat)
		os.Exit(1)
	}
	if err != nil {
		exitWithError(err)
	}

	fmt.Println(rendered)
}

package main

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/credstack/rdcalc/internal/calculation"
	"github.com/credstack/rdcalc/internal/config"
	"github.com/credstack/rdcalc/internal/output"
)

var (
	sensitivityParameter string
	sensitivityMin       float64
	sensitivityMax       float64
	sensitivitySteps     int
	sensitivityFormat    string
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity [input-file]",
	Short: "Sweep one input parameter and show how the credit responds",
	Long: `Sweep a single input parameter across a range and recalculate the full
credit at each step. Useful for questions like "what happens to the credit
if the R&D allocation moves between 40% and 90%?".`,
	Args: cobra.ExactArgs(1),
	Run:  runSensitivityAnalysis,
}

func init() {
	sensitivityCmd.Flags().StringVar(&sensitivityParameter, "parameter", "", "Input parameter to sweep (required)")
	sensitivityCmd.Flags().Float64Var(&sensitivityMin, "min", 0, "Minimum parameter value")
	sensitivityCmd.Flags().Float64Var(&sensitivityMax, "max", 0, "Maximum parameter value")
	sensitivityCmd.Flags().IntVar(&sensitivitySteps, "steps", 5, "Number of sweep steps")
	sensitivityCmd.Flags().StringVar(&sensitivityFormat, "format", "console", "Output format (console, json)")
	sensitivityCmd.Flags().String("regime", "", "Law regime id (default: RDCALC_REGIME or the table default)")
	sensitivityCmd.Flags().String("regimes-file", "", "Path to a custom law regime table")
	sensitivityCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) {
	if sensitivityParameter == "" {
		fmt.Fprintf(os.Stderr, "Error: --parameter is required (one of: %s)\n",
			strings.Join(calculation.SweepableParameters(), ", "))
		os.Exit(1)
	}

	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(args[0])
	if err != nil {
		exitWithError(err)
	}

	engine, err := buildEngine(cmd)
	if err != nil {
		exitWithError(err)
	}

	analyzer := calculation.NewSensitivityAnalyzerWithEngine(engine)
	analysis, err := analyzer.AnalyzeParameter(input, resolveRegimeID(cmd), calculation.SweepParameter{
		Name:     sensitivityParameter,
		MinValue: decimal.NewFromFloat(sensitivityMin),
		MaxValue: decimal.NewFromFloat(sensitivityMax),
		Steps:    sensitivitySteps,
	})
	if err != nil {
		exitWithError(err)
	}

	switch sensitivityFormat {
	case "json":
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			exitWithError(err)
		}
		fmt.Println(string(data))
	case "console", "":
		printSensitivityAnalysis(analysis)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format: %s (valid: console, json)\n", sensitivityFormat)
		os.Exit(1)
	}
}

func printSensitivityAnalysis(analysis *calculation.SensitivityAnalysis) {
	fmt.Println("SENSITIVITY ANALYSIS")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Parameter:   %s\n", analysis.Parameter.Name)
	fmt.Printf("Range:       %s to %s (%d steps)\n",
		analysis.Parameter.MinValue.StringFixed(2),
		analysis.Parameter.MaxValue.StringFixed(2),
		analysis.Parameter.Steps)
	fmt.Printf("Base Credit: %s\n", output.FormatCurrency(analysis.BaseResult.FederalCredit))
	fmt.Println()

	fmt.Printf("%-18s %-18s %-18s\n", "Value", "Federal Credit", "Change")
	fmt.Println(strings.Repeat("-", 56))
	for _, step := range analysis.Results {
		change := step.CreditChange.StringFixed(2)
		if step.CreditChange.GreaterThan(decimal.Zero) {
			change = "+" + change
		}
		fmt.Printf("%-18s %-18s %-18s\n",
			step.ParameterValue.StringFixed(2),
			output.FormatCurrency(step.Result.FederalCredit),
			change)
	}
	fmt.Println()

	fmt.Printf("Credit Range:  %s to %s\n",
		output.FormatCurrency(analysis.MinCredit),
		output.FormatCurrency(analysis.MaxCredit))
	fmt.Printf("Credit Spread: %s\n", output.FormatCurrency(analysis.CreditSpread))
}

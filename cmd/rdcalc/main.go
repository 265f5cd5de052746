package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/credstack/rdcalc/internal/calculation"
	"github.com/credstack/rdcalc/internal/config"
	"github.com/credstack/rdcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "rdcalc %s (engine %s, commit %s, built %s)\n",
				version, calculation.EngineVersion, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// exitWithError prints the error and exits with the code its kind maps to:
// 2 for input validation, 3 for regime configuration, 1 for everything else.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var valErr *calculation.ValidationError
	var confErr *calculation.ConfigurationError
	switch {
	case errors.As(err, &valErr):
		os.Exit(2)
	case errors.As(err, &confErr):
		os.Exit(3)
	default:
		os.Exit(1)
	}
}

// resolveRegimeID applies the regime precedence: the --regime flag when set,
// else the RDCALC_REGIME environment variable, else empty for the table default.
func resolveRegimeID(cmd *cobra.Command) string {
	if regime, _ := cmd.Flags().GetString("regime"); regime != "" {
		return regime
	}
	return os.Getenv("RDCALC_REGIME")
}

// buildEngine constructs the calculation engine for a command: the builtin
// regime table unless --regimes-file overrides it, with a zap logger attached
// under --debug.
func buildEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	regimesFile, _ := cmd.Flags().GetString("regimes-file")

	var engine *calculation.CalculationEngine
	if regimesFile != "" {
		parser := config.NewInputParser()
		regimes, err := parser.LoadRegimeFile(regimesFile)
		if err != nil {
			return nil, err
		}
		engine = calculation.NewCalculationEngineWithRegimes(regimes)
	} else {
		engine = calculation.NewCalculationEngine()
	}

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		engine.SetLogger(logger.Sugar())
		engine.Debug = true
	}

	return engine, nil
}

var rootCmd = &cobra.Command{
	Use:   "rdcalc",
	Short: "R&D Tax Credit Calculator CLI",
	Long:  "Federal research credit calculator: qualified research expenses, ASC credit, QSB payroll offset, and service pricing",
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate the federal R&D tax credit for an input file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
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

		result, err := engine.Calculate(input, resolveRegimeID(cmd))
		if err != nil {
			exitWithError(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		pretty, _ := cmd.Flags().GetBool("pretty")

		var formatter output.Formatter
		if outputFormat == "json" && pretty {
			formatter = output.JSONFormatter{Pretty: true}
		} else {
			formatter = output.GetFormatterByName(outputFormat)
		}
		if formatter == nil {
			exitWithError(fmt.Errorf("unknown output format: %s (valid: %s)",
				outputFormat, strings.Join(output.AvailableFormatterNames(), ", ")))
		}

		data, err := formatter.Format(result)
		if err != nil {
			exitWithError(err)
		}
		fmt.Print(string(data))

		if save, _ := cmd.Flags().GetBool("save"); save {
			filename, err := output.WriteFormatted(formatter, result, reportExtension(formatter.Name()))
			if err != nil {
				exitWithError(err)
			}
			fmt.Fprintf(os.Stderr, "Report written to %s\n", filename)
		}
	},
}

func reportExtension(formatName string) string {
	switch formatName {
	case "json", "csv":
		return formatName
	default:
		return "txt"
	}
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate an input file without calculating",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		_, err := parser.LoadFromFile(inputFile)
		if err != nil {
			exitWithError(err)
		}

		fmt.Printf("Input file %s is valid\n", inputFile)
	},
}

var regimesCmd = &cobra.Command{
	Use:   "regimes",
	Short: "List the law regimes available to calculations",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := buildEngine(cmd)
		if err != nil {
			exitWithError(err)
		}

		set := engine.Regimes
		fmt.Printf("Law regimes (default: %s)\n\n", set.DefaultID())
		for _, regime := range set.Regimes() {
			fmt.Println(regime.ID)
			if regime.Description != "" {
				fmt.Printf("  %s\n", regime.Description)
			}
			fmt.Printf("  capitalization required: %t\n", regime.CapitalizationRequired)
			fmt.Printf("  payroll offset enabled:  %t\n", regime.PayrollOffsetEnabled)
			if regime.PayrollOffsetEnabled {
				fmt.Printf("  max payroll offset:      $%s\n", regime.MaxPayrollOffset.StringFixed(0))
			}
			fmt.Printf("  credit rates:            %s%% first-time / %s%% repeat\n",
				regime.CreditRateFirstTime.Mul(decimal.NewFromInt(100)).StringFixed(0),
				regime.CreditRateRepeat.Mul(decimal.NewFromInt(100)).StringFixed(0))
			fmt.Println()
		}
	},
}

func init() {
	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	calculateCmd.Flags().Bool("pretty", false, "Indent JSON output")
	calculateCmd.Flags().Bool("save", false, "Also write the report to a timestamped file")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	calculateCmd.Flags().String("regime", "", "Law regime id (default: RDCALC_REGIME or the table default)")
	calculateCmd.Flags().String("regimes-file", "", "Path to a custom law regime table")

	regimesCmd.Flags().String("regimes-file", "", "Path to a custom law regime table")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(regimesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// A missing .env is fine; the variables simply stay unset.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

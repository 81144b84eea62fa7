package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/api"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultAssessmentYear = "2024-25"

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
			fmt.Fprintf(cmd.OutOrStdout(), "taxgo %s (api %s, commit %s, built %s)\n", version, api.Version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taxgo",
		Short:         "Indian income tax regime calculator",
		Long:          "Computes income tax under the old and new regimes, recommends the cheaper one and suggests tax-saving moves",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("regulatory-config", "", "Path to regulatory config file (default: regulatory.yaml if it exists, else the built-in tables)")
	root.PersistentFlags().String("year", "", "Assessment year, e.g. 2024-25 (default: the input file's year, else "+defaultAssessmentYear+")")
	root.PersistentFlags().StringP("format", "f", "table", "Output format (table, json, csv; calculate also takes html)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(calculateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(slabsCmd())
	root.AddCommand(suggestCmd())
	root.AddCommand(breakEvenCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	return root
}

// loadRegistry loads the slab tables named by --regulatory-config, falling back to
// regulatory.yaml in the working directory and then to the built-in tables
func loadRegistry(cmd *cobra.Command) (*domain.SlabRegistry, error) {
	path, _ := cmd.Flags().GetString("regulatory-config")
	if path == "" && fileExists("regulatory.yaml") {
		path = "regulatory.yaml"
	}
	return loadRegistryPath(path)
}

func loadRegistryPath(path string) (*domain.SlabRegistry, error) {
	parser := config.NewRegulatoryParser()
	if path == "" {
		return parser.LoadDefault()
	}
	return parser.LoadFromFile(path)
}

// loadInput reads a taxpayer file; --year overrides the file's assessment year
func loadInput(cmd *cobra.Command, registry *domain.SlabRegistry, filename string) (*config.TaxpayerFile, error) {
	parser := config.NewInputParser(registry.StandardDeduction(), defaultAssessmentYear)
	tf, err := parser.LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	if year, _ := cmd.Flags().GetString("year"); year != "" {
		tf.AssessmentYear = year
	}
	return tf, nil
}

func outputFormat(cmd *cobra.Command, allowed ...string) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q (use %s)", format, strings.Join(allowed, ", "))
}

// cliLogger is the engine logger for --debug runs
func cliLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

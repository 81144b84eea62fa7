package main

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newComparator(cmd *cobra.Command, registry *domain.SlabRegistry) *compare.Comparator {
	comparator := compare.NewComparator(registry)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		comparator.CalcEngine.SetLogger(cliLogger(cmd))
	}
	return comparator
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Compute tax under both regimes and recommend one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, "table", "json", "csv", "html")
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			tf, err := loadInput(cmd, registry, args[0])
			if err != nil {
				return err
			}
			comparator := newComparator(cmd, registry)

			regimeFlag, _ := cmd.Flags().GetString("regime")
			if regimeFlag != "" && format == "html" {
				return fmt.Errorf("the html report always compares both regimes; drop --regime")
			}
			if regimeFlag != "" {
				regime, err := domain.ParseRegime(regimeFlag)
				if err != nil {
					return err
				}
				breakdown, err := comparator.ComputeBreakdown(tf.Input, regime, tf.AssessmentYear)
				if err != nil {
					return err
				}
				return printBreakdown(cmd, format, breakdown)
			}

			result, err := comparator.Compare(tf.Input, tf.AssessmentYear)
			if err != nil {
				return err
			}
			if format == "html" {
				return printHTMLReport(cmd, comparator, tf, result)
			}
			return printComparison(cmd, format, result)
		},
	}
	cmd.Flags().String("regime", "", "Compute a single regime (old or new) instead of comparing")
	return cmd
}

func printComparison(cmd *cobra.Command, format string, result *domain.ComparisonResult) error {
	var out string
	var err error
	switch format {
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(result)
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(result)
	default:
		tf := &compare.TableFormatter{}
		out = tf.Format(result) + "\n" + tf.FormatBreakdown(result.Recommended())
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// printHTMLReport renders the comparison with suggestions for the recommended
// regime and the deduction break-even
func printHTMLReport(cmd *cobra.Command, comparator *compare.Comparator, tf *config.TaxpayerFile, result *domain.ComparisonResult) error {
	suggestions, err := comparator.Suggestions(tf.Input, result.RecommendedRegime, tf.AssessmentYear)
	if err != nil {
		return err
	}
	be, err := breakeven.NewDefaultSolver(comparator).DeductionBreakEven(cmd.Context(), breakeven.Request{
		Input:          tf.Input,
		AssessmentYear: tf.AssessmentYear,
	})
	if err != nil {
		return err
	}

	html, err := output.HTMLFormatter{}.Format(output.Report{
		Comparison:  result,
		Suggestions: suggestions,
		BreakEven:   breakeven.Recommendation(be),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(html)
	return err
}

func printBreakdown(cmd *cobra.Command, format string, b *domain.TaxBreakdown) error {
	var out string
	var err error
	switch format {
	case "json":
		out, err = (&compare.JSONFormatter{Pretty: true}).Format(b)
	case "csv":
		out, err = (&compare.CSVFormatter{}).FormatBreakdown(b)
	default:
		out = (&compare.TableFormatter{}).FormatBreakdown(b)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Summarise the regime comparison for every configured assessment year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, "table", "json")
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			tf, err := loadInput(cmd, registry, args[0])
			if err != nil {
				return err
			}
			comparator := newComparator(cmd, registry)

			years := registry.AssessmentYears()
			if year, _ := cmd.Flags().GetString("year"); year != "" {
				years = []string{year}
			}

			results := make([]*domain.ComparisonResult, 0, len(years))
			for _, year := range years {
				result, err := comparator.Compare(tf.Input, year)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			if format == "json" {
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(results)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			tableFormatter := &compare.TableFormatter{}
			for _, result := range results {
				fmt.Fprintln(cmd.OutOrStdout(), tableFormatter.FormatCompact(result))
			}
			return nil
		},
	}
}

func slabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slabs [old|new]",
		Short: "List the tax slabs of a regime",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, "table", "json")
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			year, _ := cmd.Flags().GetString("year")
			if year == "" {
				year = defaultAssessmentYear
			}

			regimes := domain.Regimes
			if len(args) == 1 {
				regime, err := domain.ParseRegime(args[0])
				if err != nil {
					return err
				}
				regimes = []domain.Regime{regime}
			}

			tables := make([]*domain.RegimeSlabTable, 0, len(regimes))
			for _, regime := range regimes {
				table, err := registry.SlabTable(regime, year)
				if err != nil {
					return err
				}
				tables = append(tables, table)
			}

			if format == "json" {
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(slabsJSON(tables))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			tableFormatter := &compare.TableFormatter{}
			for _, table := range tables {
				fmt.Fprintln(cmd.OutOrStdout(), tableFormatter.FormatSlabs(table))
			}
			return nil
		},
	}
}

type slabTableJSON struct {
	Regime         domain.Regime        `json:"regime"`
	AssessmentYear string               `json:"assessment_year"`
	CessRate       decimal.Decimal      `json:"cess_rate"`
	Slabs          []domain.SlabBracket `json:"slabs"`
}

func slabsJSON(tables []*domain.RegimeSlabTable) []slabTableJSON {
	out := make([]slabTableJSON, len(tables))
	for i, t := range tables {
		out[i] = slabTableJSON{
			Regime:         t.Regime(),
			AssessmentYear: t.AssessmentYear(),
			CessRate:       t.CessRate(),
			Slabs:          t.Brackets(),
		}
	}
	return out
}

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [input-file]",
		Short: "Suggest tax-saving moves with their estimated savings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, "table", "json")
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			tf, err := loadInput(cmd, registry, args[0])
			if err != nil {
				return err
			}
			regimeFlag, _ := cmd.Flags().GetString("regime")
			regime, err := domain.ParseRegime(regimeFlag)
			if err != nil {
				return err
			}

			suggestions, err := newComparator(cmd, registry).Suggestions(tf.Input, regime, tf.AssessmentYear)
			if err != nil {
				return err
			}

			if format == "json" {
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(suggestions)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatSuggestions(suggestions))
			return nil
		},
	}
	cmd.Flags().String("regime", string(domain.RegimeOld), "Regime to optimise (old or new)")
	return cmd
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the deduction level at which both regimes cost the same",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, "table", "json")
			if err != nil {
				return err
			}
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			tf, err := loadInput(cmd, registry, args[0])
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(newComparator(cmd, registry))

			var result any
			allYears, _ := cmd.Flags().GetBool("all-years")
			if allYears {
				result, err = solver.DeductionBreakEvenYears(cmd.Context(), tf.Input, registry.AssessmentYears())
			} else {
				result, err = solver.DeductionBreakEven(cmd.Context(), breakeven.Request{
					Input:          tf.Input,
					AssessmentYear: tf.AssessmentYear,
				})
			}
			if err != nil {
				return err
			}

			if format == "json" {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			tableFormatter := &breakeven.TableFormatter{}
			switch r := result.(type) {
			case *breakeven.MultiYearResult:
				fmt.Fprint(cmd.OutOrStdout(), tableFormatter.FormatMultiYear(r))
			case *breakeven.Result:
				fmt.Fprint(cmd.OutOrStdout(), tableFormatter.Format(r))
			}
			return nil
		},
	}
	cmd.Flags().Bool("all-years", false, "Solve for every configured assessment year")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a taxpayer file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			tf, err := loadInput(cmd, registry, args[0])
			if err != nil {
				return err
			}
			if _, err := registry.SlabTable(domain.RegimeOld, tf.AssessmentYear); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Taxpayer file %s is valid (AY %s, gross income %s)\n",
				args[0], tf.AssessmentYear, domain.FormatRupees(tf.Input.GrossIncome()))
			return nil
		},
	}
}

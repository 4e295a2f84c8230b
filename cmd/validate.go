package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netrunnerdb/cardlint/internal/report"
	"github.com/netrunnerdb/cardlint/internal/validator"
)

var errValidationFailed = errors.New("validation failed")

var (
	legacy         bool
	fixFormatting  bool
	rotationPolicy string
	showSummary    bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the card data repository",
	Long: `Validate checks every document of the repository: JSON well-formedness, schema
conformance, and the references between cards, packs, cycles, factions, types,
sides and rotations. Every problem found is listed before the final count.

With --legacy the older sets.json / set/ layout is validated instead, and every
file is also checked for canonical formatting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fixFormatting && !legacy {
			return fmt.Errorf("--fix_formatting requires --legacy")
		}

		base, pack, schema, err := resolvePaths(legacy)
		if err != nil {
			return err
		}

		policyName := cfg.RotationPolicy
		if cmd.Flags().Changed("rotation-policy") {
			policyName = rotationPolicy
		}
		policy, err := validator.ParseRotationPolicy(policyName)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		results := report.NewTally(out)
		v := validator.NewValidator(validator.Options{
			BasePath:             base,
			PackPath:             pack,
			SchemaPath:           schema,
			Legacy:               legacy,
			FixFormatting:        fixFormatting,
			RotationPolicy:       policy,
			ConsistentAttributes: cfg.ConsistentAttributes,
		}, results)

		if err := v.Validate(); err != nil {
			return err
		}

		if showSummary {
			table, err := results.RenderSummary()
			if err != nil {
				return fmt.Errorf("error rendering summary: %w", err)
			}
			fmt.Fprint(out, table)
		}
		fmt.Fprintln(out, results.Summary(legacy))

		if results.Failed() {
			return errValidationFailed
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&legacy, "legacy", false, "validate the older sets.json / set/ layout")
	validateCmd.Flags().BoolVarP(&fixFormatting, "fix_formatting", "f", false, "write suggested formatting changes to files (legacy only)")
	validateCmd.Flags().StringVar(&rotationPolicy, "rotation-policy", "record", "what a rotation with an unknown cycle does: record or abort")
	validateCmd.Flags().BoolVar(&showSummary, "summary", false, "print a table of violations per collection")
}

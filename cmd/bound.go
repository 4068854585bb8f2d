package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/asymplib/asymp"
)

var BoundCmd = &cobra.Command{
	Use:          "bound [expression]",
	Short:        "Compute an explicit upper bound for an expansion",
	RunE:         runBound,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var boundFlags ringFlags

var (
	boundValidFrom int64
	boundNumeric   bool
)

func init() {
	BoundCmd.Flags().StringVar(&boundFlags.growth, "growth", "n^QQ", "growth group, e.g. \"n^QQ\" or \"k^QQ * m^QQ\"")
	BoundCmd.Flags().StringVar(&boundFlags.dependent, "dependent", "", "name of the bounded dependent variable")
	BoundCmd.Flags().StringVar(&boundFlags.lower, "lower", "0", "lower envelope power of the dependent variable")
	BoundCmd.Flags().StringVar(&boundFlags.upper, "upper", "0", "upper envelope power of the dependent variable")
	BoundCmd.Flags().IntVar(&boundFlags.prec, "prec", 0, "series precision (0 uses ASYMP_PREC or the default)")
	BoundCmd.Flags().Int64Var(&boundValidFrom, "valid-from", 1, "validity floor assumed for every variable")
	BoundCmd.Flags().BoolVar(&boundNumeric, "numeric", false, "evaluate the bound at the smallest valid integers")
}

func runBound(cmd *cobra.Command, args []string) error {
	ring, values, err := boundFlags.buildRing()
	if err != nil {
		return err
	}
	expansion, err := evaluateArg(args[0], ring, values)
	if err != nil {
		return err
	}
	if boundNumeric {
		value, err := asymp.NumericUpperBound(expansion, asymp.WithValidFrom(boundValidFrom))
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), value.RatString())
		return nil
	}
	bound, err := asymp.ExpansionUpperBound(expansion, asymp.WithValidFrom(boundValidFrom))
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), bound.String())
	return nil
}

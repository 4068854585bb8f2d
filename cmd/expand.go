package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ExpandCmd = &cobra.Command{
	Use:          "expand [expression]",
	Short:        "Evaluate an expression into an asymptotic expansion",
	RunE:         runExpand,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var expandFlags ringFlags

func init() {
	ExpandCmd.Flags().StringVar(&expandFlags.growth, "growth", "n^QQ", "growth group, e.g. \"n^QQ\" or \"k^QQ * m^QQ\"")
	ExpandCmd.Flags().StringVar(&expandFlags.dependent, "dependent", "", "name of the bounded dependent variable")
	ExpandCmd.Flags().StringVar(&expandFlags.lower, "lower", "0", "lower envelope power of the dependent variable")
	ExpandCmd.Flags().StringVar(&expandFlags.upper, "upper", "0", "upper envelope power of the dependent variable")
	ExpandCmd.Flags().IntVar(&expandFlags.prec, "prec", 0, "series precision (0 uses ASYMP_PREC or the default)")
}

func runExpand(cmd *cobra.Command, args []string) error {
	ring, values, err := expandFlags.buildRing()
	if err != nil {
		return err
	}
	result, err := evaluateArg(args[0], ring, values)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), result.String())
	return nil
}

package main

import (
	"os"

	"github.com/asymplib/asymp/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "asymp [subcommand]",
	Short:        "asymp\n arithmetic with asymptotic expansions and a bounded dependent variable",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.ExpandCmd)
	rootCmd.AddCommand(cmd.BoundCmd)
}

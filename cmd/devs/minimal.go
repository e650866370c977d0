package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/devs/examples/minimal"
	"github.com/sarchlab/devs/sim"
)

var minimalCompound bool

var minimalCmd = &cobra.Command{
	Use:   "minimal",
	Short: "Run the minimal counter simulation.",
	Run: func(cmd *cobra.Command, args []string) {
		factory := minimal.CounterFactory()
		rootName := "counter"
		if minimalCompound {
			factory = minimal.WrappedCounterFactory()
			rootName = "wrapper"
		}

		s, err := buildSimulation(rootName, factory, endOr(sim.VTime(5)))
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		runSimulation(s)
	},
}

func init() {
	minimalCmd.Flags().BoolVar(&minimalCompound, "compound", false,
		"wrap the counter in a compound with a scaling transformer")
	rootCmd.AddCommand(minimalCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/devs/examples/trafficlight"
	"github.com/sarchlab/devs/sim"
)

var togglePeriod float64

var trafficLightCmd = &cobra.Command{
	Use:   "trafficlight",
	Short: "Run the traffic light simulation.",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := buildSimulation(
			"intersection",
			trafficlight.Factory(sim.VTime(togglePeriod)),
			endOr(sim.VTime(60)))
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		runSimulation(s)
	},
}

func init() {
	trafficLightCmd.Flags().Float64Var(&togglePeriod, "toggle-period", 20,
		"virtual seconds between blink-mode toggles")
	rootCmd.AddCommand(trafficLightCmd)
}

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/devs/examples/queue"
	"github.com/sarchlab/devs/sim"
)

var (
	queuePreset     string
	queueConfigPath string
	queueSeed       int64
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Run the M/M/n queueing system simulation.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := queueConfig()
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		if flagEnd > 0 {
			cfg.End = flagEnd
		}
		if queueSeed != 0 {
			cfg.Seed = queueSeed
		}

		s, err := buildSimulation(
			"queue_system", queue.Factory(cfg), sim.VTime(cfg.End))
		if err != nil {
			cmd.PrintErrln(err)
			return
		}

		runSimulation(s)

		stats, err := queue.StatsFrom(s.Simulator().Model())
		if err != nil {
			logrus.WithError(err).Fatal("cannot read queue statistics")
		}

		logrus.WithFields(logrus.Fields{
			"generated":  stats.Generated,
			"served":     stats.Served,
			"queued":     stats.Queued,
			"in_service": stats.InService,
		}).Info("queue run finished")
	},
}

func queueConfig() (queue.Config, error) {
	if queueConfigPath != "" {
		return queue.LoadConfig(queueConfigPath)
	}

	switch queuePreset {
	case "short":
		return queue.ShortConfig(), nil
	case "long":
		return queue.LongConfig(), nil
	case "large":
		return queue.LargeConfig(), nil
	default:
		return queue.Config{}, &unknownPresetError{preset: queuePreset}
	}
}

type unknownPresetError struct {
	preset string
}

func (e *unknownPresetError) Error() string {
	return "unknown preset " + e.preset +
		", expected one of short, long, large"
}

func init() {
	queueCmd.Flags().StringVar(&queuePreset, "preset", "short",
		"scenario preset: short, long, or large")
	queueCmd.Flags().StringVar(&queueConfigPath, "config", "",
		"YAML scenario file overriding the preset")
	queueCmd.Flags().Int64Var(&queueSeed, "seed", 0,
		"override the scenario seed, 0 keeps it")
	rootCmd.AddCommand(queueCmd)
}

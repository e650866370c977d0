package main

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/devs/sim"
	"github.com/sarchlab/devs/simulation"
	"github.com/sarchlab/devs/tracing"
)

var rootCmd = &cobra.Command{
	Use:   "devs",
	Short: "Run the example simulations that ship with the DEVS engine.",
	Long: `The devs command runs the example simulations that ship with the ` +
		`DEVS engine: a minimal counter, a traffic light, and an M/M/n ` +
		`queueing system. Every run can be traced to the console, recorded ` +
		`to SQLite, and monitored over HTTP.`,
}

var (
	flagEnd         float64
	flagColor       bool
	flagQuiet       bool
	flagRecord      bool
	flagOutput      string
	flagMonitor     bool
	flagMonitorPort int
	flagBrowser     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&flagEnd, "end", 0,
		"virtual end time, 0 keeps the example default")
	flags.BoolVar(&flagColor, "color", false, "colorize the console trace")
	flags.BoolVar(&flagQuiet, "quiet", false, "suppress the console trace")
	flags.BoolVar(&flagRecord, "record", false,
		"record the run into an SQLite database")
	flags.StringVar(&flagOutput, "output", "",
		"recording file name, without the .sqlite3 suffix")
	flags.BoolVar(&flagMonitor, "monitor", false,
		"serve the running simulation over HTTP")
	flags.IntVar(&flagMonitorPort, "monitor-port", 0,
		"monitoring port, 0 picks a random one")
	flags.BoolVar(&flagBrowser, "browser", false,
		"open the monitoring URL in the default browser")
}

// endOr returns the --end flag value, or the example default when unset.
func endOr(def sim.VTime) sim.VTime {
	if flagEnd > 0 {
		return sim.VTime(flagEnd)
	}

	return def
}

func consolePrinter() sim.Printer {
	if flagQuiet {
		return nil
	}

	printer := tracing.NewConsolePrinter(os.Stdout)
	if flagColor {
		printer.WithColor()
	}

	return printer
}

// buildSimulation assembles a simulation honoring the shared flags.
func buildSimulation(
	rootName string,
	factory sim.Factory,
	end sim.VTime,
) (*simulation.Simulation, error) {
	builder := simulation.MakeBuilder().
		WithModel(rootName, factory).
		WithTimeSpan(0, end)

	if printer := consolePrinter(); printer != nil {
		builder = builder.WithPrinter(printer)
	}

	if flagRecord {
		builder = builder.WithDataRecording()
		if flagOutput != "" {
			builder = builder.WithOutputFileName(flagOutput)
		}
	}

	if flagMonitor {
		builder = builder.WithMonitoring()
		if port := monitorPort(); port > 0 {
			builder = builder.WithMonitorPort(port)
		}
		if flagBrowser {
			builder = builder.WithBrowser()
		}
	}

	return builder.Build()
}

func monitorPort() int {
	if flagMonitorPort > 0 {
		return flagMonitorPort
	}

	if env := os.Getenv("DEVS_MONITOR_PORT"); env != "" {
		port, err := strconv.Atoi(env)
		if err != nil {
			logrus.WithError(err).
				Warn("ignoring malformed DEVS_MONITOR_PORT")
			return 0
		}
		return port
	}

	return 0
}

func runSimulation(s *simulation.Simulation) {
	defer s.Terminate()

	if err := s.Run(); err != nil {
		logrus.WithError(err).Fatal("simulation failed")
	}
}

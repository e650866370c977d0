package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/devs/datarecording"
	"github.com/sarchlab/devs/monitoring"
	"github.com/sarchlab/devs/sim"
	"github.com/sarchlab/devs/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	rootName string
	factory  sim.Factory

	start   sim.VTime
	end     sim.VTime
	epsilon sim.VTime

	printer sim.Printer

	recordOn       bool
	outputFileName string

	monitorOn   bool
	monitorPort int
	openBrowser bool
}

// MakeBuilder creates a new builder with the default tolerance and no
// attachments.
func MakeBuilder() Builder {
	return Builder{
		epsilon: sim.DefaultEpsilon,
	}
}

// WithModel sets the root model of the simulation.
func (b Builder) WithModel(name string, factory sim.Factory) Builder {
	b.rootName = name
	b.factory = factory
	return b
}

// WithTimeSpan sets the virtual time range of the simulation.
func (b Builder) WithTimeSpan(start, end sim.VTime) Builder {
	b.start = start
	b.end = end
	return b
}

// WithEpsilon sets the simultaneity tolerance.
func (b Builder) WithEpsilon(epsilon sim.VTime) Builder {
	b.epsilon = epsilon
	return b
}

// WithPrinter attaches an observer to the simulation.
func (b Builder) WithPrinter(printer sim.Printer) Builder {
	b.printer = printer
	return b
}

// WithDataRecording stores the simulation trace in an SQLite database.
func (b Builder) WithDataRecording() Builder {
	b.recordOn = true
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithMonitoring serves the simulation state over HTTP while it runs.
func (b Builder) WithMonitoring() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithBrowser opens the monitoring URL in the default browser.
func (b Builder) WithBrowser() Builder {
	b.openBrowser = true
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.factory == nil {
		panic("a simulation requires a root model")
	}

	if b.end <= b.start {
		panic("a simulation requires end time after start time")
	}

	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordOn && b.outputFileName != "" {
		panic("output file name cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	b.parametersMustBeValid()

	s := &Simulation{
		id: xid.New().String(),
	}

	printers := []sim.Printer{}
	if b.printer != nil {
		printers = append(printers, b.printer)
	}

	if b.recordOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "devs_sim_" + s.id
		}

		s.recorder = datarecording.NewDataRecorder(outputPath)
		printers = append(printers, datarecording.NewSimRecorder(s.recorder))
	}

	simulator, err := sim.NewSimulator(
		b.rootName, b.factory, b.start, b.end, b.epsilon,
		tracing.Tee(printers...))
	if err != nil {
		if s.recorder != nil {
			_ = s.recorder.Close()
		}
		return nil, err
	}

	s.simulator = simulator

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterSimulator(simulator)
		s.monitor.StartServer(b.openBrowser)
	}

	return s, nil
}

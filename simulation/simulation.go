// Package simulation assembles a ready-to-run experiment from the engine,
// tracing, recording, and monitoring building blocks.
package simulation

import (
	"github.com/sarchlab/devs/datarecording"
	"github.com/sarchlab/devs/monitoring"
	"github.com/sarchlab/devs/sim"
)

// A Simulation bundles a simulator with its recording and monitoring
// attachments.
type Simulation struct {
	id        string
	simulator *sim.Simulator
	recorder  datarecording.DataRecorder
	monitor   *monitoring.Monitor
}

// ID returns the unique identifier of this simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Simulator returns the underlying simulator.
func (s *Simulation) Simulator() *sim.Simulator {
	return s.simulator
}

// DataRecorder returns the attached recorder, nil when recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.recorder
}

// Monitor returns the attached monitor, nil when monitoring is off.
func (s *Simulation) Monitor() *monitoring.Monitor {
	return s.monitor
}

// Run executes the simulation and flushes any recording.
func (s *Simulation) Run() error {
	err := s.simulator.Run()

	if s.recorder != nil {
		s.recorder.Flush()
	}

	return err
}

// Terminate releases the resources held by the simulation.
func (s *Simulation) Terminate() {
	if s.recorder != nil {
		_ = s.recorder.Close()
	}
}

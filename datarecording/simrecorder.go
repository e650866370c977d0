package datarecording

import "github.com/sarchlab/devs/sim"

// ScheduledEventEntry is one row of the scheduled_events table.
type ScheduledEventEntry struct {
	Now         float64
	EventTime   float64
	Model       string
	Description string
}

// ExecutedEventEntry is one row of the executed_events table.
type ExecutedEventEntry struct {
	Now         float64
	Model       string
	Description string
}

// StateTransitionEntry is one row of the state_transitions table.
type StateTransitionEntry struct {
	Time      float64
	Model     string
	PrevState string
	NextState string
}

// SimPhaseEntry is one row of the sim_phases table, marking per-model start
// and end of a run.
type SimPhaseEntry struct {
	Time  float64
	Model string
	Phase string
	State string
}

// A SimRecorder is a Printer that records every simulation happening into a
// DataRecorder.
type SimRecorder struct {
	sim.NopPrinter

	recorder DataRecorder
}

// NewSimRecorder creates a SimRecorder and its backing tables.
func NewSimRecorder(recorder DataRecorder) *SimRecorder {
	recorder.CreateTable("scheduled_events", ScheduledEventEntry{})
	recorder.CreateTable("executed_events", ExecutedEventEntry{})
	recorder.CreateTable("state_transitions", StateTransitionEntry{})
	recorder.CreateTable("sim_phases", SimPhaseEntry{})

	return &SimRecorder{recorder: recorder}
}

// OnEventScheduled records an event entering the calendar.
func (r *SimRecorder) OnEventScheduled(now sim.VTime, evt *sim.Event) {
	r.recorder.InsertData("scheduled_events", ScheduledEventEntry{
		Now:         float64(now),
		EventTime:   float64(evt.Time()),
		Model:       evt.Model(),
		Description: evt.Description(),
	})
}

// OnExecutingEventAction records an event action dispatch.
func (r *SimRecorder) OnExecutingEventAction(now sim.VTime, evt *sim.Event) {
	r.recorder.InsertData("executed_events", ExecutedEventEntry{
		Now:         float64(now),
		Model:       evt.Model(),
		Description: evt.Description(),
	})
}

// OnModelStateTransition records a state change of an atomic model.
func (r *SimRecorder) OnModelStateTransition(
	name string,
	t sim.VTime,
	prev, next string,
) {
	r.recorder.InsertData("state_transitions", StateTransitionEntry{
		Time:      float64(t),
		Model:     name,
		PrevState: prev,
		NextState: next,
	})
}

// OnSimStart records one atomic model entering the simulation.
func (r *SimRecorder) OnSimStart(name string, t sim.VTime, state string) {
	r.recorder.InsertData("sim_phases", SimPhaseEntry{
		Time:  float64(t),
		Model: name,
		Phase: "start",
		State: state,
	})
}

// OnSimEnd records one atomic model leaving the simulation.
func (r *SimRecorder) OnSimEnd(name string, t sim.VTime, state string) {
	r.recorder.InsertData("sim_phases", SimPhaseEntry{
		Time:  float64(t),
		Model: name,
		Phase: "end",
		State: state,
	})
}

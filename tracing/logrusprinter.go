package tracing

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/devs/sim"
)

// A LogrusPrinter emits simulation happenings as structured log records.
type LogrusPrinter struct {
	logger *logrus.Logger
}

// NewLogrusPrinter creates a printer emitting through the given logger.
func NewLogrusPrinter(logger *logrus.Logger) *LogrusPrinter {
	return &LogrusPrinter{logger: logger}
}

func (p *LogrusPrinter) at(t sim.VTime) *logrus.Entry {
	return p.logger.WithField("t", float64(t))
}

// OnTimeAdvanced reports virtual time moving forward.
func (p *LogrusPrinter) OnTimeAdvanced(prev, next sim.VTime) {
	p.at(prev).WithField("next", float64(next)).Debug("time advanced")
}

// OnEventScheduled reports an event entering the calendar.
func (p *LogrusPrinter) OnEventScheduled(now sim.VTime, evt *sim.Event) {
	p.at(now).WithFields(logrus.Fields{
		"event_time":  float64(evt.Time()),
		"model":       evt.Model(),
		"description": evt.Description(),
	}).Debug("event scheduled")
}

// OnExecutingEventAction reports an event action being dispatched.
func (p *LogrusPrinter) OnExecutingEventAction(now sim.VTime, evt *sim.Event) {
	p.at(now).WithFields(logrus.Fields{
		"model":       evt.Model(),
		"description": evt.Description(),
	}).Debug("executing event action")
}

// OnModelStateTransition reports a state change of an atomic model.
func (p *LogrusPrinter) OnModelStateTransition(
	name string,
	t sim.VTime,
	prev, next string,
) {
	p.at(t).WithFields(logrus.Fields{
		"model": name,
		"prev":  prev,
		"next":  next,
	}).Info("state transition")
}

// OnSimStart reports one atomic model entering the simulation.
func (p *LogrusPrinter) OnSimStart(name string, t sim.VTime, state string) {
	p.at(t).WithFields(logrus.Fields{
		"model": name,
		"state": state,
	}).Info("simulation start")
}

// OnSimStep reports one completed iteration of the run loop.
func (p *LogrusPrinter) OnSimStep(t sim.VTime, step int) {
	p.at(t).WithField("step", step).Debug("step done")
}

// OnSimEnd reports one atomic model leaving the simulation.
func (p *LogrusPrinter) OnSimEnd(name string, t sim.VTime, state string) {
	p.at(t).WithFields(logrus.Fields{
		"model": name,
		"state": state,
	}).Info("simulation end")
}

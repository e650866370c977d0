// Package tracing provides Printer implementations that observe a running
// simulation: plain and ANSI-colored console output, structured logging, and
// fan-out to multiple printers.
package tracing

import (
	"fmt"
	"io"

	"github.com/sarchlab/devs/sim"
)

const (
	ansiReset  = "\x1b[0m"
	ansiGray   = "\x1b[90m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiBold   = "\x1b[1m"
)

// A ConsolePrinter writes one line per simulation happening. Colors are off
// by default so the output stays pipeable.
type ConsolePrinter struct {
	w     io.Writer
	color bool
}

// NewConsolePrinter creates a printer writing to w.
func NewConsolePrinter(w io.Writer) *ConsolePrinter {
	return &ConsolePrinter{w: w}
}

// WithColor enables ANSI coloring.
func (p *ConsolePrinter) WithColor() *ConsolePrinter {
	p.color = true
	return p
}

func (p *ConsolePrinter) paint(color, s string) string {
	if !p.color {
		return s
	}

	return color + s + ansiReset
}

func (p *ConsolePrinter) stamp(t sim.VTime) string {
	return p.paint(ansiGray, fmt.Sprintf("[T = %v]", t))
}

// OnTimeAdvanced reports virtual time moving forward.
func (p *ConsolePrinter) OnTimeAdvanced(prev, next sim.VTime) {
	fmt.Fprintf(p.w, "%s Advancing time to %v\n", p.stamp(prev), next)
}

// OnEventScheduled reports an event entering the calendar.
func (p *ConsolePrinter) OnEventScheduled(now sim.VTime, evt *sim.Event) {
	fmt.Fprintf(p.w, "%s Scheduling %s\n",
		p.stamp(now), p.paint(ansiCyan, evt.String()))
}

// OnExecutingEventAction reports an event action being dispatched.
func (p *ConsolePrinter) OnExecutingEventAction(now sim.VTime, evt *sim.Event) {
	fmt.Fprintf(p.w, "%s Executing %s\n",
		p.stamp(now), p.paint(ansiCyan, evt.String()))
}

// OnModelStateTransition reports a state change of an atomic model.
func (p *ConsolePrinter) OnModelStateTransition(
	name string,
	t sim.VTime,
	prev, next string,
) {
	fmt.Fprintf(p.w, "%s Model %s: %s -> %s\n",
		p.stamp(t), p.paint(ansiBold, name),
		p.paint(ansiYellow, prev), p.paint(ansiYellow, next))
}

// OnSimStart reports one atomic model entering the simulation.
func (p *ConsolePrinter) OnSimStart(name string, t sim.VTime, state string) {
	fmt.Fprintf(p.w, "%s %s %s with state %s\n",
		p.stamp(t), p.paint(ansiGreen, "Starting"),
		p.paint(ansiBold, name), p.paint(ansiYellow, state))
}

// OnSimStep reports one completed iteration of the run loop.
func (p *ConsolePrinter) OnSimStep(t sim.VTime, step int) {
	fmt.Fprintf(p.w, "%s Step %d done\n", p.stamp(t), step)
}

// OnSimEnd reports one atomic model leaving the simulation.
func (p *ConsolePrinter) OnSimEnd(name string, t sim.VTime, state string) {
	fmt.Fprintf(p.w, "%s %s %s with state %s\n",
		p.stamp(t), p.paint(ansiGreen, "Finished"),
		p.paint(ansiBold, name), p.paint(ansiYellow, state))
}

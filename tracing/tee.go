package tracing

import "github.com/sarchlab/devs/sim"

// Tee fans every printer callback out to all given printers, in order.
func Tee(printers ...sim.Printer) sim.Printer {
	return teePrinter(printers)
}

type teePrinter []sim.Printer

func (t teePrinter) OnTimeAdvanced(prev, next sim.VTime) {
	for _, p := range t {
		p.OnTimeAdvanced(prev, next)
	}
}

func (t teePrinter) OnEventScheduled(now sim.VTime, evt *sim.Event) {
	for _, p := range t {
		p.OnEventScheduled(now, evt)
	}
}

func (t teePrinter) OnExecutingEventAction(now sim.VTime, evt *sim.Event) {
	for _, p := range t {
		p.OnExecutingEventAction(now, evt)
	}
}

func (t teePrinter) OnModelStateTransition(
	name string,
	tm sim.VTime,
	prev, next string,
) {
	for _, p := range t {
		p.OnModelStateTransition(name, tm, prev, next)
	}
}

func (t teePrinter) OnSimStart(name string, tm sim.VTime, state string) {
	for _, p := range t {
		p.OnSimStart(name, tm, state)
	}
}

func (t teePrinter) OnSimStep(tm sim.VTime, step int) {
	for _, p := range t {
		p.OnSimStep(tm, step)
	}
}

func (t teePrinter) OnSimEnd(name string, tm sim.VTime, state string) {
	for _, p := range t {
		p.OnSimEnd(name, tm, state)
	}
}

package sim

// A Printer is the structured observer surface consumed by the simulator.
// Implementations must not feed back into the simulation; they only watch.
type Printer interface {
	OnTimeAdvanced(prev, next VTime)
	OnEventScheduled(now VTime, evt *Event)
	OnExecutingEventAction(now VTime, evt *Event)
	OnModelStateTransition(name string, t VTime, prev, next string)
	OnSimStart(name string, t VTime, state string)
	OnSimStep(t VTime, step int)
	OnSimEnd(name string, t VTime, state string)
}

// NopPrinter ignores every callback. Embed it to implement only a subset of
// the Printer surface.
type NopPrinter struct{}

func (NopPrinter) OnTimeAdvanced(prev, next VTime) {}

func (NopPrinter) OnEventScheduled(now VTime, evt *Event) {}

func (NopPrinter) OnExecutingEventAction(now VTime, evt *Event) {}

func (NopPrinter) OnModelStateTransition(name string, t VTime, prev, next string) {
}

func (NopPrinter) OnSimStart(name string, t VTime, state string) {}

func (NopPrinter) OnSimStep(t VTime, step int) {}

func (NopPrinter) OnSimEnd(name string, t VTime, state string) {}

// printerHook adapts a Printer to the calendar's hook positions.
type printerHook struct {
	printer Printer
}

func (h *printerHook) Func(ctx HookCtx) {
	switch ctx.Pos {
	case HookPosTimeAdvance:
		detail := ctx.Item.(TimeAdvanceDetail)
		h.printer.OnTimeAdvanced(detail.Prev, detail.Next)
	case HookPosEventScheduled:
		h.printer.OnEventScheduled(ctx.Now, ctx.Item.(*Event))
	case HookPosBeforeEventAction:
		h.printer.OnExecutingEventAction(ctx.Now, ctx.Item.(*Event))
	}
}

package sim

// HookPos defines the enum of possible hooking positions
type HookPos struct {
	Name string
}

// HookPosTimeAdvance is a hook position that triggers when the calendar moves
// virtual time forward by more than epsilon. The context item is a
// TimeAdvanceDetail.
var HookPosTimeAdvance = &HookPos{Name: "TimeAdvance"}

// HookPosEventScheduled is a hook position that triggers when an event is
// inserted into the calendar. The context item is the *Event.
var HookPosEventScheduled = &HookPos{Name: "EventScheduled"}

// HookPosBeforeEventAction is a hook position that triggers right before an
// event action is dispatched. The context item is the *Event.
var HookPosBeforeEventAction = &HookPos{Name: "BeforeEventAction"}

// TimeAdvanceDetail carries the previous and the new current time of a
// time-advance hook invocation.
type TimeAdvanceDetail struct {
	Prev VTime
	Next VTime
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Now    VTime
	Item   any
}

// Hookable defines an object that accept Hooks
type Hookable interface {
	// AcceptHook registers a hook
	AcceptHook(hook Hook)
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	hooks []Hook
}

// AcceptHook register a hook
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

// InvokeHook triggers the registered Hooks
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}

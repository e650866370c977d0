package sim

import "fmt"

// An Action is the deferred effect of an event. Actions run to completion on
// the single engine context; the only way to yield is to return.
type Action func()

// An Event is an entry in the calendar. The cancelled flag is shared with the
// CancelToken issued at creation, so any holder of the token can mark the
// event dead without locating it in the heap.
type Event struct {
	time        VTime
	action      Action
	model       string
	description string
	cancelled   *bool

	// seq is assigned by the calendar at insertion and breaks ties among
	// same-time events in FIFO order.
	seq uint64
}

// A CancelToken is a handle to the shared cancelled flag of one event.
// Cancelling is idempotent. The zero token is valid and cancels nothing.
type CancelToken struct {
	flag *bool
}

// MakeEvent creates an event together with its cancel token.
func MakeEvent(t VTime, action Action, model, description string) (*Event, CancelToken) {
	flag := new(bool)
	e := &Event{
		time:        t,
		action:      action,
		model:       model,
		description: description,
		cancelled:   flag,
	}

	return e, CancelToken{flag: flag}
}

// Time returns the scheduled firing time.
func (e *Event) Time() VTime {
	return e.time
}

// Model returns the name of the model the event belongs to. The calendar
// feeds it to the select tie-break.
func (e *Event) Model() string {
	return e.model
}

// Description identifies the event for tracing.
func (e *Event) Description() string {
	return e.description
}

// Cancelled reports whether the event has been marked dead.
func (e *Event) Cancelled() bool {
	return *e.cancelled
}

func (e *Event) String() string {
	return fmt.Sprintf("Event{time = %v, model = %s, description = %s, cancelled = %t}",
		e.time, e.model, e.description, *e.cancelled)
}

// Cancel marks the event dead. A cancelled event is skipped by the calendar,
// never executed.
func (t CancelToken) Cancel() {
	if t.flag != nil {
		*t.flag = true
	}
}

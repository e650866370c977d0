package sim

import "container/heap"

// A Calendar is the shared event queue of one simulation. Events are ordered
// by time; insertion order breaks ties. The calendar owns the current virtual
// time and is the only scheduler in the engine.
//
// The calendar is strictly single-threaded. All actions, listeners, and
// transformers run synchronously on the context that calls ExecuteNext.
type Calendar struct {
	HookableBase

	events  eventHeap
	now     VTime
	end     VTime
	epsilon VTime
	seq     uint64

	// err records the first fatal error raised inside an event action.
	// ExecuteNext picks it up after the action returns.
	err error
}

// NewCalendar creates a calendar spanning [start, end] with the given
// simultaneity tolerance.
func NewCalendar(start, end, epsilon VTime) *Calendar {
	return &Calendar{
		now:     start,
		end:     end,
		epsilon: epsilon,
	}
}

// CurrentTime returns the current virtual time.
func (c *Calendar) CurrentTime() VTime {
	return c.now
}

// EndTime returns the time at which the simulation halts.
func (c *Calendar) EndTime() VTime {
	return c.end
}

// Epsilon returns the simultaneity tolerance.
func (c *Calendar) Epsilon() VTime {
	return c.epsilon
}

// Len returns the number of events currently held, cancelled ones included.
func (c *Calendar) Len() int {
	return c.events.Len()
}

// Schedule inserts an event. Scheduling before the current time fails with a
// *PastScheduleError.
func (c *Calendar) Schedule(e *Event) error {
	if e.time < c.now {
		return &PastScheduleError{Model: e.model, Time: e.time, Now: c.now}
	}

	e.seq = c.seq
	c.seq++
	heap.Push(&c.events, e)

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosEventScheduled,
		Now:    c.now,
		Item:   e,
	})

	return nil
}

// ExecuteNext pops the next concurrent batch, advances virtual time, and
// dispatches every action in it. It returns false when no executable event
// remains at or before the end time, advancing the current time to the end.
// Within a batch of two or more events, dispatch order is decided by the
// selector.
func (c *Calendar) ExecuteNext(selector Selector) (bool, error) {
	head := c.peekLive()
	if head == nil || head.time > c.end {
		c.advanceTime(c.end)
		return false, nil
	}

	t0 := head.time
	c.advanceTime(t0)

	batch := c.drainConcurrent(nil, t0)
	for len(batch) > 0 {
		evt, rest, err := c.pickNext(batch, selector)
		if err != nil {
			return false, err
		}
		batch = rest

		// An earlier action in this batch may have cancelled the pick.
		if evt.Cancelled() {
			continue
		}

		c.InvokeHook(HookCtx{
			Domain: c,
			Pos:    HookPosBeforeEventAction,
			Now:    c.now,
			Item:   evt,
		})

		evt.action()
		if c.err != nil {
			err := c.err
			c.err = nil
			return false, err
		}

		// A transition that synchronously scheduled a zero-delay event at
		// this instant must join the batch, not wait for the next loop turn.
		batch = c.drainConcurrent(batch, t0)
	}

	return true, nil
}

// fail records a fatal error raised inside an event action. The first error
// wins; the run loop aborts once the current action returns.
func (c *Calendar) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// pickNext removes and returns the event to dispatch next. Singleton batches
// bypass the selector.
func (c *Calendar) pickNext(
	batch []*Event,
	selector Selector,
) (*Event, []*Event, error) {
	if len(batch) == 1 {
		return batch[0], batch[:0], nil
	}

	names := make([]string, len(batch))
	for i, e := range batch {
		names[i] = e.model
	}

	chosen := selector(names)
	for i, e := range batch {
		if e.model == chosen {
			return e, append(batch[:i], batch[i+1:]...), nil
		}
	}

	return nil, nil, &SelectInvalidError{Chosen: chosen, Candidates: names}
}

// drainConcurrent moves every live head event within epsilon of t0 from the
// heap into the batch.
func (c *Calendar) drainConcurrent(batch []*Event, t0 VTime) []*Event {
	for {
		head := c.peekLive()
		if head == nil || !head.time.within(t0, c.epsilon) {
			return batch
		}

		heap.Pop(&c.events)
		batch = append(batch, head)
	}
}

// peekLive returns the earliest non-cancelled event, dropping cancelled ones
// from the head of the heap.
func (c *Calendar) peekLive() *Event {
	for c.events.Len() > 0 && c.events[0].Cancelled() {
		heap.Pop(&c.events)
	}

	if c.events.Len() == 0 {
		return nil
	}

	return c.events[0]
}

// advanceTime moves the current time forward. The time-advance hook fires
// only for moves larger than epsilon, which suppresses spurious zero-delta
// advances during batch processing.
func (c *Calendar) advanceTime(to VTime) {
	if to <= c.now {
		return
	}

	prev := c.now
	c.now = to

	if to-prev > c.epsilon {
		c.InvokeHook(HookCtx{
			Domain: c,
			Pos:    HookPosTimeAdvance,
			Now:    c.now,
			Item:   TimeAdvanceDetail{Prev: prev, Next: to},
		})
	}
}

type eventHeap []*Event

// Len returns the number of events in the heap.
func (h eventHeap) Len() int {
	return len(h)
}

// Less returns true if the i-th event fires before the j-th event. Same-time
// events keep their insertion order.
func (h eventHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}

	return h[i].seq < h[j].seq
}

// Swap changes the position of two events in the heap.
func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// Push adds an event to the heap.
func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*Event))
}

// Pop removes and returns the next event to fire.
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	event := old[n-1]
	*h = old[0 : n-1]

	return event
}

package sim

import "fmt"

// An AtomicSpec defines an atomic model as the classic DEVS five-tuple. All
// functions must be pure; the driver owns the mutable state and feeds each
// call the current value.
type AtomicSpec[X, Y, S any] struct {
	// InitialState is the state the model starts in.
	InitialState S

	// DeltaExternal computes the next state when an input arrives. elapsed
	// is the virtual time since the most recent transition.
	DeltaExternal func(s S, elapsed VTime, x X) S

	// DeltaInternal computes the next state of an internal transition.
	DeltaInternal func(s S) S

	// Output computes the value emitted immediately before an internal
	// transition, from the pre-transition state.
	Output func(s S) Y

	// TimeAdvance returns the delay until the next internal transition.
	// Infinity means none.
	TimeAdvance func(s S) VTime
}

// NewAtomic returns a factory building an atomic model from the spec.
func NewAtomic[X, Y, S any](spec AtomicSpec[X, Y, S]) Factory {
	return func(name string, calendar *Calendar) (Model, error) {
		if name == "" {
			return nil, &EmptyNameError{}
		}

		m := &AtomicModel[X, Y, S]{
			name:               name,
			calendar:           calendar,
			spec:               spec,
			state:              spec.InitialState,
			lastTransitionTime: calendar.CurrentTime(),
		}

		if err := m.scheduleInternal(); err != nil {
			return nil, err
		}

		return m, nil
	}
}

// An AtomicModel drives one user-supplied DEVS state machine. It keeps the
// time of the last transition and at most one pending internal-transition
// event in the calendar.
type AtomicModel[X, Y, S any] struct {
	name     string
	calendar *Calendar
	spec     AtomicSpec[X, Y, S]

	state              S
	lastTransitionTime VTime
	pendingInternal    *CancelToken

	outputListeners []OutputListener
	stateListeners  []StateTransitionListener
}

// Name returns the model name.
func (m *AtomicModel[X, Y, S]) Name() string {
	return m.name
}

// Selector returns the FIFO tie-break.
func (m *AtomicModel[X, Y, S]) Selector() Selector {
	return FIFOSelector
}

// State returns a snapshot of the current state.
func (m *AtomicModel[X, Y, S]) State() (Value, bool) {
	return Wrap(m.state), true
}

// Components returns nothing; atomic models have no children.
func (m *AtomicModel[X, Y, S]) Components() (map[string]Model, bool) {
	return nil, false
}

// AddOutputListener registers an observer of emitted values.
func (m *AtomicModel[X, Y, S]) AddOutputListener(l OutputListener) {
	m.outputListeners = append(m.outputListeners, l)
}

// AddStateTransitionListener registers an observer of state changes.
func (m *AtomicModel[X, Y, S]) AddStateTransitionListener(
	l StateTransitionListener,
) {
	m.stateListeners = append(m.stateListeners, l)
}

// InputFromInfluencer schedules an input event at time t.
func (m *AtomicModel[X, Y, S]) InputFromInfluencer(
	from string,
	t VTime,
	value Value,
	transform Transformer,
) error {
	evt, _ := MakeEvent(t, func() {
		if err := m.deliver(from, value, transform); err != nil {
			m.calendar.fail(err)
		}
	}, m.name, "input from "+from)

	return m.calendar.Schedule(evt)
}

// DirectInput delivers value at the current time without going through the
// calendar.
func (m *AtomicModel[X, Y, S]) DirectInput(
	from string,
	value Value,
	transform Transformer,
) error {
	return m.deliver(from, value, transform)
}

// ExternalInput schedules model input at a future time.
func (m *AtomicModel[X, Y, S]) ExternalInput(
	t VTime,
	value Value,
	description string,
) error {
	evt, _ := MakeEvent(t, func() {
		if err := m.deliver(m.name, value, nil); err != nil {
			m.calendar.fail(err)
		}
	}, m.name, description)

	return m.calendar.Schedule(evt)
}

// deliver is the input path. It cancels the pending internal transition,
// applies the external transition function, and schedules the next internal
// transition.
func (m *AtomicModel[X, Y, S]) deliver(
	from string,
	value Value,
	transform Transformer,
) error {
	if transform != nil {
		transformed, err := transform(value)
		if err != nil {
			return &TransformerTypeMismatchError{
				Influencer: from,
				Influencee: m.name,
				Err:        err,
			}
		}
		value = transformed
	}

	x, err := As[X](value)
	if err != nil {
		mismatch := err.(*TypeMismatchError)
		mismatch.From = from
		mismatch.To = m.name
		return mismatch
	}

	if m.pendingInternal != nil {
		m.pendingInternal.Cancel()
		m.pendingInternal = nil
	}

	now := m.calendar.CurrentTime()
	elapsed := now - m.lastTransitionTime

	prev := m.state
	m.state = m.spec.DeltaExternal(prev, elapsed, x)
	m.lastTransitionTime = now
	m.notifyStateTransition(now, prev, m.state)

	return m.scheduleInternal()
}

// internalTransition fires the output function on the pre-transition state,
// applies the internal transition function, and schedules the next internal
// transition.
func (m *AtomicModel[X, Y, S]) internalTransition() {
	now := m.calendar.CurrentTime()
	m.pendingInternal = nil

	y := m.spec.Output(m.state)

	prev := m.state
	m.state = m.spec.DeltaInternal(prev)
	m.lastTransitionTime = now
	m.notifyStateTransition(now, prev, m.state)

	for _, l := range m.outputListeners {
		l(m.name, now, Wrap(y))
	}

	if err := m.scheduleInternal(); err != nil {
		m.calendar.fail(err)
	}
}

// scheduleInternal schedules the next internal transition at now + ta(s) and
// stores its cancel token. An infinite time advance schedules nothing.
func (m *AtomicModel[X, Y, S]) scheduleInternal() error {
	delay := m.spec.TimeAdvance(m.state)
	if delay.IsInfinite() {
		m.pendingInternal = nil
		return nil
	}

	evt, token := MakeEvent(
		m.calendar.CurrentTime()+delay,
		m.internalTransition,
		m.name,
		"internal transition",
	)

	if err := m.calendar.Schedule(evt); err != nil {
		return err
	}

	m.pendingInternal = &token

	return nil
}

func (m *AtomicModel[X, Y, S]) notifyStateTransition(now VTime, prev, next S) {
	prevStr := fmt.Sprintf("%v", prev)
	nextStr := fmt.Sprintf("%v", next)
	for _, l := range m.stateListeners {
		l(m.name, now, prevStr, nextStr)
	}
}

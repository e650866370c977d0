package sim

// A Simulator owns one calendar and one root model and drives the run loop.
type Simulator struct {
	calendar *Calendar
	root     Model
	printer  Printer
}

// NewSimulator builds the calendar, instantiates the root model against it,
// and attaches the printer to the calendar and model observer hooks.
// Construction errors abort setup.
func NewSimulator(
	rootName string,
	factory Factory,
	start, end, epsilon VTime,
	printer Printer,
) (*Simulator, error) {
	if printer == nil {
		printer = NopPrinter{}
	}

	calendar := NewCalendar(start, end, epsilon)

	root, err := factory(rootName, calendar)
	if err != nil {
		return nil, err
	}

	calendar.AcceptHook(&printerHook{printer: printer})
	root.AddStateTransitionListener(printer.OnModelStateTransition)

	return &Simulator{
		calendar: calendar,
		root:     root,
		printer:  printer,
	}, nil
}

// Model returns the root model.
func (s *Simulator) Model() Model {
	return s.root
}

// Calendar returns the shared calendar.
func (s *Simulator) Calendar() *Calendar {
	return s.calendar
}

// ScheduleInput injects root model input at a future time.
func (s *Simulator) ScheduleInput(t VTime, value Value, description string) error {
	return s.root.ExternalInput(t, value, description)
}

// AddOutputListener registers an observer of the root model's output.
func (s *Simulator) AddOutputListener(l OutputListener) {
	s.root.AddOutputListener(l)
}

// Run executes the simulation until no executable event remains at or before
// the end time. Run-time errors abort the loop and propagate to the caller.
func (s *Simulator) Run() error {
	s.forEachAtomic(s.root, func(m Model) {
		state, _ := m.State()
		s.printer.OnSimStart(m.Name(), s.calendar.CurrentTime(), state.String())
	})

	step := 0
	for {
		more, err := s.calendar.ExecuteNext(s.root.Selector())
		if err != nil {
			return err
		}
		if !more {
			break
		}

		s.printer.OnSimStep(s.calendar.CurrentTime(), step)
		step++
	}

	s.forEachAtomic(s.root, func(m Model) {
		state, _ := m.State()
		s.printer.OnSimEnd(m.Name(), s.calendar.CurrentTime(), state.String())
	})

	return nil
}

// forEachAtomic visits every atomic descendant in deterministic name order.
func (s *Simulator) forEachAtomic(m Model, visit func(Model)) {
	components, ok := m.Components()
	if !ok {
		visit(m)
		return
	}

	for _, name := range sortedKeys(components) {
		s.forEachAtomic(components[name], visit)
	}
}

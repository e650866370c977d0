package sim

import "sort"

// Self refers to the compound's own input or output port in an influencer
// map. An edge from Self delivers the compound's external input to a child;
// an edge to Self forwards a child's output to the compound's output.
const Self = ""

// A CompoundSpec defines a coupled model: named child factories, the
// influencer graph, and an optional tie-break for simultaneous events.
type CompoundSpec struct {
	// Components maps child names to their factories.
	Components map[string]Factory

	// Influencers is keyed by influencee, then influencer. A nil transformer
	// is the identity.
	Influencers map[string]map[string]Transformer

	// Select breaks ties among simultaneous events of distinct children.
	// Nil defaults to FIFO.
	Select Selector
}

// NewCompound returns a factory building a compound model from the spec.
func NewCompound(spec CompoundSpec) Factory {
	return func(name string, calendar *Calendar) (Model, error) {
		return newCompoundModel(name, calendar, spec)
	}
}

// A CompoundModel owns its children and the wiring between them. Wiring is
// expressed as output listeners captured at construction; a cross-link never
// extends a child's lifetime beyond the compound.
type CompoundModel struct {
	name     string
	calendar *Calendar
	selector Selector

	components     map[string]Model
	selfInputEdges []selfInputEdge

	outputListeners []OutputListener
	stateListeners  []StateTransitionListener
}

type selfInputEdge struct {
	child     Model
	transform Transformer
}

func newCompoundModel(
	name string,
	calendar *Calendar,
	spec CompoundSpec,
) (*CompoundModel, error) {
	if name == "" {
		return nil, &EmptyNameError{}
	}

	if len(spec.Components) == 0 {
		return nil, &EmptyCompoundError{Compound: name}
	}

	selector := spec.Select
	if selector == nil {
		selector = FIFOSelector
	}

	m := &CompoundModel{
		name:       name,
		calendar:   calendar,
		selector:   selector,
		components: make(map[string]Model, len(spec.Components)),
	}

	if err := m.instantiateChildren(spec); err != nil {
		return nil, err
	}

	if err := m.wire(spec); err != nil {
		return nil, err
	}

	return m, nil
}

// instantiateChildren builds every child in name order, so that listener
// registration and initial event scheduling are deterministic.
func (m *CompoundModel) instantiateChildren(spec CompoundSpec) error {
	for _, childName := range sortedKeys(spec.Components) {
		if childName == m.name {
			return &NameCollisionError{Compound: m.name}
		}

		child, err := spec.Components[childName](childName, m.calendar)
		if err != nil {
			return err
		}

		child.AddStateTransitionListener(m.forwardStateTransition)
		m.components[childName] = child
	}

	return nil
}

func (m *CompoundModel) wire(spec CompoundSpec) error {
	for _, influencee := range sortedKeys(spec.Influencers) {
		edges := spec.Influencers[influencee]
		for _, influencer := range sortedKeys(edges) {
			err := m.wireEdge(influencee, influencer, edges[influencer])
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (m *CompoundModel) wireEdge(
	influencee, influencer string,
	transform Transformer,
) error {
	if influencee == influencer {
		return &SelfInfluenceError{Compound: m.name, Component: influencee}
	}

	if influencee == Self {
		return m.wireSelfOutput(influencer, transform)
	}

	child, ok := m.components[influencee]
	if !ok {
		return &UnknownComponentError{Compound: m.name, Component: influencee}
	}

	if influencer == Self {
		m.selfInputEdges = append(m.selfInputEdges, selfInputEdge{
			child:     child,
			transform: transform,
		})
		return nil
	}

	source, ok := m.components[influencer]
	if !ok {
		return &UnknownComponentError{Compound: m.name, Component: influencer}
	}

	// Influencer outputs become input events for the influencee at the
	// same instant; the greedy batch re-drain keeps them in the current
	// concurrent batch.
	source.AddOutputListener(func(from string, t VTime, value Value) {
		err := child.InputFromInfluencer(from, t, value.Clone(), transform)
		if err != nil {
			m.calendar.fail(err)
		}
	})

	return nil
}

// wireSelfOutput forwards a child's output to the compound's own output
// listeners, synchronously.
func (m *CompoundModel) wireSelfOutput(
	influencer string,
	transform Transformer,
) error {
	source, ok := m.components[influencer]
	if !ok {
		return &UnknownComponentError{Compound: m.name, Component: influencer}
	}

	source.AddOutputListener(func(from string, t VTime, value Value) {
		out := value.Clone()
		if transform != nil {
			transformed, err := transform(out)
			if err != nil {
				m.calendar.fail(&TransformerTypeMismatchError{
					Influencer: from,
					Influencee: m.name,
					Err:        err,
				})
				return
			}
			out = transformed
		}

		for _, l := range m.outputListeners {
			l(m.name, t, out)
		}
	})

	return nil
}

// Name returns the compound name.
func (m *CompoundModel) Name() string {
	return m.name
}

// Selector returns the user-supplied tie-break, FIFO by default.
func (m *CompoundModel) Selector() Selector {
	return m.selector
}

// State returns nothing; compounds have no state of their own.
func (m *CompoundModel) State() (Value, bool) {
	return Value{}, false
}

// Components returns the child map.
func (m *CompoundModel) Components() (map[string]Model, bool) {
	return m.components, true
}

// AddOutputListener registers an observer of the compound's own output port.
func (m *CompoundModel) AddOutputListener(l OutputListener) {
	m.outputListeners = append(m.outputListeners, l)
}

// AddStateTransitionListener registers an observer of the state changes of
// every descendant.
func (m *CompoundModel) AddStateTransitionListener(l StateTransitionListener) {
	m.stateListeners = append(m.stateListeners, l)
}

// InputFromInfluencer schedules an input event that fans the value to every
// child wired to the compound's input port.
func (m *CompoundModel) InputFromInfluencer(
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

// DirectInput fans the value to every child wired to the compound's input
// port at the current instant.
func (m *CompoundModel) DirectInput(
	from string,
	value Value,
	transform Transformer,
) error {
	return m.deliver(from, value, transform)
}

// ExternalInput schedules compound input at a future time.
func (m *CompoundModel) ExternalInput(
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

func (m *CompoundModel) deliver(
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

	for _, edge := range m.selfInputEdges {
		err := edge.child.DirectInput(from, value.Clone(), edge.transform)
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *CompoundModel) forwardStateTransition(
	name string,
	t VTime,
	prev, next string,
) {
	for _, l := range m.stateListeners {
		l(name, t, prev, next)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

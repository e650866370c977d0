package sim

import (
	"fmt"
	"strings"
)

// PastScheduleError reports an attempt to schedule an event before the
// current time.
type PastScheduleError struct {
	Model string
	Time  VTime
	Now   VTime
}

func (e *PastScheduleError) Error() string {
	return fmt.Sprintf(
		"cannot schedule event for model %q at %v, current time is %v",
		e.Model, e.Time, e.Now)
}

// EmptyNameError reports a model constructed with an empty name.
type EmptyNameError struct{}

func (e *EmptyNameError) Error() string {
	return "model name must not be empty"
}

// EmptyCompoundError reports a compound constructed with no components.
type EmptyCompoundError struct {
	Compound string
}

func (e *EmptyCompoundError) Error() string {
	return fmt.Sprintf("compound %q has no components", e.Compound)
}

// NameCollisionError reports a child whose name equals its parent's.
type NameCollisionError struct {
	Compound string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf(
		"compound %q has a component with the same name as itself", e.Compound)
}

// SelfInfluenceError reports an influencer-graph edge that loops a component
// to itself.
type SelfInfluenceError struct {
	Compound  string
	Component string
}

func (e *SelfInfluenceError) Error() string {
	if e.Component == Self {
		return fmt.Sprintf(
			"compound %q wires its own input to its own output", e.Compound)
	}

	return fmt.Sprintf(
		"compound %q wires component %q to itself", e.Compound, e.Component)
}

// UnknownComponentError reports an influencer-graph entry that references a
// component the compound does not have.
type UnknownComponentError struct {
	Compound  string
	Component string
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf(
		"compound %q has no component %q", e.Compound, e.Component)
}

// SelectInvalidError reports a select tie-break that returned a name outside
// the candidate list.
type SelectInvalidError struct {
	Chosen     string
	Candidates []string
}

func (e *SelectInvalidError) Error() string {
	return fmt.Sprintf("select returned %q, candidates are [%s]",
		e.Chosen, strings.Join(e.Candidates, ", "))
}

// TypeMismatchError reports a Value extraction that failed at a model input
// or listener. From and To name the endpoints when they are known.
type TypeMismatchError struct {
	Want string
	Got  string
	From string
	To   string
}

func (e *TypeMismatchError) Error() string {
	msg := fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
	if e.To != "" {
		msg += fmt.Sprintf(" (from %q to %q)", e.From, e.To)
	}

	return msg
}

// TransformerTypeMismatchError reports a transformer that failed on a wiring
// edge, enriched with both endpoint names.
type TransformerTypeMismatchError struct {
	Influencer string
	Influencee string
	Err        error
}

func (e *TransformerTypeMismatchError) Error() string {
	return fmt.Sprintf("transformer on edge %q -> %q failed: %v",
		e.Influencer, e.Influencee, e.Err)
}

func (e *TransformerTypeMismatchError) Unwrap() error {
	return e.Err
}

package sim

import "fmt"

// A Cloner can produce a deep, independent copy of itself. Payloads that
// contain reference types (slices, maps, pointers) should implement Cloner so
// that a Value carrying them can be duplicated along every wiring edge.
type Cloner interface {
	CloneValue() any
}

// A Value is a type-erased carrier for inputs, outputs, and state snapshots.
// It is the only kind of payload that crosses the model boundary, which lets
// heterogeneously typed models share one calendar.
type Value struct {
	v any
}

// Wrap captures v, remembering its concrete type.
func Wrap(v any) Value {
	return Value{v: v}
}

// As extracts the payload as type T. It fails with a *TypeMismatchError when
// the payload holds a different type.
func As[T any](v Value) (T, error) {
	t, ok := v.v.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{
			Want: fmt.Sprintf("%T", zero),
			Got:  fmt.Sprintf("%T", v.v),
		}
	}

	return t, nil
}

// Clone returns an independent copy of the value. Payloads implementing
// Cloner are copied through it; all other payloads are copied with value
// semantics.
func (v Value) Clone() Value {
	if c, ok := v.v.(Cloner); ok {
		return Value{v: c.CloneValue()}
	}

	return Value{v: v.v}
}

// IsNil reports whether the value carries no payload.
func (v Value) IsNil() bool {
	return v.v == nil
}

func (v Value) String() string {
	return fmt.Sprintf("%v", v.v)
}

// Transform lifts a typed conversion into a Transformer. The input is
// extracted as In and the result re-wrapped, so a mismatched payload surfaces
// as a *TypeMismatchError at the receiving edge.
func Transform[In, Out any](f func(In) Out) Transformer {
	return func(v Value) (Value, error) {
		in, err := As[In](v)
		if err != nil {
			return Value{}, err
		}

		return Wrap(f(in)), nil
	}
}

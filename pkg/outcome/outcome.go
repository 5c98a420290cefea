// Package outcome models the result of a call to an external engine as a
// tagged value: either a success carrying a value or a failure carrying the
// reason. Callers branch on Ok() instead of relying on returned errors for
// control flow.
package outcome

// Outcome is the tagged result of one external call.
type Outcome[T any] struct {
	value  T
	reason error
	ok     bool
}

// Success wraps a usable value.
func Success[T any](value T) Outcome[T] {
	return Outcome[T]{value: value, ok: true}
}

// Failure records why no value was produced. A nil reason is allowed but
// callers should always pass one so that it can be logged.
func Failure[T any](reason error) Outcome[T] {
	return Outcome[T]{reason: reason}
}

func (o Outcome[T]) Ok() bool {
	return o.ok
}

// Value returns the wrapped value, or the zero value on failure.
func (o Outcome[T]) Value() T {
	return o.value
}

// Reason is nil for successes.
func (o Outcome[T]) Reason() error {
	return o.reason
}

// ValueOr returns fallback when the outcome is a failure.
func (o Outcome[T]) ValueOr(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Package optional provides a container holding zero or one value.
//
// The container has three modes. ModeEmpty and ModeFull pin the container to
// its empty or full state: stores into a ModeEmpty option are discarded, and
// a ModeFull option always exposes exactly one (possibly zero-valued)
// payload. ModeRuntime tracks presence with a flag. The pinned modes behave
// exactly like a runtime option whose flag never changes; callers must not
// rely on anything beyond that equivalence.
package optional

// Mode selects the storage discipline of an Option.
type Mode uint8

const (
	// ModeEmpty pins the option to the empty state.
	ModeEmpty Mode = iota
	// ModeFull pins the option to the full state.
	ModeFull
	// ModeRuntime tracks presence at runtime.
	ModeRuntime
)

// ModeOf maps an activity flag to a pinned mode.
func ModeOf(active bool) Mode {
	if active {
		return ModeFull
	}
	return ModeEmpty
}

// Option holds zero or one T, following its mode's discipline.
// The zero Option is a ModeEmpty option.
type Option[T any] struct {
	data T
	some bool
	mode Mode
}

// New returns an option of the given mode holding v where the mode allows.
// In ModeEmpty the value is discarded.
func New[T any](mode Mode, v T) Option[T] {
	o := Option[T]{mode: mode}
	o.Set(v)
	return o
}

// Empty returns an empty option of the given mode.
// A ModeFull option is never empty: its payload is the zero value.
func Empty[T any](mode Mode) Option[T] {
	o := Option[T]{mode: mode}
	if mode == ModeFull {
		o.some = true
	}
	return o
}

// Some returns a runtime-mode option holding v.
func Some[T any](v T) Option[T] {
	return New[T](ModeRuntime, v)
}

// None returns an empty runtime-mode option.
func None[T any]() Option[T] {
	return Empty[T](ModeRuntime)
}

// Mode returns the option's storage mode.
func (o Option[T]) Mode() Mode {
	return o.mode
}

// IsEmpty reports whether no value is held.
func (o Option[T]) IsEmpty() bool {
	switch o.mode {
	case ModeEmpty:
		return true
	case ModeFull:
		return false
	default:
		return !o.some
	}
}

// Size is 0 or 1.
func (o Option[T]) Size() int {
	if o.IsEmpty() {
		return 0
	}
	return 1
}

// Set stores v. Discarded in ModeEmpty.
func (o *Option[T]) Set(v T) {
	if o.mode == ModeEmpty {
		return
	}
	o.data = v
	o.some = true
}

// Clear resets the option to empty and zeroes the payload.
// In ModeFull the payload is zeroed but the option stays full.
func (o *Option[T]) Clear() {
	var zero T
	o.data = zero
	o.some = o.mode == ModeFull
}

// Front returns the held value, or the zero value when empty.
func (o Option[T]) Front() T {
	if o.IsEmpty() {
		var zero T
		return zero
	}
	return o.data
}

// FrontRef returns a pointer to the payload for in-place updates.
// It is nil when the option is empty.
func (o *Option[T]) FrontRef() *T {
	if o.IsEmpty() {
		return nil
	}
	return &o.data
}

// GetOr returns the held value, or def when empty.
// A ModeFull option ignores def.
func (o Option[T]) GetOr(def T) T {
	if o.IsEmpty() {
		return def
	}
	return o.data
}

// Slice returns a 0- or 1-element view of the payload, enabling uniform
// range-based consumption across all modes.
func (o *Option[T]) Slice() []T {
	if o.IsEmpty() {
		return nil
	}
	return []T{o.data}
}

// Equal compares two options: presence must agree, and if both are present
// the payloads must be equal under eq.
func (o Option[T]) Equal(x Option[T], eq func(a, b T) bool) bool {
	if o.IsEmpty() != x.IsEmpty() {
		return false
	}
	if o.IsEmpty() {
		return true
	}
	return eq(o.data, x.data)
}

// Convert maps an option's payload type, preserving mode and presence.
func Convert[A, B any](o Option[B], conv func(B) A) Option[A] {
	r := Option[A]{mode: o.mode, some: !o.IsEmpty()}
	if !o.IsEmpty() {
		r.data = conv(o.data)
	}
	return r
}

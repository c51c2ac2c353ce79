package placed

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/fieldcalc/fieldcalc/field"
	"github.com/fieldcalc/fieldcalc/optional"
	"github.com/fieldcalc/fieldcalc/tier"
)

// Placed is a value annotated with the tier sets where it is defined and
// from which it aggregates neighbor data.
//
// The payload is held in an optional whose mode is pinned by the activity
// flag: a device whose tier is outside P carries an empty container and every
// read falls back to defaults. When Q is zero the payload field is constant
// (a purely local value); when Q is nonzero it is a real neighboring field.
//
// The payload type T must be a plain value: nesting a field or another
// placed value is rejected at construction.
type Placed[T any] struct {
	place Placement
	data  optional.Option[field.Field[T]]
}

// New returns a placed value holding the local value v at the given
// placement. On inactive devices the value is discarded.
func New[T any](pl Placement, v T) Placed[T] {
	mustValid(pl)
	assertLeaf[T]()
	x := Placed[T]{place: pl, data: optional.Empty[field.Field[T]](optional.ModeOf(pl.Active()))}
	x.data.Set(field.Constant(v))
	return x
}

// NewLocal returns a purely local value, defined everywhere: P = All, Q = 0.
func NewLocal[T any](t tier.Tier, v T) Placed[T] {
	return New(At(t), v)
}

// Zero returns a placed value in its default state: an empty container on
// inactive devices, a zero payload on active ones.
func Zero[T any](pl Placement) Placed[T] {
	mustValid(pl)
	assertLeaf[T]()
	return Placed[T]{place: pl, data: optional.Empty[field.Field[T]](optional.ModeOf(pl.Active()))}
}

// FromField returns a placed value built from a neighboring field. The field
// is kept only when the device is active and Q is nonzero; otherwise the
// payload degenerates to its default state (neighbor data is meaningless for
// a purely local placement).
func FromField[T any](pl Placement, f field.Field[T]) Placed[T] {
	x := Zero[T](pl)
	if pl.Active() && pl.Q != tier.None {
		x.data.Set(f)
	}
	return x
}

// Make builds a placed value from parallel device-id/value sequences, with
// the field default first (see field.Make).
func Make[T any](pl Placement, ids []field.Device, vals []T) Placed[T] {
	return FromField(pl, field.Make(ids, vals))
}

// wrap stores a combinator result without the FromField degeneration rule:
// the caller guarantees f is constant whenever pl.Q is zero.
func wrap[T any](pl Placement, f field.Field[T]) Placed[T] {
	x := Zero[T](pl)
	x.data.Set(f)
	return x
}

// Place returns the value's placement.
func (x Placed[T]) Place() Placement {
	return x.place
}

// Active reports whether this device holds data for the value.
func (x Placed[T]) Active() bool {
	return x.place.Active()
}

// Get returns the underlying field. It is only valid on values defined
// everywhere (P = All); anywhere else the read is a programmer error and
// panics.
func (x Placed[T]) Get() field.Field[T] {
	if x.place.P != tier.All {
		panic(newError(ErrCodeIncompatible, "Get on a value defined only on %s", maskString(x.place.P)))
	}
	return x.data.Front()
}

// GetOr returns the underlying field, or def when this device holds no data.
func (x Placed[T]) GetOr(def field.Field[T]) field.Field[T] {
	return x.data.GetOr(def)
}

// GetOrLocal returns the payload's local (default) value, or def when this
// device holds no data.
func (x Placed[T]) GetOrLocal(def T) T {
	if x.data.IsEmpty() {
		return def
	}
	return x.data.Front().Def()
}

// Equal compares placements and payloads pointwise.
func Equal[T comparable](a, b Placed[T]) bool {
	return a.place == b.place && a.data.Equal(b.data, field.Equal[T])
}

// Retype converts the value to a different placement at the same tier,
// subject to the is-a relation checked by CanAssign.
func Retype[T any](x Placed[T], dst Placement) (Placed[T], error) {
	mustValid(dst)
	if !CanAssign(x.place, dst) {
		return Placed[T]{}, newError(ErrCodeIncompatible,
			"cannot assign %s to %s", x.place, dst)
	}
	r := Zero[T](dst)
	if dst.Active() {
		r.data.Set(x.data.Front())
	}
	return r, nil
}

// MustRetype is Retype, panicking on incompatible placements.
func MustRetype[T any](x Placed[T], dst Placement) Placed[T] {
	r, err := Retype(x, dst)
	if err != nil {
		panic(err)
	}
	return r
}

// ConvertValue maps the payload type, preserving placement and presence.
func ConvertValue[A, B any](x Placed[B], conv func(B) A) Placed[A] {
	assertLeaf[A]()
	return Placed[A]{
		place: x.place,
		data: optional.Convert(x.data, func(f field.Field[B]) field.Field[A] {
			return field.Map1(conv, f)
		}),
	}
}

// String renders the value as "payload@p,q"; an absent payload renders as
// the payload's type name. Purely local payloads print as bare values.
func (x Placed[T]) String() string {
	var payload string
	switch {
	case x.data.IsEmpty():
		var zero T
		payload = fmt.Sprintf("%T", zero)
	case x.place.Q == tier.None:
		payload = fmt.Sprintf("%v", x.data.Front().Def())
	default:
		payload = x.data.Front().String()
	}
	return fmt.Sprintf("%s@%s,%s", payload, maskString(x.place.P), maskString(x.place.Q))
}

// Print writes the diagnostic rendering to out.
func (x Placed[T]) Print(out io.Writer) error {
	_, err := io.WriteString(out, x.String())
	return err
}

// Serialize writes the payload to w using enc for each value. The placement
// itself is static information and is not written.
func (x Placed[T]) Serialize(w io.Writer, enc func(io.Writer, T) error) error {
	return x.data.Serialize(w, func(w io.Writer, f field.Field[T]) error {
		return f.Serialize(w, enc)
	})
}

// Deserialize reads a placed value at the given placement from r.
func Deserialize[T any](r io.Reader, pl Placement, dec func(io.Reader) (T, error)) (Placed[T], error) {
	x := Zero[T](pl)
	data, err := optional.Deserialize(r, optional.ModeOf(pl.Active()), func(r io.Reader) (field.Field[T], error) {
		return field.Deserialize(r, dec)
	})
	if err != nil {
		return x, fmt.Errorf("read placed payload: %w", err)
	}
	x.data = data
	return x, nil
}

// assertLeaf rejects payload types that are themselves fields or placed
// values. The check is on the type, not the value, so it fires on the first
// construction of a malformed instantiation.
func assertLeaf[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	name := t.Name()
	switch {
	case strings.HasPrefix(name, "Field[") && strings.Contains(t.PkgPath(), "fieldcalc/field"):
		panic(newError(ErrCodeNestedField, "cannot instantiate a placed field of fields"))
	case strings.HasPrefix(name, "Placed[") && strings.Contains(t.PkgPath(), "fieldcalc/placed"):
		panic(newError(ErrCodeNestedPlaced, "cannot instantiate a placed field of placed fields"))
	}
}

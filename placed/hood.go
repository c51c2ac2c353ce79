package placed

import (
	"github.com/fieldcalc/fieldcalc/field"
	"github.com/fieldcalc/fieldcalc/tier"
)

// Pointwise combinators over placed arguments.
//
// Each argument is a plain value, a neighboring field, or a placed value;
// the combinator infers the unified placement following the same rules as
// Resolve: P intersects the arguments' defined-on sets, Q unites their
// provenance sets. When no argument is placed the combinator degrades to the
// plain field operation, so placed combinators remain a conservative
// superset of field ones. When the inferred placement is inactive on the
// current device, no work is done and an empty result is produced.

// Arg is one combinator argument: a local value, a field, or a placed value.
type Arg[T any] struct {
	kind argKind
	val  T
	fld  field.Field[T]
	pl   Placed[T]
}

type argKind uint8

const (
	argValue argKind = iota
	argField
	argPlaced
)

// ValueArg wraps a plain local value.
func ValueArg[T any](v T) Arg[T] {
	return Arg[T]{kind: argValue, val: v}
}

// FieldArg wraps a bare neighboring field.
func FieldArg[T any](f field.Field[T]) Arg[T] {
	return Arg[T]{kind: argField, fld: f}
}

// PlacedArg wraps a placed value.
func PlacedArg[T any](x Placed[T]) Arg[T] {
	return Arg[T]{kind: argPlaced, pl: x}
}

// Placed returns the wrapped placed value, if the argument is placed.
func (a Arg[T]) Placed() (Placed[T], bool) {
	return a.pl, a.kind == argPlaced
}

// Field returns the wrapped field, if the argument is a bare field.
func (a Arg[T]) Field() (field.Field[T], bool) {
	return a.fld, a.kind == argField
}

// Value returns the wrapped local value, if the argument is one.
func (a Arg[T]) Value() (T, bool) {
	return a.val, a.kind == argValue
}

// MustPlaced returns the wrapped placed value, panicking otherwise.
func (a Arg[T]) MustPlaced() Placed[T] {
	if a.kind != argPlaced {
		panic(newError(ErrCodeIncompatible, "combinator result is not placed"))
	}
	return a.pl
}

// meta is the placement contribution of one argument, independent of its
// payload type.
type meta struct {
	kind argKind
	t    tier.Tier
	p, q tier.Tier
}

func (a Arg[T]) meta() meta {
	switch a.kind {
	case argField:
		return meta{kind: argField, p: tier.All, q: tier.All}
	case argPlaced:
		pl := a.pl.place
		return meta{kind: argPlaced, t: pl.Tier, p: pl.P, q: pl.Q}
	default:
		return meta{kind: argValue, p: tier.All, q: tier.None}
	}
}

// payload unwraps the argument for pointwise work. Only called on placed
// arguments when the inferred placement is active, which implies every
// placed argument is active too.
func (a Arg[T]) payload() field.Field[T] {
	switch a.kind {
	case argField:
		return a.fld
	case argPlaced:
		return a.pl.data.Front()
	default:
		return field.Constant(a.val)
	}
}

// analyze unifies the arguments' placement contributions. The returned tier
// is zero when no argument is placed. Placed arguments at different tiers
// panic with a tier mismatch.
func analyze(ms ...meta) (t tier.Tier, p, q tier.Tier) {
	p, q = tier.All, tier.None
	for _, m := range ms {
		if m.kind == argPlaced {
			if t == 0 {
				t = m.t
			} else if m.t != t {
				panic(newError(ErrCodeTierMismatch,
					"mixing up different tiers: placed arguments at tiers %d and %d", t, m.t))
			}
		}
		p = tier.Inf(p, m.p)
		q = tier.Sup(q, m.q)
	}
	return t, p, q
}

// anyField reports whether some argument is a bare field.
func anyField(ms ...meta) bool {
	for _, m := range ms {
		if m.kind == argField {
			return true
		}
	}
	return false
}

// PMap1 applies op pointwise to one argument.
func PMap1[A, R any](op func(A) R, a Arg[A]) Arg[R] {
	t, p, q := analyze(a.meta())
	if t == 0 {
		if anyField(a.meta()) {
			return FieldArg(field.Map1(op, a.fld))
		}
		return ValueArg(op(a.val))
	}
	pl := Placement{Tier: t, P: p, Q: q}
	if !pl.Active() {
		return PlacedArg(Zero[R](pl))
	}
	return PlacedArg(wrap(pl, field.Map1(op, a.payload())))
}

// PMap2 applies op pointwise across two arguments.
func PMap2[A, B, R any](op func(A, B) R, a Arg[A], b Arg[B]) Arg[R] {
	t, p, q := analyze(a.meta(), b.meta())
	if t == 0 {
		if anyField(a.meta(), b.meta()) {
			return FieldArg(field.Map2(op, a.payload(), b.payload()))
		}
		return ValueArg(op(a.val, b.val))
	}
	pl := Placement{Tier: t, P: p, Q: q}
	if !pl.Active() {
		return PlacedArg(Zero[R](pl))
	}
	return PlacedArg(wrap(pl, field.Map2(op, a.payload(), b.payload())))
}

// PMap3 applies op pointwise across three arguments.
func PMap3[A, B, C, R any](op func(A, B, C) R, a Arg[A], b Arg[B], c Arg[C]) Arg[R] {
	t, p, q := analyze(a.meta(), b.meta(), c.meta())
	if t == 0 {
		if anyField(a.meta(), b.meta(), c.meta()) {
			return FieldArg(field.Map3(op, a.payload(), b.payload(), c.payload()))
		}
		return ValueArg(op(a.val, b.val, c.val))
	}
	pl := Placement{Tier: t, P: p, Q: q}
	if !pl.Active() {
		return PlacedArg(Zero[R](pl))
	}
	return PlacedArg(wrap(pl, field.Map3(op, a.payload(), b.payload(), c.payload())))
}

// PMap4 applies op pointwise across four arguments.
func PMap4[A, B, C, D, R any](op func(A, B, C, D) R, a Arg[A], b Arg[B], c Arg[C], d Arg[D]) Arg[R] {
	t, p, q := analyze(a.meta(), b.meta(), c.meta(), d.meta())
	if t == 0 {
		if anyField(a.meta(), b.meta(), c.meta(), d.meta()) {
			return FieldArg(field.Map4(op, a.payload(), b.payload(), c.payload(), d.payload()))
		}
		return ValueArg(op(a.val, b.val, c.val, d.val))
	}
	pl := Placement{Tier: t, P: p, Q: q}
	if !pl.Active() {
		return PlacedArg(Zero[R](pl))
	}
	return PlacedArg(wrap(pl, field.Map4(op, a.payload(), b.payload(), c.payload(), d.payload())))
}

// FoldHood reduces a placed field over a device domain to a single placed
// value, including every listed device. The result is purely local: its
// provenance collapses to Q = 0.
func FoldHood[A any](op func(A, A) A, x Placed[A], dom []field.Device) Placed[A] {
	pl := Placement{Tier: x.place.Tier, P: x.place.P, Q: tier.None}
	if !x.place.Active() {
		return Zero[A](pl)
	}
	return New(pl, field.Fold(op, x.data.Front(), dom))
}

// FoldHoodExcl reduces a placed field over a device domain, skipping device
// self and seeding the reduction with base.
func FoldHoodExcl[A, B any](op func(A, B) B, x Placed[A], base B, dom []field.Device, self field.Device) Placed[B] {
	pl := Placement{Tier: x.place.Tier, P: x.place.P, Q: tier.None}
	if !x.place.Active() {
		return Zero[B](pl)
	}
	return New(pl, field.FoldExcl(op, x.data.Front(), base, dom, self))
}

// GetOr combines several placed values at the same tier into one whose
// defined-on and provenance sets are the unions of the arguments'. The
// payload is taken from the first argument active on this device; with none
// active the result is empty.
func GetOr[T any](xs ...Placed[T]) Placed[T] {
	if len(xs) == 0 {
		panic(newError(ErrCodeIncompatible, "GetOr needs at least one argument"))
	}
	t := xs[0].place.Tier
	var p, q tier.Tier
	for _, x := range xs {
		if x.place.Tier != t {
			panic(newError(ErrCodeTierMismatch,
				"mixing up different tiers: placed arguments at tiers %d and %d", t, x.place.Tier))
		}
		p = tier.Sup(p, x.place.P)
		q = tier.Sup(q, x.place.Q)
	}
	pl := Placement{Tier: t, P: p, Q: q}
	r := Zero[T](pl)
	for _, x := range xs {
		if x.place.Active() {
			r.data.Set(x.data.Front())
			break
		}
	}
	return r
}

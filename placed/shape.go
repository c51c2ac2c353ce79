package placed

import (
	"fmt"
	"strings"

	"github.com/fieldcalc/fieldcalc/tier"
)

// Shape describes the static structure of a value flowing through the
// calculus: a plain scalar, a neighboring-field leaf, a placed leaf, or an
// aggregate (product or fixed-size array) of shapes. Shapes stand in for the
// type expressions the calculus analyzes; Resolve is the inference engine
// that unifies an arbitrary shape into a single placement.
type Shape interface {
	isShape()
	String() string
}

// Scalar is a plain local value.
type Scalar struct {
	Name string
}

// FieldLeaf is a bare neighboring field with no explicit placement. It is
// treated as defined everywhere with maximal provenance: P = All, Q = All.
type FieldLeaf struct {
	Elem Shape
}

// PlacedLeaf is an already-placed value.
type PlacedLeaf struct {
	Place Placement
	Elem  Shape
}

// Product is a tuple-like aggregate of heterogeneous shapes.
type Product struct {
	Elems []Shape
}

// ArrayOf is a fixed-size array of one element shape.
type ArrayOf struct {
	Elem Shape
	Len  int
}

func (Scalar) isShape()     {}
func (FieldLeaf) isShape()  {}
func (PlacedLeaf) isShape() {}
func (Product) isShape()    {}
func (ArrayOf) isShape()    {}

func (s Scalar) String() string { return s.Name }

func (s FieldLeaf) String() string { return fmt.Sprintf("field(%s)", s.Elem) }

func (s PlacedLeaf) String() string {
	return fmt.Sprintf("placed(%s)%s,%s", s.Elem, "@"+maskString(s.Place.P), maskString(s.Place.Q))
}

func (s Product) String() string {
	parts := make([]string, len(s.Elems))
	for i, e := range s.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (s ArrayOf) String() string { return fmt.Sprintf("[%d]%s", s.Len, s.Elem) }

// ExtractTier scans shapes depth-first and returns the device tier of the
// first placed leaf found, or zero if none is placed. Bare field leaves
// carry no tier of their own. Disagreeing tiers among placed leaves are not
// detected here; they surface through Resolve.
func ExtractTier(shapes ...Shape) tier.Tier {
	for _, s := range shapes {
		switch v := s.(type) {
		case PlacedLeaf:
			return v.Place.Tier
		case Product:
			if t := ExtractTier(v.Elems...); t != 0 {
				return t
			}
		case ArrayOf:
			if t := ExtractTier(v.Elem); t != 0 {
				return t
			}
		}
	}
	return 0
}

// IsPlaced reports whether any of the shapes contains a placed leaf.
func IsPlaced(shapes ...Shape) bool {
	return ExtractTier(shapes...) != 0
}

// Info is the result of placement inference: the shape with every placed and
// field wrapper stripped, and the unified tier sets.
type Info struct {
	Value Shape
	P     tier.Tier
	Q     tier.Tier
}

// Placement returns the inferred placement at device tier t.
func (i Info) Placement(t tier.Tier) Placement {
	return Placement{Tier: t, P: i.P, Q: i.Q}
}

// Resolve infers the placement of shape s at device tier t.
//
// Plain scalars resolve to P = All, Q = 0; a placed leaf must be at tier t
// and contributes its own tier sets; a bare field leaf contributes
// P = All, Q = All; products combine elements by intersecting P and uniting
// Q; arrays propagate their single element's result.
func Resolve(t tier.Tier, s Shape) (Info, error) {
	if !tier.Atomic(t) {
		return Info{}, newError(ErrCodeNotAtomic, "device tier %d must have exactly one bit set", t)
	}
	return resolve(t, s)
}

func resolve(t tier.Tier, s Shape) (Info, error) {
	switch v := s.(type) {
	case Scalar:
		return Info{Value: v, P: tier.All, Q: tier.None}, nil

	case FieldLeaf:
		if err := assertValueShape(v.Elem); err != nil {
			return Info{}, err
		}
		return Info{Value: v.Elem, P: tier.All, Q: tier.All}, nil

	case PlacedLeaf:
		if err := v.Place.Validate(); err != nil {
			return Info{}, err
		}
		if v.Place.Tier != t {
			return Info{}, newError(ErrCodeTierMismatch,
				"mixing up different tiers: placed leaf at tier %d resolved at tier %d", v.Place.Tier, t)
		}
		if err := assertValueShape(v.Elem); err != nil {
			return Info{}, err
		}
		return Info{Value: v.Elem, P: v.Place.P, Q: v.Place.Q}, nil

	case Product:
		value := Product{Elems: make([]Shape, len(v.Elems))}
		p, q := tier.All, tier.None
		for i, e := range v.Elems {
			sub, err := resolve(t, e)
			if err != nil {
				return Info{}, err
			}
			value.Elems[i] = sub.Value
			p = tier.Inf(p, sub.P)
			q = tier.Sup(q, sub.Q)
		}
		return Info{Value: value, P: p, Q: q}, nil

	case ArrayOf:
		sub, err := resolve(t, v.Elem)
		if err != nil {
			return Info{}, err
		}
		return Info{Value: ArrayOf{Elem: sub.Value, Len: v.Len}, P: sub.P, Q: sub.Q}, nil

	default:
		return Info{}, fmt.Errorf("unknown shape %T", s)
	}
}

// ValueShape strips every placed and field wrapper from s, preserving the
// aggregate structure.
func ValueShape(t tier.Tier, s Shape) (Shape, error) {
	info, err := Resolve(t, s)
	if err != nil {
		return nil, err
	}
	return info.Value, nil
}

// Decay drops a placed leaf down to its underlying field type: a field of
// the element when Q is nonzero, the bare element otherwise. Any other shape
// is returned unchanged.
func Decay(s Shape) Shape {
	if v, ok := s.(PlacedLeaf); ok {
		if v.Place.Q != tier.None {
			return FieldLeaf{Elem: v.Elem}
		}
		return v.Elem
	}
	return s
}

// assertValueShape checks that a leaf's element contains no further placed
// or field leaves: fields of fields and placed of placed are malformed.
func assertValueShape(s Shape) error {
	switch v := s.(type) {
	case Scalar:
		return nil
	case FieldLeaf:
		return newError(ErrCodeNestedField, "cannot place a field of fields")
	case PlacedLeaf:
		return newError(ErrCodeNestedPlaced, "cannot place a placed value inside a placed value")
	case Product:
		for _, e := range v.Elems {
			if err := assertValueShape(e); err != nil {
				return err
			}
		}
		return nil
	case ArrayOf:
		return assertValueShape(v.Elem)
	default:
		return fmt.Errorf("unknown shape %T", s)
	}
}

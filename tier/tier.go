// Package tier provides the bitmask algebra classifying devices into
// coordination levels.
//
// A Tier is an unsigned bitmask. A concrete device belongs to exactly one
// level, so its tier has exactly one bit set (Atomic). Arbitrary masks
// describe tier *sets*: groups of levels a value is defined on or sourced
// from.
package tier

// Tier is a bitmask over device coordination levels.
type Tier uint32

const (
	// None is the empty tier set.
	None Tier = 0
	// All is the full tier set, the identity for intersection.
	All Tier = ^Tier(0)
)

// Subset reports whether every level in x is also in y.
func Subset(x, y Tier) bool {
	return x&^y == 0
}

// Atomic reports whether t identifies a single level (exactly one bit set).
func Atomic(t Tier) bool {
	return t != 0 && t&(t-1) == 0
}

// Inf is the intersection of the given tier sets.
// The empty intersection is All.
func Inf(ts ...Tier) Tier {
	r := All
	for _, t := range ts {
		r &= t
	}
	return r
}

// Sup is the union of the given tier sets.
// The empty union is None.
func Sup(ts ...Tier) Tier {
	r := None
	for _, t := range ts {
		r |= t
	}
	return r
}

package placed

import (
	"fmt"

	"github.com/fieldcalc/fieldcalc/tier"
)

// Placement locates a placed value in the device hierarchy.
//
// Tier is the atomic tier of the device instantiating the value. P is the
// tier set on which the value is defined: a device holds real data iff its
// tier intersects P. Q is the tier set from which neighbor data may have been
// merged in: Q == 0 means the payload is a purely local value, nonzero Q
// means it is a neighboring field of values sourced from tiers in Q.
type Placement struct {
	Tier tier.Tier
	P    tier.Tier
	Q    tier.Tier
}

// At returns the placement of a purely local value, defined everywhere:
// P = All, Q = None.
func At(t tier.Tier) Placement {
	return Placement{Tier: t, P: tier.All, Q: tier.None}
}

// Validate checks that the device tier is atomic.
func (pl Placement) Validate() error {
	if !tier.Atomic(pl.Tier) {
		return newError(ErrCodeNotAtomic, "device tier %d must have exactly one bit set", pl.Tier)
	}
	return nil
}

// Active reports whether a device at pl.Tier actually holds data: the
// activity flag tier & p.
func (pl Placement) Active() bool {
	return pl.Tier&pl.P != 0
}

// Dual swaps the defined-on and sourced-from tier sets.
func (pl Placement) Dual() Placement {
	return Placement{Tier: pl.Tier, P: pl.Q, Q: pl.P}
}

// CanAssign reports whether a value placed at src may be assigned to a
// destination placed at dst: same device tier, wherever the destination
// claims definition the source must be defined too (dst.P subset of src.P),
// and the destination's provenance claim must not exceed the source's
// (src.Q subset of dst.Q).
func CanAssign(src, dst Placement) bool {
	return src.Tier == dst.Tier && tier.Subset(dst.P, src.P) && tier.Subset(src.Q, dst.Q)
}

// String renders the placement as "tier@p,q" with All rendered as "*".
func (pl Placement) String() string {
	return fmt.Sprintf("%d@%s,%s", pl.Tier, maskString(pl.P), maskString(pl.Q))
}

func maskString(m tier.Tier) string {
	if m == tier.All {
		return "*"
	}
	return fmt.Sprintf("%d", m)
}

func mustValid(pl Placement) {
	if err := pl.Validate(); err != nil {
		panic(err)
	}
}

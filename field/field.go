// Package field implements neighboring fields: mappings from neighbor device
// identifiers to per-neighbor values, with a default for devices not listed.
//
// A field is value-semantic and immutable after construction. Per-device
// entries ("exceptions") are kept sorted by device id, so pointwise
// operations align domains with a linear merge.
package field

import (
	"fmt"
	"sort"
	"strings"
)

// Device identifies a device in the network.
type Device uint32

// Field maps neighbor devices to values of type T.
type Field[T any] struct {
	def  T
	ids  []Device
	vals []T
}

// Constant returns a field taking value v on every device.
func Constant[T any](v T) Field[T] {
	return Field[T]{def: v}
}

// Make builds a field from parallel sequences: ids lists the devices with an
// explicit entry, and vals holds the default followed by one value per id
// (len(vals) == len(ids)+1). The ids must be strictly increasing.
//
// Malformed input is a programmer error and panics.
func Make[T any](ids []Device, vals []T) Field[T] {
	if len(vals) != len(ids)+1 {
		panic(fmt.Sprintf("field: %d ids require %d values, got %d", len(ids), len(ids)+1, len(vals)))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			panic(fmt.Sprintf("field: ids must be strictly increasing, got %v", ids))
		}
	}
	f := Field[T]{def: vals[0]}
	if len(ids) > 0 {
		f.ids = append([]Device(nil), ids...)
		f.vals = append([]T(nil), vals[1:]...)
	}
	return f
}

// Def returns the default value, taken by devices without an explicit entry.
func (f Field[T]) Def() T {
	return f.def
}

// At returns the value for device d.
func (f Field[T]) At(d Device) T {
	i := sort.Search(len(f.ids), func(i int) bool { return f.ids[i] >= d })
	if i < len(f.ids) && f.ids[i] == d {
		return f.vals[i]
	}
	return f.def
}

// Ids returns the devices with an explicit entry, in increasing order.
func (f Field[T]) Ids() []Device {
	return append([]Device(nil), f.ids...)
}

// Equal compares two fields pointwise: defaults must agree and the fields
// must agree on every device of either domain.
func Equal[T comparable](a, b Field[T]) bool {
	if a.def != b.def {
		return false
	}
	for _, d := range unionIDs(a.ids, b.ids) {
		if a.At(d) != b.At(d) {
			return false
		}
	}
	return true
}

// String renders the field as "field(def; id:val, ...)".
func (f Field[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "field(%v", f.def)
	for i, d := range f.ids {
		if i == 0 {
			b.WriteString("; ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%v", d, f.vals[i])
	}
	b.WriteString(")")
	return b.String()
}

// unionIDs merges two sorted id slices without duplicates.
func unionIDs(a, b []Device) []Device {
	out := make([]Device, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i] < b[j]):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

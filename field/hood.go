package field

// Pointwise maps and domain folds over neighboring fields.
//
// Maps combine their inputs device by device: the result's domain is the
// union of the input domains, and its default applies the operator to the
// input defaults. Folds reduce a field over an explicit domain of device ids,
// combining right to left.

// Map1 applies op to every value of a field.
func Map1[A, R any](op func(A) R, a Field[A]) Field[R] {
	r := Field[R]{def: op(a.def)}
	if len(a.ids) > 0 {
		r.ids = append([]Device(nil), a.ids...)
		r.vals = make([]R, len(a.vals))
		for i, v := range a.vals {
			r.vals[i] = op(v)
		}
	}
	return r
}

// Map2 applies op pointwise across two fields.
func Map2[A, B, R any](op func(A, B) R, a Field[A], b Field[B]) Field[R] {
	ids := unionIDs(a.ids, b.ids)
	r := Field[R]{def: op(a.def, b.def), ids: ids, vals: make([]R, len(ids))}
	for i, d := range ids {
		r.vals[i] = op(a.At(d), b.At(d))
	}
	if len(ids) == 0 {
		r.ids, r.vals = nil, nil
	}
	return r
}

// Map3 applies op pointwise across three fields.
func Map3[A, B, C, R any](op func(A, B, C) R, a Field[A], b Field[B], c Field[C]) Field[R] {
	ids := unionIDs(unionIDs(a.ids, b.ids), c.ids)
	r := Field[R]{def: op(a.def, b.def, c.def), ids: ids, vals: make([]R, len(ids))}
	for i, d := range ids {
		r.vals[i] = op(a.At(d), b.At(d), c.At(d))
	}
	if len(ids) == 0 {
		r.ids, r.vals = nil, nil
	}
	return r
}

// Map4 applies op pointwise across four fields.
func Map4[A, B, C, D, R any](op func(A, B, C, D) R, a Field[A], b Field[B], c Field[C], d Field[D]) Field[R] {
	ids := unionIDs(unionIDs(a.ids, b.ids), unionIDs(c.ids, d.ids))
	r := Field[R]{def: op(a.def, b.def, c.def, d.def), ids: ids, vals: make([]R, len(ids))}
	for i, dev := range ids {
		r.vals[i] = op(a.At(dev), b.At(dev), c.At(dev), d.At(dev))
	}
	if len(ids) == 0 {
		r.ids, r.vals = nil, nil
	}
	return r
}

// Fold reduces the field's values over the domain to a single value,
// including every listed device. The domain must be non-empty; an empty
// domain yields the field's default.
func Fold[A any](op func(A, A) A, f Field[A], dom []Device) A {
	if len(dom) == 0 {
		return f.def
	}
	acc := f.At(dom[len(dom)-1])
	for k := len(dom) - 2; k >= 0; k-- {
		acc = op(f.At(dom[k]), acc)
	}
	return acc
}

// FoldExcl reduces the field's values over the domain, skipping device self
// and seeding the reduction with base.
func FoldExcl[A, B any](op func(A, B) B, f Field[A], base B, dom []Device, self Device) B {
	acc := base
	for k := len(dom) - 1; k >= 0; k-- {
		if dom[k] == self {
			continue
		}
		acc = op(f.At(dom[k]), acc)
	}
	return acc
}

package placed

import "cmp"

// Named arithmetic, comparison and boolean operations over combinator
// arguments. Each forwards to a pointwise map; the host language cannot
// conditionally enable infix operators on argument shape, so the operator
// set of the calculus is spelled out.

// Numeric constrains payloads supporting arithmetic.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Integer constrains payloads supporting modulo and bitwise operations.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Add is pointwise addition.
func Add[T Numeric](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x + y }, a, b)
}

// Sub is pointwise subtraction.
func Sub[T Numeric](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x - y }, a, b)
}

// Mul is pointwise multiplication.
func Mul[T Numeric](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x * y }, a, b)
}

// Div is pointwise division.
func Div[T Numeric](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x / y }, a, b)
}

// Mod is pointwise remainder.
func Mod[T Integer](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x % y }, a, b)
}

// Neg is pointwise negation.
func Neg[T Numeric](a Arg[T]) Arg[T] {
	return PMap1(func(x T) T { return -x }, a)
}

// BitAnd, BitOr, BitXor and BitNot are the pointwise bitwise operations.
func BitAnd[T Integer](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x & y }, a, b)
}

func BitOr[T Integer](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x | y }, a, b)
}

func BitXor[T Integer](a, b Arg[T]) Arg[T] {
	return PMap2(func(x, y T) T { return x ^ y }, a, b)
}

func BitNot[T Integer](a Arg[T]) Arg[T] {
	return PMap1(func(x T) T { return ^x }, a)
}

// Eq and Ne are pointwise equality tests.
func Eq[T comparable](a, b Arg[T]) Arg[bool] {
	return PMap2(func(x, y T) bool { return x == y }, a, b)
}

func Ne[T comparable](a, b Arg[T]) Arg[bool] {
	return PMap2(func(x, y T) bool { return x != y }, a, b)
}

// Lt, Le, Gt and Ge are the pointwise order comparisons.
func Lt[T cmp.Ordered](a, b Arg[T]) Arg[bool] {
	return PMap2(func(x, y T) bool { return x < y }, a, b)
}

func Le[T cmp.Ordered](a, b Arg[T]) Arg[bool] {
	return PMap2(func(x, y T) bool { return x <= y }, a, b)
}

func Gt[T cmp.Ordered](a, b Arg[T]) Arg[bool] {
	return PMap2(func(x, y T) bool { return x > y }, a, b)
}

func Ge[T cmp.Ordered](a, b Arg[T]) Arg[bool] {
	return PMap2(func(x, y T) bool { return x >= y }, a, b)
}

// And, Or and Not are the pointwise boolean connectives.
func And(a, b Arg[bool]) Arg[bool] {
	return PMap2(func(x, y bool) bool { return x && y }, a, b)
}

func Or(a, b Arg[bool]) Arg[bool] {
	return PMap2(func(x, y bool) bool { return x || y }, a, b)
}

func Not(a Arg[bool]) Arg[bool] {
	return PMap1(func(x bool) bool { return !x }, a)
}

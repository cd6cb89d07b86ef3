// Package coerce converts [ir.Node] values into Go primitive values and back.
//
// The rules, in priority order:
//
//  1. A node whose type matches the target passes through.
//  2. Numbers and strings convert into each other. A string converts to a
//     number only when the whole string parses as one.
//  3. Booleans and numbers convert into each other through 0 and 1 only.
//  4. Null yields [ErrNull]. Callers decide whether a default applies or the
//     value counts as missing.
//  5. Anything else fails with a [*KindMismatchError].
//
// Failures inside a compatible conversion, such as a fractional number
// for an integer target, are reported as [*CoercionError].
//
// The typed helpers [IntOf], [FloatOf], [StringOf] and [BoolOf] return a
// [Conv] for a concrete Go type, including named types such as
//
//	type Status string
//
// and check narrowing overflow for small integer and float32 targets.
package coerce

// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fiseinterfaces

// The With* methods below form the fluent construction layer over RuleSet.
// All of them take the receiver by value and return a modified copy; a
// RuleSet is never mutated in place, so presets may be shared freely and
// derived variants built from them without coordination.

// WithSaltRange returns a copy of the rule set permitting salt lengths in
// [min, max].
//
// Note that the preset length codecs fix their token width from the range
// they were constructed with; widening the range beyond what that width can
// express requires constructing the codec anew rather than using this method
func (rs RuleSet[T]) WithSaltRange(min, max int) RuleSet[T] {
	rs.SaltRange = &Range{Min: min, Max: max}
	return rs
}

// WithOffset returns a copy of the rule set using fn to place the length
// token. The copy is marked content-dependent: recovery will use the general
// search rather than the length-only fast path
func (rs RuleSet[T]) WithOffset(fn func(cipherText T, ctx Context) int) RuleSet[T] {
	rs.Offset = fn
	rs.LengthOnlyOffset = false
	return rs
}

// WithLengthOnlyOffset returns a copy of the rule set using fn to place the
// length token, declaring that fn depends only on len(cipherText). Recovery
// of envelopes built with such a rule set takes the fast path
func (rs RuleSet[T]) WithLengthOnlyOffset(fn func(cipherText T, ctx Context) int) RuleSet[T] {
	rs.Offset = fn
	rs.LengthOnlyOffset = true
	return rs
}

// WithLengthCodec returns a copy of the rule set using the supplied
// encode/decode pair for the length token. The pair must satisfy the fixed
// width and round-trip contracts documented on RuleSet
func (rs RuleSet[T]) WithLengthCodec(
	encode func(n int, ctx Context) T,
	decode func(token T, ctx Context) (int, error),
) RuleSet[T] {
	rs.EncodeLength = encode
	rs.DecodeLength = decode
	return rs
}

// WithSaltPlacement returns a copy of the rule set using the supplied
// extract/strip pair to partition envelopes into carrier and salt during
// recovery. The two must be exact complements. Assembly always places the
// salt at the tail; non-tail placements only make sense for recovering
// envelopes produced by another party
func (rs RuleSet[T]) WithSaltPlacement(
	extract func(envelope T, saltLen int, ctx Context) T,
	strip func(envelope T, saltLen int, ctx Context) T,
) RuleSet[T] {
	rs.ExtractSalt = extract
	rs.StripSalt = strip
	return rs
}

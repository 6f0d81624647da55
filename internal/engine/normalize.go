// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package engine

import (
	fiseinterfaces "github.com/anbkit/fise/interfaces"
	"github.com/anbkit/fise/internal/errors"
)

// DefaultSaltRange is applied when a rule set leaves its range unset
var DefaultSaltRange = fiseinterfaces.Range{Min: 10, Max: 99}

// Rules is a fully resolved rule set: every optional field populated, plus
// the measured width of an encoded length token. Construct with Normalize;
// never mutated afterwards
type Rules[T fiseinterfaces.Sequence] struct {
	Offset       func(cipherText T, ctx fiseinterfaces.Context) int
	EncodeLength func(n int, ctx fiseinterfaces.Context) T
	DecodeLength func(token T, ctx fiseinterfaces.Context) (int, error)
	ExtractSalt  func(envelope T, saltLen int, ctx fiseinterfaces.Context) T
	StripSalt    func(envelope T, saltLen int, ctx fiseinterfaces.Context) T

	SaltRange  fiseinterfaces.Range
	LengthOnly bool

	// Width of an encoded length token, measured once during normalization
	// by probing EncodeLength with the range minimum and an empty context.
	// Assumed constant for every length in range; a rule set violating that
	// silently corrupts envelopes (a compliance requirement on rule authors,
	// not something the codec detects)
	EncodedLengthSize int
}

// Normalize resolves a rule set into its fully specified form. It is a pure
// function apart from the single width probe of EncodeLength
func Normalize[T fiseinterfaces.Sequence](rs fiseinterfaces.RuleSet[T]) (Rules[T], error) {
	var nr Rules[T]

	switch {
	case rs.Offset == nil:
		return nr, errors.MissingRuleError{Name: "Offset"}
	case rs.EncodeLength == nil:
		return nr, errors.MissingRuleError{Name: "EncodeLength"}
	case rs.DecodeLength == nil:
		return nr, errors.MissingRuleError{Name: "DecodeLength"}
	}

	r := DefaultSaltRange
	if rs.SaltRange != nil {
		r = *rs.SaltRange
	}
	if r.Min < 0 || r.Min > r.Max {
		return nr, errors.RangeError{Min: r.Min, Max: r.Max}
	}

	nr.Offset = rs.Offset
	nr.EncodeLength = rs.EncodeLength
	nr.DecodeLength = rs.DecodeLength
	nr.SaltRange = r
	nr.LengthOnly = rs.LengthOnlyOffset

	nr.ExtractSalt = rs.ExtractSalt
	if nr.ExtractSalt == nil {
		nr.ExtractSalt = tailExtract[T]
	}
	nr.StripSalt = rs.StripSalt
	if nr.StripSalt == nil {
		nr.StripSalt = tailStrip[T]
	}

	nr.EncodedLengthSize = len(rs.EncodeLength(r.Min, fiseinterfaces.Context{}))
	return nr, nil
}

// Default salt placement: the trailing saltLen elements are the salt, the
// remainder is the carrier. The two functions are exact complements

func tailExtract[T fiseinterfaces.Sequence](e T, saltLen int, _ fiseinterfaces.Context) T {
	if saltLen >= len(e) {
		return e
	}
	return e[len(e)-saltLen:]
}

func tailStrip[T fiseinterfaces.Sequence](e T, saltLen int, _ fiseinterfaces.Context) T {
	if saltLen >= len(e) {
		return e[:0]
	}
	return e[:len(e)-saltLen]
}

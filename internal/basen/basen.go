// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package basen encodes small non-negative integers as fixed-width strings
// over arbitrary alphabets. It backs the preset length codecs (decimal,
// hex, base36, base62 and caller-supplied alphabets)
package basen

import (
	"errors"
	"fmt"
)

var (
	ErrAlphabetTooShort  = errors.New("basen: alphabet needs at least 2 symbols")
	ErrDuplicateSymbol   = errors.New("basen: alphabet contains a duplicate symbol")
	ErrNonASCIISymbol    = errors.New("basen: alphabet symbols must be single bytes")
	ErrValueOutOfRange   = errors.New("basen: value not representable in the given width")
	ErrInvalidChar       = errors.New("basen: invalid character")
	ErrUnexpectedWidth   = errors.New("basen: token has unexpected width")
	ErrValueOverflowsInt = errors.New("basen: value overflows int")
)

const (
	// maxUint is the maximum value a uint can hold
	maxUint = ^uint(0)
	// maxInt is the maximum value an int can hold
	maxInt = int(maxUint >> 1)
)

// Encoding is a positional numeral system over a byte alphabet. The zero
// value is not usable; construct with New
type Encoding struct {
	alphabet string

	// Symbol -> digit value; -1 for bytes outside the alphabet
	decode [256]int16
}

// New builds an Encoding over alphabet. The alphabet must contain at least
// two distinct single-byte symbols; symbol order defines digit significance
// (first symbol is zero)
func New(alphabet string) (*Encoding, error) {
	if len(alphabet) < 2 {
		return nil, ErrAlphabetTooShort
	}
	for _, r := range alphabet {
		if r >= 0x80 {
			return nil, fmt.Errorf("%w: %q", ErrNonASCIISymbol, r)
		}
	}

	e := &Encoding{alphabet: alphabet}
	for i := range e.decode {
		e.decode[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if e.decode[c] != -1 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSymbol, c)
		}
		e.decode[c] = int16(i)
	}
	return e, nil
}

// Base returns the radix of the encoding
func (e *Encoding) Base() int {
	return len(e.alphabet)
}

// Width returns the number of digits required to represent every value in
// [0, max]
func (e *Encoding) Width(max int) int {
	w := 1
	for limit := len(e.alphabet); max >= limit; w++ {
		// Saturate rather than overflow for absurd maxima
		if limit > maxInt/len(e.alphabet) {
			return w + 1
		}
		limit *= len(e.alphabet)
	}
	return w
}

// Encode renders n as exactly width digits, most significant first, zero
// padded with the alphabet's first symbol
func (e *Encoding) Encode(n, width int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d", ErrValueOutOfRange, n)
	}

	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = e.alphabet[n%len(e.alphabet)]
		n /= len(e.alphabet)
	}
	if n != 0 {
		return "", fmt.Errorf("%w: remainder %d after %d digits", ErrValueOutOfRange, n, width)
	}
	return string(out), nil
}

// Decode parses a fixed-width token produced by Encode
func (e *Encoding) Decode(s string) (int, error) {
	if len(s) == 0 {
		return 0, ErrUnexpectedWidth
	}

	n := 0
	for i := 0; i < len(s); i++ {
		d := e.decode[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidChar, s[i])
		}
		if n > maxInt/len(e.alphabet) {
			return 0, ErrValueOverflowsInt
		}
		n = n*len(e.alphabet) + int(d)
	}
	return n, nil
}

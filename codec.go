// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

import (
	"github.com/anbkit/fise/internal/engine"
)

// Codec binds a cipher to a normalized rule set so that the normalization
// cost (and the single EncodeLength width probe) is paid once.
//
// A Codec holds no mutable state and may be shared between goroutines,
// provided the randomness source supplied per call (or the default) is
// itself safe for concurrent use
type Codec[T Sequence] struct {
	cipher Cipher[T]
	rules  engine.Rules[T]
}

// New constructs a Codec from a cipher and a rule set. The rule set is
// normalized here: required functions are checked, the salt range and salt
// placement defaults are filled in, and the encoded length token width is
// measured
func New[T Sequence](cipher Cipher[T], rules RuleSet[T]) (*Codec[T], error) {
	nr, err := engine.Normalize(rules)
	if err != nil {
		return nil, err
	}
	return &Codec[T]{cipher: cipher, rules: nr}, nil
}

// Assemble builds an envelope around payload
func (c *Codec[T]) Assemble(payload T, opts Options) (T, error) {
	return engine.Assemble(payload, c.cipher, c.rules, opts)
}

// Resolve recovers the payload from an envelope produced by Assemble under
// the same rule set, rotation token and metadata
func (c *Codec[T]) Resolve(envelope T, opts Options) (T, error) {
	return engine.Resolve(envelope, c.cipher, c.rules, opts)
}

// EncodedLengthSize reports the measured width of an encoded length token
func (c *Codec[T]) EncodedLengthSize() int {
	return c.rules.EncodedLengthSize
}

// SaltRange reports the normalized salt length range
func (c *Codec[T]) SaltRange() Range {
	return c.rules.SaltRange
}

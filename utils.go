// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

import (
	"github.com/anbkit/fise/internal/engine"
)

// DefaultSource is the crypto/rand backed randomness source used whenever a
// call leaves Options.Rand nil. Safe for concurrent use
var DefaultSource Source = engine.DefaultSource

// Assemble builds an envelope around payload using the supplied cipher and
// rule set. The rule set is normalized per call; use New for repeated work
func Assemble[T Sequence](payload T, cipher Cipher[T], rules RuleSet[T], opts Options) (T, error) {
	var zero T
	c, err := New(cipher, rules)
	if err != nil {
		return zero, err
	}
	return c.Assemble(payload, opts)
}

// Resolve recovers the payload from an envelope, given the same cipher,
// rule set and context options supplied to Assemble. It fails with an error
// matching ErrCannotInferSaltLength (and possibly ErrOffsetMismatch) when no
// structurally consistent interpretation of the envelope exists
func Resolve[T Sequence](envelope T, cipher Cipher[T], rules RuleSet[T], opts Options) (T, error) {
	var zero T
	c, err := New(cipher, rules)
	if err != nil {
		return zero, err
	}
	return c.Resolve(envelope, opts)
}

// AssembleString runs the default character rule family (StringRules) with
// the default XOR cipher
func AssembleString(payload string, opts Options) (string, error) {
	return Assemble(payload, XOR[string](), StringRules(), opts)
}

// ResolveString inverts AssembleString
func ResolveString(envelope string, opts Options) (string, error) {
	return Resolve(envelope, XOR[string](), StringRules(), opts)
}

// AssembleBinary runs the default binary rule family (BinaryRules) with the
// default XOR cipher
func AssembleBinary(payload []byte, opts Options) ([]byte, error) {
	return Assemble(payload, XOR[[]byte](), BinaryRules(), opts)
}

// ResolveBinary inverts AssembleBinary
func ResolveBinary(envelope []byte, opts Options) ([]byte, error) {
	return Resolve(envelope, XOR[[]byte](), BinaryRules(), opts)
}

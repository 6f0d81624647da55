// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package fiseinterfaces defines the boundary types of the envelope codec
//
// (This package is primarily separated out in order to permit the implementation to
// be broken down into multiple packages)
package fiseinterfaces

// Sequence is the set of value shapes the codec operates upon. The assembly
// and recovery algorithm is value-shape agnostic: the same code serves the
// character variant (string) and the binary variant ([]byte)
type Sequence interface {
	~string | ~[]byte
}

// Context carries the ambient parameters passed into every rule function.
//
// A Context is constructed fresh for each assemble/resolve invocation (and for
// each recovery candidate requiring a different SaltLength) and is never
// mutated after construction
type Context struct {
	// Caller-supplied numeric value (e.g. a time bucket) which rules may use
	// to vary their behaviour temporally. Zero when the caller supplied none
	RotationToken int64

	// Length of the salt governing the current operation. Zero in contexts
	// where no salt length has been committed to yet (e.g. the width probe
	// performed during normalization)
	SaltLength int

	// Opaque caller payload, threaded through to the rule functions without
	// ever being inspected by the codec
	Metadata any
}

// Range is an inclusive range of permitted salt lengths
type Range struct {
	Min, Max int
}

// interface Source is the injected randomness capability consumed by the
// assembler. It must be safe for concurrent use if the codec consuming it is
// shared between goroutines.
//
// *math/rand.Rand satisfies Source, which is convenient for reproducible
// behaviour under test
type Source interface {
	// Returns a uniformly distributed integer in [0, n). Panics if n <= 0
	Intn(n int) int
}

// interface Cipher is the contract of the symmetric, length-preserving
// transform keyed by a salt. The codec consumes exactly these two operations
// and makes no further assumptions; in particular it does not require the
// transform to provide confidentiality or integrity
type Cipher[T Sequence] interface {
	// Transforms payload under salt
	Encrypt(payload, salt T) (T, error)

	// Inverts Encrypt. For an involutory transform (such as the default
	// repeating XOR) this is the same operation in both directions
	Decrypt(cipherText, salt T) (T, error)
}

// RuleSet is the plain data/function bundle which defines one deployment's
// structural dialect. Offset, EncodeLength and DecodeLength are required;
// the remaining fields are optional and are resolved to defaults by
// normalization (two-stage construction: a minimal struct here, a pure
// normalization step inside the codec)
//
// Rule authors must uphold two contracts the codec does not verify on its
// hot paths (fise.Check exists as an offline self-check):
//
//   - DecodeLength(EncodeLength(n, ctx), ctx) == n for every n in SaltRange
//   - EncodeLength output width is constant across every n in SaltRange
//     (the width is measured once, by probing EncodeLength with the range
//     minimum and an empty Context)
type RuleSet[T Sequence] struct {
	// Computes the index in the cipher text at which the encoded length token
	// is inserted. The returned value is clamped by the codec to
	// [0, len(cipherText)]; rule implementations need not self-clamp
	Offset func(cipherText T, ctx Context) int

	// Encodes a salt length as a token of fixed width
	EncodeLength func(n int, ctx Context) T

	// Inverts EncodeLength. Returns an error for tokens which do not denote
	// a valid number; recovery treats such positions as non-matches
	DecodeLength func(token T, ctx Context) (int, error)

	// Declares that Offset depends only on len(cipherText), never on its
	// content. This enables the O(1)-per-candidate fast path during
	// recovery. Declaring this for a content-dependent Offset produces
	// silently wrong results
	LengthOnlyOffset bool

	// Permitted salt lengths. Defaults to {10, 99}
	SaltRange *Range

	// Returns the salt portion of an envelope. Defaults to the trailing
	// saltLen elements
	ExtractSalt func(envelope T, saltLen int, ctx Context) T

	// Returns the envelope with the salt portion removed. Must be the exact
	// complement of ExtractSalt: the two partition the envelope with no
	// overlap or gap. Defaults to everything but the trailing saltLen
	// elements
	StripSalt func(envelope T, saltLen int, ctx Context) T
}

// Options carries the per-call parameters of assemble and resolve. The same
// RotationToken and Metadata must be supplied on both sides whenever the rule
// functions depend on them
type Options struct {
	RotationToken int64
	Metadata      any

	// Randomness source consumed by assemble. Nil selects the crypto/rand
	// backed default. Ignored by resolve
	Rand Source
}

// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package engine

import (
	fiseinterfaces "github.com/anbkit/fise/interfaces"
	"github.com/anbkit/fise/internal/errors"
)

// match records a structurally consistent interpretation of an envelope
type match[T fiseinterfaces.Sequence] struct {
	saltLen int

	// Position of the length token within the salt-stripped envelope
	pos int

	// The envelope with the salt removed but the token still in place
	withoutSalt T
}

// Resolve inverts Assemble without any stored metadata: salt length, salt
// position and token position are inferred purely from the envelope and the
// same rule functions used at assembly time
func Resolve[T fiseinterfaces.Sequence](
	envelope T,
	cipher fiseinterfaces.Cipher[T],
	rules Rules[T],
	opts fiseinterfaces.Options,
) (T, error) {
	var zero T

	m, err := search(envelope, rules, opts)
	if err != nil {
		return zero, err
	}

	ctx := fiseinterfaces.Context{
		RotationToken: opts.RotationToken,
		SaltLength:    m.saltLen,
		Metadata:      opts.Metadata,
	}

	salt := rules.ExtractSalt(envelope, m.saltLen, ctx)
	cipherText := concat(m.withoutSalt[:m.pos], m.withoutSalt[m.pos+rules.EncodedLengthSize:])

	payload, err := cipher.Decrypt(cipherText, salt)
	if err != nil {
		return zero, errors.CipherError{Op: "decrypt", Underlying: err}
	}
	return payload, nil
}

// search performs the pre-extraction phase: find the (salt length, token
// position) pair under which the envelope is structurally consistent.
//
// Candidates are tried in ascending salt length, then ascending position.
// The first consistent pair wins. This tie-break is load-bearing for
// interoperability: should a pathological rule/envelope combination admit
// several valid-looking pairs, every implementation must pick the same one
func search[T fiseinterfaces.Sequence](
	envelope T,
	rules Rules[T],
	opts fiseinterfaces.Options,
) (match[T], error) {
	size := rules.EncodedLengthSize
	mismatches := 0

	for saltLen := rules.SaltRange.Min; saltLen <= rules.SaltRange.Max; saltLen++ {
		ctx := fiseinterfaces.Context{
			RotationToken: opts.RotationToken,
			SaltLength:    saltLen,
			Metadata:      opts.Metadata,
		}

		withoutSalt := rules.StripSalt(envelope, saltLen, ctx)
		if len(withoutSalt) < size {
			continue
		}

		if rules.LengthOnly {
			// Fast path: Offset is declared to depend only on the cipher
			// text length, which is known for this candidate without
			// knowing the token position. Compute the offset once from a
			// placeholder of that length and verify the token there
			ctLen := len(withoutSalt) - size
			pos := clampOffset(rules.Offset(zeros[T](ctLen), ctx), ctLen)

			decoded, err := rules.DecodeLength(withoutSalt[pos:pos+size], ctx)
			if err == nil && decoded == saltLen {
				return match[T]{saltLen: saltLen, pos: pos, withoutSalt: withoutSalt}, nil
			}
			continue
		}

		// General path: O(length) scan per candidate salt length. Valid for
		// arbitrary content-dependent Offset rules
		for pos := 0; pos+size <= len(withoutSalt); pos++ {
			decoded, err := rules.DecodeLength(withoutSalt[pos:pos+size], ctx)
			if err != nil || decoded != saltLen {
				continue
			}

			candidate := concat(withoutSalt[:pos], withoutSalt[pos+size:])
			if clampOffset(rules.Offset(candidate, ctx), len(candidate)) == pos {
				return match[T]{saltLen: saltLen, pos: pos, withoutSalt: withoutSalt}, nil
			}
			mismatches++
		}
	}

	return match[T]{}, errors.InferenceError{
		Min:              rules.SaltRange.Min,
		Max:              rules.SaltRange.Max,
		OffsetMismatches: mismatches,
	}
}

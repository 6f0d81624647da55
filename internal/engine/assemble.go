// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package engine

import (
	fiseinterfaces "github.com/anbkit/fise/interfaces"
	"github.com/anbkit/fise/internal/errors"
)

// Assemble builds an envelope around payload:
//
//	cipherText[:offset] ++ encodedLength ++ cipherText[offset:] ++ salt
//
// The salt length is drawn uniformly from the rule set's range, the salt
// itself from the randomness source, and the insertion offset from the rule
// set's Offset function (clamped to the cipher text bounds). Two calls on
// identical input almost certainly produce different envelopes, since both
// salt and salt length are randomized per call
func Assemble[T fiseinterfaces.Sequence](
	payload T,
	cipher fiseinterfaces.Cipher[T],
	rules Rules[T],
	opts fiseinterfaces.Options,
) (T, error) {
	var zero T

	src := opts.Rand
	if src == nil {
		src = DefaultSource
	}

	saltLen := rules.SaltRange.Min + src.Intn(rules.SaltRange.Max-rules.SaltRange.Min+1)
	salt := newSalt[T](src, saltLen)

	cipherText, err := cipher.Encrypt(payload, salt)
	if err != nil {
		return zero, errors.CipherError{Op: "encrypt", Underlying: err}
	}

	ctx := fiseinterfaces.Context{
		RotationToken: opts.RotationToken,
		SaltLength:    saltLen,
		Metadata:      opts.Metadata,
	}

	token := rules.EncodeLength(saltLen, ctx)
	offset := clampOffset(rules.Offset(cipherText, ctx), len(cipherText))

	return concat(cipherText[:offset], token, cipherText[offset:], salt), nil
}

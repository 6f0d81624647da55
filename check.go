// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

import (
	"fmt"

	"github.com/anbkit/fise/internal/engine"
	"github.com/anbkit/fise/internal/errors"
)

// Check verifies offline that a rule set honours the contracts the codec
// assumes but never verifies on its hot paths:
//
//   - DecodeLength(EncodeLength(n, ctx), ctx) == n for every n in the salt
//     range
//   - EncodeLength output width is constant across the whole range (equal to
//     the width measured by normalization)
//
// A violation is reported as an error matching ErrRuleContract, including
// the case where a rule function panics on a length inside the range (the
// presets do so when their range is widened past the fixed token width).
// Panics are converted here only; the hot paths never recover. Rule authors
// should run this against every dialect they deploy; the assemble and
// resolve paths silently corrupt data when these contracts are broken
func Check[T Sequence](rules RuleSet[T]) error {
	nr, err := engine.Normalize(rules)
	if err != nil {
		return err
	}

	for n := nr.SaltRange.Min; n <= nr.SaltRange.Max; n++ {
		if err := checkLength(rules, nr.EncodedLengthSize, n); err != nil {
			return err
		}
	}
	return nil
}

func checkLength[T Sequence](rules RuleSet[T], width, n int) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.ContractError{
				N:      n,
				Detail: fmt.Sprintf("rule function panicked: %v", p),
			}
		}
	}()

	ctx := Context{SaltLength: n}

	token := rules.EncodeLength(n, ctx)
	if len(token) != width {
		return errors.ContractError{
			N:      n,
			Detail: fmt.Sprintf("token width %d differs from measured width %d", len(token), width),
		}
	}

	decoded, err := rules.DecodeLength(token, ctx)
	if err != nil {
		return errors.ContractError{
			N:      n,
			Detail: fmt.Sprintf("token failed to decode: %v", err),
		}
	}
	if decoded != n {
		return errors.ContractError{
			N:      n,
			Detail: fmt.Sprintf("token decoded to %d", decoded),
		}
	}
	return nil
}

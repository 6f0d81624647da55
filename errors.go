// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

import (
	"github.com/anbkit/fise/internal/errors"
)

// Sentinel errors for use with errors.Is. Every failure is terminal for the
// call that produced it: there is no partial recovery and no default
// payload, and a failed Resolve means the envelope cannot be trusted
var (
	// A rule set was supplied without one of its three required functions
	ErrMissingRule error = errors.ErrMissingRule

	// A salt length range with min < 0 or min > max
	ErrBadSaltRange error = errors.ErrBadSaltRange

	// Resolve exhausted every (salt length, position) candidate without a
	// structurally consistent match: corrupted envelope, mismatched rule
	// set, or mismatched rotation/metadata context
	ErrCannotInferSaltLength error = errors.ErrCannotInferSaltLength

	// Resolve found tokens decoding to a candidate salt length, but the
	// recomputed insertion offset disagreed with all of them. Same failure
	// class as ErrCannotInferSaltLength
	ErrOffsetMismatch error = errors.ErrOffsetMismatch

	// Reported by Check when a rule set breaks the length codec round-trip
	// or constant width contract
	ErrRuleContract error = errors.ErrRuleContract
)

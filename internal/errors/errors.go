// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package errors

import (
	"fmt"
)

type xerror string

func (e xerror) Error() string {
	return string(e)
}

const (
	// A rule set was supplied without one of its three required functions
	ErrMissingRule = xerror("fise: rule set missing required function")

	// A salt length range with min < 0 or min > max
	ErrBadSaltRange = xerror("fise: invalid salt length range")

	// Recovery exhausted every (salt length, position) candidate without
	// finding a structurally consistent pair. Indicates a corrupted
	// envelope, a mismatched rule set, or a mismatched rotation/metadata
	// context between assembly and recovery
	ErrCannotInferSaltLength = xerror("fise: cannot infer salt length")

	// Recovery found positions whose token decoded to the candidate salt
	// length, but the recomputed insertion offset disagreed with every one
	// of them. Same failure class as ErrCannotInferSaltLength
	ErrOffsetMismatch = xerror("fise: cannot find encoded length at expected offset")

	// A rule set violated a contract the codec assumes but does not verify
	// on its hot paths (length codec round-trip identity, constant token
	// width). Only ever reported by the offline self-check
	ErrRuleContract = xerror("fise: rule contract violation")
)

// MissingRuleError reports which required rule function was absent
type MissingRuleError struct {
	Name string
}

func (err MissingRuleError) Is(target error) bool {
	return target == ErrMissingRule
}

func (err MissingRuleError) Error() string {
	return fmt.Sprintf("%s (%s)", ErrMissingRule, err.Name)
}

// RangeError reports an unusable salt length range
type RangeError struct {
	Min, Max int
}

func (err RangeError) Is(target error) bool {
	return target == ErrBadSaltRange
}

func (err RangeError) Error() string {
	return fmt.Sprintf("%s [%d, %d]", ErrBadSaltRange, err.Min, err.Max)
}

// InferenceError is returned when recovery cannot reconstruct the salt
// length and token position from an envelope. It matches
// ErrCannotInferSaltLength always, and additionally ErrOffsetMismatch when
// at least one candidate token decoded plausibly but failed offset
// verification
type InferenceError struct {
	// The salt length range that was searched
	Min, Max int

	// Number of positions whose token decoded to the candidate salt length
	// but whose recomputed offset disagreed
	OffsetMismatches int
}

func (err InferenceError) Is(target error) bool {
	switch target {
	case ErrCannotInferSaltLength:
		return true
	case ErrOffsetMismatch:
		return err.OffsetMismatches > 0
	default:
		return false
	}
}

func (err InferenceError) Error() string {
	if err.OffsetMismatches > 0 {
		return fmt.Sprintf("%s (%d candidate tokens rejected over salt lengths [%d, %d])",
			ErrOffsetMismatch, err.OffsetMismatches, err.Min, err.Max)
	}
	return fmt.Sprintf("%s (searched salt lengths [%d, %d])",
		ErrCannotInferSaltLength, err.Min, err.Max)
}

// ContractError reports a specific violation found by the offline self-check
type ContractError struct {
	// Salt length at which the violation was observed
	N int

	// Human description of the violated clause
	Detail string
}

func (err ContractError) Is(target error) bool {
	return target == ErrRuleContract
}

func (err ContractError) Error() string {
	return fmt.Sprintf("%s at n=%d: %s", ErrRuleContract, err.N, err.Detail)
}

// CipherError wraps a failure propagated opaquely from the injected cipher
// adapter
type CipherError struct {
	Op         string // "encrypt" or "decrypt"
	Underlying error
}

func (err CipherError) Unwrap() error {
	return err.Underlying
}

func (err CipherError) Error() string {
	return fmt.Sprintf("fise: cipher %s: %v", err.Op, err.Underlying)
}

// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package engine implements envelope assembly and blind recovery. It is
// generic over the two supported value shapes (string and []byte); the
// public package wraps it with the user-facing API
package engine

import (
	fiseinterfaces "github.com/anbkit/fise/interfaces"
)

// concat joins sequences into a single freshly allocated one
func concat[T fiseinterfaces.Sequence](parts ...T) T {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, []byte(p)...)
	}
	return T(out)
}

// zeros returns an all-zero sequence of length n, used as the placeholder
// input to length-only offset rules during fast path recovery
func zeros[T fiseinterfaces.Sequence](n int) T {
	return T(make([]byte, n))
}

// clampOffset confines a rule-computed offset to [0, max]. Rule
// implementations are untrusted to self-clamp
func clampOffset(v, max int) int {
	switch {
	case v < 0:
		return 0
	case v > max:
		return max
	default:
		return v
	}
}

// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptSource replays a fixed script of draws, reduced modulo the bound.
// The first draw selects the salt length offset within the range; the
// remaining draws select salt elements. Scripted randomness makes every
// envelope in these tests byte-for-byte reproducible
type scriptSource struct {
	vals []int
	i    int
}

func newScript(vals ...int) *scriptSource {
	return &scriptSource{vals: vals}
}

func (s *scriptSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

type roundTripCase[T Sequence] struct {
	// Name of this test case
	Name string

	// The payload to assemble and recover
	Payload T

	// Randomness script driving salt length and salt content
	Script []int

	// Context options, applied identically on both sides
	Opts Options
}

// runRoundTrips assembles each payload under a scripted randomness source
// and requires that resolving the envelope (without the source) recovers it
// exactly
func runRoundTrips[T Sequence](t *testing.T, cipher Cipher[T], rules RuleSet[T], tcs []roundTripCase[T]) {
	t.Helper()

	for _, tc := range tcs {
		t.Run(tc.Name, func(t *testing.T) {
			opts := tc.Opts
			opts.Rand = newScript(tc.Script...)

			env, err := Assemble(tc.Payload, cipher, rules, opts)
			require.NoError(t, err, "Assemble should succeed")
			assert.Greater(t, len(env), len(tc.Payload),
				"envelope carries the length token and the salt on top of the payload")

			got, err := Resolve(env, cipher, rules, tc.Opts)
			require.NoError(t, err, "Resolve should succeed")
			assert.Equal(t, tc.Payload, got, "recovered payload should match")
		})
	}
}

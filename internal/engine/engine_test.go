// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package engine

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fiseinterfaces "github.com/anbkit/fise/interfaces"
	"github.com/anbkit/fise/internal/errors"
)

// scriptSource replays a fixed script of draws, reduced modulo the bound.
// It makes salt length and salt content fully deterministic under test
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

// nopCipher leaves the payload untouched, which keeps expected envelopes
// readable in the tests below
type nopCipher[T fiseinterfaces.Sequence] struct{}

func (nopCipher[T]) Encrypt(payload, _ T) (T, error)    { return payload, nil }
func (nopCipher[T]) Decrypt(cipherText, _ T) (T, error) { return cipherText, nil }

// failCipher always fails, for error propagation tests
type failCipher[T fiseinterfaces.Sequence] struct {
	err error
}

func (c failCipher[T]) Encrypt(_, _ T) (T, error) {
	var zero T
	return zero, c.err
}

func (c failCipher[T]) Decrypt(_, _ T) (T, error) {
	var zero T
	return zero, c.err
}

// decimalRules is a minimal compliant character rule set: two-digit decimal
// length token, constant insertion offset
func decimalRules(offset int, lengthOnly bool) fiseinterfaces.RuleSet[string] {
	return fiseinterfaces.RuleSet[string]{
		Offset: func(_ string, _ fiseinterfaces.Context) int {
			return offset
		},
		LengthOnlyOffset: lengthOnly,
		EncodeLength: func(n int, _ fiseinterfaces.Context) string {
			return fmt.Sprintf("%02d", n)
		},
		DecodeLength: func(token string, _ fiseinterfaces.Context) (int, error) {
			return strconv.Atoi(token)
		},
	}
}

func TestNormalizeMissingRules(t *testing.T) {
	full := decimalRules(0, true)

	testcases := []struct {
		Name   string
		Mangle func(*fiseinterfaces.RuleSet[string])
	}{
		{"Offset", func(rs *fiseinterfaces.RuleSet[string]) { rs.Offset = nil }},
		{"EncodeLength", func(rs *fiseinterfaces.RuleSet[string]) { rs.EncodeLength = nil }},
		{"DecodeLength", func(rs *fiseinterfaces.RuleSet[string]) { rs.DecodeLength = nil }},
	}

	for _, tc := range testcases {
		t.Run(tc.Name, func(t *testing.T) {
			rs := full
			tc.Mangle(&rs)
			_, err := Normalize(rs)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrMissingRule)
			assert.Contains(t, err.Error(), tc.Name)
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	nr, err := Normalize(decimalRules(0, true))
	require.NoError(t, err)

	assert.Equal(t, fiseinterfaces.Range{Min: 10, Max: 99}, nr.SaltRange)
	assert.Equal(t, 2, nr.EncodedLengthSize, "width measured by probing EncodeLength(10)")
	assert.True(t, nr.LengthOnly)
	require.NotNil(t, nr.ExtractSalt)
	require.NotNil(t, nr.StripSalt)
}

func TestNormalizeCustomRange(t *testing.T) {
	rs := decimalRules(0, true)
	rs.SaltRange = &fiseinterfaces.Range{Min: 2, Max: 5}

	nr, err := Normalize(rs)
	require.NoError(t, err)
	assert.Equal(t, fiseinterfaces.Range{Min: 2, Max: 5}, nr.SaltRange)
}

func TestNormalizeBadRange(t *testing.T) {
	for _, r := range []fiseinterfaces.Range{{Min: 5, Max: 3}, {Min: -1, Max: 10}} {
		rs := decimalRules(0, true)
		rs.SaltRange = &r

		_, err := Normalize(rs)
		require.Errorf(t, err, "range %+v", r)
		assert.ErrorIs(t, err, errors.ErrBadSaltRange)
	}
}

func TestTailPartition(t *testing.T) {
	ctx := fiseinterfaces.Context{}
	e := "abcdefghijkl"

	for _, k := range []int{0, 1, 5, 11, 12, 20} {
		carrier := tailStrip(e, k, ctx)
		salt := tailExtract(e, k, ctx)
		assert.Equalf(t, e, carrier+salt, "strip ++ extract must reconstruct the envelope for k=%d", k)
	}
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 0, clampOffset(-3, 10))
	assert.Equal(t, 0, clampOffset(0, 10))
	assert.Equal(t, 7, clampOffset(7, 10))
	assert.Equal(t, 10, clampOffset(10, 10))
	assert.Equal(t, 10, clampOffset(11, 10))
	assert.Equal(t, 0, clampOffset(5, 0))
}

func TestConcatZeros(t *testing.T) {
	assert.Equal(t, "abcd", concat("ab", "", "cd"))
	assert.Equal(t, []byte{1, 2, 3}, concat([]byte{1}, []byte{2, 3}))
	assert.Equal(t, "\x00\x00\x00", zeros[string](3))
	assert.Equal(t, []byte{}, zeros[[]byte](0))
}

func TestNewSalt(t *testing.T) {
	s := newSalt[string](newScript(3), 4)
	assert.Equal(t, "DDDD", s, "string salts come from the printable alphabet")

	b := newSalt[[]byte](newScript(200), 3)
	assert.Equal(t, []byte{200, 200, 200}, b, "byte salts cover the full byte range")
}

func TestAssembleStructure(t *testing.T) {
	rs := decimalRules(3, false)
	rs.SaltRange = &fiseinterfaces.Range{Min: 2, Max: 4}
	nr, err := Normalize(rs)
	require.NoError(t, err)

	// Script [1]: saltLen = 2 + 1 = 3, salt = "BBB"
	env, err := Assemble[string]("abcdefgh", nopCipher[string]{}, nr, fiseinterfaces.Options{
		Rand: newScript(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "abc"+"03"+"defgh"+"BBB", env)
}

func TestAssembleClampsOffset(t *testing.T) {
	rs := decimalRules(1000, false)
	rs.SaltRange = &fiseinterfaces.Range{Min: 2, Max: 2}
	nr, err := Normalize(rs)
	require.NoError(t, err)

	env, err := Assemble[string]("abcd", nopCipher[string]{}, nr, fiseinterfaces.Options{
		Rand: newScript(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "abcd"+"02"+"AA", env, "offset past the end clamps to len(cipherText)")
}

func TestResolveRoundTrip(t *testing.T) {
	for _, lengthOnly := range []bool{true, false} {
		rs := decimalRules(3, lengthOnly)
		rs.SaltRange = &fiseinterfaces.Range{Min: 2, Max: 4}
		nr, err := Normalize(rs)
		require.NoError(t, err)

		env, err := Assemble[string]("abcdefgh", nopCipher[string]{}, nr, fiseinterfaces.Options{
			Rand: newScript(1),
		})
		require.NoError(t, err)

		got, err := Resolve[string](env, nopCipher[string]{}, nr, fiseinterfaces.Options{})
		require.NoErrorf(t, err, "lengthOnly=%v", lengthOnly)
		assert.Equalf(t, "abcdefgh", got, "lengthOnly=%v", lengthOnly)
	}
}

func TestResolveExhaustion(t *testing.T) {
	nr, err := Normalize(decimalRules(0, true))
	require.NoError(t, err)

	_, err = Resolve[string]("xy", nopCipher[string]{}, nr, fiseinterfaces.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCannotInferSaltLength)
	assert.NotErrorIs(t, err, errors.ErrOffsetMismatch,
		"no candidate token ever decoded, so this is not an offset mismatch")
}

func TestResolveOffsetMismatch(t *testing.T) {
	// The token "10" decodes to the only candidate salt length at position
	// 0, but the rule places tokens at offset 5, so the single plausible
	// candidate is rejected by offset verification
	rs := decimalRules(5, false)
	rs.SaltRange = &fiseinterfaces.Range{Min: 10, Max: 10}
	nr, err := Normalize(rs)
	require.NoError(t, err)

	env := "10abcdefgh" + "JJJJJJJJJJ"
	_, err = Resolve[string](env, nopCipher[string]{}, nr, fiseinterfaces.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrOffsetMismatch)
	assert.ErrorIs(t, err, errors.ErrCannotInferSaltLength, "same failure class")
}

func TestCipherErrorPropagation(t *testing.T) {
	nr, err := Normalize(decimalRules(0, true))
	require.NoError(t, err)

	boom := stderrors.New("boom")

	_, err = Assemble[string]("payload", failCipher[string]{err: boom}, nr, fiseinterfaces.Options{
		Rand: newScript(0),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom, "cipher failures propagate opaquely")

	// Build a valid envelope, then fail on the decrypt side
	env, err := Assemble[string]("payload", nopCipher[string]{}, nr, fiseinterfaces.Options{
		Rand: newScript(0),
	})
	require.NoError(t, err)

	_, err = Resolve[string](env, failCipher[string]{err: boom}, nr, fiseinterfaces.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestResolveEmptyPayload(t *testing.T) {
	rs := decimalRules(0, true)
	nr, err := Normalize(rs)
	require.NoError(t, err)

	// Script [0]: saltLen = 10, salt = "AAAAAAAAAA". With an empty payload
	// the envelope is exactly token ++ salt
	env, err := Assemble[string]("", nopCipher[string]{}, nr, fiseinterfaces.Options{
		Rand: newScript(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "10"+"AAAAAAAAAA", env)

	got, err := Resolve[string](env, nopCipher[string]{}, nr, fiseinterfaces.Options{})
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

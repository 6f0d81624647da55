// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

import (
	"encoding/binary"
	"fmt"

	"github.com/anbkit/fise/internal/basen"
	"github.com/anbkit/fise/internal/engine"
	"github.com/anbkit/fise/internal/errors"
)

// DefaultSaltRange is the salt length range applied when a rule set leaves
// its range unset: {10, 99}
var DefaultSaltRange = engine.DefaultSaltRange

// Alphabets backing the preset length codecs. Symbol order defines digit
// significance
const (
	DecimalAlphabet = "0123456789"
	HexAlphabet     = "0123456789abcdef"
	Base36Alphabet  = "0123456789abcdefghijklmnopqrstuvwxyz"
	Base62Alphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// lengthOffset is the default offset rule. It depends only on the cipher
// text length, the rotation token and the salt length, never on content, so
// the presets using it declare LengthOnlyOffset and recovery takes the fast
// path. Multiplier constants are the Knuth multiplicative hash and the
// 64-bit golden ratio
func lengthOffset(length int, ctx Context) int {
	h := uint64(length)*2654435761 +
		uint64(ctx.RotationToken)*0x9E3779B97F4A7C15 +
		uint64(ctx.SaltLength)*97
	return int(h % uint64(length+1))
}

// StringRules returns the default character rule family: decimal length
// codec over the default {10, 99} range (two digits), length-only offset
func StringRules() RuleSet[string] {
	return mustAlphabetRules(DecimalAlphabet, DefaultSaltRange)
}

// Base36Rules returns a character rule family whose length token is base36
// over the default {10, 99} range
func Base36Rules() RuleSet[string] {
	return mustAlphabetRules(Base36Alphabet, DefaultSaltRange)
}

// HexRules returns a character rule family whose length token is lowercase
// hexadecimal over the default {10, 99} range
func HexRules() RuleSet[string] {
	return mustAlphabetRules(HexAlphabet, DefaultSaltRange)
}

// Base62Rules returns a character rule family whose length token is base62
// (digits, uppercase, lowercase) over the default {10, 99} range
func Base62Rules() RuleSet[string] {
	return mustAlphabetRules(Base62Alphabet, DefaultSaltRange)
}

// AlphabetRules builds a character rule family over a caller-supplied
// alphabet of at least two distinct single-byte symbols. The length token
// width is fixed from r.Max, so the whole range encodes at constant width
func AlphabetRules(alphabet string, r Range) (RuleSet[string], error) {
	var rs RuleSet[string]

	if r.Min < 0 || r.Min > r.Max {
		return rs, errors.RangeError{Min: r.Min, Max: r.Max}
	}

	enc, err := basen.New(alphabet)
	if err != nil {
		return rs, err
	}
	width := enc.Width(r.Max)

	rs = RuleSet[string]{
		Offset: func(cipherText string, ctx Context) int {
			return lengthOffset(len(cipherText), ctx)
		},
		LengthOnlyOffset: true,
		SaltRange:        &r,
		EncodeLength: func(n int, _ Context) string {
			s, err := enc.Encode(n, width)
			if err != nil {
				panic(fmt.Sprintf("fise: salt length %d not encodable in %d base-%d digits",
					n, width, enc.Base()))
			}
			return s
		},
		DecodeLength: func(token string, _ Context) (int, error) {
			return enc.Decode(token)
		},
	}
	return rs, nil
}

func mustAlphabetRules(alphabet string, r Range) RuleSet[string] {
	rs, err := AlphabetRules(alphabet, r)
	if err != nil {
		panic(err)
	}
	return rs
}

// BinaryRules returns the default binary rule family: the length token is a
// fixed 2-byte big-endian unsigned integer (supporting salt lengths up to
// 65535), the offset is length-only, and salts are raw random bytes
func BinaryRules() RuleSet[[]byte] {
	return RuleSet[[]byte]{
		Offset: func(cipherText []byte, ctx Context) int {
			return lengthOffset(len(cipherText), ctx)
		},
		LengthOnlyOffset: true,
		EncodeLength: func(n int, _ Context) []byte {
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(n))
			return b[:]
		},
		DecodeLength: func(token []byte, _ Context) (int, error) {
			if len(token) != 2 {
				return 0, fmt.Errorf("fise: binary length token must be 2 bytes, got %d", len(token))
			}
			return int(binary.BigEndian.Uint16(token)), nil
		},
	}
}

// BridgeBinary reuses a character rule family on byte sequences by treating
// the character rules' input and output as raw bytes. The recovery logic
// and its invariants are value-shape agnostic, so any compliant character
// rule set remains compliant across the bridge
func BridgeBinary(rs RuleSet[string]) RuleSet[[]byte] {
	out := RuleSet[[]byte]{
		Offset: func(cipherText []byte, ctx Context) int {
			return rs.Offset(string(cipherText), ctx)
		},
		EncodeLength: func(n int, ctx Context) []byte {
			return []byte(rs.EncodeLength(n, ctx))
		},
		DecodeLength: func(token []byte, ctx Context) (int, error) {
			return rs.DecodeLength(string(token), ctx)
		},
		LengthOnlyOffset: rs.LengthOnlyOffset,
		SaltRange:        rs.SaltRange,
	}

	if rs.ExtractSalt != nil {
		out.ExtractSalt = func(envelope []byte, saltLen int, ctx Context) []byte {
			return []byte(rs.ExtractSalt(string(envelope), saltLen, ctx))
		}
	}
	if rs.StripSalt != nil {
		out.StripSalt = func(envelope []byte, saltLen int, ctx Context) []byte {
			return []byte(rs.StripSalt(string(envelope), saltLen, ctx))
		}
	}
	return out
}

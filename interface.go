// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

// Package fise implements keyless, rule-driven envelope transformation: it
// embeds a variable-length, randomly positioned metadata token (an encoded
// salt length) inside a transformed payload, and recovers that token's
// position, and the salt it governs, given only the same pluggable rule
// functions with no stored index.
//
// An envelope is a single contiguous sequence:
//
//	cipherText[:offset] ++ encodedLength ++ cipherText[offset:] ++ salt
//
// where cipherText is the payload passed through a symmetric,
// length-preserving cipher keyed by the salt (repeating XOR by default), and
// offset is computed from the cipher text by the rule set's Offset function.
// Nothing in the envelope is self-describing: its format is entirely
// determined by the rule set shared between the assembling and resolving
// parties. That is a deliberate design choice; there is no protocol-level
// universal decoder.
//
// Recovery inverts assembly blind. For each candidate salt length in the
// rule set's range (ascending), the salt is stripped, and candidate token
// positions are tried (ascending) until one both decodes to the candidate
// salt length and sits exactly where the Offset function says it should for
// the remaining cipher text. Rule sets whose Offset depends only on the
// cipher text length declare so via LengthOnlyOffset, which collapses the
// per-candidate scan to a single verified position; the shipped presets all
// do. The first structurally consistent pair wins, in ascending salt length
// then ascending position order; interoperating implementations must
// preserve that order.
//
// The codec operates on either value shape:
//
//	character variant | T = string
//	binary variant    | T = []byte
//
// and the two call shapes are symmetric:
//
//	env, err := fise.Assemble(payload, cipher, rules, opts)
//	payload, err = fise.Resolve(env, cipher, rules, opts)
//
// For repeated use, construct a Codec once (normalizing the rule set a
// single time) and call its methods instead. The package-level
// AssembleString/ResolveString and AssembleBinary/ResolveBinary helpers run
// the default rule family with the default XOR cipher.
//
// Rule sets are built from the presets (StringRules, BinaryRules,
// Base36Rules, HexRules, Base62Rules, AlphabetRules) or from scratch, and
// refined with the pure With* builder methods. Character rule sets can be
// reused for byte sequences via BridgeBinary. Check verifies offline that a
// rule set honours the contracts the codec assumes.
//
// This is best-effort structural obfuscation, not a cryptographic primitive:
// no confidentiality, integrity or authentication guarantees are provided,
// and no key management or replay protection exists at this layer. Bind
// envelopes with an HMAC at a higher level if you need authenticity.
package fise

import (
	fiseinterfaces "github.com/anbkit/fise/interfaces"
)

// Sequence is the set of value shapes the codec operates upon: string for
// the character variant, []byte for the binary one
type Sequence = fiseinterfaces.Sequence

// Context carries the ambient parameters passed into every rule function
type Context = fiseinterfaces.Context

// Range is an inclusive range of permitted salt lengths
type Range = fiseinterfaces.Range

// interface Source is the injected randomness capability consumed during
// assembly. *math/rand.Rand satisfies it
type Source = fiseinterfaces.Source

// interface Cipher is the two-operation contract of the pluggable symmetric
// transform
type Cipher[T Sequence] = fiseinterfaces.Cipher[T]

// RuleSet bundles the pluggable functions defining one deployment's
// structural dialect
type RuleSet[T Sequence] = fiseinterfaces.RuleSet[T]

// Options carries the per-call rotation token, opaque metadata and
// randomness source
type Options = fiseinterfaces.Options

// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package engine

import (
	"reflect"

	fiseinterfaces "github.com/anbkit/fise/interfaces"
)

// Alphabet from which character-variant salts are drawn. Binary-variant
// salts are raw bytes instead
const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// newSalt draws a random salt of length n from src. For string-shaped
// sequences the salt is printable; for byte-shaped ones it covers the full
// byte range
func newSalt[T fiseinterfaces.Sequence](src fiseinterfaces.Source, n int) T {
	var zero T
	printable := reflect.TypeOf(zero).Kind() == reflect.String

	b := make([]byte, n)
	for i := range b {
		if printable {
			b[i] = saltAlphabet[src.Intn(len(saltAlphabet))]
		} else {
			b[i] = byte(src.Intn(256))
		}
	}
	return T(b)
}

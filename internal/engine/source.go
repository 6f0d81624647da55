// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package engine

import (
	"crypto/rand"
	"fmt"
	"math/big"

	fiseinterfaces "github.com/anbkit/fise/interfaces"
)

// DefaultSource is the randomness source used when a call supplies none.
// It draws from crypto/rand and is safe for concurrent use
var DefaultSource fiseinterfaces.Source = cryptoSource{}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("fise: Intn called with non-positive bound")
	}

	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand.Reader is documented never to fail on supported
		// platforms; treat a failure as unrecoverable
		panic(fmt.Sprintf("fise: crypto/rand failed: %v", err))
	}
	return int(v.Int64())
}

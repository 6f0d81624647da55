// Copyright 2020 Erin Shepherd
// SPDX-License-Identifier: ISC

package fise

// XOR returns the default cipher: byte-wise XOR against the repeating salt.
// The transform is involutory, so encryption and decryption are the same
// operation, and it is length preserving as the cipher contract requires.
//
// This provides structural obfuscation only. Substitute a real cipher
// adapter if the payload must actually be protected
func XOR[T Sequence]() Cipher[T] {
	return xorCipher[T]{}
}

type xorCipher[T Sequence] struct{}

func (xorCipher[T]) Encrypt(payload, salt T) (T, error) {
	return xorMask(payload, salt), nil
}

func (xorCipher[T]) Decrypt(cipherText, salt T) (T, error) {
	return xorMask(cipherText, salt), nil
}

func xorMask[T Sequence](v, key T) T {
	if len(key) == 0 {
		return v
	}

	k := []byte(key)
	out := make([]byte, len(v))
	for i := 0; i < len(v); i++ {
		out[i] = v[i] ^ k[i%len(k)]
	}
	return T(out)
}

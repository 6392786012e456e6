/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abe

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/fentec-project/bn256"
	"golang.org/x/crypto/chacha20poly1305"
)

// symmetricKey derives a symmetric key from a Gt element by hashing its
// canonical string encoding, then feeds it to chacha20poly1305 for
// authenticated encryption. The envelope format is nonce ∥ ciphertext ∥ tag.
func symmetricKey(k *bn256.GT) []byte {
	sum := sha256.Sum256([]byte(k.String()))
	return sum[:]
}

// sealSymmetric seals plaintext under a key derived from k, returning the
// nonce ∥ ciphertext ∥ tag envelope.
func sealSymmetric(k *bn256.GT, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(symmetricKey(k))
	if err != nil {
		return nil, wrapErr(SymmetricFailure, err, "initializing AEAD cipher")
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, wrapErr(SymmetricFailure, err, "sampling AEAD nonce")
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// openSymmetric opens an envelope produced by sealSymmetric, under a key
// derived from k. Any integrity or key mismatch surfaces as
// SymmetricFailure, never as PolicyMismatch.
func openSymmetric(k *bn256.GT, envelope []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(symmetricKey(k))
	if err != nil {
		return nil, wrapErr(SymmetricFailure, err, "initializing AEAD cipher")
	}
	if len(envelope) < aead.NonceSize() {
		return nil, newErr(SymmetricFailure, "ciphertext envelope shorter than nonce")
	}
	nonce, ciphertext := envelope[:aead.NonceSize()], envelope[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, wrapErr(SymmetricFailure, err, "opening AEAD envelope")
	}
	return plaintext, nil
}

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
	"math/big"

	"github.com/fentec-project/bn256"
	"github.com/xlab-si/yct14-abe/sample"
)

// This file binds the scheme's scalar field Fr and target group Gt to
// concrete types. YCT14 is a no-pairing scheme (see doc.go), so only Gt's
// own group law is used here - bn256.Pair is never called. Fr is the
// scalar field of the same elliptic curve, reduced modulo bn256.Order.

// frSampler draws uniform elements of Fr.
var frSampler = sample.NewUniform(bn256.Order)

func randomFr() (*big.Int, error) {
	return frSampler.Sample()
}

func frReduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, bn256.Order)
}

func frMul(a, b *big.Int) *big.Int {
	return frReduce(new(big.Int).Mul(a, b))
}

func frNeg(a *big.Int) *big.Int {
	return frReduce(new(big.Int).Neg(a))
}

func frSub(a, b *big.Int) *big.Int {
	return frReduce(new(big.Int).Sub(a, b))
}

// frInverse inverts a nonzero Fr element. It returns an *Error of Kind
// FieldInverse, not a bare error, so callers reaching it through the
// exported keygen/decrypt paths can distinguish corrupt key material from
// every other failure mode.
func frInverse(a *big.Int) (*big.Int, error) {
	a = frReduce(a)
	if a.Sign() == 0 {
		return nil, newErr(FieldInverse, "cannot invert zero in Fr")
	}
	return new(big.Int).ModInverse(a, bn256.Order), nil
}

// randomGenerator samples a uniform generator of Gt.
func randomGenerator() (*bn256.GT, error) {
	_, g, err := bn256.RandomGT(rand.Reader)
	if err != nil {
		return nil, err
	}
	return g, nil
}

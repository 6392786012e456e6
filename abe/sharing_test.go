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
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

// reconstruct sums coefficient*share over every entry of cover, in Fr.
func reconstruct(t *testing.T, shares []Share, coeffs map[string]*big.Int, cover []CoverEntry) *big.Int {
	t.Helper()
	shareByLabel := make(map[string]*big.Int, len(shares))
	for _, s := range shares {
		shareByLabel[s.Label] = s.Value
	}
	acc := big.NewInt(0)
	for _, entry := range cover {
		share, ok := shareByLabel[entry.Labeled]
		if !ok {
			t.Fatalf("no share for %q", entry.Labeled)
		}
		coeff, ok := coeffs[entry.Labeled]
		if !ok {
			t.Fatalf("no coefficient for %q", entry.Labeled)
		}
		acc = frReduce(new(big.Int).Add(acc, frMul(share, coeff)))
	}
	return acc
}

func TestReconstructionAndGate(t *testing.T) {
	tree, err := Parse(`A and B and C`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	secret := big.NewInt(12345)

	shares, err := GenSharesPolicy(secret, tree)
	if err != nil {
		t.Fatalf("error generating shares: %v", err)
	}

	available := map[string]bool{"A": true, "B": true, "C": true}
	ok, cover := CalcPruned(available, tree)
	assert.True(t, ok)
	assert.Len(t, cover, 3)

	coeffs := CalcCoefficients(tree, big.NewInt(1))
	got := reconstruct(t, shares, coeffs, cover)
	assert.Equal(t, frReduce(secret), got)
}

func TestReconstructionOrGate(t *testing.T) {
	tree, err := Parse(`A or B or C`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	secret := big.NewInt(998877)

	shares, err := GenSharesPolicy(secret, tree)
	if err != nil {
		t.Fatalf("error generating shares: %v", err)
	}

	for _, available := range []map[string]bool{
		{"A": true},
		{"B": true},
		{"C": true},
	} {
		ok, cover := CalcPruned(available, tree)
		assert.True(t, ok)
		assert.Len(t, cover, 1)

		coeffs := CalcCoefficients(tree, big.NewInt(1))
		got := reconstruct(t, shares, coeffs, cover)
		assert.Equal(t, frReduce(secret), got)
	}
}

func TestReconstructionNestedTree(t *testing.T) {
	tree, err := Parse(`A and (D or (B and C))`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	secret := big.NewInt(424242)

	shares, err := GenSharesPolicy(secret, tree)
	if err != nil {
		t.Fatalf("error generating shares: %v", err)
	}

	for _, available := range []map[string]bool{
		{"A": true, "D": true},
		{"A": true, "B": true, "C": true},
	} {
		ok, cover := CalcPruned(available, tree)
		assert.True(t, ok)

		coeffs := CalcCoefficients(tree, big.NewInt(1))
		got := reconstruct(t, shares, coeffs, cover)
		assert.Equal(t, frReduce(secret), got)
	}
}

func TestCalcPrunedFailsWhenUnsatisfied(t *testing.T) {
	tree, err := Parse(`A and B`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	ok, cover := CalcPruned(map[string]bool{"A": true}, tree)
	assert.False(t, ok)
	assert.Nil(t, cover)
}

func TestStripIndex(t *testing.T) {
	assert.Equal(t, "sun", StripIndex("sun_0"))
	assert.Equal(t, "sun", StripIndex("sun_12"))
	assert.Equal(t, "sun", StripIndex("sun"))
}

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
	"strconv"
	"strings"
)

// Share is a single leaf's share of a secret split over a policy tree: a
// value in Fr, labeled with the leaf's attribute name disambiguated by a
// uniqueness index, since an attribute may appear more than once in a
// policy.
type Share struct {
	Label string
	Value *big.Int
}

// StripIndex strips the "_<k>" uniqueness suffix from a labeled share name,
// returning the bare attribute name.
func StripIndex(labeled string) string {
	i := strings.LastIndexByte(labeled, '_')
	if i < 0 {
		return labeled
	}
	return labeled[:i]
}

// leafLabeler assigns each leaf visited, in a fixed left-to-right pre-order
// traversal, a monotonically increasing index. GenSharesPolicy, CalcPruned
// and CalcCoefficients each walk the same tree with a fresh leafLabeler, so
// independent traversals agree on every leaf's label.
type leafLabeler struct {
	next int
}

func (l *leafLabeler) label(name string) string {
	idx := l.next
	l.next++
	return name + "_" + strconv.Itoa(idx)
}

// GenSharesPolicy generates one Shamir-style share per leaf of tree, given
// secret s. Each gate is treated as a (t, n) threshold over its n children:
// And is (n, n), Or is (1, n).
func GenSharesPolicy(secret *big.Int, tree *PolicyValue) ([]Share, error) {
	labeler := &leafLabeler{}
	var shares []Share
	var rec func(node *PolicyValue, secret *big.Int) error
	rec = func(node *PolicyValue, secret *big.Int) error {
		if node.IsLeaf() {
			shares = append(shares, Share{Label: labeler.label(node.Name()), Value: frReduce(secret)})
			return nil
		}
		n := len(node.Children())
		threshold := 1
		if node.Kind() == And {
			threshold = n
		}
		poly, err := samplePolynomial(secret, threshold)
		if err != nil {
			return err
		}
		for i := 1; i <= n; i++ {
			sub := evalPolynomial(poly, big.NewInt(int64(i)))
			if err := rec(node.Children()[i-1], sub); err != nil {
				return err
			}
		}
		return nil
	}
	if err := rec(tree, secret); err != nil {
		return nil, err
	}
	return shares, nil
}

// CoverEntry names a leaf selected into a minimum satisfying cover: Bare is
// the plain attribute name (used to look up ciphertext entries), Labeled is
// the per-leaf unique name (used to look up share/coefficient entries).
type CoverEntry struct {
	Bare    string
	Labeled string
}

// CalcPruned determines whether available satisfies tree and, if so,
// returns a minimum satisfying leaf cover using the same labeling
// discipline as GenSharesPolicy.
//
// Under an Or gate, the cover of exactly one satisfied child is kept - the
// first satisfied child in left-to-right traversal order, a deterministic
// choice. All children are still visited (even once a satisfying one under
// Or is found) so that leaf labels stay in lock-step with GenSharesPolicy's
// and CalcCoefficients's traversal.
func CalcPruned(available map[string]bool, tree *PolicyValue) (bool, []CoverEntry) {
	labeler := &leafLabeler{}
	var rec func(node *PolicyValue) (bool, []CoverEntry)
	rec = func(node *PolicyValue) (bool, []CoverEntry) {
		if node.IsLeaf() {
			label := labeler.label(node.Name())
			if available[node.Name()] {
				return true, []CoverEntry{{Bare: node.Name(), Labeled: label}}
			}
			return false, nil
		}
		if node.Kind() == And {
			ok := true
			var cover []CoverEntry
			for _, child := range node.Children() {
				cok, ccover := rec(child)
				if !cok {
					ok = false
				}
				cover = append(cover, ccover...)
			}
			if !ok {
				return false, nil
			}
			return true, cover
		}
		// Or: keep the first satisfied child's cover, but still visit
		// every child to keep leaf labels synchronized.
		satisfied := false
		var chosen []CoverEntry
		for _, child := range node.Children() {
			cok, ccover := rec(child)
			if cok && !satisfied {
				satisfied = true
				chosen = ccover
			}
		}
		return satisfied, chosen
	}
	return rec(tree)
}

// CalcCoefficients computes, for every leaf of tree, the Lagrange
// recovery coefficient such that summing coefficient*share over a
// satisfying cover (per CalcPruned) yields top times the secret the shares
// were generated with - the secret itself for top = 1.
//
// The coefficient at a gate's child depends only on the child's position
// among its siblings and the gate's threshold, not on which attributes are
// actually available: for an And gate (threshold n over n children) every
// child participates in the Lagrange basis; for an Or gate (threshold 1)
// the basis over a single-element set is always 1, for every child. So
// this function (unlike CalcPruned) does not need an "available" set - it
// produces a coefficient for every leaf, and callers look up only the
// entries named by a satisfying cover.
func CalcCoefficients(tree *PolicyValue, top *big.Int) map[string]*big.Int {
	labeler := &leafLabeler{}
	coeffs := make(map[string]*big.Int)
	var rec func(node *PolicyValue, acc *big.Int)
	rec = func(node *PolicyValue, acc *big.Int) {
		if node.IsLeaf() {
			coeffs[labeler.label(node.Name())] = frReduce(acc)
			return
		}
		n := len(node.Children())
		if node.Kind() == Or {
			for _, child := range node.Children() {
				rec(child, acc)
			}
			return
		}
		for i := 1; i <= n; i++ {
			factor := lagrangeBasisAtZero(i, n)
			rec(node.Children()[i-1], frMul(acc, factor))
		}
	}
	rec(tree, top)
	return coeffs
}

// samplePolynomial samples a degree (threshold-1) polynomial over Fr with
// constant term secret and uniformly random remaining coefficients.
func samplePolynomial(secret *big.Int, threshold int) ([]*big.Int, error) {
	poly := make([]*big.Int, threshold)
	poly[0] = frReduce(secret)
	for i := 1; i < threshold; i++ {
		a, err := randomFr()
		if err != nil {
			return nil, err
		}
		poly[i] = a
	}
	return poly, nil
}

// evalPolynomial evaluates poly (coefficients low-to-high) at x, over Fr.
func evalPolynomial(poly []*big.Int, x *big.Int) *big.Int {
	acc := new(big.Int)
	pow := big.NewInt(1)
	for _, c := range poly {
		term := new(big.Int).Mul(c, pow)
		acc.Add(acc, term)
		pow = frMul(pow, x)
	}
	return frReduce(acc)
}

// lagrangeBasisAtZero computes prod_{j in {1..n}, j != i} (0 - j) / (i - j)
// over Fr, the i-th Lagrange basis polynomial (nodes 1..n) evaluated at 0.
func lagrangeBasisAtZero(i, n int) *big.Int {
	num := big.NewInt(1)
	den := big.NewInt(1)
	for j := 1; j <= n; j++ {
		if j == i {
			continue
		}
		num = frMul(num, frNeg(big.NewInt(int64(j))))
		den = frMul(den, big.NewInt(int64(i-j)))
	}
	// den is a product of nonzero residues (i != j, n far smaller than the
	// field order), so the inverse always exists; the error is impossible.
	denInv, _ := frInverse(den)
	return frMul(num, denInv)
}

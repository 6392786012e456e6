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
	"fmt"
	"math/big"
	"sort"

	"github.com/xlab-si/yct14-abe/data"
)

// AbePolicy is a monotone span program (MSP): a {-1,0,+1} matrix Mat whose
// rows are labeled by Pi, with the property that a set of attributes
// satisfies the policy iff the rows labeled by that set's attributes span
// the vector [1, 0, ..., 0].
type AbePolicy struct {
	Mat data.Matrix
	Pi  []string
	C   int
}

func (p *AbePolicy) String() string {
	return fmt.Sprintf("{m: %s, pi: %q, c: %d}", p.Mat, p.Pi, p.C)
}

// BooleanToMSP converts a DNF policy tree to an AbePolicy via the
// Lewko-Waters algorithm ("Decentralizing Attribute-Based Encryption",
// Appendix G). Unlike the secret-sharing core (GenSharesPolicy et al.),
// this compiler requires every And gate to have exactly two children -
// Or may have any arity >= 2 in both the secret-sharing core and here,
// but a wide And gate has no Lewko-Waters vector-split rule, so it is
// rejected here even though the secret-sharing core accepts it.
func BooleanToMSP(tree *PolicyValue) (*AbePolicy, error) {
	c := 1
	var rows []data.Vector
	var pi []string

	var rec func(node *PolicyValue, v data.Vector) error
	rec = func(node *PolicyValue, v data.Vector) error {
		if node.IsLeaf() {
			rows = append(rows, v)
			pi = append(pi, node.Name())
			return nil
		}
		if node.Kind() == Or {
			for _, child := range node.Children() {
				if err := rec(child, v); err != nil {
					return err
				}
			}
			return nil
		}

		children := node.Children()
		if len(children) != 2 {
			return newErr(PolicyShape, fmt.Sprintf("LSSS AND gate requires exactly 2 children, got %d", len(children)))
		}

		vRight := padZero(v, c)
		vRight = append(vRight, big.NewInt(1))
		vLeft := make(data.Vector, c)
		for i := range vLeft {
			vLeft[i] = big.NewInt(0)
		}
		vLeft = append(vLeft, big.NewInt(-1))
		c++

		if err := rec(children[0], vRight); err != nil {
			return err
		}
		return rec(children[1], vLeft)
	}

	if err := rec(tree, data.Vector{big.NewInt(1)}); err != nil {
		return nil, err
	}

	mat := make(data.Matrix, len(rows))
	for i, row := range rows {
		mat[i] = padZero(row, c)
	}

	result := &AbePolicy{Mat: mat, Pi: pi, C: c}
	canonicalize(result)
	return result, nil
}

// padZero returns a copy of v, right-padded with zeros to width (or
// truncated not performed - width is always >= len(v) by construction).
func padZero(v data.Vector, width int) data.Vector {
	out := make(data.Vector, width)
	for i := 0; i < width; i++ {
		if i < len(v) {
			out[i] = new(big.Int).Set(v[i])
		} else {
			out[i] = big.NewInt(0)
		}
	}
	return out
}

// canonicalize sorts p.Pi and p.Mat jointly, ascending by attribute name,
// so that two MSPs compiled from policies differing only in the order of
// an Or gate's children compare equal. Swapping an And gate's two children
// still changes the result, since the first child's rows get the +1 entry
// and the second child's rows the -1 entry.
func canonicalize(p *AbePolicy) {
	idx := make([]int, len(p.Pi))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return p.Pi[idx[a]] < p.Pi[idx[b]] })

	sortedPi := make([]string, len(p.Pi))
	sortedMat := make(data.Matrix, len(p.Mat))
	for newPos, oldIdx := range idx {
		sortedPi[newPos] = p.Pi[oldIdx]
		sortedMat[newPos] = p.Mat[oldIdx]
	}
	copy(p.Pi, sortedPi)
	copy(p.Mat, sortedMat)
}

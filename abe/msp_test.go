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
	"github.com/xlab-si/yct14-abe/data"
)

func TestBooleanToMSPWorkedExample(t *testing.T) {
	tree, err := Parse(`A and (D or (B and C))`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	msp, err := BooleanToMSP(tree)
	if err != nil {
		t.Fatalf("error compiling to MSP: %v", err)
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, msp.Pi)
	assert.Equal(t, 3, msp.C)

	want := intRows([][]int64{
		{1, 1, 0},
		{0, -1, 1},
		{0, 0, -1},
		{0, -1, 0},
	})
	for i, row := range want {
		assert.Equal(t, row, msp.Mat[i], "row %d", i)
	}
}

func intRows(rows [][]int64) []data.Vector {
	out := make([]data.Vector, len(rows))
	for i, row := range rows {
		v := make(data.Vector, len(row))
		for j, x := range row {
			v[j] = big.NewInt(x)
		}
		out[i] = v
	}
	return out
}

func TestBooleanToMSPRejectsWideAndGate(t *testing.T) {
	tree, err := Parse(`A and B and C`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	_, err = BooleanToMSP(tree)
	assert.Error(t, err)
}

func TestBooleanToMSPCanonicalityIsOrderIndependent(t *testing.T) {
	t1, err := Parse(`A and (B or C)`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}
	t2, err := Parse(`A and (C or B)`, HumanPolicy)
	if err != nil {
		t.Fatalf("error parsing: %v", err)
	}

	m1, err := BooleanToMSP(t1)
	if err != nil {
		t.Fatalf("error compiling t1: %v", err)
	}
	m2, err := BooleanToMSP(t2)
	if err != nil {
		t.Fatalf("error compiling t2: %v", err)
	}

	assert.Equal(t, m1.Pi, m2.Pi)
	assert.Equal(t, m1.String(), m2.String())
}

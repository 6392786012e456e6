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

package data

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixString(t *testing.T) {
	m := Matrix{
		{big.NewInt(1), big.NewInt(0)},
		{big.NewInt(0), big.NewInt(-1)},
	}
	assert.Equal(t, "( 1 0)\n( 0 -1)", m.String())
}

func TestMatrixEmptyString(t *testing.T) {
	var m Matrix
	assert.Equal(t, "", m.String())
}

func TestMatrixIndexingAndAppend(t *testing.T) {
	var m Matrix
	m = append(m, Vector{big.NewInt(1)})
	m = append(m, Vector{big.NewInt(2)})
	assert.Equal(t, 2, len(m))
	assert.Equal(t, big.NewInt(2), m[1][0])
}

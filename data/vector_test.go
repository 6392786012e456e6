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

func TestVectorString(t *testing.T) {
	v := Vector{big.NewInt(1), big.NewInt(-1), big.NewInt(0)}
	assert.Equal(t, " 1 -1 0", v.String())
}

func TestVectorEmptyString(t *testing.T) {
	var v Vector
	assert.Equal(t, "", v.String())
}

func TestVectorIndexing(t *testing.T) {
	v := make(Vector, 2)
	v[0] = big.NewInt(3)
	v[1] = big.NewInt(4)
	assert.Equal(t, big.NewInt(3), v[0])
	assert.Equal(t, big.NewInt(4), v[1])
}

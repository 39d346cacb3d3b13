// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Pow_0(t *testing.T) {
	check(0, t)
}

func Test_Pow_1(t *testing.T) {
	check(1, t)
}

func Test_Pow_2(t *testing.T) {
	check(2, t)
}

func Test_Pow_5(t *testing.T) {
	check(5, t)
}

func Test_CheckedPow_0(t *testing.T) {
	v, ok := CheckedPowUint64(2, 63)
	require.True(t, ok)
	assert.Equal(t, uint64(1)<<63, v)
	//
	_, ok = CheckedPowUint64(2, 64)
	assert.False(t, ok)
}

func Test_ExactLog_0(t *testing.T) {
	assert.Equal(t, 0, ExactLog(5, 1))
	assert.Equal(t, 0, ExactLog(5, 4))
	assert.Equal(t, 1, ExactLog(5, 5))
	assert.Equal(t, 1, ExactLog(5, 24))
	assert.Equal(t, 2, ExactLog(5, 25))
	assert.Equal(t, 63, ExactLog(2, ^uint64(0)))
}

func Test_Primes_0(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}, PrimesBelow(50))
	assert.Equal(t, uint64(53), NextPrime(47))
	assert.False(t, IsPrime(1))
	assert.Equal(t, int64(10), Binomial(5, 2).Int64())
	assert.Equal(t, int64(0), Binomial(2, 5).Int64())
}

func Test_Valuation_0(t *testing.T) {
	a, b := Finite(3), Finite(-2)
	//
	assert.Equal(t, -1, a.Cmp(PosInfinity))
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, b, a.Min(b))
	assert.Equal(t, PosInfinity, a.Max(PosInfinity))
	assert.Equal(t, Finite(1), a.Add(b))
	assert.True(t, a.Add(PosInfinity).IsInfinite())
	assert.Equal(t, "+∞", PosInfinity.String())
	assert.Equal(t, 7, PosInfinity.IntOr(7))
}

func check(base uint64, t *testing.T) {
	for i := uint64(0); i < 10; i++ {
		// Bruteforce solution
		e := bruteForce(base, i)
		// Check for a match
		if x := PowUint64(base, i); x != e {
			t.Errorf("%d^%d == %d != %d", base, i, x, e)
		}
	}
}

func bruteForce(base, exp uint64) uint64 {
	acc := uint64(1)
	for i := uint64(0); i < exp; i++ {
		acc *= base
	}

	return acc
}

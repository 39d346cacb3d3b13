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

import "math/bits"

// PowUint64 raises a given base raised to a given power.  Overflow wraps
// silently, see CheckedPowUint64 for a safe variant.
func PowUint64(base uint64, exp uint64) uint64 {
	result := uint64(1)
	//
	for {
		if exp&1 == 1 {
			result *= base
		}
		// div 2
		exp >>= 1
		//
		if exp == 0 {
			break
		}
		//
		base *= base
	}

	return result
}

// CheckedPowUint64 raises a given base to a given power, returning false if the
// result does not fit in 64 bits.
func CheckedPowUint64(base uint64, exp uint64) (uint64, bool) {
	result := uint64(1)
	//
	for i := uint64(0); i < exp; i++ {
		hi, lo := bits.Mul64(result, base)
		if hi != 0 {
			return 0, false
		}
		//
		result = lo
	}
	//
	return result, true
}

// ExactLog returns the largest e such that base^e <= n, i.e. floor(log_base(n)).
// This panics if base < 2 or n == 0.
func ExactLog(base uint64, n uint64) int {
	if base < 2 || n == 0 {
		panic("invalid logarithm")
	}
	//
	e := 0
	//
	for {
		next, ok := CheckedPowUint64(base, uint64(e+1))
		if !ok || next > n {
			return e
		}
		//
		e++
	}
}

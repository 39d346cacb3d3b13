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

import "math/big"

// IsPrime determines whether a given (small) integer is prime.
func IsPrime(n uint64) bool {
	return new(big.Int).SetUint64(n).ProbablyPrime(20)
}

// NextPrime returns the smallest prime strictly greater than n.
func NextPrime(n uint64) uint64 {
	for q := n + 1; ; q++ {
		if IsPrime(q) {
			return q
		}
	}
}

// PrimesBelow returns all primes strictly less than a given bound, in
// increasing order.
func PrimesBelow(bound uint64) []uint64 {
	var primes []uint64
	//
	for q := NextPrime(1); q < bound; q = NextPrime(q) {
		primes = append(primes, q)
	}
	//
	return primes
}

// Binomial returns the binomial coefficient n choose k.
func Binomial(n, k int) *big.Int {
	if k < 0 || n < 0 || k > n {
		return big.NewInt(0)
	}
	//
	return new(big.Int).Binomial(int64(n), int64(k))
}

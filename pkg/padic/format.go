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
package padic

import (
	"fmt"
	"math/big"
	"strings"
)

// String renders x as a p-adic expansion, such as "3 + 2*5^2 + O(5^4)".
func (x Element) String() string {
	var (
		p     = x.ring.prime
		terms []string
	)
	//
	if x.IsExactZero() {
		return "0"
	} else if x.unit != nil {
		digits := new(big.Int).Set(x.unit)
		digit := new(big.Int)
		//
		for e := x.ordp; digits.Sign() != 0; e++ {
			digits.QuoRem(digits, x.ring.p, digit)
			//
			if digit.Sign() != 0 {
				terms = append(terms, monomial(digit.Uint64(), p, e))
			}
		}
	}
	//
	terms = append(terms, fmt.Sprintf("O(%s)", power(p, x.prec)))
	//
	return strings.Join(terms, " + ")
}

func monomial(digit uint64, p uint64, e int) string {
	switch {
	case e == 0:
		return fmt.Sprintf("%d", digit)
	case digit == 1:
		return power(p, e)
	default:
		return fmt.Sprintf("%d*%s", digit, power(p, e))
	}
}

func power(p uint64, e int) string {
	if e == 1 {
		return fmt.Sprintf("%d", p)
	}
	//
	return fmt.Sprintf("%d^%d", p, e)
}

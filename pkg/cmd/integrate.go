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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-padic/pkg/integrate"
	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/series"
	"github.com/spf13/cobra"
)

var integrateCmd = &cobra.Command{
	Use:   "integrate [flags] coefficient...",
	Short: "Integrate a polynomial against a symbol.",
	Long: `Integrate the polynomial with the given coefficients (constant term
	first) against the measure of a symbol, over the ball of a center at a
	given level.  The denominator defaults to one.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			s   = newSession(cmd)
			f   = inputForm(cmd, s)
			num = parsePoly(s.ring, args)
			den = parsePoly(s.ring, strings.Split(GetString(cmd, "denominator"), ","))
		)
		//
		center, err := matrix.ParseRat(strings.Split(GetString(cmd, "center"), ","))
		exitOnError(err)
		//
		method, err := s.config.IntegrationMethod()
		exitOnError(err)
		//
		if cmd.Flags().Changed("method") {
			method, err = integrate.ParseMethod(GetString(cmd, "method"))
			exitOnError(err)
		}
		//
		in := integrate.New(f, s.builder.Action(), s.builder.Embedding(), s.tables)
		x, err := in.Integrate(integrate.Rational{Num: num, Den: den}, center, GetInt(cmd, "level"), method)
		exitOnError(err)
		//
		printElement(cmd, x)
	},
}

func parsePoly(r *padic.Ring, coeffs []string) series.Poly {
	elements := make([]padic.Element, len(coeffs))
	//
	for i, c := range coeffs {
		x, err := r.ParseRat(strings.TrimSpace(c))
		exitOnError(err)
		//
		elements[i] = x
	}
	//
	return series.NewPoly(r, elements...)
}

func printElement(cmd *cobra.Command, x padic.Element) {
	printResult(cmd, map[string]any{"value": x.Rat().RatString(), "precision": x.Precision()}, x.String)
}

func init() {
	rootCmd.AddCommand(integrateCmd)
	integrateCmd.Flags().String("run", "", "identifier of a stored symbol")
	integrateCmd.Flags().String("center", "1,0,0,1", "matrix whose ball is integrated over")
	integrateCmd.Flags().Int("level", 0, "level of the covering")
	integrateCmd.Flags().String("denominator", "1", "coefficients of the denominator")
	integrateCmd.Flags().String("method", "moments", "integration method (moments or riemann_sum)")
}

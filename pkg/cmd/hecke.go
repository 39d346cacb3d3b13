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
	"strconv"

	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/operator"
	"github.com/spf13/cobra"
)

var heckeCmd = &cobra.Command{
	Use:   "hecke [flags] ell",
	Short: "Apply a Hecke operator to a symbol.",
	Long: `Apply the Hecke operator T_ell (or U_p when ell is the prime of the
	tables, or the Atkin-Lehner involution W_ell) to a stored symbol, or to the
	naive lift of the classical symbol of the tables.  When the result is a
	multiple of the input, the eigenvalue is reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		ell, err := strconv.ParseUint(args[0], 10, 64)
		exitOnError(err)
		//
		var (
			s  = newSession(cmd)
			f  = inputForm(cmd, s)
			tf form.Form
		)
		//
		switch {
		case GetFlag(cmd, "atkin-lehner"):
			tf, err = s.builder.AtkinLehner(f, ell)
		case ell == s.tables.Prime():
			tf, err = s.builder.Up(f, operator.UpOptions{Scale: GetFlag(cmd, "scale")})
		default:
			tf, err = s.builder.Hecke(f, ell)
		}
		//
		exitOnError(err)
		s.writeForm("hecke", tf)
		//
		if a, err := operator.Eigenvalue(f, tf, s.config.Precision); err == nil {
			printResult(cmd, map[string]string{"eigenvalue": a.Rat().RatString()}, func() string {
				return fmt.Sprintf("eigenvalue %s", a)
			})
		} else {
			printForm(cmd, tf)
		}
	},
}

// The form to operate on, which is either read from the store or is the naive
// lift of the classical symbol.
func inputForm(cmd *cobra.Command, s *session) form.Form {
	if run := GetString(cmd, "run"); run != "" {
		return s.readForm(run)
	}
	//
	f, err := form.Classical(s.tables, s.weight, s.values, s.config.Moments, s.config.Precision)
	exitOnError(err)
	//
	return f
}

func init() {
	rootCmd.AddCommand(heckeCmd)
	heckeCmd.Flags().String("run", "", "identifier of a stored symbol")
	heckeCmd.Flags().Bool("atkin-lehner", false, "apply the Atkin-Lehner involution instead")
	heckeCmd.Flags().Bool("scale", false, "omit the p^(k/2) normalisation of U_p")
}

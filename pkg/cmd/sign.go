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

	"github.com/consensys/go-padic/pkg/form"
	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign [flags] plus|minus",
	Short: "Project a symbol onto its plus or minus part.",
	Long: `Compute f + f|[[1,0],[0,-1]] (plus) or f - f|[[1,0],[0,-1]] (minus)
	for a stored symbol, or for the naive lift of the classical symbol.  This
	requires tables which give a representative for every index.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			s   = newSession(cmd)
			f   = inputForm(cmd, s)
			g   form.Form
			err error
		)
		//
		switch args[0] {
		case "plus":
			g, err = s.builder.PlusPart(f)
		case "minus":
			g, err = s.builder.MinusPart(f)
		default:
			err = fmt.Errorf("unknown sign %q", args[0])
		}
		//
		exitOnError(err)
		s.writeForm(args[0], g)
		printForm(cmd, g)
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().String("run", "", "identifier of a stored symbol")
}

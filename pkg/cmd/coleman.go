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

	"github.com/consensys/go-padic/pkg/integrate"
	"github.com/spf13/cobra"
)

var colemanCmd = &cobra.Command{
	Use:   "coleman [flags] t1 t2",
	Short: "Compute a Coleman integral of a symbol.",
	Long: `Integrate log((x - t1)/(x - t2)) against the measure of a symbol, or
	the multiplicative integral when requested.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			s = newSession(cmd)
			f = inputForm(cmd, s)
		)
		//
		t1, err := s.ring.ParseRat(args[0])
		exitOnError(err)
		t2, err := s.ring.ParseRat(args[1])
		exitOnError(err)
		//
		method, err := integrate.ParseMethod(GetString(cmd, "method"))
		exitOnError(err)
		//
		opts := integrate.ColemanOptions{
			Method: method,
			Mult:   GetFlag(cmd, "mult"),
			Twist:  cmd.Flags().Changed("twist"),
			Delta:  GetInt(cmd, "twist"),
		}
		//
		in := integrate.New(f, s.builder.Action(), s.builder.Embedding(), s.tables)
		x, err := in.Coleman(t1, t2, opts)
		exitOnError(err)
		//
		printElement(cmd, x)
	},
}

func init() {
	rootCmd.AddCommand(colemanCmd)
	colemanCmd.Flags().String("run", "", "identifier of a stored symbol")
	colemanCmd.Flags().String("method", "moments", "integration method (moments or riemann_sum)")
	colemanCmd.Flags().Bool("mult", false, "compute the multiplicative integral")
	colemanCmd.Flags().Int("twist", 0, "twist by (x - t1)^delta (x - t2)^(k - delta)")
}

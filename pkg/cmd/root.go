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
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "go-padic",
	Short: "Overconvergent modular symbols over the p-adic numbers.",
	Long: `Lift classical modular symbols to overconvergent ones, apply Hecke
	operators to them and integrate against the resulting measures.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "metrics") {
			dumpMetrics(os.Stderr)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("go-padic ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().Bool("metrics", false, "report metrics on stderr when done")
	rootCmd.PersistentFlags().StringP("config", "c", "", "read run configuration from a YAML file")
	rootCmd.PersistentFlags().StringP("tables", "t", "", "tables file describing the arithmetic group")
	rootCmd.PersistentFlags().Int("cap", 0, "relative precision cap of the p-adic ring")
	rootCmd.PersistentFlags().IntP("moments", "m", 0, "number of moments per distribution")
	rootCmd.PersistentFlags().IntP("precision", "p", 0, "target precision")
	rootCmd.PersistentFlags().String("store", "", "directory of the result store")
	rootCmd.PersistentFlags().Bool("json", false, "always write results as JSON")
}

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
package main

import (
	"fmt"
	"math/big"
	"os"
	"path"
	"strconv"

	"github.com/consensys/go-padic/pkg/action"
	util "github.com/consensys/go-padic/pkg/cmd"
	"github.com/consensys/go-padic/pkg/lift"
	"github.com/consensys/go-padic/pkg/operator"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	"github.com/consensys/go-padic/pkg/source/tables"
	vmath "github.com/consensys/go-padic/pkg/util/math"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Uint("prime", 5, "prime of the tables")
	rootCmd.Flags().Int("shift", 2, "translation b of the contraction y -> b + py")
	rootCmd.Flags().Uint("hecke-bound", 12, "generate identity Hecke data for primes below this")
	rootCmd.Flags().Int("precision", 10, "precision at which generated tables are checked")
	rootCmd.Flags().String("dir", "testdata/tables", "output directory")
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testgen [flags] name",
	Short: "Table generation utility for go-padic.",
	Long: `Generate tables whose U_p acts by a single contraction, so that the
	ordinary lift of the classical symbol is a point mass at the fixed point of
	the contraction.  Generated tables are lifted before being written.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := genConfig{
			name:       args[0],
			prime:      uint64(util.GetUint(cmd, "prime")),
			shift:      util.GetInt(cmd, "shift"),
			heckeBound: uint64(util.GetUint(cmd, "hecke-bound")),
			precision:  util.GetInt(cmd, "precision"),
		}
		//
		file := generateTables(cfg)
		checkTables(cfg, file)
		writeTables(path.Join(util.GetString(cmd, "dir"), cfg.name+".auto.yaml"), file)
	},
}

// genConfig encapsulates configuration related to table generation.
type genConfig struct {
	name       string
	prime      uint64
	shift      int
	heckeBound uint64
	precision  int
}

func generateTables(cfg genConfig) tables.File {
	var (
		p        = strconv.FormatUint(cfg.prime, 10)
		identity = []string{"1", "0", "0", "1"}
		trivial  = []tables.CorrectionFile{{Label: 0, T: identity}, {Label: 1, T: identity}}
		file     = tables.File{
			Name:          cfg.name,
			Prime:         cfg.prime,
			Level:         1,
			Indices:       2,
			Normalization: "none",
			Hecke:         make(map[uint64][]tables.PieceFile),
			Classical:     &tables.ClassicalFile{Weight: 0, Values: [][]string{{"1"}, {"0"}}},
		}
	)
	//
	file.Up = []tables.PieceFile{{Acter: []string{"1", strconv.Itoa(cfg.shift), "0", p}, Corrections: trivial}}
	//
	for _, ell := range vmath.PrimesBelow(cfg.heckeBound) {
		if ell != cfg.prime {
			file.Hecke[ell] = []tables.PieceFile{{Acter: identity, Corrections: trivial}}
		}
	}
	//
	file.Reductions = []tables.ReductionFile{{Matrix: identity, Label: 0, T: identity}}
	file.Coverings = []tables.CoveringFile{{Center: identity, Level: 0, Balls: [][]string{identity}}}
	//
	return file
}

// Check the generated tables lift to the point mass at the fixed point
// b/(1-p) of the contraction.
func checkTables(cfg genConfig, file tables.File) {
	bytes, err := yaml.Marshal(file)
	exitOnError(err)
	//
	src, err := tables.Parse(bytes)
	exitOnError(err)
	//
	r, err := padic.NewRing(cfg.prime, 2*cfg.precision)
	exitOnError(err)
	//
	act, err := action.New(action.Config{Weight: 0})
	exitOnError(err)
	//
	weight, values, err := src.Classical(r)
	exitOnError(err)
	//
	b := operator.NewBuilder(src, act, source.RingEmbedding{Ring: r})
	f, err := lift.Lift(b, weight, values, cfg.precision, cfg.precision)
	exitOnError(err)
	//
	fixed := r.FromRat(big.NewRat(int64(cfg.shift), 1-int64(cfg.prime)))
	//
	for j := 0; j < f.Depth(); j++ {
		m := f.Value(0).Moment(j)
		if m.Sub(fixed.Pow(j)).Valuation().CmpInt(cfg.precision) < 0 {
			exitOnError(fmt.Errorf("moment %d of lift is %s, expected %s", j, m, fixed.Pow(j)))
		}
	}
}

func writeTables(filename string, file tables.File) {
	bytes, err := yaml.Marshal(file)
	exitOnError(err)
	// Write the file
	if err := os.WriteFile(filename, bytes, 0644); err != nil {
		exitOnError(err)
	}
	// Log what happened
	log.Infof("Wrote %s (%d Hecke operators)", filename, len(file.Hecke))
}

func exitOnError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

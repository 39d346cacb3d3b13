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
	"context"

	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/lift"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var liftCmd = &cobra.Command{
	Use:   "lift [flags]",
	Short: "Lift the classical symbol of a set of tables.",
	Long: `Lift the classical symbol of a set of tables to an overconvergent
	symbol, by iterating U_p on a naive lift.  Given the U_p-eigenvalue of an
	ordinary eigensymbol (or asked to find it from a_p), the lift is an
	eigensymbol instead.  With --stabilize the classical symbol is first
	p-stabilised with respect to that eigenvalue.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			s     = newSession(cmd)
			stats = util.NewPerfStats()
			f     form.Form
		)
		//
		if GetString(cmd, "alpha") != "" || GetFlag(cmd, "find-alpha") || GetFlag(cmd, "stabilize") {
			f = liftEigensymbol(cmd, s)
		} else {
			f = liftOrdinary(s)
		}
		//
		stats.Log("lifting")
		s.writeForm("lift", f)
		printForm(cmd, f)
	},
}

func liftOrdinary(s *session) form.Form {
	naive, err := lift.Naive(s.builder, s.weight, s.values, s.config.Moments, s.config.Precision)
	exitOnError(err)
	//
	lifts, err := lift.LiftAll(context.Background(), s.builder, []form.Form{naive}, s.config.Precision,
		s.config.Parallelism)
	exitOnError(err)
	//
	return lifts[0]
}

func liftEigensymbol(cmd *cobra.Command, s *session) form.Form {
	var a padic.Element
	//
	classical, err := form.Classical(s.tables, s.weight, s.values, s.weight+1, s.ring.Cap())
	exitOnError(err)
	//
	if alpha := GetString(cmd, "alpha"); alpha != "" {
		a, err = s.ring.ParseRat(alpha)
	} else {
		a, err = lift.FindAlpha(s.builder, classical, s.config.Precision)
	}
	//
	exitOnError(err)
	//
	if GetFlag(cmd, "stabilize") {
		classical, err = lift.Stabilize(s.builder, classical, s.tables, a)
		exitOnError(err)
	}
	//
	f, err := lift.Eigensymbol(s.builder, classical, a, s.config.Precision)
	exitOnError(err)
	//
	log.Infof("eigensymbol lifted to %d moments (alpha = %s)", f.Depth(), a)
	//
	return f
}

func init() {
	rootCmd.AddCommand(liftCmd)
	liftCmd.Flags().String("alpha", "", "U_p-eigenvalue of an ordinary eigensymbol (e.g. \"-3/2\")")
	liftCmd.Flags().Bool("find-alpha", false, "take the unit root of the Hecke polynomial at p as eigenvalue")
	liftCmd.Flags().Bool("stabilize", false, "p-stabilise the classical symbol before lifting")
}

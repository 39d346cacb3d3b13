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
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-padic/pkg/action"
	"github.com/consensys/go-padic/pkg/config"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/operator"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	"github.com/consensys/go-padic/pkg/source/tables"
	"github.com/consensys/go-padic/pkg/store"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetInt gets an expected int flag, or exits if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected uint flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Report an error and exit.
func exitOnError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Read the run configuration (if any) and then apply any flags given
// explicitly on the command line.
func readConfig(cmd *cobra.Command) config.Config {
	var (
		cfg = config.Default()
		err error
	)
	//
	if filename := GetString(cmd, "config"); filename != "" {
		cfg, err = config.Load(filename)
		exitOnError(err)
	}
	//
	if cmd.Flags().Changed("tables") {
		cfg.Tables = GetString(cmd, "tables")
	}
	//
	if cmd.Flags().Changed("cap") {
		cfg.Cap = GetInt(cmd, "cap")
	}
	//
	if cmd.Flags().Changed("moments") {
		cfg.Moments = GetInt(cmd, "moments")
	}
	//
	if cmd.Flags().Changed("precision") {
		cfg.Precision = GetInt(cmd, "precision")
	}
	//
	if cmd.Flags().Changed("store") {
		cfg.Store.Path = GetString(cmd, "store")
	}
	//
	exitOnError(cfg.Validate())
	//
	if cfg.Tables == "" {
		exitOnError(fmt.Errorf("no tables given (use --tables)"))
	}
	//
	return cfg
}

// session holds everything a command needs to compute with the forms of one
// set of tables.
type session struct {
	config  config.Config
	tables  *tables.Tables
	ring    *padic.Ring
	weight  int
	values  [][]padic.Element
	builder *operator.Builder
}

func newSession(cmd *cobra.Command) *session {
	cfg := readConfig(cmd)
	//
	src, err := tables.Load(cfg.Tables)
	exitOnError(err)
	//
	r, err := cfg.Ring(src.Prime())
	exitOnError(err)
	//
	weight, values, err := src.Classical(r)
	exitOnError(err)
	//
	acfg, err := cfg.ActionFor(weight)
	exitOnError(err)
	//
	act, err := action.New(acfg)
	exitOnError(err)
	//
	log.Debugf("loaded %s over %s in weight %d", src.Name(), r, weight)
	//
	return &session{cfg, src, r, weight, values, operator.NewBuilder(src, act, source.RingEmbedding{Ring: r})}
}

// Open the configured store, if there is one.
func (s *session) openStore() (*store.Store, bool, error) {
	scfg, ok := s.config.StoreFor()
	if !ok {
		return nil, false, nil
	}
	//
	st, err := store.Open(scfg)
	if err != nil {
		return nil, false, err
	}
	//
	return st, true, nil
}

// Read a previously stored form.
func (s *session) readForm(id string) form.Form {
	f, err := s.loadForm(id)
	exitOnError(err)
	//
	return f
}

// Load a form from the store.  The store is closed before returning, hence
// before any error is reported.
func (s *session) loadForm(id string) (f form.Form, err error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return form.Form{}, err
	}
	//
	st, ok, err := s.openStore()
	if err != nil {
		return form.Form{}, err
	} else if !ok {
		return form.Form{}, errors.New("no store configured (use --store)")
	}
	//
	defer func() { err = errors.Join(err, st.Close()) }()
	//
	e, err := st.Get(uid)
	if err != nil {
		return form.Form{}, err
	} else if e.Tables != s.tables.Name() {
		return form.Form{}, fmt.Errorf("run %s was computed over %s, not %s", id, e.Tables, s.tables.Name())
	}
	//
	return form.FromRecord(s.tables, s.ring, e.Form)
}

// Persist a form in the configured store, if there is one.
func (s *session) writeForm(kind string, f form.Form) {
	id, err := s.storeForm(kind, f)
	exitOnError(err)
	//
	if id != uuid.Nil {
		log.Infof("stored %s as %s", kind, id)
	}
}

// Store a form, returning uuid.Nil when no store is configured.
func (s *session) storeForm(kind string, f form.Form) (id uuid.UUID, err error) {
	st, ok, err := s.openStore()
	if err != nil || !ok {
		return uuid.Nil, err
	}
	//
	defer func() { err = errors.Join(err, st.Close()) }()
	//
	return st.Put(store.Entry{Tables: s.tables.Name(), Kind: kind, Precision: s.config.Precision, Form: f.Record()})
}

// Write a result, either for humans (on a terminal) or as JSON.
func printResult(cmd *cobra.Command, result any, text func() string) {
	if !GetFlag(cmd, "json") && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(text())
		return
	}
	//
	bytes, err := json.MarshalIndent(result, "", "  ")
	exitOnError(err)
	//
	fmt.Println(string(bytes))
}

func printForm(cmd *cobra.Command, f form.Form) {
	printResult(cmd, f.Record(), func() string {
		var b strings.Builder
		//
		fmt.Fprintf(&b, "weight %d over %s\n", f.Weight(), f.Ring())
		//
		for i, v := range f.Values() {
			fmt.Fprintf(&b, "%4d: %s\n", i, v)
		}
		//
		return strings.TrimSuffix(b.String(), "\n")
	})
}

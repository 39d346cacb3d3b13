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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-padic/pkg/config"
	"github.com/consensys/go-padic/pkg/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] [run]",
	Short: "Show the contents of the result store.",
	Long: `List the runs held in the result store, or show the symbol stored
	for a given run.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := config.Default()
		//
		if filename := GetString(cmd, "config"); filename != "" {
			var err error
			cfg, err = config.Load(filename)
			exitOnError(err)
		}
		//
		if cmd.Flags().Changed("store") {
			cfg.Store.Path = GetString(cmd, "store")
		}
		//
		scfg, ok := cfg.StoreFor()
		if !ok || scfg.InMemory {
			exitOnError(fmt.Errorf("no persistent store configured (use --store)"))
		}
		//
		st, err := store.Open(scfg)
		exitOnError(err)
		//
		result, text, err := lookup(st, args)
		// Close before reporting, since exiting skips deferred calls
		exitOnError(errors.Join(err, st.Close()))
		//
		printResult(cmd, result, text)
	},
}

// Look up either every entry of the store or the one named by args.
func lookup(st *store.Store, args []string) (any, func() string, error) {
	if len(args) == 0 {
		entries, err := st.List()
		if err != nil {
			return nil, nil, err
		}
		//
		return entries, func() string {
			var b strings.Builder
			//
			for _, e := range entries {
				b.WriteString(entryLine(e))
				b.WriteString("\n")
			}
			//
			return strings.TrimSuffix(b.String(), "\n")
		}, nil
	}
	//
	id, err := uuid.Parse(args[0])
	if err != nil {
		return nil, nil, err
	}
	//
	e, err := st.Get(id)
	if err != nil {
		return nil, nil, err
	}
	//
	return e, func() string { return entryLine(e) }, nil
}

func entryLine(e store.Entry) string {
	return fmt.Sprintf("%s  %-6s  %-16s  Q_%d  k=%d  prec=%d  %s", e.ID, e.Kind, e.Tables, e.Form.Prime,
		e.Form.Weight, e.Precision, e.Created.Format("2006-01-02 15:04:05"))
}

func init() {
	rootCmd.AddCommand(showCmd)
}

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
	"testing"

	"github.com/consensys/go-padic/pkg/config"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/source/tables"
	"github.com/consensys/go-padic/pkg/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diracFile = "../../testdata/tables/dirac.yaml"

func Test_Session_00(t *testing.T) {
	s := testSession(t, t.TempDir())
	f := testForm(t, s)
	//
	id, err := s.storeForm("lift", f)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	//
	g, err := s.loadForm(id.String())
	require.NoError(t, err)
	assert.True(t, g.Equal(f))
	// A failed lookup still releases the directory lock
	_, err = s.loadForm(uuid.New().String())
	assert.True(t, errors.Is(err, store.ErrNotFound))
	_, err = s.storeForm("hecke", f)
	require.NoError(t, err)
	//
	_, err = s.loadForm("not-a-uuid")
	assert.Error(t, err)
	_, err = s.storeForm("hecke", f)
	require.NoError(t, err)
}

func Test_Session_01(t *testing.T) {
	s := testSession(t, "")
	f := testForm(t, s)
	// Nothing is persisted without a store
	id, err := s.storeForm("lift", f)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
	//
	_, err = s.loadForm(uuid.New().String())
	assert.Error(t, err)
}

func Test_Lookup_00(t *testing.T) {
	dir := t.TempDir()
	s := testSession(t, dir)
	//
	id, err := s.storeForm("lift", testForm(t, s))
	require.NoError(t, err)
	//
	st, err := store.Open(store.Config{Path: dir})
	require.NoError(t, err)
	//
	defer st.Close()
	//
	all, text, err := lookup(st, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, text(), id.String())
	//
	one, _, err := lookup(st, []string{id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, one.(store.Entry).ID)
	//
	_, _, err = lookup(st, []string{uuid.New().String()})
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func testSession(t *testing.T, path string) *session {
	cfg := config.Default()
	cfg.Store.Path = path
	//
	src, err := tables.Load(diracFile)
	require.NoError(t, err)
	//
	r, err := cfg.Ring(src.Prime())
	require.NoError(t, err)
	//
	weight, values, err := src.Classical(r)
	require.NoError(t, err)
	//
	return &session{config: cfg, tables: src, ring: r, weight: weight, values: values}
}

func testForm(t *testing.T, s *session) form.Form {
	f, err := form.Classical(s.tables, s.weight, s.values, 4, s.config.Precision)
	require.NoError(t, err)
	//
	return f
}

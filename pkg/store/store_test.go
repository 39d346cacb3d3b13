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
package store

import (
	"errors"
	"testing"

	"github.com/consensys/go-padic/pkg/dist"
	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source/tables"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_00(t *testing.T) {
	s := openStore(t)
	f := diracForm(t)
	//
	id, err := s.Put(Entry{Tables: "dirac-5", Kind: "lift", Precision: 10, Form: f.Record()})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	//
	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, "lift", e.Kind)
	assert.False(t, e.Created.IsZero())
	//
	g, err := form.FromRecord(f.Source(), f.Ring(), e.Form)
	require.NoError(t, err)
	assert.True(t, f.Equal(g))
}

func Test_Store_01(t *testing.T) {
	s := openStore(t)
	f := diracForm(t)
	ids := make(map[uuid.UUID]bool)
	//
	for i := 0; i < 3; i++ {
		id, err := s.Put(Entry{Tables: "dirac-5", Kind: "hecke", Form: f.Record()})
		require.NoError(t, err)
		//
		ids[id] = true
	}
	//
	entries, err := s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	//
	for _, e := range entries {
		assert.True(t, ids[e.ID])
	}
	// Overwrite
	id := entries[0].ID
	_, err = s.Put(Entry{ID: id, Kind: "lift", Form: f.Record()})
	require.NoError(t, err)
	//
	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "lift", e.Kind)
	//
	entries, err = s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func Test_Store_02(t *testing.T) {
	s := openStore(t)
	//
	id, err := s.Put(Entry{Kind: "lift", Form: diracForm(t).Record()})
	require.NoError(t, err)
	require.NoError(t, s.Delete(id))
	//
	_, err = s.Get(id)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(s.Delete(id), ErrNotFound))
	//
	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func Test_Store_03(t *testing.T) {
	_, err := Open(Config{})
	assert.Error(t, err)
	// Persistent store survives reopening
	dir := t.TempDir()
	s, err := Open(Config{Path: dir, SyncWrites: true})
	require.NoError(t, err)
	//
	id, err := s.Put(Entry{Kind: "lift", Form: diracForm(t).Record()})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	//
	s, err = Open(Config{Path: dir})
	require.NoError(t, err)
	//
	defer s.Close()
	//
	e, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "lift", e.Kind)
}

func openStore(t *testing.T) *Store {
	s, err := Open(Config{InMemory: true})
	require.NoError(t, err)
	//
	t.Cleanup(func() { s.Close() })
	//
	return s
}

func diracForm(t *testing.T) form.Form {
	src, err := tables.Load("../../testdata/tables/dirac.yaml")
	require.NoError(t, err)
	//
	r := padic.MustRing(src.Prime(), 10)
	moments := []padic.Element{r.One(), r.FromInt64(7), r.FromInt64(49).Add(r.BigOh(3))}
	//
	f, err := form.New(src, []dist.Distribution{dist.New(0, moments), dist.Zero(r, 0, 3)})
	require.NoError(t, err)
	//
	return f
}

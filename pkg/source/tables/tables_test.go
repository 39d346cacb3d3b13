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
package tables

import (
	"math/big"
	"testing"

	"github.com/consensys/go-padic/pkg/matrix"
	"github.com/consensys/go-padic/pkg/padic"
	"github.com/consensys/go-padic/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	diracFile  = "../../../testdata/tables/dirac.yaml"
	mirrorFile = "../../../testdata/tables/mirror.yaml"
)

func Test_Tables_00(t *testing.T) {
	tab, err := Load(diracFile)
	require.NoError(t, err)
	//
	assert.Equal(t, "dirac-5", tab.Name())
	assert.Equal(t, uint64(5), tab.Prime())
	assert.Equal(t, 2, tab.NumIndices())
	assert.Equal(t, source.NormalizeNone, tab.Normalization())
	//
	up, err := tab.UpData()
	require.NoError(t, err)
	require.Len(t, up.Pieces, 1)
	assert.True(t, up.Pieces[0].Acter.Equal(matrix.NewRat(1, 2, 0, 5)))
	//
	t3, err := tab.HeckeData(3)
	require.NoError(t, err)
	assert.Len(t, t3.Pieces, 2)
	_, err = tab.HeckeData(7)
	assert.Error(t, err)
	//
	w5, err := tab.AtkinLehnerData(5)
	require.NoError(t, err)
	assert.Equal(t, 3, w5.Pieces[0].Corrections[1].Label)
}

func Test_Tables_01(t *testing.T) {
	tab, err := Load(diracFile)
	require.NoError(t, err)
	//
	c, err := tab.Reduce(matrix.NewRat(5, 2, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Label)
	assert.True(t, c.T.Equal(matrix.NewRat(5, -2, 0, 1)))
	//
	_, err = tab.Reduce(matrix.NewRat(25, 2, 0, 1))
	assert.Error(t, err)
	//
	balls, err := tab.Balls(matrix.IdentityRat(), 1)
	require.NoError(t, err)
	assert.Len(t, balls, 5)
	_, err = tab.Balls(matrix.IdentityRat(), 2)
	assert.Error(t, err)
	//
	r := padic.MustRing(5, 10)
	balls, err = tab.FindCovering(r.FromRat(big.NewRat(1, 5)), r.FromRat(big.NewRat(2, 5)))
	require.NoError(t, err)
	assert.Len(t, balls, 5)
	_, err = tab.FindCovering(r.FromRat(big.NewRat(2, 5)), r.FromRat(big.NewRat(1, 5)))
	assert.Error(t, err)
	//
	weight, values, err := tab.Classical(r)
	require.NoError(t, err)
	assert.Equal(t, 0, weight)
	assert.True(t, values[0][0].Equal(r.One()))
	assert.True(t, values[1][0].IsZero())
	//
	_, ok := tab.Tree()
	assert.False(t, ok)
	_, ok = tab.Manin()
	assert.False(t, ok)
}

func Test_Tables_02(t *testing.T) {
	tab, err := Parse([]byte(`
name: views
prime: 3
level: 2
indices: 2
tree:
  edge_reps: [["1", "0", "0", "1"], ["0", "1", "3", "0"]]
  stabilizers:
    - [{element: ["1", "0", "0", "1"], nontrivial: false}]
    - [{element: ["-1", "0", "0", "-1"], nontrivial: true}]
manin:
  generators: [0, 1]
  torsion: {1: 2}
  gammas: {1: ["1", "1", "0", "1"]}
`))
	require.NoError(t, err)
	//
	tree, ok := tab.Tree()
	require.True(t, ok)
	rep, err := tree.EdgeRep(1)
	require.NoError(t, err)
	assert.True(t, rep.Equal(matrix.NewRat(0, 1, 3, 0)))
	stabs, err := tree.Stabilizers(1)
	require.NoError(t, err)
	assert.True(t, stabs[0].Nontrivial)
	_, err = tree.EdgeRep(2)
	assert.Error(t, err)
	// Edge representatives double as index representatives
	rep, err = tab.Representative(1)
	require.NoError(t, err)
	assert.True(t, rep.Equal(matrix.NewRat(0, 1, 3, 0)))
	//
	manin, ok := tab.Manin()
	require.True(t, ok)
	assert.Equal(t, []int{0, 1}, manin.Generators())
	assert.Equal(t, source.TorsionTwo, manin.Torsion(1))
	assert.Equal(t, source.TorsionFree, manin.Torsion(0))
	assert.True(t, manin.Gamma(1).Equal(matrix.NewRat(1, 1, 0, 1)))
	assert.True(t, manin.Gamma(0).Equal(matrix.IdentityRat()))
	// No U_p data given
	_, err = tab.UpData()
	assert.Error(t, err)
}

func Test_Tables_03(t *testing.T) {
	invalid := []string{
		// missing prime
		"name: x\nlevel: 1\nindices: 1\n",
		// label out of range
		"name: x\nprime: 5\nlevel: 1\nindices: 1\nup:\n  - acter: [\"1\",\"0\",\"0\",\"5\"]\n" +
			"    corrections: [{label: 2, t: [\"1\",\"0\",\"0\",\"1\"]}]\n",
		// wrong number of corrections
		"name: x\nprime: 5\nlevel: 1\nindices: 2\nup:\n  - acter: [\"1\",\"0\",\"0\",\"5\"]\n" +
			"    corrections: [{label: 0, t: [\"1\",\"0\",\"0\",\"1\"]}]\n",
		// malformed matrix
		"name: x\nprime: 5\nlevel: 1\nindices: 1\nup:\n  - acter: [\"1\",\"0\",\"5\"]\n" +
			"    corrections: [{label: 0, t: [\"1\",\"0\",\"0\",\"1\"]}]\n",
		// bad rational
		"name: x\nprime: 5\nlevel: 1\nindices: 1\nup:\n  - acter: [\"1\",\"z\",\"0\",\"5\"]\n" +
			"    corrections: [{label: 0, t: [\"1\",\"0\",\"0\",\"1\"]}]\n",
		// classical value of wrong weight
		"name: x\nprime: 5\nlevel: 1\nindices: 1\nclassical:\n  weight: 1\n  values: [[\"1\"]]\n",
		// bad torsion order
		"name: x\nprime: 5\nlevel: 1\nindices: 1\nmanin:\n  generators: [0]\n  torsion: {0: 4}\n",
		// too few representatives
		"name: x\nprime: 5\nlevel: 1\nindices: 2\nrepresentatives: [[\"1\",\"0\",\"0\",\"1\"]]\n",
	}
	//
	for i, text := range invalid {
		_, err := Parse([]byte(text))
		assert.Error(t, err, "case %d", i)
	}
}

func Test_Tables_04(t *testing.T) {
	tab, err := Load(mirrorFile)
	require.NoError(t, err)
	//
	rep, err := tab.Representative(1)
	require.NoError(t, err)
	assert.True(t, rep.Equal(matrix.NewRat(5, 0, 0, 1)))
	_, err = tab.Representative(2)
	assert.Error(t, err)
	//
	c, err := tab.Reduce(matrix.NewRat(1, 0, 0, -1).Mul(rep))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Label)
	// No tree and no explicit representatives
	tab, err = Load(diracFile)
	require.NoError(t, err)
	_, err = tab.Representative(0)
	assert.ErrorIs(t, err, source.ErrNoData)
}

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
package lift

import (
	"context"
	"fmt"

	"github.com/consensys/go-padic/pkg/form"
	"github.com/consensys/go-padic/pkg/operator"
	"github.com/consensys/go-padic/pkg/padic"
	"golang.org/x/sync/errgroup"
)

// Lift naively lifts classical values to d moments, and then improves the
// result until it is fixed by U_p modulo p^target.
func Lift(b *operator.Builder, weight int, classical [][]padic.Element, d int, target int) (form.Form, error) {
	naive, err := Naive(b, weight, classical, d, target)
	if err != nil {
		return form.Form{}, err
	}
	//
	l := NewLifter(b, naive, target)
	//
	if err := l.Improve(); err != nil {
		return form.Form{}, err
	}
	//
	return l.Form(), nil
}

// LiftAll improves several naive lifts concurrently, with at most limit
// running at once (no limit if limit <= 0).  Lifts are independent and only
// share the read-only data of the builder.
func LiftAll(ctx context.Context, b *operator.Builder, naive []form.Form, target int, limit int) ([]form.Form, error) {
	lifts := make([]form.Form, len(naive))
	g, ctx := errgroup.WithContext(ctx)
	//
	if limit > 0 {
		g.SetLimit(limit)
	}
	//
	for i, f := range naive {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			//
			l := NewLifter(b, f, target)
			if err := l.Improve(); err != nil {
				return fmt.Errorf("lift %d: %w", i, err)
			}
			//
			lifts[i] = l.Form()
			//
			return nil
		})
	}
	//
	if err := g.Wait(); err != nil {
		return nil, err
	}
	//
	return lifts, nil
}

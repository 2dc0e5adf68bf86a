// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package weld_test

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/val3d/internal/weld"
)

func TestPool_WeldsWithinTolerance(t *testing.T) {
	p := weld.NewPool(0.001)

	a := p.Add(r3.Vector{X: 1, Y: 2, Z: 3})
	b := p.Add(r3.Vector{X: 1.0005, Y: 2, Z: 3})
	c := p.Add(r3.Vector{X: 1.002, Y: 2, Z: 3})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, p.Point(a))
}

func TestPool_Idempotent(t *testing.T) {
	p := weld.NewPool(0.01)

	pts := []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 5}}
	idx := make([]int, len(pts))
	for i, v := range pts {
		idx[i] = p.Add(v)
	}

	for i, v := range pts {
		assert.Equal(t, idx[i], p.Add(v))
	}

	assert.Equal(t, len(pts), p.Len())
}

func TestPool_ZeroTolerance(t *testing.T) {
	p := weld.NewPool(0)

	a := p.Add(r3.Vector{X: 1, Y: 1, Z: 1})
	b := p.Add(r3.Vector{X: 1, Y: 1, Z: 1})
	c := p.Add(r3.Vector{X: 1, Y: 1, Z: 1.0000001})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestPool_NearestWins(t *testing.T) {
	p := weld.NewPool(0.1)

	a := p.Add(r3.Vector{X: 0, Y: 0, Z: 0})
	b := p.Add(r3.Vector{X: 0.15, Y: 0, Z: 0})

	require.NotEqual(t, a, b)
	assert.Equal(t, b, p.Add(r3.Vector{X: 0.09, Y: 0, Z: 0}))
	assert.Equal(t, a, p.Add(r3.Vector{X: 0.05, Y: 0, Z: 0}))
}

func TestPool_Find(t *testing.T) {
	p := weld.NewPool(0.001)
	p.Add(r3.Vector{X: 10, Y: 10, Z: 10})

	i, ok := p.Find(r3.Vector{X: 10.4, Y: 10, Z: 10}, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = p.Find(r3.Vector{X: 10.4, Y: 10, Z: 10}, 0.1)
	assert.False(t, ok)
}

// the index must agree with a linear scan
func TestPool_MatchesLinearScan(t *testing.T) {
	const tol = 0.05

	rnd := rand.New(rand.NewSource(42))
	p := weld.NewPool(tol)

	var stored []r3.Vector
	for k := 0; k < 2000; k++ {
		v := r3.Vector{X: rnd.Float64() * 2, Y: rnd.Float64() * 2, Z: rnd.Float64() * 2}

		want := -1
		bestDist := 0.0
		for i, s := range stored {
			d := s.Distance(v)
			if d <= tol && (want < 0 || d < bestDist) {
				want, bestDist = i, d
			}
		}

		got := p.Add(v)
		if want < 0 {
			want = len(stored)
			stored = append(stored, v)
		}

		require.Equal(t, want, got)
	}

	assert.Equal(t, len(stored), p.Len())
}

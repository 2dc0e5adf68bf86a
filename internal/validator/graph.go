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

package validator

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// newGraph creates an undirected graph holding the nodes ids.
func newGraph(ids []int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for _, id := range ids {
		if g.Node(int64(id)) == nil {
			g.AddNode(simple.Node(id))
		}
	}

	return g
}

// link joins a and b; it returns false when they were already connected.
func link(g *simple.UndirectedGraph, a, b int) bool {
	if a == b || topo.PathExistsIn(g, simple.Node(a), simple.Node(b)) {
		return false
	}

	g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))

	return true
}

// join adds an edge between a and b, if distinct.
func join(g *simple.UndirectedGraph, a, b int) {
	if a != b {
		g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
	}
}

// components counts the connected components of g.
func components(g *simple.UndirectedGraph) int {
	return len(topo.ConnectedComponents(g))
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

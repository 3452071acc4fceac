// MIT License
//
// Copyright (c) 2024-2026 Troupe Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// supervisionTree tracks an actor's position in the supervision graph.
// Both directions are recorded: the parents watching this actor and
// the children this actor watches. Membership is set semantics, so
// linking the same pair twice is a no-op.
type supervisionTree struct {
	parents  mapset.Set[*ActorCell]
	children mapset.Set[*ActorCell]
}

func newSupervisionTree() *supervisionTree {
	return &supervisionTree{
		parents:  mapset.NewSet[*ActorCell](),
		children: mapset.NewSet[*ActorCell](),
	}
}

func (t *supervisionTree) insertParent(parent *ActorCell) {
	t.parents.Add(parent)
}

func (t *supervisionTree) removeParent(parent *ActorCell) {
	t.parents.Remove(parent)
}

func (t *supervisionTree) insertChild(child *ActorCell) {
	t.children.Add(child)
}

func (t *supervisionTree) removeChild(child *ActorCell) {
	t.children.Remove(child)
}

// parentsSlice snapshots the current parents.
func (t *supervisionTree) parentsSlice() []*ActorCell {
	return t.parents.ToSlice()
}

// childrenSlice snapshots the current children.
func (t *supervisionTree) childrenSlice() []*ActorCell {
	return t.children.ToSlice()
}

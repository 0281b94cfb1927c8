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
package graph

import (
	"fmt"
	"slices"

	"github.com/consensys/go-bcedit/pkg/insn"
)

type node struct {
	insn insn.Instruction
	prev *node
	next *node
}

// Graph is the canonical ordered instruction sequence of a method body.  It is
// a doubly linked list over instruction identities, with an index from each
// identity to its node.  The graph is the sole owner of its length: every
// mutation maintains it, such that Len() always matches the number of
// reachable nodes.  No attempt is made to maintain jump integrity during
// mutation; see Dangling().
//
// A graph is not safe for concurrent use.  Snapshot() should be used to hand
// the contents of a graph to another goroutine.
type Graph struct {
	head  *node
	tail  *node
	nodes map[insn.Instruction]*node
	// Number of nodes reachable from head.
	length int
	// Incremented on every successful mutation.
	version uint64
	// Positional cache, valid when cacheVersion == version.
	order        []insn.Instruction
	positions    map[insn.Instruction]int
	cacheVersion uint64
	cacheValid   bool
}

// New constructs a graph holding the given instructions in order.  This panics
// if the same instruction identity is given twice.
func New(insns ...insn.Instruction) *Graph {
	g := &Graph{nodes: make(map[insn.Instruction]*node)}
	//
	if err := g.Append(insns...); err != nil {
		panic(err.Error())
	}
	// Construction is not a mutation as far as observers are concerned.
	g.version = 0
	g.cacheValid = false
	//
	return g
}

// Len returns the number of instructions in the graph.
func (g *Graph) Len() int {
	return g.length
}

// Version returns the current version of the graph.  This is incremented by
// every successful mutation, and allows results computed against an earlier
// version to be recognised as stale.
func (g *Graph) Version() uint64 {
	return g.version
}

// Contains checks whether a given instruction identity is in the graph.
func (g *Graph) Contains(i insn.Instruction) bool {
	_, ok := g.nodes[i]
	return ok
}

// First returns the first instruction, or nil if the graph is empty.
func (g *Graph) First() insn.Instruction {
	if g.head == nil {
		return nil
	}
	//
	return g.head.insn
}

// Last returns the last instruction, or nil if the graph is empty.
func (g *Graph) Last() insn.Instruction {
	if g.tail == nil {
		return nil
	}
	//
	return g.tail.insn
}

// Next returns the instruction immediately following a given instruction, or
// nil if there is none (or the given instruction is not in the graph).
func (g *Graph) Next(i insn.Instruction) insn.Instruction {
	if n, ok := g.nodes[i]; ok && n.next != nil {
		return n.next.insn
	}
	//
	return nil
}

// Prev returns the instruction immediately preceding a given instruction, or
// nil if there is none (or the given instruction is not in the graph).
func (g *Graph) Prev(i insn.Instruction) insn.Instruction {
	if n, ok := g.nodes[i]; ok && n.prev != nil {
		return n.prev.insn
	}
	//
	return nil
}

// IndexOf returns the position of a given instruction, or -1 if it is not in
// the graph.
func (g *Graph) IndexOf(i insn.Instruction) int {
	g.refresh()
	//
	if index, ok := g.positions[i]; ok {
		return index
	}
	//
	return -1
}

// At returns the instruction at a given position.  This panics if the position
// is out of bounds.
func (g *Graph) At(index int) insn.Instruction {
	g.refresh()
	//
	if index < 0 || index >= len(g.order) {
		panic(fmt.Sprintf("index %d out of bounds (length %d)", index, len(g.order)))
	}
	//
	return g.order[index]
}

// ToList returns the instructions of the graph in order.  The returned slice is
// owned by the caller.
func (g *Graph) ToList() []insn.Instruction {
	g.refresh()
	//
	return slices.Clone(g.order)
}

// InsertAfter inserts one or more instructions immediately after a given
// anchor, preserving their order.  A nil anchor inserts at the front.  If the
// anchor is not a member, or any of the instructions is already a member, the
// graph is left unchanged and an error is returned.
func (g *Graph) InsertAfter(anchor insn.Instruction, insns ...insn.Instruction) error {
	var prev *node
	//
	if anchor != nil {
		n, ok := g.nodes[anchor]
		if !ok {
			return fmt.Errorf("anchor %v: %w", anchor, ErrNotFound)
		}
		//
		prev = n
	}
	//
	return g.insertAt(prev, insns)
}

// InsertBefore inserts one or more instructions immediately before a given
// anchor, preserving their order.  A nil anchor inserts at the end.  Failure
// conditions are as for InsertAfter.
func (g *Graph) InsertBefore(anchor insn.Instruction, insns ...insn.Instruction) error {
	prev := g.tail
	//
	if anchor != nil {
		n, ok := g.nodes[anchor]
		if !ok {
			return fmt.Errorf("anchor %v: %w", anchor, ErrNotFound)
		}
		//
		prev = n.prev
	}
	//
	return g.insertAt(prev, insns)
}

// Append inserts one or more instructions at the end of the graph.
func (g *Graph) Append(insns ...insn.Instruction) error {
	return g.insertAt(g.tail, insns)
}

// Insert a sequence of instructions after a given node (or at the front when
// prev is nil).
func (g *Graph) insertAt(prev *node, insns []insn.Instruction) error {
	if err := g.checkFresh(insns); err != nil {
		return err
	} else if len(insns) == 0 {
		return nil
	}
	// Build the run
	var first, last *node
	//
	for _, i := range insns {
		n := &node{insn: i, prev: last}
		//
		if last == nil {
			first = n
		} else {
			last.next = n
		}
		//
		last = n
		g.nodes[i] = n
	}
	//
	g.link(prev, first, last)
	g.length += len(insns)
	g.touch()
	//
	return nil
}

// Check none of the given instructions are nil, already present, or repeated.
func (g *Graph) checkFresh(insns []insn.Instruction) error {
	seen := make(map[insn.Instruction]bool, len(insns))
	//
	for _, i := range insns {
		if i == nil {
			return fmt.Errorf("cannot insert nil instruction")
		} else if _, ok := g.nodes[i]; ok || seen[i] {
			return fmt.Errorf("%v: %w", i, ErrDuplicate)
		}
		//
		seen[i] = true
	}
	//
	return nil
}

// Remove detaches the given instructions from the graph.  Instructions which are
// not members are reported as structural errors, but do not prevent the
// remainder from being removed.  The instructions removed are grouped into
// maximal contiguous runs, each of which is unlinked in one step.  The relative
// order of the remaining instructions is unchanged.
func (g *Graph) Remove(insns ...insn.Instruction) []error {
	var (
		errs    []error
		members []int
		seen    = make(map[insn.Instruction]bool)
	)
	//
	g.refresh()
	//
	for _, i := range insns {
		if seen[i] {
			continue
		} else if index, ok := g.positions[i]; !ok {
			errs = append(errs, &StructuralError{Kind: NOT_FOUND, Insn: i})
		} else {
			members = append(members, index)
		}
		//
		seen[i] = true
	}
	//
	if len(members) == 0 {
		return errs
	}
	//
	slices.Sort(members)
	// Unlink each maximal contiguous run
	for start := 0; start < len(members); {
		end := start
		for end+1 < len(members) && members[end+1] == members[end]+1 {
			end++
		}
		//
		g.unlinkRun(g.nodes[g.order[members[start]]], g.nodes[g.order[members[end]]])
		start = end + 1
	}
	//
	for _, index := range members {
		delete(g.nodes, g.order[index])
	}
	//
	g.length -= len(members)
	g.touch()
	//
	return errs
}

// MoveBefore relocates an instruction so that it immediately precedes a given
// anchor.  Both must be members, and must be distinct.
func (g *Graph) MoveBefore(i insn.Instruction, anchor insn.Instruction) error {
	n, a, err := g.moveNodes(i, anchor)
	//
	if err != nil {
		return err
	} else if a.prev == n {
		return nil
	}
	//
	g.unlinkRun(n, n)
	g.link(a.prev, n, n)
	g.touch()
	//
	return nil
}

// MoveAfter relocates an instruction so that it immediately follows a given
// anchor.  Both must be members, and must be distinct.
func (g *Graph) MoveAfter(i insn.Instruction, anchor insn.Instruction) error {
	n, a, err := g.moveNodes(i, anchor)
	//
	if err != nil {
		return err
	} else if a.next == n {
		return nil
	}
	//
	g.unlinkRun(n, n)
	g.link(a, n, n)
	g.touch()
	//
	return nil
}

func (g *Graph) moveNodes(i insn.Instruction, anchor insn.Instruction) (*node, *node, error) {
	n, ok := g.nodes[i]
	//
	if !ok {
		return nil, nil, fmt.Errorf("%v: %w", i, ErrNotFound)
	}
	//
	a, ok := g.nodes[anchor]
	//
	if !ok {
		return nil, nil, fmt.Errorf("anchor %v: %w", anchor, ErrNotFound)
	} else if n == a {
		return nil, nil, fmt.Errorf("cannot move %v relative to itself", i)
	}
	//
	return n, a, nil
}

// Dangling returns a structural error for every label reference (from a jump,
// switch or line marker) to a label which is not a member of the graph.  This
// is purely diagnostic; dangling references are permitted.
func (g *Graph) Dangling() []*StructuralError {
	var errs []*StructuralError
	//
	for n := g.head; n != nil; n = n.next {
		for _, target := range n.insn.Targets() {
			if target == nil || !g.Contains(target) {
				errs = append(errs, &StructuralError{Kind: DANGLING_TARGET, Insn: n.insn, Target: target})
			}
		}
	}
	//
	return errs
}

// Link the run first..last in after prev (or at the front when prev is nil).
func (g *Graph) link(prev *node, first *node, last *node) {
	var next *node
	//
	if prev == nil {
		next = g.head
		g.head = first
	} else {
		next = prev.next
		prev.next = first
	}
	//
	first.prev = prev
	last.next = next
	//
	if next == nil {
		g.tail = last
	} else {
		next.prev = last
	}
}

// Unlink the run first..last, leaving its internal links intact.
func (g *Graph) unlinkRun(first *node, last *node) {
	if first.prev == nil {
		g.head = last.next
	} else {
		first.prev.next = last.next
	}
	//
	if last.next == nil {
		g.tail = first.prev
	} else {
		last.next.prev = first.prev
	}
	//
	first.prev = nil
	last.next = nil
}

func (g *Graph) touch() {
	g.version++
}

// Rebuild the positional cache if the graph has changed since it was last
// built.
func (g *Graph) refresh() {
	if g.cacheValid && g.cacheVersion == g.version {
		return
	}
	//
	g.order = make([]insn.Instruction, 0, g.length)
	g.positions = make(map[insn.Instruction]int, g.length)
	//
	for n := g.head; n != nil; n = n.next {
		g.positions[n.insn] = len(g.order)
		g.order = append(g.order, n.insn)
	}
	//
	g.cacheVersion = g.version
	g.cacheValid = true
}

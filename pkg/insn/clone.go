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
package insn

// Clone produces an independent copy of a given instruction.  Label references
// are rewritten through the given map, whilst references to labels not in the
// map are preserved as is.  Cloning a label itself yields its mapped label, or a
// fresh one when it is not mapped.
func Clone(insn Instruction, labels map[*Label]*Label) Instruction {
	return insn.clone(func(l *Label) *Label {
		if nl, ok := labels[l]; ok {
			return nl
		}
		//
		return l
	})
}

// CloneAll produces an independent copy of a sequence of instructions.  Every
// label defined within the sequence is replaced by a fresh label, and all
// references to it are retargeted accordingly.  References to labels defined
// outside the sequence are preserved.
func CloneAll(insns []Instruction) []Instruction {
	nInsns, _ := CloneAllWithMap(insns)
	return nInsns
}

// CloneAllWithMap is as for CloneAll, but additionally returns the mapping from
// the original labels defined in the sequence to their clones.
func CloneAllWithMap(insns []Instruction) ([]Instruction, map[*Label]*Label) {
	var (
		labels = LabelMap(insns)
		nInsns = make([]Instruction, len(insns))
	)
	//
	for i, insn := range insns {
		nInsns[i] = Clone(insn, labels)
	}
	//
	return nInsns, labels
}

// LabelMap allocates a fresh label for every label defined within the given
// sequence.
func LabelMap(insns []Instruction) map[*Label]*Label {
	labels := make(map[*Label]*Label)
	//
	for _, insn := range insns {
		if l, ok := insn.(*Label); ok {
			labels[l] = NewLabel()
		}
	}
	//
	return labels
}

// ExternalTargets returns the labels referenced by instructions in the given
// sequence which are not themselves defined within the sequence, in order of
// first reference.
func ExternalTargets(insns []Instruction) []*Label {
	var (
		defined = make(map[*Label]bool)
		seen    = make(map[*Label]bool)
		targets []*Label
	)
	//
	for _, insn := range insns {
		if l, ok := insn.(*Label); ok {
			defined[l] = true
		}
	}
	//
	for _, insn := range insns {
		for _, l := range insn.Targets() {
			if l != nil && !defined[l] && !seen[l] {
				seen[l] = true
				targets = append(targets, l)
			}
		}
	}
	//
	return targets
}

// Equal checks whether two instructions have equal operands, where label
// references must be identical.
func Equal(a, b Instruction) bool {
	return a.equals(b, func(x, y *Label) bool { return x == y })
}

// StructurallyEqual checks whether two sequences are equal up to a renaming of
// the labels defined within them.  That is, labels defined at the same position
// in both sequences are considered equivalent, and references to them must
// correspond.  References to labels not defined in either sequence must be
// identical.
func StructurallyEqual(lhs, rhs []Instruction) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	var (
		fwd = make(map[*Label]*Label)
		bwd = make(map[*Label]*Label)
	)
	// Pair up defined labels
	for i := range lhs {
		l, lok := lhs[i].(*Label)
		r, rok := rhs[i].(*Label)
		//
		if lok != rok {
			return false
		} else if lok {
			fwd[l] = r
			bwd[r] = l
		}
	}
	//
	eq := func(x, y *Label) bool {
		if m, ok := fwd[x]; ok {
			return m == y
		} else if _, ok := bwd[y]; ok {
			return false
		}
		//
		return x == y
	}
	//
	for i := range lhs {
		if !lhs[i].equals(rhs[i], eq) {
			return false
		}
	}
	//
	return true
}

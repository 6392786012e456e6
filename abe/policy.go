/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abe

import "fmt"

// GateKind distinguishes the two threshold gates an inner PolicyValue node
// can represent. Leaves are not a GateKind - they are a distinct variant of
// PolicyValue, kept separate from gates so traversal stays exhaustive.
type GateKind int

const (
	// And requires every child to be satisfied; as a threshold gate it
	// is a (n, n) threshold over its n children.
	And GateKind = iota
	// Or requires at least one child to be satisfied; as a threshold
	// gate it is a (1, n) threshold over its n children.
	Or
)

func (k GateKind) String() string {
	if k == And {
		return "and"
	}
	return "or"
}

// PolicyValue is a polymorphic access-policy tree: either a Leaf naming a
// single attribute, or an Inner gate (And/Or) over two or more children.
// It is represented as a tagged variant rather than by subclassing so that
// traversal over it stays total: every function over PolicyValue switches
// on IsLeaf and never needs a type assertion.
type PolicyValue struct {
	leaf     bool
	name     string // valid iff leaf
	kind     GateKind
	children []*PolicyValue // valid iff !leaf, len >= 2
}

// NewLeaf returns a Leaf node naming attribute name. Fails with PolicyShape
// if name is empty.
func NewLeaf(name string) (*PolicyValue, error) {
	if name == "" {
		return nil, newErr(PolicyShape, "leaf attribute name must not be empty")
	}
	return &PolicyValue{leaf: true, name: name}, nil
}

// NewGate returns an Inner node of the given kind over children. Fails with
// PolicyShape if fewer than two children are given.
func NewGate(kind GateKind, children []*PolicyValue) (*PolicyValue, error) {
	if len(children) < 2 {
		return nil, newErr(PolicyShape, fmt.Sprintf("%s gate needs at least 2 children, got %d", kind, len(children)))
	}
	return &PolicyValue{leaf: false, kind: kind, children: children}, nil
}

// IsLeaf reports whether p is a Leaf node.
func (p *PolicyValue) IsLeaf() bool { return p.leaf }

// Name returns the attribute name of a Leaf node. Panics if p is not a
// Leaf; callers must check IsLeaf first, mirroring the exhaustive-switch
// discipline this type is meant to enforce.
func (p *PolicyValue) Name() string {
	if !p.leaf {
		panic("abe: Name called on a non-leaf PolicyValue")
	}
	return p.name
}

// Kind returns the gate kind of an Inner node. Panics if p is a Leaf.
func (p *PolicyValue) Kind() GateKind {
	if p.leaf {
		panic("abe: Kind called on a leaf PolicyValue")
	}
	return p.kind
}

// Children returns the child nodes of an Inner node. Panics if p is a Leaf.
func (p *PolicyValue) Children() []*PolicyValue {
	if p.leaf {
		panic("abe: Children called on a leaf PolicyValue")
	}
	return p.children
}

// Language selects one of the two concrete policy grammars.
type Language int

const (
	// JSONPolicy is the object-shaped grammar, e.g.
	// {"name": "or", "children": [{"name": "A"}, {"name": "B"}]}.
	JSONPolicy Language = iota
	// HumanPolicy is the infix boolean-expression grammar, e.g.
	// "A" or ("B" and "C").
	HumanPolicy
)

// Parse parses policy under the given Language into a PolicyValue tree.
func Parse(policy string, language Language) (*PolicyValue, error) {
	switch language {
	case JSONPolicy:
		return parseJSON(policy)
	case HumanPolicy:
		return parseHuman(policy)
	default:
		return nil, newErr(PolicyParse, fmt.Sprintf("unknown policy language %d", language))
	}
}

// Serialize renders a PolicyValue tree back into the given Language. Every
// inner node is parenthesized in HumanPolicy output, so mixed and/or nests
// round-trip unambiguously.
func Serialize(p *PolicyValue, language Language) string {
	switch language {
	case JSONPolicy:
		return serializeJSON(p)
	case HumanPolicy:
		return serializeHuman(p)
	default:
		return ""
	}
}

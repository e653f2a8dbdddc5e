// Copyright 2026 The parley Authors
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

package extension

import (
	"github.com/ortuman/parley/pkg/xmpp"
)

// Kind identifies an extension element by its local name and namespace.
// An empty Name matches any element qualified by Namespace.
type Kind struct {
	Name      string
	Namespace string
}

// String returns the "namespace#name" representation of k.
func (k Kind) String() string {
	return k.Namespace + "#" + k.Name
}

// Matches tells whether elem is of kind k.
func (k Kind) Matches(elem *xmpp.Element) bool {
	if elem == nil || elem.Namespace() != k.Namespace {
		return false
	}
	return len(k.Name) == 0 || elem.Name() == k.Name
}

// New returns an empty element of kind k.
func (k Kind) New() *xmpp.Element {
	return xmpp.NewElementNamespace(k.Name, k.Namespace)
}

// Type is the registered identifier of a concrete extension type.
type Type string

// Generic is the type of any element not present in the registry.
// Generic elements are still fully readable and writable.
const Generic Type = ""

// Entry binds a kind to its extension type.
type Entry struct {
	Kind Kind
	Type Type
}

// Registry resolves elements to registered extension types.
// It is immutable once created and safe for concurrent use.
type Registry struct {
	entries []Entry
	types   map[Type]Kind
}

// NewRegistry returns a registry built from entries.
// When more than one entry matches an element, the first one wins.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{
		entries: make([]Entry, len(entries)),
		types:   make(map[Type]Kind, len(entries)),
	}
	copy(r.entries, entries)
	for _, e := range entries {
		if _, ok := r.types[e.Type]; !ok {
			r.types[e.Type] = e.Kind
		}
	}
	return r
}

// TypeOf returns the type registered for elem, or Generic if none matches.
func (r *Registry) TypeOf(elem *xmpp.Element) Type {
	for _, e := range r.entries {
		if e.Kind.Matches(elem) {
			return e.Type
		}
	}
	return Generic
}

// KindOf returns the kind registered for type typ.
func (r *Registry) KindOf(typ Type) (Kind, bool) {
	k, ok := r.types[typ]
	return k, ok
}

// Entries returns a copy of the registry table.
func (r *Registry) Entries() []Entry {
	ret := make([]Entry, len(r.entries))
	copy(ret, r.entries)
	return ret
}

// Get returns the first child of parent resolving to type typ, or nil.
func (r *Registry) Get(parent *xmpp.Element, typ Type) *xmpp.Element {
	for _, child := range parent.Children() {
		if r.TypeOf(child) == typ {
			return child
		}
	}
	return nil
}

// All returns every child of parent resolving to type typ in document order.
func (r *Registry) All(parent *xmpp.Element, typ Type) []*xmpp.Element {
	var ret []*xmpp.Element
	for _, child := range parent.Children() {
		if r.TypeOf(child) == typ {
			ret = append(ret, child)
		}
	}
	return ret
}

// Get returns the first child of parent matching kind k, or nil.
func Get(parent *xmpp.Element, k Kind) *xmpp.Element {
	for _, child := range parent.Children() {
		if k.Matches(child) {
			return child
		}
	}
	return nil
}

// All returns every child of parent matching kind k in document order.
func All(parent *xmpp.Element, k Kind) []*xmpp.Element {
	var ret []*xmpp.Element
	for _, child := range parent.Children() {
		if k.Matches(child) {
			ret = append(ret, child)
		}
	}
	return ret
}

// Add appends ext to parent and returns it.
func Add(parent *xmpp.Element, ext *xmpp.Element) *xmpp.Element {
	return parent.AppendElement(ext)
}

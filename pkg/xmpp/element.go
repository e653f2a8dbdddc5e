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

package xmpp

import (
	"io"
	"strings"
)

// Attribute represents an XML node attribute (label=value).
type Attribute struct {
	Label string
	Value string
}

// Element represents a generic and mutable XML node element.
//
// An element holds either a text value or an ordered list of child elements, never both.
// Elements do not keep a reference to their parent.
type Element struct {
	name     string
	attrs    attributeSet
	text     string
	elements elementSet

	// namespace inherited from the enclosing element when parsed without 'xmlns'
	inheritedNS string
}

// NewElementName creates a mutable XML element instance with a given name.
func NewElementName(name string) *Element {
	return &Element{name: name}
}

// NewElementNamespace creates a mutable XML element instance with a given name and namespace.
func NewElementNamespace(name, namespace string) *Element {
	e := &Element{name: name}
	e.attrs.set(Namespace, namespace)
	return e
}

// Name returns XML node name.
func (e *Element) Name() string {
	return e.name
}

// Namespace returns element 'xmlns' attribute value, or the namespace inherited
// from its enclosing element when no 'xmlns' attribute has been set.
func (e *Element) Namespace() string {
	if ns := e.attrs.get(Namespace); len(ns) > 0 {
		return ns
	}
	return e.inheritedNS
}

// SetNamespace sets element 'xmlns' attribute.
func (e *Element) SetNamespace(ns string) *Element {
	return e.SetAttribute(Namespace, ns)
}

// Attribute returns the value of the attribute labeled as label.
// Returns an empty string if not present.
func (e *Element) Attribute(label string) string {
	return e.attrs.get(label)
}

// HasAttribute tells whether or not label attribute is present.
func (e *Element) HasAttribute(label string) bool {
	return e.attrs.index(label) != -1
}

// Attributes returns a copy of the element attributes in document order.
func (e *Element) Attributes() []Attribute {
	if len(e.attrs) == 0 {
		return nil
	}
	ret := make([]Attribute, len(e.attrs))
	copy(ret, e.attrs)
	return ret
}

// SetAttribute sets an attribute value, preserving its original position when already present.
func (e *Element) SetAttribute(label, value string) *Element {
	e.attrs.set(label, value)
	return e
}

// RemoveAttribute removes an element attribute.
func (e *Element) RemoveAttribute(label string) *Element {
	e.attrs.remove(label)
	return e
}

// ID returns 'id' node attribute.
func (e *Element) ID() string { return e.attrs.get(ID) }

// From returns 'from' node attribute.
func (e *Element) From() string { return e.attrs.get(From) }

// To returns 'to' node attribute.
func (e *Element) To() string { return e.attrs.get(To) }

// Type returns 'type' node attribute.
func (e *Element) Type() string { return e.attrs.get(Type) }

// Text returns XML node text value.
func (e *Element) Text() string {
	return e.text
}

// SetText sets element text value. Any previously appended child element is removed.
func (e *Element) SetText(text string) *Element {
	e.text = text
	if len(text) > 0 {
		e.elements = nil
	}
	return e
}

// AppendElement appends a new child element and returns it.
// Element text value is cleared.
func (e *Element) AppendElement(child *Element) *Element {
	if child == nil {
		return nil
	}
	e.text = ""
	e.elements = append(e.elements, child)
	return child
}

// AppendElements appends a set of child elements.
func (e *Element) AppendElements(children []*Element) *Element {
	for _, c := range children {
		e.AppendElement(c)
	}
	return e
}

// Children returns all element children in document order.
func (e *Element) Children() []*Element {
	return e.elements.all()
}

// ChildrenCount returns element children count.
func (e *Element) ChildrenCount() int {
	return len(e.elements)
}

// Child returns first child element named name.
func (e *Element) Child(name string) *Element {
	return e.elements.child(name)
}

// ChildNamespace returns first child element matching name and namespace.
func (e *Element) ChildNamespace(name, ns string) *Element {
	return e.elements.childNamespace(name, ns)
}

// ChildrenNamespace returns all child elements matching name and namespace.
func (e *Element) ChildrenNamespace(name, ns string) []*Element {
	return e.elements.childrenNamespace(name, ns)
}

// RemoveChildrenNamespace removes all child elements matching name and namespace.
func (e *Element) RemoveChildrenNamespace(name, ns string) *Element {
	e.elements.removeNamespace(name, ns)
	return e
}

// ClearChildren removes all element children.
func (e *Element) ClearChildren() *Element {
	e.elements = nil
	return e
}

// IsError returns true if element has a 'type' attribute of value 'error'.
func (e *Element) IsError() bool {
	return e.Type() == ErrorType
}

// Copy returns a deep copy of the element.
func (e *Element) Copy() *Element {
	cp := &Element{
		name:        e.name,
		text:        e.text,
		inheritedNS: e.inheritedNS,
	}
	if len(e.attrs) > 0 {
		cp.attrs = make(attributeSet, len(e.attrs))
		copy(cp.attrs, e.attrs)
	}
	if len(e.elements) > 0 {
		cp.elements = make(elementSet, 0, len(e.elements))
		for _, child := range e.elements {
			cp.elements = append(cp.elements, child.Copy())
		}
	}
	return cp
}

// String returns a string representation of the element.
func (e *Element) String() string {
	buf := &strings.Builder{}
	_ = e.ToXML(buf, true)
	return buf.String()
}

// ToXML serializes element to a raw XML representation.
// includeClosing determines if closing tag should be attached.
func (e *Element) ToXML(w io.Writer, includeClosing bool) error {
	sw := stickyWriter{w: w}
	sw.writeString("<")
	sw.writeString(e.name)

	for _, attr := range e.attrs {
		sw.writeString(" ")
		sw.writeString(attr.Label)
		sw.writeString(`="`)
		sw.writeString(attrEscaper.Replace(attr.Value))
		sw.writeString(`"`)
	}
	switch {
	case len(e.elements) > 0 || len(e.text) > 0:
		sw.writeString(">")
		if len(e.text) > 0 {
			sw.writeString(textEscaper.Replace(e.text))
		}
		for _, child := range e.elements {
			if sw.err != nil {
				break
			}
			sw.err = child.ToXML(sw.w, true)
		}
		if includeClosing {
			sw.writeString("</")
			sw.writeString(e.name)
			sw.writeString(">")
		}

	case includeClosing:
		sw.writeString("/>")

	default:
		sw.writeString(">")
	}
	return sw.err
}

// Equal reports whether two elements have the same name, attributes (in order), text and children.
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || a.text != b.text {
		return false
	}
	if len(a.attrs) != len(b.attrs) || len(a.elements) != len(b.elements) {
		return false
	}
	for i := range a.attrs {
		if a.attrs[i] != b.attrs[i] {
			return false
		}
	}
	for i := range a.elements {
		if !Equal(a.elements[i], b.elements[i]) {
			return false
		}
	}
	return true
}

// SetInheritedNamespace sets the namespace an element inherits from its enclosing element.
// It is not serialized.
func (e *Element) SetInheritedNamespace(ns string) {
	e.inheritedNS = ns
}

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
		"\n", "&#xA;",
		"\r", "&#xD;",
		"\t", "&#x9;",
	)
)

type stickyWriter struct {
	w   io.Writer
	err error
}

func (sw *stickyWriter) writeString(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}

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

package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ortuman/parley/pkg/xmpp"
)

const streamName = "stream:stream"

// readAhead is the amount of input xml.Decoder may buffer past the last consumed token.
const readAhead = 4096

// ParsingMode defines the way in which special parsed element
// should be considered or not according to the reader nature.
type ParsingMode int

const (
	// DefaultMode treats incoming elements as provided from raw byte reader.
	DefaultMode = ParsingMode(iota)

	// SocketStream treats incoming elements as provided from a socket transport.
	SocketStream
)

// ErrTooLargeStanza will be returned by Parse when the size of the incoming stanza is too large.
var ErrTooLargeStanza = errors.New("parser: too large stanza")

// ErrStreamClosedByPeer will be returned by Parse when stream closed element is parsed.
var ErrStreamClosedByPeer = errors.New("parser: stream closed by peer")

// TagKind identifies a tag event.
type TagKind int

const (
	// StartTag is an element opening tag.
	StartTag TagKind = iota

	// EndTag is an element closing tag.
	EndTag

	// TextTag is the character data found between tags.
	TextTag
)

// Tag is a single XML event read from the input.
type Tag struct {
	Kind       TagKind
	Name       string
	Attributes []xmpp.Attribute
	Text       string
}

// Liveness is notified about parser progress.
//
// Alive is invoked after every event boundary and Waiting right before the parser
// blocks waiting for more input bytes. The parser does not enforce any timeout by itself.
type Liveness interface {
	Alive()
	Waiting()
}

// Option configures a Parser.
type Option func(p *Parser)

// WithLiveness sets the liveness hook notified while parsing.
func WithLiveness(l Liveness) Option {
	return func(p *Parser) { p.liveness = l }
}

// Parser reads XML input tag by tag and assembles tags into elements.
type Parser struct {
	mode          ParsingMode
	dec           *xml.Decoder
	budget        *budgetReader
	liveness      Liveness
	maxStanzaSize int64
	streamNS      string

	// input offset of the top-level element being assembled
	rootOffset int64
}

// New creates a Parser instance reading from r.
func New(r io.Reader, mode ParsingMode, maxStanzaSize int, opts ...Option) *Parser {
	p := &Parser{
		mode:          mode,
		maxStanzaSize: int64(maxStanzaSize),
		rootOffset:    -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.budget = &budgetReader{r: r, limit: -1}
	r = p.budget
	if p.liveness != nil {
		r = &livenessReader{r: r, l: p.liveness}
	}
	p.dec = xml.NewDecoder(r)
	return p
}

// ReadTag blocks until the next start tag, end tag or text event is available.
// Returns io.EOF once the input is exhausted.
func (p *Parser) ReadTag() (Tag, error) {
	for {
		t, err := p.dec.RawToken()
		if err != nil {
			return Tag{}, err
		}
		if p.liveness != nil {
			p.liveness.Alive()
		}
		if p.rootOffset >= 0 && p.maxStanzaSize > 0 && p.dec.InputOffset()-p.rootOffset > p.maxStanzaSize {
			return Tag{}, ErrTooLargeStanza
		}
		switch tk := t.(type) {
		case xml.StartElement:
			tag := Tag{Kind: StartTag, Name: xmlName(tk.Name)}
			for _, a := range tk.Attr {
				tag.Attributes = append(tag.Attributes, xmpp.Attribute{Label: xmlName(a.Name), Value: a.Value})
			}
			return tag, nil

		case xml.EndElement:
			return Tag{Kind: EndTag, Name: xmlName(tk.Name)}, nil

		case xml.CharData:
			return Tag{Kind: TextTag, Text: string(tk)}, nil
		}
		// processing instructions, comments and directives are skipped
	}
}

// ReadElement consumes tags until the one matching start is closed, returning the assembled element.
func (p *Parser) ReadElement(start Tag) (*xmpp.Element, error) {
	if start.Kind != StartTag {
		return nil, fmt.Errorf("parser: unexpected tag kind %d", start.Kind)
	}
	return p.readElement(start, p.streamNS)
}

func (p *Parser) readElement(start Tag, parentNS string) (*xmpp.Element, error) {
	elem := xmpp.NewElementName(start.Name)
	for _, a := range start.Attributes {
		elem.SetAttribute(a.Label, a.Value)
	}
	elem.SetInheritedNamespace(parentNS)
	var text strings.Builder
	for {
		tag, err := p.ReadTag()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		switch tag.Kind {
		case TextTag:
			text.WriteString(tag.Text)

		case StartTag:
			child, err := p.readElement(tag, elem.Namespace())
			if err != nil {
				return nil, err
			}
			elem.AppendElement(child)

		case EndTag:
			if tag.Name != start.Name {
				return nil, errUnexpectedEnd(tag.Name)
			}
			if elem.ChildrenCount() == 0 {
				elem.SetText(text.String())
			}
			return elem, nil
		}
	}
}

// Parse returns the next top-level element available from the input.
//
// In SocketStream mode the stream header is returned as a childless element
// and ErrStreamClosedByPeer is returned once the stream closing tag is read.
func (p *Parser) Parse() (*xmpp.Element, error) {
	defer p.budget.unlimit()
	for {
		offset := p.dec.InputOffset()
		if p.maxStanzaSize > 0 {
			p.budget.limit = offset + p.maxStanzaSize + readAhead
		}
		tag, err := p.ReadTag()
		if err != nil {
			return nil, err
		}
		switch tag.Kind {
		case TextTag:
			continue // whitespace keepalives

		case EndTag:
			if p.mode == SocketStream && tag.Name == streamName {
				return nil, ErrStreamClosedByPeer
			}
			return nil, errUnexpectedEnd(tag.Name)
		}
		if p.mode == SocketStream && tag.Name == streamName {
			hdr := xmpp.NewElementName(tag.Name)
			for _, a := range tag.Attributes {
				hdr.SetAttribute(a.Label, a.Value)
			}
			p.streamNS = hdr.Namespace()
			return hdr, nil
		}
		p.rootOffset = offset
		elem, err := p.ReadElement(tag)
		p.rootOffset = -1
		if err != nil {
			return nil, err
		}
		return elem, nil
	}
}

// WriteStartTag writes elem opening tag, including its attributes.
func WriteStartTag(w io.Writer, elem *xmpp.Element) error {
	hdr := xmpp.NewElementName(elem.Name())
	for _, a := range elem.Attributes() {
		hdr.SetAttribute(a.Label, a.Value)
	}
	return hdr.ToXML(w, false)
}

// WriteEndTag writes the closing tag for an element named name.
func WriteEndTag(w io.Writer, name string) error {
	_, err := io.WriteString(w, "</"+name+">")
	return err
}

// WriteElement writes elem and all of its children.
func WriteElement(w io.Writer, elem *xmpp.Element) error {
	return elem.ToXML(w, true)
}

// budgetReader refuses to read past limit, so that a single oversized token
// is never buffered as a whole by the decoder.
type budgetReader struct {
	r     io.Reader
	read  int64
	limit int64 // negative means unlimited
}

func (br *budgetReader) Read(b []byte) (int, error) {
	if br.limit >= 0 {
		rem := br.limit - br.read
		if rem <= 0 {
			return 0, ErrTooLargeStanza
		}
		if int64(len(b)) > rem {
			b = b[:rem]
		}
	}
	n, err := br.r.Read(b)
	br.read += int64(n)
	return n, err
}

func (br *budgetReader) unlimit() {
	br.limit = -1
}

type livenessReader struct {
	r io.Reader
	l Liveness
}

func (lr *livenessReader) Read(b []byte) (int, error) {
	lr.l.Waiting()
	return lr.r.Read(b)
}

func xmlName(n xml.Name) string {
	if len(n.Space) > 0 {
		return n.Space + ":" + n.Local
	}
	return n.Local
}

func errUnexpectedEnd(name string) error {
	return fmt.Errorf("parser: unexpected end element </%s>", name)
}

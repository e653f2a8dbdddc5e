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
	"errors"
	"fmt"
)

// IQ types.
const (
	GetType    = "get"
	SetType    = "set"
	ResultType = "result"
)

// Message types.
const (
	NormalType    = "normal"
	ChatType      = "chat"
	GroupChatType = "groupchat"
	HeadlineType  = "headline"
)

// Presence types.
const (
	AvailableType    = ""
	UnavailableType  = "unavailable"
	SubscribeType    = "subscribe"
	SubscribedType   = "subscribed"
	UnsubscribeType  = "unsubscribe"
	UnsubscribedType = "unsubscribed"
	ProbeType        = "probe"
)

// IQ type represents an <iq> element.
type IQ struct {
	*Element
}

// NewIQ creates and returns a new IQ element.
func NewIQ(id, typ string) *IQ {
	e := NewElementName(IQName)
	e.SetAttribute(ID, id)
	e.SetAttribute(Type, typ)
	return &IQ{Element: e}
}

// NewIQFromElement validates an <iq> element and wraps it into an IQ instance.
func NewIQFromElement(e *Element) (*IQ, error) {
	if e.Name() != IQName {
		return nil, fmt.Errorf("xmpp: wrong IQ element name: %s", e.Name())
	}
	if len(e.ID()) == 0 {
		return nil, errors.New(`xmpp: IQ "id" attribute is required`)
	}
	iqType := e.Type()
	if len(iqType) == 0 {
		return nil, errors.New(`xmpp: IQ "type" attribute is required`)
	}
	switch iqType {
	case GetType, SetType:
		if e.ChildrenCount() != 1 {
			return nil, errors.New(`xmpp: an IQ stanza of type "get" or "set" must contain one and only one child element`)
		}
	case ResultType:
		if e.ChildrenCount() > 1 {
			return nil, errors.New(`xmpp: an IQ stanza of type "result" must include zero or one child elements`)
		}
	case ErrorType:
		if e.Child("error") == nil {
			return nil, errors.New(`xmpp: an IQ stanza of type "error" must contain an error child element`)
		}
	default:
		return nil, fmt.Errorf(`xmpp: invalid IQ "type" attribute: %s`, iqType)
	}
	return &IQ{Element: e}, nil
}

// IsGet returns true if this is a 'get' type IQ.
func (iq *IQ) IsGet() bool { return iq.Type() == GetType }

// IsSet returns true if this is a 'set' type IQ.
func (iq *IQ) IsSet() bool { return iq.Type() == SetType }

// IsResult returns true if this is a 'result' type IQ.
func (iq *IQ) IsResult() bool { return iq.Type() == ResultType }

// IsRequest returns true if this is either a 'get' or 'set' type IQ.
func (iq *IQ) IsRequest() bool { return iq.IsGet() || iq.IsSet() }

// IsResponse returns true if this is either a 'result' or 'error' type IQ.
func (iq *IQ) IsResponse() bool { return iq.IsResult() || iq.IsError() }

// Payload returns the first non-error IQ child element.
func (iq *IQ) Payload() *Element {
	for _, child := range iq.Children() {
		if child.Name() != "error" {
			return child
		}
	}
	return nil
}

// ResultIQ returns the result IQ associated to this request.
func (iq *IQ) ResultIQ() *IQ {
	rs := NewIQ(iq.ID(), ResultType)
	if from := iq.From(); len(from) > 0 {
		rs.SetAttribute(To, from)
	}
	return rs
}

// ErrorIQ returns an error IQ associated to this request.
func (iq *IQ) ErrorIQ(stanzaErr *StanzaError) *IQ {
	rs := NewIQ(iq.ID(), ErrorType)
	if from := iq.From(); len(from) > 0 {
		rs.SetAttribute(To, from)
	}
	if p := iq.Payload(); p != nil {
		rs.AppendElement(p.Copy())
	}
	rs.AppendElement(stanzaErr.Element())
	return rs
}

// Message type represents a <message> element.
type Message struct {
	*Element
}

// NewMessage creates and returns a new message element.
func NewMessage(id, typ string) *Message {
	e := NewElementName(MessageName)
	if len(id) > 0 {
		e.SetAttribute(ID, id)
	}
	if len(typ) > 0 {
		e.SetAttribute(Type, typ)
	}
	return &Message{Element: e}
}

// NewMessageFromElement wraps a <message> element into a Message instance.
func NewMessageFromElement(e *Element) (*Message, error) {
	if e.Name() != MessageName {
		return nil, fmt.Errorf("xmpp: wrong message element name: %s", e.Name())
	}
	return &Message{Element: e}, nil
}

// Body returns message body text value.
func (m *Message) Body() string {
	if b := m.Child("body"); b != nil {
		return b.Text()
	}
	return ""
}

// SetBody sets message body text value.
func (m *Message) SetBody(body string) *Message {
	b := m.Child("body")
	if b == nil {
		b = m.AppendElement(NewElementName("body"))
	}
	b.SetText(body)
	return m
}

// Presence type represents a <presence> element.
type Presence struct {
	*Element
}

// NewPresence creates and returns a new presence element.
func NewPresence(typ string) *Presence {
	e := NewElementName(PresenceName)
	if len(typ) > 0 {
		e.SetAttribute(Type, typ)
	}
	return &Presence{Element: e}
}

// NewPresenceFromElement wraps a <presence> element into a Presence instance.
func NewPresenceFromElement(e *Element) (*Presence, error) {
	if e.Name() != PresenceName {
		return nil, fmt.Errorf("xmpp: wrong presence element name: %s", e.Name())
	}
	switch e.Type() {
	case AvailableType, UnavailableType, SubscribeType, SubscribedType,
		UnsubscribeType, UnsubscribedType, ProbeType, ErrorType:
	default:
		return nil, fmt.Errorf(`xmpp: invalid presence "type" attribute: %s`, e.Type())
	}
	return &Presence{Element: e}, nil
}

// IsAvailable returns true if presence is of 'available' type.
func (p *Presence) IsAvailable() bool {
	return p.Type() == AvailableType
}

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
	"github.com/pborman/uuid"
)

// Common attribute labels.
const (
	// Namespace is the 'xmlns' attribute label.
	Namespace = "xmlns"

	// StreamNamespace is the 'xmlns:stream' attribute label.
	StreamNamespace = "xmlns:stream"

	// ID is the 'id' attribute label.
	ID = "id"

	// From is the 'from' attribute label.
	From = "from"

	// To is the 'to' attribute label.
	To = "to"

	// Type is the 'type' attribute label.
	Type = "type"

	// Version is the 'version' attribute label.
	Version = "version"

	// Language is the 'xml:lang' attribute label.
	Language = "xml:lang"
)

// Stanza names.
const (
	MessageName  = "message"
	PresenceName = "presence"
	IQName       = "iq"
)

// Well-known protocol namespaces.
const (
	JabberClientNamespace = "jabber:client"
	StreamsNamespace      = "http://etherx.jabber.org/streams"
	FramingNamespace      = "urn:ietf:params:xml:ns:xmpp-framing"
	TLSNamespace          = "urn:ietf:params:xml:ns:xmpp-tls"
	SASLNamespace         = "urn:ietf:params:xml:ns:xmpp-sasl"
	BindNamespace         = "urn:ietf:params:xml:ns:xmpp-bind"
	SessionNamespace      = "urn:ietf:params:xml:ns:xmpp-session"
	StanzasNamespace      = "urn:ietf:params:xml:ns:xmpp-stanzas"
	StreamErrorNamespace  = "urn:ietf:params:xml:ns:xmpp-streams"
)

// ErrorType represents an 'error' stanza type.
const ErrorType = "error"

// NewID returns a new random stanza identifier.
func NewID() string {
	return uuid.New()
}

// IsStanza returns true if element is an XMPP stanza.
func IsStanza(e *Element) bool {
	if e == nil {
		return false
	}
	switch e.Name() {
	case IQName, PresenceName, MessageName:
		return true
	}
	return false
}

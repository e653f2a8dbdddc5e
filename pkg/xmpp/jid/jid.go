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

package jid

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/secure/precis"
)

var (
	// ErrEmptyDomain is returned when parsing an address with no domain part.
	ErrEmptyDomain = errors.New("jid: domain must not be empty")

	// ErrEmptyResource is returned when parsing an address ending with '/'.
	ErrEmptyResource = errors.New("jid: resource must not be empty")

	// ErrEmptyNode is returned when parsing an address starting with '@'.
	ErrEmptyNode = errors.New("jid: node must not be empty")
)

// JID represents an XMPP address made up of an optional node (generally a username),
// a domain and an optional resource.
type JID struct {
	node     string
	domain   string
	resource string
}

// New constructs and prepares a JID given its node, domain and resource parts.
func New(node, domain, resource string) (JID, error) {
	return prepare(node, domain, resource)
}

// MustParse parses an address string and panics on failure.
func MustParse(s string) JID {
	j, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return j
}

// Parse constructs a JID from its string representation.
func Parse(s string) (JID, error) {
	var node, domain, resource string

	rest := s
	if i := strings.Index(rest, "/"); i != -1 {
		resource = rest[i+1:]
		if len(resource) == 0 {
			return JID{}, ErrEmptyResource
		}
		rest = rest[:i]
	}
	if i := strings.Index(rest, "@"); i != -1 {
		node = rest[:i]
		if len(node) == 0 {
			return JID{}, ErrEmptyNode
		}
		rest = rest[i+1:]
	}
	domain = strings.TrimSuffix(rest, ".")
	if len(domain) == 0 {
		return JID{}, ErrEmptyDomain
	}
	return prepare(node, domain, resource)
}

// Node returns the node part.
func (j JID) Node() string { return j.node }

// Domain returns the domain part.
func (j JID) Domain() string { return j.domain }

// Resource returns the resource part.
func (j JID) Resource() string { return j.resource }

// IsZero tells whether j is the zero value.
func (j JID) IsZero() bool { return len(j.domain) == 0 }

// IsBare returns true if j has no resource part.
func (j JID) IsBare() bool { return len(j.resource) == 0 }

// IsFull returns true if j carries a resource part.
func (j JID) IsFull() bool { return len(j.resource) > 0 }

// Bare returns the bare equivalent of j.
func (j JID) Bare() JID {
	return JID{node: j.node, domain: j.domain}
}

// WithResource returns a copy of j using res as resource part.
func (j JID) WithResource(res string) (JID, error) {
	return prepare(j.node, j.domain, res)
}

// Equal returns true if both addresses are equivalent.
func (j JID) Equal(j2 JID) bool {
	return j == j2
}

// String returns the string representation of the address.
func (j JID) String() string {
	var sb strings.Builder
	if len(j.node) > 0 {
		sb.WriteString(j.node)
		sb.WriteByte('@')
	}
	sb.WriteString(j.domain)
	if len(j.resource) > 0 {
		sb.WriteByte('/')
		sb.WriteString(j.resource)
	}
	return sb.String()
}

func prepare(node, domain, resource string) (JID, error) {
	if !utf8.ValidString(node) || !utf8.ValidString(resource) {
		return JID{}, errors.New("jid: address contains invalid UTF-8")
	}
	// RFC 7622 §3.2.1: A-labels are converted to U-labels before enforcement.
	domain, err := idna.ToUnicode(domain)
	if err != nil {
		return JID{}, err
	}
	if !utf8.ValidString(domain) {
		return JID{}, errors.New("jid: domain contains invalid UTF-8")
	}
	domain = strings.ToLower(domain)

	var nodeB, resB []byte
	if len(node) > 0 {
		nodeB, err = precis.UsernameCaseMapped.Bytes([]byte(node))
		if err != nil {
			return JID{}, err
		}
	}
	if len(resource) > 0 {
		resB, err = precis.OpaqueString.Bytes([]byte(resource))
		if err != nil {
			return JID{}, err
		}
	}
	if err := checkParts(nodeB, domain, resB); err != nil {
		return JID{}, err
	}
	return JID{node: string(nodeB), domain: domain, resource: string(resB)}, nil
}

func checkParts(node []byte, domain string, resource []byte) error {
	if len(node) > 1023 {
		return errors.New("jid: node must be smaller than 1024 bytes")
	}
	// RFC 7622 §3.3.1 characters still forbidden in the localpart.
	if bytes.ContainsAny(node, `"&'/:<>@`) {
		return errors.New("jid: node contains forbidden characters")
	}
	if len(resource) > 1023 {
		return errors.New("jid: resource must be smaller than 1024 bytes")
	}
	if l := len(domain); l < 1 || l > 1023 {
		return errors.New("jid: domain must be between 1 and 1023 bytes")
	}
	if l := len(domain); l > 2 && strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		if ip := net.ParseIP(domain[1 : l-1]); ip == nil || ip.To4() != nil {
			return errors.New("jid: domain is not a valid IPv6 address")
		}
	}
	return nil
}

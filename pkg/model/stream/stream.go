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

package streammodel

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ortuman/parley/pkg/parser"
	"github.com/ortuman/parley/pkg/xmpp"
)

// State represents the persisted stream management state of an account.
type State struct {
	// Account is the account bare JID.
	Account string `json:"account"`

	// ResumeID is the server granted resumption identifier.
	ResumeID string `json:"resume_id"`

	// Location is the preferred reconnection address, if given by the server.
	Location string `json:"location,omitempty"`

	// MaxResume is the server declared resumption window.
	MaxResume time.Duration `json:"max_resume"`

	InboundH  uint32 `json:"in_h"`
	OutboundH uint32 `json:"out_h"`

	// UpdatedAt is the time the stream was last known to be alive.
	UpdatedAt time.Time `json:"updated_at"`
}

// Resumable tells whether the state may still be resumed at t.
// A zero MaxResume means the server did not declare a window.
func (s *State) Resumable(t time.Time) bool {
	if s == nil || len(s.ResumeID) == 0 {
		return false
	}
	return s.MaxResume == 0 || t.Sub(s.UpdatedAt) < s.MaxResume
}

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (s *State) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (s *State) UnmarshalBinary(b []byte) error {
	return json.Unmarshal(b, s)
}

// Pending represents an unacknowledged outbound stanza.
type Pending struct {
	Seq      uint32
	Stanza   *xmpp.Element
	QueuedAt time.Time
}

type pendingJSON struct {
	Seq      uint32    `json:"seq"`
	Stanza   string    `json:"stanza"`
	QueuedAt time.Time `json:"queued_at"`
}

// MarshalBinary satisfies encoding.BinaryMarshaler interface.
func (p *Pending) MarshalBinary() ([]byte, error) {
	return json.Marshal(&pendingJSON{
		Seq:      p.Seq,
		Stanza:   p.Stanza.String(),
		QueuedAt: p.QueuedAt,
	})
}

// UnmarshalBinary satisfies encoding.BinaryUnmarshaler interface.
func (p *Pending) UnmarshalBinary(b []byte) error {
	var pj pendingJSON
	if err := json.Unmarshal(b, &pj); err != nil {
		return err
	}
	stanza, err := ParseStanza(pj.Stanza)
	if err != nil {
		return err
	}
	p.Seq = pj.Seq
	p.Stanza = stanza
	p.QueuedAt = pj.QueuedAt
	return nil
}

// ParseStanza decodes a serialized stanza.
func ParseStanza(raw string) (*xmpp.Element, error) {
	return parser.New(strings.NewReader(raw), parser.DefaultMode, 0).Parse()
}

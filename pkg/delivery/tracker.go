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

package delivery

import (
	"errors"
	"sync"
	"time"

	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

// ErrTimeout is passed to a request callback whose deadline expired before a response arrived.
var ErrTimeout = errors.New("delivery: IQ response timeout")

// ResponseHandler is invoked once with either the response IQ or a failure.
// For error responses iq is set and err is the carried *xmpp.StanzaError.
type ResponseHandler func(iq *xmpp.IQ, err error)

type request struct {
	to string
	h  ResponseHandler
	tm *time.Timer
}

// Tracker correlates outbound IQ requests with their responses.
type Tracker struct {
	mu      sync.Mutex
	pending map[string]*request
	exec    func(func())
}

// NewTracker returns an empty tracker.
// exec, if non-nil, is used to run deadline expirations, so they can be serialized
// with the caller's control loop.
func NewTracker(exec func(func())) *Tracker {
	if exec == nil {
		exec = func(f func()) { f() }
	}
	return &Tracker{
		pending: make(map[string]*request),
		exec:    exec,
	}
}

// Register tracks request id, addressed to to, until deadline.
// Registering an id already pending replaces its handler, which is then never invoked.
func (t *Tracker) Register(id, to string, deadline time.Time, h ResponseHandler) {
	req := &request{to: to, h: h}

	t.mu.Lock()
	if prev := t.pending[id]; prev != nil {
		prev.tm.Stop()
	}
	t.pending[id] = req
	req.tm = time.AfterFunc(time.Until(deadline), func() {
		t.exec(func() { t.expire(id, req) })
	})
	t.mu.Unlock()
}

// Resolve delivers iq to its pending request. self is the local full JID.
// Returns false if no request was waiting for it, or iq does not come from the
// entity the request was addressed to.
func (t *Tracker) Resolve(iq *xmpp.IQ, self jid.JID) bool {
	if !iq.IsResponse() {
		return false
	}
	t.mu.Lock()
	req := t.pending[iq.ID()]
	t.mu.Unlock()
	if req == nil || !isResponder(req.to, iq.From(), self) {
		return false
	}
	if t.take(iq.ID(), req) == nil {
		return false
	}
	var err error
	if iq.IsError() {
		if se := xmpp.NewStanzaErrorFromElement(iq.Element); se != nil {
			err = se
		}
	}
	req.h(iq, err)
	return true
}

// FailAll invokes every pending handler with err and stops tracking them.
func (t *Tracker) FailAll(err error) {
	t.mu.Lock()
	reqs := make([]*request, 0, len(t.pending))
	for id, req := range t.pending {
		req.tm.Stop()
		reqs = append(reqs, req)
		delete(t.pending, id)
	}
	t.mu.Unlock()

	for _, req := range reqs {
		req.h(nil, err)
	}
}

// Len returns the number of pending requests.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

func (t *Tracker) expire(id string, req *request) {
	if t.take(id, req) == nil {
		return // already resolved
	}
	req.h(nil, ErrTimeout)
}

// isResponder tells whether from may answer a request sent to to (RFC 6120 8.1.2.1).
// Requests addressed to the account itself or its server may be answered without a from.
func isResponder(to, from string, self jid.JID) bool {
	if isLocal(to, self) {
		return isLocal(from, self)
	}
	toJID, err := jid.Parse(to)
	if err != nil {
		return to == from
	}
	fromJID, err := jid.Parse(from)
	if err != nil {
		return false
	}
	return toJID.Equal(fromJID)
}

func isLocal(addr string, self jid.JID) bool {
	if len(addr) == 0 {
		return true
	}
	j, err := jid.Parse(addr)
	if err != nil {
		return false
	}
	if len(j.Node()) == 0 {
		return j.IsBare() && j.Domain() == self.Domain()
	}
	if !j.Bare().Equal(self.Bare()) {
		return false
	}
	return j.IsBare() || j.Equal(self)
}

// take removes id from the pending set. If want is non-nil, id is only removed when
// still bound to want.
func (t *Tracker) take(id string, want *request) *request {
	t.mu.Lock()
	defer t.mu.Unlock()
	req := t.pending[id]
	if req == nil || (want != nil && req != want) {
		return nil
	}
	req.tm.Stop()
	delete(t.pending, id)
	return req
}

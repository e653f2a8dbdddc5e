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

package account

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ortuman/parley/pkg/c2s"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

const onlinePollInterval = 100 * time.Millisecond

// Account is a registered XMPP account along with its connection and file transfer engine.
type Account struct {
	jid     jid.JID
	cfg     Config
	cl      client
	ft      transfers
	enabled int32
}

// JID returns the account bare JID.
func (a *Account) JID() jid.JID { return a.jid }

// Config returns the account configuration.
func (a *Account) Config() Config { return a.cfg }

// Enabled tells whether the account is allowed to connect.
func (a *Account) Enabled() bool { return atomic.LoadInt32(&a.enabled) == 1 }

// State returns the current connection state.
func (a *Account) State() c2s.State { return a.cl.State() }

// BoundJID returns the full JID assigned by the server, or a zero JID if not bound yet.
func (a *Account) BoundJID() jid.JID { return a.cl.BoundJID() }

// Send sends a stanza through the account connection.
func (a *Account) Send(stanza *xmpp.Element, opts ...c2s.SendOption) <-chan error {
	return a.cl.Send(stanza, opts...)
}

// SendFile offers a file to peer.
func (a *Account) SendFile(ctx context.Context, peer jid.JID, file jingle.FileSource) (*jingle.Session, error) {
	return a.ft.Offer(ctx, peer, file)
}

// AcceptFile accepts a received file offer, writing its content into sink.
func (a *Account) AcceptFile(sid string, sink jingle.FileSink) error {
	return a.ft.Accept(sid, sink)
}

// RejectFile declines a received file offer.
func (a *Account) RejectFile(sid string) error {
	return a.ft.Reject(sid)
}

// CancelFile cancels an ongoing file transfer.
func (a *Account) CancelFile(sid string) error {
	return a.ft.Cancel(sid)
}

// WaitOnline blocks until the account connection is online or ctx is done.
func (a *Account) WaitOnline(ctx context.Context) error {
	if a.cl.State() == c2s.Online {
		return nil
	}
	tc := time.NewTicker(onlinePollInterval)
	defer tc.Stop()

	for {
		select {
		case <-tc.C:
			if a.cl.State() == c2s.Online {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *Account) setEnabled(enabled bool) {
	var v int32
	if enabled {
		v = 1
	}
	atomic.StoreInt32(&a.enabled, v)
}

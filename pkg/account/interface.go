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

	"github.com/ortuman/parley/pkg/c2s"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

//go:generate moq -out client.mock_test.go . client:clientMock
type client interface {
	Connect()
	Disconnect(ctx context.Context) error
	Close(ctx context.Context) error
	State() c2s.State
	BoundJID() jid.JID
	RegisterIQHandler(ns string, h c2s.IQHandler)
	Send(stanza *xmpp.Element, opts ...c2s.SendOption) <-chan error
	SendIQ(ctx context.Context, iq *xmpp.IQ, cb delivery.ResponseHandler, opts ...c2s.SendOption) <-chan error
}

//go:generate moq -out transfers.mock_test.go . transfers:transfersMock
type transfers interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Namespaces() []string
	HandleIQ(ctx context.Context, iq *xmpp.IQ) bool
	Offer(ctx context.Context, peer jid.JID, file jingle.FileSource) (*jingle.Session, error)
	Accept(sid string, sink jingle.FileSink) error
	Reject(sid string) error
	Cancel(sid string) error
}

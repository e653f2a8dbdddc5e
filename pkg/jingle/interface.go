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

package jingle

import (
	"context"
	"io"

	"github.com/ortuman/parley/pkg/c2s"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

// Sender is the stream a Manager signals through. *c2s.Client satisfies it.
type Sender interface {
	BoundJID() jid.JID
	Send(stanza *xmpp.Element, opts ...c2s.SendOption) <-chan error
	SendIQ(ctx context.Context, iq *xmpp.IQ, cb delivery.ResponseHandler, opts ...c2s.SendOption) <-chan error
}

//go:generate moq -out sender.mock_test.go . stanzaSender:senderMock
type stanzaSender interface {
	Sender
}

// FileSource is the payload of an outgoing transfer.
type FileSource interface {
	io.ReadSeeker
	Name() string
	Size() int64
}

// FileSink receives the payload of an incoming transfer.
// Commit is only called once the whole file has been verified, otherwise Abort is.
type FileSink interface {
	io.Writer
	Commit() error
	Abort() error
}

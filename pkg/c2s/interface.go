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

package c2s

import (
	"context"
	"crypto/tls"

	"github.com/ortuman/parley/pkg/connectivity"
	"github.com/ortuman/parley/pkg/storage/repository"
	"github.com/ortuman/parley/pkg/transport"
	"github.com/ortuman/parley/pkg/xmpp"
)

//go:generate moq -out session.mock_test.go . streamSession:sessionMock
type streamSession interface {
	OpenStream(ctx context.Context) error
	Close(ctx context.Context) error
	Send(ctx context.Context, elem *xmpp.Element) error
	Receive() (*xmpp.Element, error)
	Reset(tr transport.Transport)
	StreamID() string
}

//go:generate moq -out dialer.mock_test.go . dialer
type dialer interface {
	Dial(ctx context.Context, domain, preferred string, tlsCfg *tls.Config) (transport.Transport, error)
}

//go:generate moq -out transport.mock_test.go . clientTransport:transportMock
type clientTransport interface {
	transport.Transport
}

//go:generate moq -out repository.mock_test.go . streamRepository:repositoryMock
type streamRepository interface {
	repository.Repository
}

//go:generate moq -out connectivity.mock_test.go . connectivityChecker:connectivityMock
type connectivityChecker interface {
	connectivity.Checker
}

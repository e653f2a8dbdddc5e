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

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"io"
	"time"

	"golang.org/x/time/rate"
)

// Type represents a stream transport type.
type Type int

const (
	// Socket represents a socket transport type.
	Socket Type = iota + 1

	// WebSocket represents a websocket transport type.
	WebSocket
)

// String returns Type string representation.
func (tt Type) String() string {
	switch tt {
	case Socket:
		return "socket"
	case WebSocket:
		return "websocket"
	}
	return ""
}

// Transport represents a client stream transport mechanism.
type Transport interface {
	io.ReadWriteCloser

	// Type returns transport type value.
	Type() Type

	// WriteString writes a raw string to the transport.
	WriteString(s string) (n int, err error)

	// Flush writes any buffered data to the underlying connection.
	Flush() error

	// SetReadDeadline sets the deadline for future read calls.
	SetReadDeadline(d time.Time) error

	// SetWriteDeadline sets the deadline for future write calls.
	SetWriteDeadline(d time.Time) error

	// SetReadRateLimiter sets transport read rate limiter.
	SetReadRateLimiter(rLim *rate.Limiter) error

	// StartTLS secures the transport using TLS acting as client.
	// The handshake is bounded by ctx.
	StartTLS(ctx context.Context, cfg *tls.Config) error

	// ConnectionState returns the TLS connection state, if the transport is secured.
	ConnectionState() (tls.ConnectionState, bool)

	// PeerCertificates returns the certificate chain presented by remote peer.
	PeerCertificates() []*x509.Certificate
}

type tlsStateQueryable interface {
	ConnectionState() tls.ConnectionState
}

func connectionState(v interface{}) (tls.ConnectionState, bool) {
	q, ok := v.(tlsStateQueryable)
	if !ok {
		return tls.ConnectionState{}, false
	}
	st := q.ConnectionState()
	return st, st.HandshakeComplete
}

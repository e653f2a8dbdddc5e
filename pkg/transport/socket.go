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
	"bufio"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"time"

	"github.com/ortuman/parley/pkg/util/ratelimiter"
	"golang.org/x/time/rate"
)

const writeBuffSize = 4096

// ErrAlreadySecured is returned by StartTLS when the transport is already running over TLS.
var ErrAlreadySecured = errors.New("transport: already secured")

type socketTransport struct {
	conn net.Conn
	lr   *ratelimiter.Reader
	bw   *bufio.Writer
}

// NewSocketTransport creates a socket class stream transport.
// conn may be a plain TCP connection or a direct TLS one.
func NewSocketTransport(conn net.Conn) Transport {
	return &socketTransport{
		conn: conn,
		lr:   ratelimiter.NewReader(conn),
		bw:   bufio.NewWriterSize(conn, writeBuffSize),
	}
}

func (s *socketTransport) Read(p []byte) (n int, err error) {
	return s.lr.Read(p)
}

func (s *socketTransport) Write(p []byte) (n int, err error) {
	return s.bw.Write(p)
}

func (s *socketTransport) WriteString(str string) (int, error) {
	return io.WriteString(s.bw, str)
}

func (s *socketTransport) Close() error {
	return s.conn.Close()
}

func (s *socketTransport) Type() Type {
	return Socket
}

func (s *socketTransport) Flush() error {
	return s.bw.Flush()
}

func (s *socketTransport) SetReadDeadline(d time.Time) error {
	return s.conn.SetReadDeadline(d)
}

func (s *socketTransport) SetWriteDeadline(d time.Time) error {
	return s.conn.SetWriteDeadline(d)
}

func (s *socketTransport) SetReadRateLimiter(rLim *rate.Limiter) error {
	s.lr.SetReadRateLimiter(rLim)
	return nil
}

func (s *socketTransport) StartTLS(ctx context.Context, cfg *tls.Config) error {
	if _, ok := s.conn.(*tls.Conn); ok {
		return ErrAlreadySecured
	}
	if err := s.bw.Flush(); err != nil {
		return err
	}
	tlsConn := tls.Client(s.conn, cfg)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		return err
	}
	s.conn = tlsConn

	lr := ratelimiter.NewReader(tlsConn)
	if rLim := s.lr.ReadRateLimiter(); rLim != nil {
		lr.SetReadRateLimiter(rLim)
	}
	s.lr = lr
	s.bw = bufio.NewWriterSize(tlsConn, writeBuffSize)
	return nil
}

func (s *socketTransport) ConnectionState() (tls.ConnectionState, bool) {
	return connectionState(s.conn)
}

func (s *socketTransport) PeerCertificates() []*x509.Certificate {
	st, ok := s.ConnectionState()
	if !ok {
		return nil
	}
	return st.PeerCertificates
}

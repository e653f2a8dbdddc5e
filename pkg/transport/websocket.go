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
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ortuman/parley/pkg/util/ratelimiter"
	"golang.org/x/time/rate"
)

// WebSocketSubprotocol is the subprotocol negotiated by RFC 7395 clients.
const WebSocketSubprotocol = "xmpp"

// ErrStartTLSNotSupported is returned by websocket transports on StartTLS.
var ErrStartTLSNotSupported = errors.New("transport: STARTTLS not supported over websocket")

// WebSocketConn represents a websocket connection interface.
type WebSocketConn interface {
	NextReader() (messageType int, r io.Reader, err error)
	NextWriter(int) (io.WriteCloser, error)
	Close() error
	UnderlyingConn() net.Conn
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

type webSocketTransport struct {
	conn WebSocketConn
	rd   io.Reader
	lr   *ratelimiter.Reader
	wBuf bytes.Buffer
}

// DialWebSocket opens an RFC 7395 websocket connection to urlStr.
func DialWebSocket(ctx context.Context, urlStr string, tlsCfg *tls.Config) (Transport, error) {
	d := websocket.Dialer{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: tlsCfg,
		Subprotocols:    []string{WebSocketSubprotocol},
	}
	conn, resp, err := d.DialContext(ctx, urlStr, nil)
	if err != nil {
		return nil, err
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if conn.Subprotocol() != WebSocketSubprotocol {
		_ = conn.Close()
		return nil, errors.New("transport: server did not negotiate 'xmpp' websocket subprotocol")
	}
	return NewWebSocketTransport(conn), nil
}

// NewWebSocketTransport creates a websocket class stream transport.
//
// Written data is buffered and sent as a single text message on Flush,
// so that every message carries exactly one complete element.
func NewWebSocketTransport(conn WebSocketConn) Transport {
	wst := &webSocketTransport{conn: conn}
	wst.lr = ratelimiter.NewReader(readerFunc(wst.readMessage))
	return wst
}

func (w *webSocketTransport) Read(p []byte) (n int, err error) {
	return w.lr.Read(p)
}

func (w *webSocketTransport) readMessage(p []byte) (int, error) {
	for {
		if w.rd == nil {
			_, r, err := w.conn.NextReader()
			if err != nil {
				return 0, err
			}
			w.rd = r
		}
		n, err := w.rd.Read(p)
		if errors.Is(err, io.EOF) {
			w.rd = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (w *webSocketTransport) Write(p []byte) (n int, err error) {
	return w.wBuf.Write(p)
}

func (w *webSocketTransport) WriteString(str string) (int, error) {
	return w.wBuf.WriteString(str)
}

func (w *webSocketTransport) Flush() error {
	if w.wBuf.Len() == 0 {
		return nil
	}
	defer w.wBuf.Reset()

	nw, err := w.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	if _, err := nw.Write(w.wBuf.Bytes()); err != nil {
		_ = nw.Close()
		return err
	}
	return nw.Close()
}

func (w *webSocketTransport) Close() error {
	return w.conn.Close()
}

func (w *webSocketTransport) Type() Type {
	return WebSocket
}

func (w *webSocketTransport) SetReadDeadline(d time.Time) error {
	return w.conn.SetReadDeadline(d)
}

func (w *webSocketTransport) SetWriteDeadline(d time.Time) error {
	return w.conn.SetWriteDeadline(d)
}

func (w *webSocketTransport) SetReadRateLimiter(rLim *rate.Limiter) error {
	w.lr.SetReadRateLimiter(rLim)
	return nil
}

func (w *webSocketTransport) StartTLS(_ context.Context, _ *tls.Config) error {
	return ErrStartTLSNotSupported
}

func (w *webSocketTransport) ConnectionState() (tls.ConnectionState, bool) {
	return connectionState(w.conn.UnderlyingConn())
}

func (w *webSocketTransport) PeerCertificates() []*x509.Certificate {
	st, ok := w.ConnectionState()
	if !ok {
		return nil
	}
	return st.PeerCertificates
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }

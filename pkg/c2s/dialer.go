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
	"net"
	"strconv"
	"time"

	"github.com/ortuman/parley/pkg/transport"
	"github.com/ortuman/parley/pkg/util/dns"
	"github.com/pkg/errors"
	"golang.org/x/net/proxy"
)

const (
	clientService    = "xmpp-client"
	clientTLSService = "xmpps-client"

	defaultPort    = 5222
	defaultTLSPort = 5223

	// XEP-0368 ALPN protocol identifier.
	alpnProtocol = "xmpp-client"

	keepAlivePeriod = time.Second * 15
)

var errDialFailed = errors.New("c2s: failed to dial server")

type srvResolveFunc func(ctx context.Context, service, proto, name string) ([]dns.Target, error)
type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)
type dialWebSocketFunc func(ctx context.Context, urlStr string, tlsCfg *tls.Config) (transport.Transport, error)

type clientDialer struct {
	cfg        Config
	srvResolve srvResolveFunc
	dialCtx    dialFunc
	dialWS     dialWebSocketFunc

	err error // proxy setup failure, returned by every dial
}

func newDialer(cfg Config) *clientDialer {
	d := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: keepAlivePeriod,
	}
	cd := &clientDialer{
		cfg:        cfg,
		srvResolve: dns.NewResolver(cfg.Resolver).LookupSRV,
		dialCtx:    d.DialContext,
		dialWS:     transport.DialWebSocket,
	}
	if len(cfg.SOCKS5Proxy) > 0 {
		pd, err := proxy.SOCKS5("tcp", cfg.SOCKS5Proxy, nil, d)
		if err != nil {
			cd.err = errors.Wrap(err, "c2s: SOCKS5 proxy")
			return cd
		}
		cxd, ok := pd.(proxy.ContextDialer)
		if !ok {
			cd.err = errors.Errorf("c2s: proxy dialer %T does not support contexts", pd)
			return cd
		}
		cd.dialCtx = cxd.DialContext
	}
	return cd
}

// Dial connects to domain server returning a ready to use transport.
// preferred, if not empty, is a host:port tried before any other address.
func (d *clientDialer) Dial(ctx context.Context, domain, preferred string, tlsCfg *tls.Config) (transport.Transport, error) {
	if d.err != nil {
		return nil, d.err
	}
	if len(d.cfg.WebSocketURL) > 0 {
		return d.dialWS(ctx, d.cfg.WebSocketURL, tlsCfg)
	}
	if len(preferred) > 0 {
		conn, err := d.dialAddr(ctx, preferred, d.cfg.DirectTLS, tlsCfg)
		if err == nil {
			return transport.NewSocketTransport(conn), nil
		}
	}
	conn, err := d.dialConn(ctx, domain, tlsCfg)
	if err != nil {
		return nil, err
	}
	return transport.NewSocketTransport(conn), nil
}

func (d *clientDialer) dialConn(ctx context.Context, domain string, tlsCfg *tls.Config) (net.Conn, error) {
	if len(d.cfg.Host) > 0 {
		port := d.cfg.Port
		if port == 0 {
			port = defaultPort
			if d.cfg.DirectTLS {
				port = defaultTLSPort
			}
		}
		return d.dialAddr(ctx, net.JoinHostPort(d.cfg.Host, strconv.Itoa(port)), d.cfg.DirectTLS, tlsCfg)
	}
	conn, err := d.dialSRV(ctx, domain, clientTLSService, true, tlsCfg)
	if err == nil {
		return conn, nil
	}
	conn, err = d.dialSRV(ctx, domain, clientService, false, tlsCfg)
	if err == nil {
		return conn, nil
	}
	if d.cfg.DirectTLS {
		return d.dialAddr(ctx, net.JoinHostPort(domain, strconv.Itoa(defaultTLSPort)), true, tlsCfg)
	}
	return d.dialAddr(ctx, net.JoinHostPort(domain, strconv.Itoa(defaultPort)), false, tlsCfg)
}

func (d *clientDialer) dialSRV(ctx context.Context, domain, service string, directTLS bool, tlsCfg *tls.Config) (net.Conn, error) {
	targets, err := d.srvResolve(ctx, service, "tcp", domain)
	if err != nil {
		return nil, err
	}
	for _, target := range targets {
		conn, err := d.dialAddr(ctx, target.Addr(), directTLS, tlsCfg)
		if err == nil {
			return conn, nil
		}
	}
	return nil, errDialFailed
}

func (d *clientDialer) dialAddr(ctx context.Context, addr string, directTLS bool, tlsCfg *tls.Config) (net.Conn, error) {
	conn, err := d.dialCtx(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if !directTLS {
		return conn, nil
	}
	cfg := tlsCfg.Clone()
	cfg.NextProtos = []string{alpnProtocol}

	hsCtx, cancel := withTimeout(ctx, d.cfg.TLSHandshakeTimeout)
	defer cancel()

	tlsConn := tls.Client(conn, cfg)
	if err := tlsConn.HandshakeContext(hsCtx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// withTimeout behaves like context.WithTimeout, leaving ctx untouched for non positive timeouts.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

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
	"net"
	"time"

	"github.com/pkg/errors"
)

// SOCKS5 (RFC 1928) subset used by XEP-0065: no authentication, CONNECT with a
// domain name destination and port zero.
const (
	socks5Version   = 0x05
	socks5NoAuth    = 0x00
	socks5NoMethod  = 0xff
	socks5Connect   = 0x01
	socks5AtypIPv4  = 0x01
	socks5AtypFQDN  = 0x03
	socks5AtypIPv6  = 0x04
	socks5Succeeded = 0x00
	socks5Failure   = 0x01
	socks5Refused   = 0x05
)

var (
	errSOCKS5Handshake = errors.New("socks5: handshake failed")
	errSOCKS5Rejected  = errors.New("socks5: connect request rejected")
)

// socks5Dial performs a client handshake over conn requesting dstAddr.
// The handshake is aborted when ctx is done.
func socks5Dial(ctx context.Context, conn net.Conn, dstAddr string) error {
	if len(dstAddr) > 255 {
		return errors.Wrap(errSOCKS5Handshake, "destination address too long")
	}
	if d, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(d)
		defer func() { _ = conn.SetDeadline(time.Time{}) }()
	}
	stop := closeOnDone(ctx, conn)
	defer stop()

	if _, err := conn.Write([]byte{socks5Version, 1, socks5NoAuth}); err != nil {
		return err
	}
	var b [2]byte
	if _, err := io.ReadFull(conn, b[:]); err != nil {
		return err
	}
	if b[0] != socks5Version || b[1] != socks5NoAuth {
		return errors.Wrap(errSOCKS5Handshake, "no acceptable authentication method")
	}
	if _, err := conn.Write(connectRequest(dstAddr)); err != nil {
		return err
	}
	rep, _, err := readAddrMessage(exactReader{conn})
	if err != nil {
		return err
	}
	if rep != socks5Succeeded {
		return errors.Wrapf(errSOCKS5Rejected, "reply code %d", rep)
	}
	return nil
}

// socks5Accept performs the server side of the handshake and returns the requested
// destination address. The caller answers with socks5Reply.
func socks5Accept(conn net.Conn) (string, error) {
	r := exactReader{conn}

	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", err
	}
	if hdr[0] != socks5Version || hdr[1] == 0 {
		return "", errors.Wrap(errSOCKS5Handshake, "invalid greeting")
	}
	methods := make([]byte, hdr[1])
	if _, err := io.ReadFull(r, methods); err != nil {
		return "", err
	}
	var noAuth bool
	for _, m := range methods {
		if m == socks5NoAuth {
			noAuth = true
			break
		}
	}
	if !noAuth {
		_, _ = conn.Write([]byte{socks5Version, socks5NoMethod})
		return "", errors.Wrap(errSOCKS5Handshake, "no acceptable authentication method")
	}
	if _, err := conn.Write([]byte{socks5Version, socks5NoAuth}); err != nil {
		return "", err
	}
	cmd, addr, err := readAddrMessage(r)
	if err != nil {
		return "", err
	}
	if cmd != socks5Connect {
		_ = socks5Reply(conn, socks5Failure, "")
		return "", errors.Wrapf(errSOCKS5Handshake, "unsupported command %d", cmd)
	}
	return addr, nil
}

func socks5Reply(conn net.Conn, code byte, dstAddr string) error {
	msg := connectRequest(dstAddr)
	msg[1] = code
	_, err := conn.Write(msg)
	return err
}

func connectRequest(dstAddr string) []byte {
	b := make([]byte, 0, 7+len(dstAddr))
	b = append(b, socks5Version, socks5Connect, 0x00, socks5AtypFQDN, byte(len(dstAddr)))
	b = append(b, dstAddr...)
	return append(b, 0x00, 0x00)
}

// readAddrMessage reads a request or reply: VER, CMD/REP, RSV, ATYP, ADDR, PORT.
func readAddrMessage(r exactReader) (byte, string, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, "", err
	}
	if hdr[0] != socks5Version {
		return 0, "", errors.Wrap(errSOCKS5Handshake, "invalid version")
	}
	var addr []byte
	switch hdr[3] {
	case socks5AtypIPv4:
		addr = make([]byte, net.IPv4len)
	case socks5AtypIPv6:
		addr = make([]byte, net.IPv6len)
	case socks5AtypFQDN:
		l, err := r.ReadByte()
		if err != nil {
			return 0, "", err
		}
		addr = make([]byte, l)
	default:
		return 0, "", errors.Wrapf(errSOCKS5Handshake, "unknown address type %d", hdr[3])
	}
	if _, err := io.ReadFull(r, addr); err != nil {
		return 0, "", err
	}
	var port [2]byte
	if _, err := io.ReadFull(r, port[:]); err != nil {
		return 0, "", err
	}
	if hdr[3] != socks5AtypFQDN {
		return hdr[1], net.IP(addr).String(), nil
	}
	return hdr[1], string(addr), nil
}

// exactReader never reads past the handshake, so no stream bytes get buffered away.
type exactReader struct {
	io.Reader
}

func (r exactReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r.Reader, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// closeOnDone closes conn if ctx is done before the returned stop func is called.
func closeOnDone(ctx context.Context, conn net.Conn) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

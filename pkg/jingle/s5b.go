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
	"crypto/sha1"
	"encoding/hex"
	"net"
	"strconv"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const handshakeTimeout = 10 * time.Second

var errNoCandidate = errors.New("jingle: no usable candidate")

// dstAddr computes the SOCKS5 destination address of a bytestream (XEP-0065 section 5.3.2).
func dstAddr(sid, requester, target string) string {
	h := sha1.Sum([]byte(sid + requester + target))
	return hex.EncodeToString(h[:])
}

func candidatePriority(typePref, localPref int) uint32 {
	return uint32(typePref)<<16 | uint32(localPref&0xffff)
}

func proxyCandidates(proxies []ProxyConfig) []Candidate {
	var ret []Candidate
	for i, p := range proxies {
		ret = append(ret, Candidate{
			CID:      newCID(),
			Host:     p.Host,
			Port:     p.Port,
			JID:      p.JID,
			Priority: candidatePriority(proxyPreference, len(proxies)-i),
			Type:     candidateProxy,
		})
	}
	return ret
}

func newCID() string {
	return uuid.New().String()[:8]
}

type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// prober connects to the candidates offered by a peer.
type prober struct {
	timeout time.Duration
	dial    dialFunc
}

type probeResult struct {
	cand Candidate
	conn net.Conn
}

// probe attempts every candidate concurrently, each one bounded by the per candidate
// timeout, and returns the established bytestream with the highest priority.
func (p *prober) probe(ctx context.Context, cands []Candidate, dst string) (Candidate, net.Conn, error) {
	if len(cands) == 0 {
		return Candidate{}, nil, errNoCandidate
	}
	results := make([]*probeResult, len(cands))

	g, gCtx := errgroup.WithContext(ctx)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			conn, err := p.connect(gCtx, c, dst)
			if err != nil {
				return nil
			}
			results[i] = &probeResult{cand: c, conn: conn}
			return nil
		})
	}
	_ = g.Wait()

	var best *probeResult
	for _, r := range results {
		if r == nil {
			continue
		}
		if best == nil || r.cand.Priority > best.cand.Priority {
			best = r
		}
	}
	for _, r := range results {
		if r != nil && r != best {
			_ = r.conn.Close()
		}
	}
	if err := ctx.Err(); err != nil {
		if best != nil {
			_ = best.conn.Close()
		}
		return Candidate{}, nil, err
	}
	if best == nil {
		return Candidate{}, nil, errNoCandidate
	}
	return best.cand, best.conn, nil
}

func (p *prober) connect(ctx context.Context, c Candidate, dst string) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dial(ctx, "tcp", c.addr())
	if err != nil {
		return nil, err
	}
	if err := socks5Dial(ctx, conn, dst); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

type s5bListener struct {
	cid  string
	host string
	port int
	ln   net.Listener
}

// s5bServer is the SOCKS5 acceptor behind the direct candidates offered to peers.
// Connections are held per destination address until the session picks one.
type s5bServer struct {
	addrs  []string
	logger kitlog.Logger

	mu        sync.Mutex
	lns       []*s5bListener
	pending   map[string]map[string]net.Conn // dst -> cid -> conn
	handshake map[net.Conn]struct{}
	stopped   bool
	wg        sync.WaitGroup
}

func newS5BServer(addrs []string, logger kitlog.Logger) *s5bServer {
	return &s5bServer{
		addrs:     addrs,
		logger:    logger,
		pending:   make(map[string]map[string]net.Conn),
		handshake: make(map[net.Conn]struct{}),
	}
}

func (s *s5bServer) start() error {
	for _, addr := range s.addrs {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			s.stop()
			return err
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			s.stop()
			return errors.Wrapf(err, "jingle: listening on %s", addr)
		}
		_, portStr, _ := net.SplitHostPort(ln.Addr().String())
		port, _ := strconv.Atoi(portStr)

		l := &s5bListener{cid: newCID(), host: host, port: port, ln: ln}
		s.mu.Lock()
		s.lns = append(s.lns, l)
		s.mu.Unlock()

		s.wg.Add(1)
		go s.acceptLoop(l)

		level.Info(s.logger).Log("msg", "accepting bytestream connections", "address", ln.Addr().String())
	}
	return nil
}

func (s *s5bServer) stop() {
	s.mu.Lock()
	s.stopped = true
	for _, l := range s.lns {
		_ = l.ln.Close()
	}
	for conn := range s.handshake {
		_ = conn.Close()
	}
	for dst, conns := range s.pending {
		for _, conn := range conns {
			_ = conn.Close()
		}
		delete(s.pending, dst)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// candidates returns the direct candidates served by s on behalf of owner.
func (s *s5bServer) candidates(owner string) []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ret []Candidate
	for i, l := range s.lns {
		ret = append(ret, Candidate{
			CID:      l.cid,
			Host:     l.host,
			Port:     l.port,
			JID:      owner,
			Priority: candidatePriority(directPreference, len(s.lns)-i),
			Type:     candidateDirect,
		})
	}
	return ret
}

func (s *s5bServer) expect(dst string) {
	s.mu.Lock()
	if _, ok := s.pending[dst]; !ok {
		s.pending[dst] = make(map[string]net.Conn)
	}
	s.mu.Unlock()
}

// take hands over the connection received for dst through candidate cid.
// Every other connection to dst is closed.
func (s *s5bServer) take(dst, cid string) (net.Conn, bool) {
	s.mu.Lock()
	conns := s.pending[dst]
	delete(s.pending, dst)
	s.mu.Unlock()

	conn, ok := conns[cid]
	for c, other := range conns {
		if c != cid {
			_ = other.Close()
		}
	}
	return conn, ok
}

func (s *s5bServer) forget(dst string) {
	s.mu.Lock()
	conns := s.pending[dst]
	delete(s.pending, dst)
	s.mu.Unlock()

	for _, conn := range conns {
		_ = conn.Close()
	}
}

func (s *s5bServer) acceptLoop(l *s5bListener) {
	defer s.wg.Done()
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.handshake[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serve(l.cid, conn)
	}
}

func (s *s5bServer) serve(cid string, conn net.Conn) {
	defer s.wg.Done()

	_ = conn.SetDeadline(time.Now().Add(handshakeTimeout))
	dst, err := socks5Accept(conn)

	s.mu.Lock()
	delete(s.handshake, conn)
	if err != nil {
		s.mu.Unlock()
		level.Debug(s.logger).Log("msg", "bytestream handshake failed", "remote_address", conn.RemoteAddr().String(), "err", err)
		_ = conn.Close()
		return
	}
	conns, ok := s.pending[dst]
	if !ok || s.stopped {
		s.mu.Unlock()
		_ = socks5Reply(conn, socks5Refused, dst)
		_ = conn.Close()
		return
	}
	if prev := conns[cid]; prev != nil {
		_ = prev.Close()
	}
	conns[cid] = conn
	s.mu.Unlock()

	// registered before replying, so a peer announcing this candidate always finds it
	if err := socks5Reply(conn, socks5Succeeded, dst); err != nil {
		_ = conn.Close()
		return
	}
	_ = conn.SetDeadline(time.Time{})
}

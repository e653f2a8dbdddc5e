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
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/hook"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/extension"
	"github.com/ortuman/parley/pkg/xmpp/jid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var (
	// ErrSessionNotFound is returned when a session identifier is unknown.
	ErrSessionNotFound = errors.New("jingle: session not found")

	// ErrInvalidState is returned when an operation does not apply to the current session state.
	ErrInvalidState = errors.New("jingle: invalid session state")

	// ErrInvalidPeer is returned when a transfer is offered to a bare JID.
	ErrInvalidPeer = errors.New("jingle: peer must be a full JID")

	// ErrNotBound is returned when offering a file before the stream has been bound.
	ErrNotBound = errors.New("jingle: stream not bound")
)

// Manager drives every file transfer session of an account.
type Manager struct {
	cfg    Config
	sender Sender
	hooks  *hook.Hooks
	logger kitlog.Logger
	server *s5bServer
	prober *prober
	nowFn  func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	ibbIdx   map[string]*Session
}

// NewManager returns a new initialized Manager instance.
func NewManager(cfg Config, sender Sender, hooks *hook.Hooks, logger kitlog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		sender:   sender,
		hooks:    hooks,
		logger:   kitlog.With(logger, "component", "jingle"),
		nowFn:    time.Now,
		sessions: make(map[string]*Session),
		ibbIdx:   make(map[string]*Session),
	}
	dialer := &net.Dialer{}
	m.prober = &prober{timeout: cfg.CandidateTimeout, dial: dialer.DialContext}
	if len(cfg.LocalCandidates) > 0 {
		m.server = newS5BServer(cfg.LocalCandidates, m.logger)
	}
	return m
}

// Namespaces returns the IQ payload namespaces HandleIQ must be registered for.
func (m *Manager) Namespaces() []string {
	return []string{
		extension.JingleNamespace,
		extension.IBBNamespace,
		extension.BytestreamsNamespace,
	}
}

// Start starts the bytestream server, if any local candidate was configured.
func (m *Manager) Start(_ context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.start()
}

// Stop cancels all active sessions and stops the bytestream server.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, s := range sessions {
		s := s
		s.rq.Run(func() { s.terminate(ReasonCancel, true) })
	}
	var err error
	for _, s := range sessions {
		select {
		case <-s.termCh:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}
	if m.server != nil {
		m.server.stop()
	}
	return err
}

// Offer proposes file to peer. The declared digest is computed before the offer is sent.
func (m *Manager) Offer(ctx context.Context, peer jid.JID, file FileSource) (*Session, error) {
	if !peer.IsFull() {
		return nil, ErrInvalidPeer
	}
	self := m.sender.BoundJID()
	if self.IsZero() {
		return nil, ErrNotBound
	}
	sum, err := digest(&contextReader{ctx: ctx, r: file}, m.cfg.Hash)
	if err != nil {
		return nil, errors.Wrap(err, "jingle: computing file digest")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	info := FileInfo{
		Name: file.Name(),
		Size: file.Size(),
		Hash: HashValue{Algo: m.cfg.Hash, Sum: sum},
	}
	s := newSession(m, uuid.New().String(), peer, self, true, info)
	s.src = file
	s.s5bSID = uuid.New().String()
	s.dst = dstAddr(s.s5bSID, self.String(), peer.String())
	if m.server != nil {
		m.server.expect(s.dst)
		s.candidates = append(s.candidates, m.server.candidates(self.String())...)
	}
	s.candidates = append(s.candidates, proxyCandidates(m.cfg.Proxies)...)

	m.register(s)
	reportSession(true)

	level.Info(s.logger).Log("msg", "offering file", "name", info.Name, "size", info.Size, "candidates", len(s.candidates))

	s.rq.Run(s.initiate)
	return s, nil
}

// Accept accepts an incoming offer, writing the received file into sink.
func (m *Manager) Accept(sid string, sink FileSink) error {
	s := m.Session(sid)
	if s == nil {
		return ErrSessionNotFound
	}
	if s.initiator || s.State() != Proposed {
		return ErrInvalidState
	}
	s.rq.Run(func() { s.accept(sink) })
	return nil
}

// Reject declines an incoming offer.
func (m *Manager) Reject(sid string) error {
	s := m.Session(sid)
	if s == nil {
		return ErrSessionNotFound
	}
	if s.initiator || s.State() != Proposed {
		return ErrInvalidState
	}
	s.rq.Run(s.reject)
	return nil
}

// Cancel aborts a session in any non terminal state.
func (m *Manager) Cancel(sid string) error {
	s := m.Session(sid)
	if s == nil {
		return ErrSessionNotFound
	}
	s.rq.Run(func() { s.terminate(ReasonCancel, true) })
	return nil
}

// Session returns an active session by its identifier.
func (m *Manager) Session(sid string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sid]
}

// HandleIQ processes Jingle, in-band bytestream and bytestreams requests.
// It returns false for anything it does not handle.
func (m *Manager) HandleIQ(_ context.Context, iq *xmpp.IQ) bool {
	if !iq.IsSet() {
		return false
	}
	p := iq.Payload()
	if p == nil {
		return false
	}
	peer, err := jid.Parse(iq.From())
	if err != nil {
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.JIDMalformed)))
		return true
	}
	switch p.Namespace() {
	case extension.JingleNamespace:
		m.handleJingle(iq, peer, p)
	case extension.IBBNamespace:
		m.handleIBB(iq, peer, p)
	case extension.BytestreamsNamespace:
		// standalone XEP-0065 negotiation is not supported, only its Jingle transport
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.FeatureNotImplemented)))
	default:
		return false
	}
	return true
}

func (m *Manager) handleJingle(iq *xmpp.IQ, peer jid.JID, elem *xmpp.Element) {
	j, err := parseJingle(elem)
	if err != nil {
		level.Debug(m.logger).Log("msg", "malformed jingle request", "from", peer.String(), "err", err)
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.BadRequest)))
		return
	}
	if j.Action == actionSessionInitiate {
		m.handleSessionInitiate(iq, peer, j)
		return
	}
	s := m.Session(j.SID)
	if s == nil || !s.peer.Equal(peer) {
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ItemNotFound)))
		return
	}
	m.reply(iq.ResultIQ())
	s.rq.Run(func() { s.handleJingle(j) })
}

func (m *Manager) handleSessionInitiate(iq *xmpp.IQ, peer jid.JID, j *jingleElement) {
	if j.File == nil || (j.S5B == nil && j.IBB == nil) {
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.FeatureNotImplemented)))
		return
	}
	if m.Session(j.SID) != nil {
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.Conflict)))
		return
	}
	s := newSession(m, j.SID, peer, m.sender.BoundJID(), false, *j.File)
	s.offer = j
	m.register(s)
	reportSession(false)

	m.reply(iq.ResultIQ())

	level.Info(s.logger).Log("msg", "received file offer", "name", s.file.Name, "size", s.file.Size)

	s.rq.Run(func() { s.runHook(hook.JingleSessionProposed) })
}

func (m *Manager) handleIBB(iq *xmpp.IQ, peer jid.JID, elem *xmpp.Element) {
	m.mu.RLock()
	s := m.ibbIdx[elem.Attribute("sid")]
	m.mu.RUnlock()

	if s == nil || !s.peer.Equal(peer) {
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ItemNotFound)))
		return
	}
	switch elem.Name() {
	case "open":
		s.rq.Run(func() { s.handleIBBOpen(iq, elem) })
	case "data":
		s.rq.Run(func() { s.handleIBBData(iq, elem) })
	case "close":
		s.rq.Run(func() { s.handleIBBClose(iq) })
	default:
		m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.BadRequest)))
	}
}

func (m *Manager) register(s *Session) {
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	if m.sessions[s.id] == s {
		delete(m.sessions, s.id)
	}
	if s.ibb != nil && m.ibbIdx[s.ibb.SID] == s {
		delete(m.ibbIdx, s.ibb.SID)
	}
	m.mu.Unlock()
}

func (m *Manager) indexIBB(sid string, s *Session) {
	m.mu.Lock()
	m.ibbIdx[sid] = s
	m.mu.Unlock()
}

func (m *Manager) newIBBTransport() *ibbTransport {
	return &ibbTransport{SID: uuid.New().String(), BlockSize: m.cfg.IBBBlockSize}
}

// capIBB lowers the block size proposed by a peer to the configured one.
func (m *Manager) capIBB(t *ibbTransport) *ibbTransport {
	ret := *t
	if ret.BlockSize > m.cfg.IBBBlockSize {
		ret.BlockSize = m.cfg.IBBBlockSize
	}
	return &ret
}

func (m *Manager) newLimiter() *rate.Limiter {
	if m.cfg.Bandwidth <= 0 {
		return nil
	}
	burst := m.cfg.BlockSize
	if m.cfg.IBBBlockSize > burst {
		burst = m.cfg.IBBBlockSize
	}
	return rate.NewLimiter(rate.Limit(m.cfg.Bandwidth), burst)
}

func (m *Manager) takeConn(dst, cid string) (net.Conn, bool) {
	if m.server == nil {
		return nil, false
	}
	return m.server.take(dst, cid)
}

func (m *Manager) forgetDst(dst string) {
	if m.server == nil || len(dst) == 0 {
		return
	}
	m.server.forget(dst)
}

func (m *Manager) reply(iq *xmpp.IQ) {
	_ = m.sender.Send(iq.Element)
}

// sendIQ sends iq and guarantees cb runs exactly once, even if the stream refused it.
func (m *Manager) sendIQ(iq *xmpp.IQ, cb delivery.ResponseHandler) {
	errCh := m.sender.SendIQ(context.Background(), iq, cb)
	go func() {
		if err := <-errCh; err != nil {
			cb(nil, err)
		}
	}()
}

// request sends a set IQ carrying payload and blocks until it is answered.
func (m *Manager) request(ctx context.Context, to string, payload *xmpp.Element) error {
	iq := xmpp.NewIQ(xmpp.NewID(), xmpp.SetType)
	iq.SetAttribute(xmpp.To, to)
	iq.AppendElement(payload)

	resCh := make(chan error, 1)
	m.sendIQ(iq, func(_ *xmpp.IQ, err error) { resCh <- err })
	select {
	case err := <-resCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

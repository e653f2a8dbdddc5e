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
	"crypto/subtle"
	"hash"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/hook"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/jid"
	"github.com/pkg/errors"
)

const (
	transportS5B = "s5b"
	transportIBB = "ibb"
)

// Session is a single file transfer negotiated over Jingle.
// All mutable state is owned by the session run queue.
type Session struct {
	id        string
	peer      jid.JID
	self      jid.JID
	initiator bool
	file      FileInfo

	m      *Manager
	rq     *runqueue.RunQueue
	logger kitlog.Logger

	state        uint32
	transferred  int64
	lastProgress int64

	mu     sync.RWMutex
	reason Reason
	done   chan Reason
	termCh chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	src       FileSource
	sink      FileSink
	committed bool
	verified  bool
	hasher    hash.Hash

	offer      *jingleElement
	s5bSID     string
	dst        string
	candidates []Candidate
	conn       net.Conn
	recvDone   chan struct{}
	transport  string

	ibb    *ibbTransport
	ibbSeq uint16
}

func newSession(m *Manager, id string, peer, self jid.JID, initiator bool, file FileInfo) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:        id,
		peer:      peer,
		self:      self,
		initiator: initiator,
		file:      file,
		m:         m,
		rq:        runqueue.New("jingle:" + id),
		logger:    kitlog.With(m.logger, "sid", id, "peer", peer.String()),
		done:      make(chan Reason, 1),
		termCh:    make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// ID returns the Jingle session identifier.
func (s *Session) ID() string { return s.id }

// Peer returns the full JID of the remote party.
func (s *Session) Peer() jid.JID { return s.peer }

// Initiator tells whether the local party offered the file.
func (s *Session) Initiator() bool { return s.initiator }

// File returns the offered file description.
func (s *Session) File() FileInfo { return s.file }

// State returns current session state.
func (s *Session) State() State {
	return State(atomic.LoadUint32(&s.state))
}

// Transferred returns the number of payload bytes moved so far.
func (s *Session) Transferred() int64 {
	return atomic.LoadInt64(&s.transferred)
}

// Reason returns the termination reason, or an empty one while the session is alive.
func (s *Session) Reason() Reason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reason
}

// Done delivers the termination reason once the session ends. The channel is closed afterwards.
func (s *Session) Done() <-chan Reason {
	return s.done
}

func (s *Session) setState(st State) {
	atomic.StoreUint32(&s.state, uint32(st))
	level.Debug(s.logger).Log("msg", "session state changed", "state", st.String())
}

func (s *Session) handleJingle(j *jingleElement) {
	if s.State() == Terminated {
		return
	}
	switch j.Action {
	case actionSessionAccept:
		s.handleSessionAccept(j)
	case actionTransportInfo:
		s.handleTransportInfo(j)
	case actionTransportReplace:
		s.handleTransportReplace(j)
	case actionTransportAccept:
		s.handleTransportAccept(j)
	case actionSessionTerminate:
		reason := j.Reason
		if len(reason) == 0 {
			reason = ReasonGeneralError
		}
		s.terminate(reason, false)
	default:
		level.Debug(s.logger).Log("msg", "ignoring jingle action", "action", j.Action)
	}
}

func (s *Session) initiate() {
	if s.State() != Proposed {
		return
	}
	j := &jingleElement{
		Action:    actionSessionInitiate,
		SID:       s.id,
		Initiator: s.self.String(),
		File:      &s.file,
	}
	if len(s.candidates) > 0 {
		j.S5B = &s5bTransport{SID: s.s5bSID, DstAddr: s.dst, Candidates: s.candidates}
	} else {
		s.ibb = s.m.newIBBTransport()
		j.IBB = s.ibb
	}
	s.request(j, func(_ *xmpp.IQ, err error) {
		if err != nil {
			s.failRequest(err)
			return
		}
		if s.State() == Proposed {
			s.setState(SessionInitiated)
		}
	})
}

// accept answers an incoming offer, starting transport negotiation.
func (s *Session) accept(sink FileSink) {
	if s.State() != Proposed {
		_ = sink.Abort()
		return
	}
	s.sink = sink
	s.resetHasher()
	s.setState(ContentAccepted)

	j := &jingleElement{Action: actionSessionAccept, SID: s.id}
	switch {
	case s.offer.S5B != nil:
		j.S5B = &s5bTransport{SID: s.offer.S5B.SID}
	case s.offer.IBB != nil:
		s.ibb = s.m.capIBB(s.offer.IBB)
		s.m.indexIBB(s.ibb.SID, s)
		j.IBB = s.ibb
	}
	s.request(j, s.ignoreResult)
	s.setState(TransportConnecting)

	if s.offer.S5B != nil {
		s.probeCandidates(s.offer.S5B)
	}
}

func (s *Session) reject() {
	if s.State() != Proposed {
		return
	}
	s.terminate(ReasonDecline, true)
}

func (s *Session) handleSessionAccept(j *jingleElement) {
	if !s.initiator || s.State() > SessionInitiated {
		level.Warn(s.logger).Log("msg", "unexpected session-accept")
		return
	}
	s.setState(ContentAccepted)
	s.setState(TransportConnecting)

	// an accept carrying only in-band transport means the peer cannot use bytestreams
	if j.IBB != nil && j.S5B == nil {
		if s.ibb == nil {
			s.ibb = j.IBB
		} else if j.IBB.BlockSize < s.ibb.BlockSize {
			s.ibb.BlockSize = j.IBB.BlockSize
		}
		s.m.forgetDst(s.dst)
		s.sendInBand()
	}
}

func (s *Session) handleTransportInfo(j *jingleElement) {
	if j.S5B == nil || s.State() != TransportConnecting {
		return
	}
	t := j.S5B
	switch {
	case s.initiator && len(t.CandidateUsed) > 0:
		s.useCandidate(t.CandidateUsed)
	case s.initiator && t.CandidateError:
		s.replaceTransport()
	case !s.initiator && len(t.Activated) > 0:
		level.Debug(s.logger).Log("msg", "proxy bytestream activated", "cid", t.Activated)
	case !s.initiator && t.ProxyError:
		level.Debug(s.logger).Log("msg", "proxy bytestream activation failed")
	}
}

func (s *Session) handleTransportReplace(j *jingleElement) {
	if s.initiator {
		return
	}
	if j.IBB == nil {
		s.terminate(ReasonFailedTransport, true)
		return
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil

		// the bytestream reader owns sink and hasher until it returns
		<-s.recvDone
		s.recvDone = nil
	}
	if s.Transferred() > 0 {
		level.Warn(s.logger).Log("msg", "transport replaced after payload was received", "received", s.Transferred())
		s.terminate(ReasonFailedTransport, true)
		return
	}
	s.transport = ""
	s.resetHasher()
	s.setState(TransportConnecting)

	s.ibb = s.m.capIBB(j.IBB)
	s.m.indexIBB(s.ibb.SID, s)
	s.request(&jingleElement{Action: actionTransportAccept, SID: s.id, IBB: s.ibb}, s.ignoreResult)
}

func (s *Session) handleTransportAccept(j *jingleElement) {
	if !s.initiator || s.ibb == nil || j.IBB == nil || j.IBB.SID != s.ibb.SID {
		return
	}
	if j.IBB.BlockSize < s.ibb.BlockSize {
		s.ibb.BlockSize = j.IBB.BlockSize
	}
	s.sendInBand()
}

// replaceTransport falls back to in-band bytestreams within the same session.
func (s *Session) replaceTransport() {
	s.m.forgetDst(s.dst)
	s.ibb = s.m.newIBBTransport()
	s.request(&jingleElement{Action: actionTransportReplace, SID: s.id, IBB: s.ibb}, s.ignoreResult)

	level.Info(s.logger).Log("msg", "falling back to in-band bytestream")
}

func (s *Session) finishReceive(n int64, err error) {
	if s.State() == Terminated {
		return
	}
	if err != nil || n < s.file.Size {
		level.Warn(s.logger).Log("msg", "bytestream closed before transfer completion", "received", n, "err", err)
		s.terminate(ReasonConnectivityError, true)
		return
	}
	if s.hasher != nil && subtle.ConstantTimeCompare(s.hasher.Sum(nil), s.file.Hash.Sum) != 1 {
		level.Warn(s.logger).Log("msg", "file digest mismatch", "algo", s.file.Hash.Algo)
		s.terminate(ReasonMediaError, true)
		return
	}
	if err := s.sink.Commit(); err != nil {
		level.Error(s.logger).Log("msg", "failed to commit received file", "err", err)
		s.terminate(ReasonGeneralError, true)
		return
	}
	s.committed = true
	s.verified = s.hasher != nil
	if !s.verified {
		level.Warn(s.logger).Log("msg", "received file committed without integrity check", "name", s.file.Name)
		reportUnverified()
	}
	s.terminate(ReasonSuccess, true)
}

// resetHasher starts a fresh running digest for the algorithm declared by the offer.
func (s *Session) resetHasher() {
	s.hasher = nil
	if len(s.file.Hash.Algo) == 0 {
		level.Warn(s.logger).Log("msg", "offer declares no supported digest, payload will not be verified")
		return
	}
	h, err := newHash(s.file.Hash.Algo)
	if err != nil {
		level.Warn(s.logger).Log("msg", "payload will not be verified", "err", err)
		return
	}
	s.hasher = h
}

func (s *Session) terminate(reason Reason, notify bool) {
	if s.State() == Terminated {
		return
	}
	s.cancel()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	if s.initiator {
		s.m.forgetDst(s.dst)
	}
	if c, ok := s.src.(io.Closer); ok {
		_ = c.Close()
	}
	if s.sink != nil && !s.committed {
		if err := s.sink.Abort(); err != nil {
			level.Warn(s.logger).Log("msg", "failed to discard partial file", "err", err)
		}
	}
	s.mu.Lock()
	s.reason = reason
	s.mu.Unlock()
	s.setState(Terminated)
	s.m.unregister(s)

	if notify {
		s.request(&jingleElement{Action: actionSessionTerminate, SID: s.id, Reason: reason}, s.ignoreResult)
	}
	level.Info(s.logger).Log("msg", "session terminated", "reason", string(reason), "transferred", s.Transferred())

	reportOutcome(s.initiator, s.transport, reason)
	if len(s.transport) > 0 {
		reportTransferred(s.initiator, s.transport, s.Transferred())
	}
	s.runHook(hook.JingleSessionTerminated)

	s.done <- reason
	close(s.done)
	close(s.termCh)
}

// failRequest terminates the session after a signaling request failed.
func (s *Session) failRequest(err error) {
	if s.State() == Terminated {
		return
	}
	if errors.Is(err, delivery.ErrTimeout) {
		s.terminate(ReasonTimeout, true)
		return
	}
	level.Warn(s.logger).Log("msg", "jingle request failed", "err", err)
	s.terminate(ReasonGeneralError, false)
}

func (s *Session) ignoreResult(_ *xmpp.IQ, err error) {
	if err != nil {
		level.Debug(s.logger).Log("msg", "jingle request failed", "err", err)
	}
}

// request sends j to the peer. cb runs on the session run queue.
func (s *Session) request(j *jingleElement, cb delivery.ResponseHandler) {
	iq := xmpp.NewIQ(xmpp.NewID(), xmpp.SetType)
	iq.SetAttribute(xmpp.To, s.peer.String())
	iq.AppendElement(j.element())

	s.m.sendIQ(iq, func(res *xmpp.IQ, err error) {
		s.rq.Run(func() { cb(res, err) })
	})
}

// addTransferred accounts n more payload bytes, raising a progress event at most once per interval.
func (s *Session) addTransferred(n int64) {
	total := atomic.AddInt64(&s.transferred, n)

	now := s.m.nowFn().UnixNano()
	last := atomic.LoadInt64(&s.lastProgress)
	if now-last < int64(s.m.cfg.ProgressInterval) && total < s.file.Size {
		return
	}
	if !atomic.CompareAndSwapInt64(&s.lastProgress, last, now) {
		return
	}
	s.rq.Run(func() {
		if s.State() != Transferring {
			return
		}
		s.runHook(hook.JingleTransferProgress)
	})
}

func (s *Session) runHook(name string) {
	if s.m.hooks == nil {
		return
	}
	_, err := s.m.hooks.Run(context.Background(), name, &hook.ExecutionContext{
		Info: &hook.JingleInfo{
			Account:     s.m.sender.BoundJID().Bare(),
			SessionID:   s.id,
			Peer:        s.peer,
			Initiator:   s.initiator,
			FileName:    s.file.Name,
			FileSize:    s.file.Size,
			Transport:   s.transport,
			Transferred: s.Transferred(),
			Reason:      string(s.Reason()),
			Verified:    s.verified,
		},
		Sender: s,
	})
	if err != nil {
		level.Warn(s.logger).Log("msg", "failed to run hook", "hook", name, "err", err)
	}
}

func since(t time.Time) float64 {
	return time.Since(t).Seconds()
}

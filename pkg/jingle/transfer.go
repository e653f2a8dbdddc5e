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

	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/util/ratelimiter"
	"github.com/ortuman/parley/pkg/xmpp"
	"golang.org/x/time/rate"
)

// progressWriter accounts every written byte to its session.
type progressWriter struct {
	s *Session
	w io.Writer
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	if n > 0 {
		pw.s.addTransferred(int64(n))
	}
	return n, err
}

// probeCandidates connects to the initiator candidates off the run queue and
// reports the outcome back into the session.
func (s *Session) probeCandidates(t *s5bTransport) {
	dst := dstAddr(t.SID, s.peer.String(), s.self.String())
	cands := t.Candidates
	ctx := s.ctx

	go func() {
		start := time.Now()
		cand, conn, err := s.m.prober.probe(ctx, cands, dst)
		reportProbe(err == nil, since(start))

		s.rq.Run(func() {
			// the transport may have been replaced while probing
			if s.State() != TransportConnecting || s.ibb != nil {
				if conn != nil {
					_ = conn.Close()
				}
				return
			}
			if err != nil {
				level.Info(s.logger).Log("msg", "no bytestream candidate reachable", "candidates", len(cands), "err", err)
				s.request(&jingleElement{
					Action: actionTransportInfo,
					SID:    s.id,
					S5B:    &s5bTransport{SID: t.SID, CandidateError: true},
				}, s.ignoreResult)
				return
			}
			s.request(&jingleElement{
				Action: actionTransportInfo,
				SID:    s.id,
				S5B:    &s5bTransport{SID: t.SID, CandidateUsed: cand.CID},
			}, s.ignoreResult)

			level.Info(s.logger).Log("msg", "bytestream established", "cid", cand.CID, "type", cand.Type, "address", cand.addr())
			s.receiveStream(conn)
		})
	}()
}

// useCandidate picks the candidate the responder managed to connect to.
func (s *Session) useCandidate(cid string) {
	var cand *Candidate
	for i := range s.candidates {
		if s.candidates[i].CID == cid {
			cand = &s.candidates[i]
			break
		}
	}
	if cand == nil {
		level.Warn(s.logger).Log("msg", "peer used an unknown candidate", "cid", cid)
		s.replaceTransport()
		return
	}
	if cand.Type != candidateProxy {
		conn, ok := s.m.takeConn(s.dst, cid)
		if !ok {
			level.Warn(s.logger).Log("msg", "no bytestream connection for candidate", "cid", cid)
			s.replaceTransport()
			return
		}
		s.sendStream(conn)
		return
	}
	s.m.forgetDst(s.dst)
	s.activateProxy(*cand)
}

// activateProxy connects to a proxy streamhost and asks it to start relaying.
func (s *Session) activateProxy(cand Candidate) {
	ctx := s.ctx
	dst := s.dst
	go func() {
		conn, err := s.m.prober.connect(ctx, cand, dst)
		if err == nil {
			err = s.m.request(ctx, cand.JID, bytestreamsActivate(s.s5bSID, s.peer.String()))
		}
		s.rq.Run(func() {
			if s.State() != TransportConnecting {
				if conn != nil {
					_ = conn.Close()
				}
				return
			}
			if err != nil {
				if conn != nil {
					_ = conn.Close()
				}
				level.Warn(s.logger).Log("msg", "failed to activate proxy bytestream", "proxy", cand.JID, "err", err)
				s.request(&jingleElement{
					Action: actionTransportInfo,
					SID:    s.id,
					S5B:    &s5bTransport{SID: s.s5bSID, ProxyError: true},
				}, s.ignoreResult)
				s.replaceTransport()
				return
			}
			s.request(&jingleElement{
				Action: actionTransportInfo,
				SID:    s.id,
				S5B:    &s5bTransport{SID: s.s5bSID, Activated: cand.CID},
			}, s.ignoreResult)
			s.sendStream(conn)
		})
	}()
}

// sendStream writes the whole file over conn. Completion is signaled by the receiver.
func (s *Session) sendStream(conn net.Conn) {
	s.conn = conn
	s.transport = transportS5B
	s.setState(Transferring)

	ctx, src, size := s.ctx, s.src, s.file.Size
	buf := make([]byte, s.m.cfg.BlockSize)
	w := &progressWriter{s: s, w: ratelimiter.NewWriter(ctx, conn, s.m.newLimiter())}

	go func() {
		_, err := io.CopyBuffer(w, io.LimitReader(src, size), buf)
		if err == nil {
			return
		}
		s.rq.Run(func() {
			level.Warn(s.logger).Log("msg", "bytestream write failed", "err", err)
			s.terminate(ReasonConnectivityError, true)
		})
	}()
}

// receiveStream reads exactly the announced file size from conn.
func (s *Session) receiveStream(conn net.Conn) {
	s.conn = conn
	s.transport = transportS5B
	s.setState(Transferring)

	var dst io.Writer = s.sink
	if s.hasher != nil {
		dst = io.MultiWriter(s.sink, s.hasher)
	}
	w := &progressWriter{s: s, w: dst}
	buf := make([]byte, s.m.cfg.BlockSize)
	size := s.file.Size

	done := make(chan struct{})
	s.recvDone = done

	// sink and hasher are handed over to this goroutine until done is closed
	go func() {
		n, err := io.CopyBuffer(w, io.LimitReader(conn, size), buf)
		close(done)

		s.rq.Run(func() {
			if s.conn != conn {
				return // superseded by a transport replacement
			}
			s.finishReceive(n, err)
		})
	}()
}

// sendInBand transfers the file as XEP-0047 data IQs, waiting for every block acknowledgement.
func (s *Session) sendInBand() {
	if s.ibb == nil || s.State() == Transferring {
		return
	}
	s.transport = transportIBB
	s.setState(Transferring)

	ctx, src, size, t := s.ctx, s.src, s.file.Size, *s.ibb
	to := s.peer.String()
	lim := s.m.newLimiter()

	go func() {
		err := s.m.request(ctx, to, ibbOpen(t.SID, t.BlockSize))
		if err == nil {
			err = s.sendBlocks(ctx, to, t, io.LimitReader(src, size), lim)
		}
		if err == nil {
			err = s.m.request(ctx, to, ibbClose(t.SID))
		}
		if err == nil {
			return
		}
		s.rq.Run(func() {
			level.Warn(s.logger).Log("msg", "in-band bytestream failed", "err", err)
			s.terminate(ReasonConnectivityError, true)
		})
	}()
}

func (s *Session) sendBlocks(ctx context.Context, to string, t ibbTransport, r io.Reader, lim *rate.Limiter) error {
	buf := make([]byte, t.BlockSize)
	var seq uint16
	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			if lim != nil {
				if err := lim.WaitN(ctx, n); err != nil {
					return err
				}
			}
			if err := s.m.request(ctx, to, ibbData(t.SID, seq, buf[:n])); err != nil {
				return err
			}
			s.addTransferred(int64(n))
			seq++ // wraps to zero after 65535
		}
		switch err {
		case nil:
			continue
		case io.EOF, io.ErrUnexpectedEOF:
			return nil
		default:
			return err
		}
	}
}

func (s *Session) handleIBBOpen(iq *xmpp.IQ, open *xmpp.Element) {
	if s.ibb == nil || s.State() != TransportConnecting {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.UnexpectedRequest)))
		return
	}
	bs, err := parseIBBTransport(open)
	if err != nil {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.BadRequest)))
		return
	}
	if bs.BlockSize > s.ibb.BlockSize {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ResourceConstraint)))
		return
	}
	s.ibb.BlockSize = bs.BlockSize
	s.ibbSeq = 0
	s.transport = transportIBB
	s.setState(Transferring)

	s.m.reply(iq.ResultIQ())
}

func (s *Session) handleIBBData(iq *xmpp.IQ, data *xmpp.Element) {
	if s.State() != Transferring || s.transport != transportIBB {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ItemNotFound)))
		return
	}
	seq, payload, err := parseIBBData(data)
	if err != nil || len(payload) > s.ibb.BlockSize {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.BadRequest)))
		s.terminate(ReasonConnectivityError, true)
		return
	}
	if seq != s.ibbSeq {
		level.Warn(s.logger).Log("msg", "out of order in-band block", "seq", seq, "expected", s.ibbSeq)
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.UnexpectedRequest)))
		s.terminate(ReasonConnectivityError, true)
		return
	}
	if s.Transferred()+int64(len(payload)) > s.file.Size {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.NotAcceptable)))
		s.terminate(ReasonMediaError, true)
		return
	}
	if _, err := s.sink.Write(payload); err != nil {
		level.Error(s.logger).Log("msg", "failed to write received block", "err", err)
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ResourceConstraint)))
		s.terminate(ReasonGeneralError, true)
		return
	}
	if s.hasher != nil {
		_, _ = s.hasher.Write(payload)
	}
	s.ibbSeq++
	s.addTransferred(int64(len(payload)))

	s.m.reply(iq.ResultIQ())
}

func (s *Session) handleIBBClose(iq *xmpp.IQ) {
	if s.State() != Transferring || s.transport != transportIBB {
		s.m.reply(iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ItemNotFound)))
		return
	}
	s.m.reply(iq.ResultIQ())
	s.finishReceive(s.Transferred(), nil)
}

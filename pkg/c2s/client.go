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
	"sync"
	"sync/atomic"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/runqueue/v2"
	"github.com/ortuman/parley/pkg/connectivity"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/hook"
	"github.com/ortuman/parley/pkg/session"
	"github.com/ortuman/parley/pkg/storage/repository"
	"github.com/ortuman/parley/pkg/transport"
	"github.com/ortuman/parley/pkg/trust"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/extension"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

// Account contains the credentials of an XMPP account.
type Account struct {
	// JID is the account bare JID.
	JID jid.JID

	Password string

	// Resource is the requested resource. Empty lets the server assign one.
	Resource string
}

// Dependencies bundles the collaborators used by a client.
type Dependencies struct {
	// Trust decides on server certificates. Defaults to system roots.
	Trust trust.Manager

	// Asker is consulted when Trust defers the decision to the user. May be nil.
	Asker trust.Asker

	// Connectivity is consulted before every connection attempt. Defaults to always available.
	Connectivity connectivity.Checker

	// Repository persists stream management state. May be nil.
	Repository repository.Repository

	// Hooks receives connection events. May be nil.
	Hooks *hook.Hooks

	// Registry is the extension registry. Defaults to extension.Default.
	Registry *extension.Registry
}

// IQHandler handles an inbound IQ request. It returns false if the request was not handled.
//
// Handlers run on the client control loop and must not block.
type IQHandler func(ctx context.Context, iq *xmpp.IQ) bool

// SendOption configures a Send invocation.
type SendOption func(*outbound)

// Important marks a stanza to be retained until the server acknowledges it.
// Messages are always important.
func Important() SendOption {
	return func(o *outbound) { o.important = true }
}

type outbound struct {
	elem      *xmpp.Element
	important bool
}

type smState struct {
	id        string
	location  string
	max       time.Duration
	updatedAt time.Time
	bound     jid.JID
	loaded    bool
}

// Client is the connection state machine of a single XMPP account.
//
// Every state transition runs on a per-account run queue, which is also the
// only write path to the underlying stream.
type Client struct {
	cfg     Config
	account Account
	deps    Dependencies
	logger  kitlog.Logger
	rq      *runqueue.RunQueue

	dialer    dialer
	sessionFn func(tr transport.Transport) streamSession
	queue     *delivery.Queue
	tracker   *delivery.Tracker
	ka        *keepAlive
	bo        *backoff
	act       *activity
	nowFn     func() time.Time

	mu       sync.RWMutex
	state    State
	boundJID jid.JID
	iqHnd    map[string]IQHandler

	// control loop owned fields
	gen         uint64
	tr          transport.Transport
	ss          streamSession
	flg         flags
	smOffered   bool
	sasl        *saslNegotiator
	bindID      string
	sm          smState
	offline     []outbound
	unacked     int
	disabled    bool
	closed      bool
	suspended   bool
	startedAt   time.Time
	dialCancel  context.CancelFunc
	kaTm        *time.Timer
	ackTm       *time.Timer
	reconnectTm *time.Timer
}

// New returns a disconnected client for account.
func New(cfg Config, account Account, deps Dependencies, logger kitlog.Logger) *Client {
	if deps.Trust == nil {
		deps.Trust = trust.NewSystem(nil)
	}
	if deps.Connectivity == nil {
		deps.Connectivity = connectivity.Static(true)
	}
	if deps.Registry == nil {
		deps.Registry = extension.Default
	}
	bare := account.JID.Bare().String()
	c := &Client{
		cfg:     cfg,
		account: account,
		deps:    deps,
		logger:  kitlog.With(logger, "account", bare),
		rq:      runqueue.New("c2s:" + bare),
		dialer:  newDialer(cfg),
		queue:   delivery.NewQueue(),
		ka:      newKeepAlive(cfg.KeepAlive),
		bo:      newBackoff(cfg.Reconnect),
		act:     &activity{},
		nowFn:   time.Now,
		iqHnd:   make(map[string]IQHandler),
	}
	c.tracker = delivery.NewTracker(c.rq.Run)
	c.sessionFn = func(tr transport.Transport) streamSession {
		return session.New(bare, account.JID.Domain(), tr, session.Config{
			MaxStanzaSize: cfg.MaxStanzaSize,
		}, c.act, c.logger)
	}
	return c
}

// Account returns client account.
func (c *Client) Account() Account {
	return c.account
}

// State returns current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// BoundJID returns the full JID assigned by the server. Zero if no resource has been bound yet.
func (c *Client) BoundJID() jid.JID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.boundJID
}

// RegisterIQHandler routes inbound IQ requests whose payload namespace is ns to h.
func (c *Client) RegisterIQHandler(ns string, h IQHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.iqHnd[ns] = h
}

// Connect starts connecting in background, reconnecting on failure until Disconnect is called.
// It also lifts a suspension caused by rejected credentials.
func (c *Client) Connect() {
	c.rq.Run(func() {
		if c.closed {
			return
		}
		c.disabled = false
		c.suspended = false
		c.bo.Reset()
		c.stopReconnect()

		ctx, cancel := c.requestContext()
		c.loadStreamState(ctx)
		cancel()

		c.connect()
	})
}

// Disconnect closes the stream on user request. Stream management state is discarded,
// so unacknowledged and queued stanzas are reported as not delivered.
func (c *Client) Disconnect(ctx context.Context) error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		errCh <- c.disconnect(ctx, ErrDisabled)
	})
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close disconnects the client and rejects any further operation.
func (c *Client) Close(ctx context.Context) error {
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		err := c.disconnect(ctx, ErrClosed)
		c.closed = true
		errCh <- err
	})
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Send writes stanza to the stream, or holds it until the client gets online.
// The returned channel is resolved once the stanza is written or queued.
func (c *Client) Send(stanza *xmpp.Element, opts ...SendOption) <-chan error {
	out := newOutbound(stanza, opts)
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		ctx, cancel := c.requestContext()
		defer cancel()
		errCh <- c.sendOrEnqueue(ctx, out)
	})
	return errCh
}

// SendIQ sends an IQ request and invokes cb exactly once, either with its response
// or with a failure. An IQ without id gets a generated one.
//
// cb runs on the client control loop and must not block.
func (c *Client) SendIQ(ctx context.Context, iq *xmpp.IQ, cb delivery.ResponseHandler, opts ...SendOption) <-chan error {
	if len(iq.ID()) == 0 {
		iq.SetAttribute(xmpp.ID, xmpp.NewID())
	}
	deadline := c.nowFn().Add(c.cfg.IQTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	out := newOutbound(iq.Element, opts)
	errCh := make(chan error, 1)
	c.rq.Run(func() {
		if err := c.sendable(); err != nil {
			errCh <- err
			return
		}
		c.tracker.Register(iq.ID(), iq.To(), deadline, cb)

		ctx, cancel := c.requestContext()
		defer cancel()
		errCh <- c.sendOrEnqueue(ctx, out)
	})
	return errCh
}

func newOutbound(stanza *xmpp.Element, opts []SendOption) outbound {
	out := outbound{
		elem:      stanza,
		important: stanza.Name() == xmpp.MessageName,
	}
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

func (c *Client) sendable() error {
	switch {
	case c.closed:
		return ErrClosed
	case c.disabled:
		return ErrDisabled
	}
	return nil
}

func (c *Client) sendOrEnqueue(ctx context.Context, out outbound) error {
	if err := c.sendable(); err != nil {
		return err
	}
	if c.State() != Online {
		c.offline = append(c.offline, out)
		return nil
	}
	c.sendOnline(ctx, out, true)
	return nil
}

func (c *Client) connect() {
	if c.closed || c.disabled || c.suspended || c.State() != Disconnected {
		return
	}
	ctx, cancel := c.requestContext()
	available := c.deps.Connectivity.Available(ctx)
	cancel()
	if !available {
		level.Info(c.logger).Log("msg", "no usable network path, postponing connection")
		c.scheduleConnect(c.cfg.Reconnect.InitialBackoff)
		return
	}
	c.gen++
	gen := c.gen

	c.flg.reset()
	c.startedAt = c.nowFn()
	c.setState(TCPConnecting, nil)

	var preferred string
	if c.resumable() {
		preferred = c.sm.location
	}
	dialCtx, dialCancel := context.WithCancel(context.Background())
	c.dialCancel = dialCancel

	transportType := transport.Socket
	if len(c.cfg.WebSocketURL) > 0 {
		transportType = transport.WebSocket
	}
	reportConnectAttempt(transportType.String())

	domain := c.account.JID.Domain()
	tlsCfg := c.tlsConfig(dialCtx)
	go func() {
		tr, err := c.dialer.Dial(dialCtx, domain, preferred, tlsCfg)
		c.rq.Run(func() {
			c.handleDialResult(gen, tr, err)
		})
	}()
}

func (c *Client) handleDialResult(gen uint64, tr transport.Transport, err error) {
	if gen != c.gen {
		if tr != nil {
			_ = tr.Close()
		}
		return
	}
	if c.dialCancel != nil {
		c.dialCancel()
		c.dialCancel = nil
	}
	if err != nil {
		c.fail(newError(Transport, err))
		return
	}
	c.tr = tr
	if _, ok := tr.ConnectionState(); ok {
		c.flg.secured = true
	}
	level.Info(c.logger).Log("msg", "connected to server", "transport", tr.Type().String(), "secured", c.flg.secured)

	c.ss = c.sessionFn(tr)
	c.setState(StreamOpening, nil)

	ctx, cancel := c.requestContext()
	defer cancel()
	if err := c.ss.OpenStream(ctx); err != nil {
		c.fail(newError(Transport, err))
		return
	}
	go c.readLoop(gen, c.ss)
}

func (c *Client) readLoop(gen uint64, ss streamSession) {
	for {
		elem, sErr := ss.Receive()

		cont := false
		doneCh := make(chan struct{})
		c.rq.Run(func() {
			defer close(doneCh)
			if gen != c.gen {
				return
			}
			cont = c.handleSessionResult(elem, sErr)
		})
		<-doneCh

		if !cont {
			return
		}
	}
}

func (c *Client) handleSessionResult(elem *xmpp.Element, sErr error) bool {
	ctx, cancel := c.requestContext()
	defer cancel()

	if sErr != nil {
		c.handleSessionError(ctx, sErr)
		return false
	}
	gen := c.gen
	t0 := c.nowFn()
	if err := c.handleElement(ctx, elem); err != nil {
		c.fail(err)
		return false
	}
	if xmpp.IsStanza(elem) {
		reportIncomingStanza(elem.Name(), elem.Type(), time.Since(t0).Seconds())
	}
	return gen == c.gen
}

func (c *Client) handleSessionError(ctx context.Context, err error) {
	switch err := err.(type) {
	case *xmpp.StreamError:
		if err.Err != nil {
			// locally detected, let the server know before closing
			_ = c.ss.Send(ctx, err.Element())
		}
		kind := Protocol
		if err.Condition == xmpp.StreamConnectionTimeout {
			kind = Transport
		}
		c.fail(&Error{Kind: kind, Condition: string(err.Condition), Err: err})

	default:
		if err == session.ErrStreamClosedByPeer {
			_ = c.ss.Close(ctx)
		}
		c.fail(newError(Transport, err))
	}
}

// fail tears down current connection and decides whether to reconnect.
func (c *Client) fail(err error) {
	ctx, cancel := c.requestContext()
	defer cancel()

	kind := KindOf(err)
	prev := c.State()
	level.Warn(c.logger).Log("msg", "connection failed", "kind", kind.String(), "state", prev.String(), "err", err)
	reportConnectionFailure(kind, prev)

	c.teardown(ctx, false)

	if kind.IsAuth() {
		c.runHook(ctx, hook.C2SAuthFailed, &hook.C2SInfo{Err: err})
	}
	c.setState(Disconnected, err)

	switch kind {
	case AuthCredentials, AuthMechanism:
		c.suspended = true
		level.Error(c.logger).Log("msg", "authentication rejected, reconnection suspended", "err", err)
	default:
		c.scheduleReconnect(ctx)
	}
}

func (c *Client) disconnect(ctx context.Context, reason error) error {
	c.disabled = true
	c.stopReconnect()

	if c.ss != nil || c.State() != Disconnected {
		c.teardown(ctx, true)
		c.setState(Disconnected, nil)
	}
	c.discardStreamState(ctx, ErrNotDelivered)
	c.failOffline(ctx, reason)
	c.tracker.FailAll(reason)
	return nil
}

// teardown releases the connection. On a graceful teardown the stream is closed
// and any stream management state dropped, otherwise resumable state is kept.
func (c *Client) teardown(ctx context.Context, graceful bool) {
	c.gen++
	c.setState(Disconnecting, nil)
	c.stopTimers()

	if c.dialCancel != nil {
		c.dialCancel()
		c.dialCancel = nil
	}
	if c.ss != nil && graceful {
		_ = c.ss.Close(ctx)
	}
	if c.tr != nil {
		_ = c.tr.Close()
	}
	if !graceful && c.flg.smEnabled {
		if c.resumable() {
			c.persistStreamState(ctx)
		} else {
			c.discardStreamState(ctx, ErrNotDelivered)
		}
	}
	c.tr = nil
	c.ss = nil
	c.sasl = nil
	c.unacked = 0
	c.flg.reset()
}

func (c *Client) scheduleReconnect(ctx context.Context) {
	if c.closed || c.disabled {
		return
	}
	d, ok := c.bo.Next()
	if !ok {
		level.Error(c.logger).Log("msg", "giving up reconnecting", "attempts", c.bo.Attempt())
		c.setState(Disconnected, ErrReconnectExhausted)
		c.failOffline(ctx, ErrReconnectExhausted)
		c.tracker.FailAll(ErrReconnectExhausted)
		return
	}
	level.Info(c.logger).Log("msg", "scheduling reconnection", "attempt", c.bo.Attempt(), "backoff", d)
	c.scheduleConnect(d)
}

func (c *Client) scheduleConnect(d time.Duration) {
	c.stopReconnect()
	c.reconnectTm = time.AfterFunc(d, func() {
		c.rq.Run(func() {
			c.reconnectTm = nil
			c.connect()
		})
	})
}

func (c *Client) stopReconnect() {
	if c.reconnectTm != nil {
		c.reconnectTm.Stop()
		c.reconnectTm = nil
	}
}

func (c *Client) stopTimers() {
	if c.kaTm != nil {
		c.kaTm.Stop()
		c.kaTm = nil
	}
	if c.ackTm != nil {
		c.ackTm.Stop()
		c.ackTm = nil
	}
}

func (c *Client) send(ctx context.Context, elem *xmpp.Element) error {
	if err := c.ss.Send(ctx, elem); err != nil {
		return newError(Transport, err)
	}
	return nil
}

func (c *Client) tlsConfig(ctx context.Context) *tls.Config {
	return trust.TLSConfig(ctx, c.account.JID.Domain(), c.deps.Trust, c.deps.Asker)
}

func (c *Client) failOffline(ctx context.Context, reason error) {
	if len(c.offline) == 0 {
		return
	}
	for _, out := range c.offline {
		c.runHook(ctx, hook.C2SDeliveryFailed, &hook.C2SInfo{Element: out.elem, Err: reason})
	}
	reportDeliveryOutcome("failed", len(c.offline))
	c.offline = nil
}

func (c *Client) setState(st State, err error) {
	c.mu.Lock()
	prev := c.state
	c.state = st
	if st < ResourceBinding || st == Disconnecting {
		c.boundJID = jid.JID{}
	}
	c.mu.Unlock()

	if prev == st && err == nil {
		return
	}
	level.Debug(c.logger).Log("msg", "state changed", "from", prev.String(), "to", st.String())

	ctx, cancel := c.requestContext()
	defer cancel()
	c.runHook(ctx, hook.C2SStateChanged, &hook.C2SInfo{
		State:         st.String(),
		PreviousState: prev.String(),
		Err:           err,
	})
}

func (c *Client) setBoundJID(j jid.JID) {
	c.mu.Lock()
	c.boundJID = j
	c.mu.Unlock()
}

func (c *Client) iqHandler(ns string) IQHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.iqHnd[ns]
}

func (c *Client) runHook(ctx context.Context, hookName string, inf *hook.C2SInfo) bool {
	if c.deps.Hooks == nil {
		return false
	}
	inf.Account = c.account.JID.Bare()
	inf.BoundJID = c.BoundJID()
	halted, err := c.deps.Hooks.Run(ctx, hookName, &hook.ExecutionContext{
		Info:   inf,
		Sender: c,
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to run hook", "hook", hookName, "err", err)
	}
	return halted
}

func (c *Client) requestContext() (context.Context, context.CancelFunc) {
	return withTimeout(context.Background(), c.cfg.RequestTimeout)
}

// activity records the last time the stream showed signs of life.
type activity struct {
	last int64
}

func (a *activity) Alive() {
	atomic.StoreInt64(&a.last, time.Now().UnixNano())
}

func (a *activity) Waiting() {}

func (a *activity) lastSeen() time.Time {
	return time.Unix(0, atomic.LoadInt64(&a.last))
}

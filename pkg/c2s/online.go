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
	"fmt"
	"time"

	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/hook"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/extension"
	"github.com/pkg/errors"
)

// goOnline completes negotiation. replay contains the stanzas left unacknowledged
// by a resumed stream, which are written before anything queued while offline.
func (c *Client) goOnline(ctx context.Context, replay []delivery.Entry) error {
	resumed := c.State() == Resuming
	c.setState(Online, nil)
	c.bo.Reset()
	reportOnline(resumed, c.nowFn().Sub(c.startedAt).Seconds())

	level.Info(c.logger).Log("msg", "online", "jid", c.BoundJID().String(), "sm", c.flg.smEnabled)

	// re-enqueue everything before writing, so a write failure keeps them all resumable
	for _, e := range replay {
		c.queue.Enqueue(e.Stanza)
	}
	for _, e := range replay {
		if err := c.ss.Send(ctx, e.Stanza); err != nil {
			return newError(Transport, err)
		}
		reportOutgoingStanza(e.Stanza.Name(), e.Stanza.Type())
	}
	if len(replay) > 0 {
		c.requestAck(ctx)
	}
	if err := c.flushOffline(ctx); err != nil {
		return err
	}
	c.act.Alive()
	c.armKeepAlive()
	c.armAck()

	c.runHook(ctx, hook.C2SOnline, &hook.C2SInfo{State: Online.String()})
	return nil
}

func (c *Client) flushOffline(ctx context.Context) error {
	pending := c.offline
	c.offline = nil
	for i, out := range pending {
		retained, err := c.sendStanza(ctx, out)
		if err == nil {
			continue
		}
		rest := pending[i+1:]
		if !retained {
			rest = pending[i:]
		}
		c.offline = append(rest, c.offline...)
		return newError(Transport, err)
	}
	return nil
}

// sendOnline writes out while online. On a write failure an application stanza
// not retained for resumption is queued again, so it is never silently lost.
func (c *Client) sendOnline(ctx context.Context, out outbound, requeue bool) {
	retained, err := c.sendStanza(ctx, out)
	if err == nil {
		return
	}
	if requeue && !retained {
		c.offline = append(c.offline, out)
	}
	c.fail(newError(Transport, err))
}

func (c *Client) sendStanza(ctx context.Context, out outbound) (retained bool, err error) {
	if c.flg.smEnabled && xmpp.IsStanza(out.elem) {
		if out.important {
			c.queue.Enqueue(out.elem)
			retained = true
		} else {
			c.queue.Skip()
		}
	}
	if err := c.ss.Send(ctx, out.elem); err != nil {
		return retained, err
	}
	reportOutgoingStanza(out.elem.Name(), out.elem.Type())

	if retained {
		c.persistStreamState(ctx)

		c.unacked++
		if max := c.cfg.StreamManagement.MaxUnacked; max > 0 && c.unacked >= max {
			c.requestAck(ctx)
		}
	}
	return retained, nil
}

func (c *Client) requestAck(ctx context.Context) {
	if !c.flg.smEnabled {
		return
	}
	c.unacked = 0
	if err := c.ss.Send(ctx, extension.NewSMRequest()); err != nil {
		c.fail(newError(Transport, err))
	}
}

func (c *Client) handleOnline(ctx context.Context, elem *xmpp.Element) {
	switch c.deps.Registry.TypeOf(elem) {
	case extension.SMRequest:
		if c.flg.smEnabled {
			if err := c.ss.Send(ctx, extension.NewSMAnswer(c.queue.InboundH())); err != nil {
				c.fail(newError(Transport, err))
			}
		}
		return

	case extension.SMAnswer:
		if h, ok := extension.ParseH(elem); ok && c.flg.smEnabled {
			c.confirm(ctx, c.queue.Acknowledge(h))
			c.persistStreamState(ctx)
		}
		return
	}
	if !xmpp.IsStanza(elem) {
		level.Debug(c.logger).Log("msg", "dropping unrecognized element", "name", elem.Name())
		return
	}
	if c.flg.smEnabled {
		c.queue.IncInbound()
	}
	switch elem.Name() {
	case xmpp.MessageName:
		c.runHook(ctx, hook.C2SMessageReceived, &hook.C2SInfo{Element: elem})

	case xmpp.PresenceName:
		c.runHook(ctx, hook.C2SPresenceReceived, &hook.C2SInfo{Element: elem})

	case xmpp.IQName:
		c.handleIQ(ctx, elem)
	}
}

func (c *Client) handleIQ(ctx context.Context, elem *xmpp.Element) {
	iq, err := xmpp.NewIQFromElement(elem)
	if err != nil {
		level.Warn(c.logger).Log("msg", "dropping malformed IQ", "err", err)
		return
	}
	if iq.IsResponse() {
		if !c.tracker.Resolve(iq, c.BoundJID()) {
			level.Debug(c.logger).Log("msg", "dropping unsolicited IQ response", "id", iq.ID())
		}
		return
	}
	var ns string
	if p := iq.Payload(); p != nil {
		ns = p.Namespace()
	}
	if ns == extension.PingNamespace && iq.IsGet() {
		c.sendOnline(ctx, outbound{elem: iq.ResultIQ().Element}, false)
		return
	}
	if h := c.iqHandler(ns); h != nil && c.runIQHandler(ctx, h, iq) {
		return
	}
	if c.runHook(ctx, hook.C2SIQReceived, &hook.C2SInfo{Element: elem}) {
		return
	}
	c.sendOnline(ctx, outbound{elem: iq.ErrorIQ(xmpp.NewStanzaError(xmpp.ServiceUnavailable)).Element}, false)
}

// runIQHandler isolates handler panics, so a faulty handler never tears down the stream.
func (c *Client) runIQHandler(ctx context.Context, h IQHandler, iq *xmpp.IQ) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(c.logger).Log("msg", "IQ handler panic", "err", fmt.Sprint(r), "id", iq.ID())
			handled = false
		}
	}()
	return h(ctx, iq)
}

func (c *Client) armAck() {
	interval := c.cfg.StreamManagement.AckInterval
	if !c.flg.smEnabled || interval <= 0 {
		return
	}
	gen := c.gen
	c.ackTm = time.AfterFunc(interval, func() {
		c.rq.Run(func() {
			if gen != c.gen || c.State() != Online {
				return
			}
			if c.queue.Len() > 0 {
				ctx, cancel := c.requestContext()
				c.requestAck(ctx)
				cancel()
				if gen != c.gen {
					return
				}
			}
			c.armAck()
		})
	})
}

func (c *Client) armKeepAlive() {
	c.armKeepAliveIn(c.ka.Interval())
}

func (c *Client) armKeepAliveIn(d time.Duration) {
	if c.kaTm != nil {
		c.kaTm.Stop()
	}
	gen := c.gen
	c.kaTm = time.AfterFunc(d, func() {
		c.rq.Run(func() {
			c.onKeepAlive(gen)
		})
	})
}

func (c *Client) onKeepAlive(gen uint64) {
	if gen != c.gen || c.State() != Online {
		return
	}
	idle := c.nowFn().Sub(c.act.lastSeen())
	if interval := c.ka.Interval(); idle < interval {
		c.armKeepAliveIn(interval - idle)
		return
	}
	ctx, cancel := c.requestContext()
	defer cancel()

	ping := extension.NewPing(c.account.JID.Domain())
	c.tracker.Register(ping.ID(), ping.To(), c.nowFn().Add(c.cfg.KeepAlive.PingTimeout), func(iq *xmpp.IQ, err error) {
		if gen != c.gen {
			return
		}
		switch {
		case iq != nil:
			// any answer, even an error one, proves the stream is alive
			c.ka.succeeded()
			reportPing("ok")
			c.armKeepAlive()

		case errors.Is(err, delivery.ErrTimeout):
			c.ka.failed()
			reportPing("timeout")
			c.fail(newError(Transport, ErrPingTimeout))
		}
	})
	c.sendOnline(ctx, outbound{elem: ping.Element}, false)
}

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
	"strings"

	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/transport"
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/extension"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

const (
	streamName         = "stream:stream"
	streamFeaturesName = "stream:features"
	openName           = "open"
	startTLSName       = "starttls"
	proceedName        = "proceed"
	bindName           = "bind"
	resourceName       = "resource"
	jidName            = "jid"
	smFeatureName      = "sm"
)

func (c *Client) handleElement(ctx context.Context, elem *xmpp.Element) error {
	switch c.State() {
	case StreamOpening:
		return c.handleStreamOpening(ctx, elem)
	case TLSNegotiating:
		return c.handleTLSNegotiating(ctx, elem)
	case SASLNegotiating:
		return c.handleSASLNegotiating(ctx, elem)
	case ResourceBinding:
		return c.handleResourceBinding(ctx, elem)
	case StreamManagementEnabling:
		return c.handleStreamManagementEnabling(ctx, elem)
	case Resuming:
		return c.handleResuming(ctx, elem)
	case Online:
		c.handleOnline(ctx, elem)
	}
	return nil
}

func (c *Client) handleStreamOpening(ctx context.Context, elem *xmpp.Element) error {
	switch {
	case elem.Name() == streamName:
		return nil // stream header
	case elem.Name() == openName && elem.Namespace() == xmpp.FramingNamespace:
		return nil // websocket stream header
	case elem.Name() == streamFeaturesName:
		return c.handleFeatures(ctx, elem)
	}
	return newError(Protocol, errUnexpectedElement)
}

func (c *Client) handleFeatures(ctx context.Context, features *xmpp.Element) error {
	if !c.flg.secured {
		if features.ChildNamespace(startTLSName, xmpp.TLSNamespace) != nil && c.tr.Type() == transport.Socket {
			c.setState(TLSNegotiating, nil)
			return c.send(ctx, xmpp.NewElementNamespace(startTLSName, xmpp.TLSNamespace))
		}
		if !c.cfg.AllowPlaintext {
			return newError(Protocol, ErrTLSRequired)
		}
		level.Warn(c.logger).Log("msg", "negotiating an unencrypted stream")
	}
	if !c.flg.authenticated {
		var cs *tls.ConnectionState
		if st, ok := c.tr.ConnectionState(); ok {
			cs = &st
		}
		c.sasl = newSASLNegotiator(c.cfg.Mechanisms, c.account.JID.Node(), c.account.Password)
		auth, err := c.sasl.start(offeredMechanisms(features), cs)
		if err != nil {
			return err
		}
		c.setState(SASLNegotiating, nil)
		return c.send(ctx, auth)
	}
	c.smOffered = !c.cfg.StreamManagement.Disabled &&
		features.ChildNamespace(smFeatureName, extension.StreamManagementNamespace) != nil

	if c.smOffered && c.resumable() {
		c.setState(Resuming, nil)
		return c.send(ctx, extension.NewSMResume(c.sm.id, c.queue.InboundH()))
	}
	// nothing to resume
	c.discardStreamState(ctx, ErrNotDelivered)
	return c.bind(ctx)
}

func (c *Client) handleTLSNegotiating(ctx context.Context, elem *xmpp.Element) error {
	if elem.Namespace() != xmpp.TLSNamespace {
		return newError(Protocol, errUnexpectedElement)
	}
	if elem.Name() != proceedName {
		return &Error{Kind: Protocol, Condition: elem.Name(), Err: errUnexpectedElement}
	}
	hsCtx, cancel := withTimeout(context.Background(), c.cfg.TLSHandshakeTimeout)
	defer cancel()

	if err := c.tr.StartTLS(hsCtx, c.tlsConfig(hsCtx)); err != nil {
		return newError(Transport, err)
	}
	c.flg.secured = true
	level.Info(c.logger).Log("msg", "stream secured")

	return c.restartStream(ctx)
}

func (c *Client) handleSASLNegotiating(ctx context.Context, elem *xmpp.Element) error {
	if elem.Namespace() != xmpp.SASLNamespace {
		return newError(Protocol, errUnexpectedElement)
	}
	switch elem.Name() {
	case challengeName:
		resp, err := c.sasl.challenge(elem)
		if err != nil {
			return err
		}
		return c.send(ctx, resp)

	case successName:
		if err := c.sasl.success(elem); err != nil {
			return err
		}
		c.flg.authenticated = true
		level.Info(c.logger).Log("msg", "authenticated", "mechanism", c.sasl.mech)

		return c.restartStream(ctx)

	case failureName:
		sErr := c.sasl.failure(elem)
		if sErr.Kind == AuthMechanism {
			failed := c.sasl.mech
			auth, err := c.sasl.next()
			if err == nil {
				level.Info(c.logger).Log("msg", "SASL mechanism failed, trying next one", "mechanism", failed, "condition", sErr.Condition)
				return c.send(ctx, auth)
			}
		}
		return sErr
	}
	return newError(Protocol, errUnexpectedElement)
}

func (c *Client) bind(ctx context.Context) error {
	c.bindID = xmpp.NewID()

	b := xmpp.NewElementNamespace(bindName, xmpp.BindNamespace)
	if len(c.account.Resource) > 0 {
		b.AppendElement(xmpp.NewElementName(resourceName).SetText(c.account.Resource))
	}
	iq := xmpp.NewIQ(c.bindID, xmpp.SetType)
	iq.AppendElement(b)

	c.setState(ResourceBinding, nil)
	return c.send(ctx, iq.Element)
}

func (c *Client) handleResourceBinding(ctx context.Context, elem *xmpp.Element) error {
	if elem.Name() != xmpp.IQName || elem.ID() != c.bindID {
		return newError(Protocol, errUnexpectedElement)
	}
	iq, err := xmpp.NewIQFromElement(elem)
	if err != nil {
		return newError(Protocol, err)
	}
	if iq.IsError() {
		bErr := &Error{Kind: Protocol, Err: errBindFailed}
		if se := xmpp.NewStanzaErrorFromElement(iq.Element); se != nil {
			bErr.Condition = string(se.Condition)
		}
		return bErr
	}
	var jidStr string
	if b := iq.ChildNamespace(bindName, xmpp.BindNamespace); b != nil {
		if j := b.Child(jidName); j != nil {
			jidStr = strings.TrimSpace(j.Text())
		}
	}
	bound, err := jid.Parse(jidStr)
	if err != nil || !bound.IsFull() {
		return &Error{Kind: Protocol, Err: errBindFailed}
	}
	c.flg.bound = true
	c.setBoundJID(bound)
	level.Info(c.logger).Log("msg", "resource bound", "jid", bound.String())

	if !c.smOffered {
		return c.goOnline(ctx, nil)
	}
	// fresh stream, counters start over
	c.queue.Drain()
	c.setState(StreamManagementEnabling, nil)
	return c.send(ctx, extension.NewSMEnable(!c.cfg.StreamManagement.DisableResume))
}

func (c *Client) handleStreamManagementEnabling(ctx context.Context, elem *xmpp.Element) error {
	switch c.deps.Registry.TypeOf(elem) {
	case extension.SMEnabled:
		info := extension.ParseSMEnabled(elem)
		c.flg.smEnabled = true
		if info.Resume && len(info.ID) > 0 {
			c.sm = smState{
				id:       info.ID,
				location: normalizeLocation(info.Location),
				max:      info.Max,
				bound:    c.BoundJID(),
				loaded:   true,
			}
			c.persistStreamState(ctx)
		}
		level.Info(c.logger).Log("msg", "stream management enabled", "resumable", len(c.sm.id) > 0)

	case extension.SMFailed:
		level.Warn(c.logger).Log("msg", "failed to enable stream management", "condition", extension.SMFailedCondition(elem))

	default:
		return newError(Protocol, errUnexpectedElement)
	}
	return c.goOnline(ctx, nil)
}

func (c *Client) handleResuming(ctx context.Context, elem *xmpp.Element) error {
	switch c.deps.Registry.TypeOf(elem) {
	case extension.SMResumed:
		h, ok := extension.ParseH(elem)
		if !ok {
			return newError(Protocol, errUnexpectedElement)
		}
		c.confirm(ctx, c.queue.Acknowledge(h))
		replay := c.queue.Requeue(h)

		c.flg.smEnabled = true
		c.flg.bound = true
		c.setBoundJID(c.resumedJID())
		level.Info(c.logger).Log("msg", "stream resumed", "h", h, "replayed", len(replay))

		return c.goOnline(ctx, replay)

	case extension.SMFailed:
		level.Info(c.logger).Log("msg", "stream resumption rejected", "condition", extension.SMFailedCondition(elem))
		if h, ok := extension.ParseH(elem); ok {
			c.confirm(ctx, c.queue.Acknowledge(h))
		}
		c.discardStreamState(ctx, ErrResumptionRejected)
		return c.bind(ctx)
	}
	return newError(Protocol, errUnexpectedElement)
}

func (c *Client) restartStream(ctx context.Context) error {
	c.ss.Reset(c.tr)
	c.setState(StreamOpening, nil)
	if err := c.ss.OpenStream(ctx); err != nil {
		return newError(Transport, err)
	}
	return nil
}

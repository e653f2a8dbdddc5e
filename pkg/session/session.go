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

package session

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/parser"
	"github.com/ortuman/parley/pkg/transport"
	"github.com/ortuman/parley/pkg/util/ratelimiter"
	"github.com/ortuman/parley/pkg/xmpp"
)

const envLogStanzas = "PARLEY_LOG_STANZAS"

var logStanzas bool

func init() {
	logStanzas = os.Getenv(envLogStanzas) == "on"
}

const (
	streamName      = "stream:stream"
	streamErrorName = "stream:error"
	openName        = "open"
	closeName       = "close"
)

var (
	errAlreadyOpened = errors.New("session: already opened")
	errAlreadyClosed = errors.New("session: already closed")
)

// ErrStreamClosedByPeer is returned by Receive once the server closes the stream.
var ErrStreamClosedByPeer = errors.New("session: stream closed by peer")

// Config structure is used to establish XMPP session configuration.
type Config struct {
	// MaxStanzaSize defines the maximum stanza size that can be read from the session transport.
	MaxStanzaSize int

	// Language is the xml:lang attribute sent in stream headers.
	Language string
}

// Session represents an initiating entity XML stream over a transport.
type Session struct {
	id       string
	domain   string
	cfg      Config
	tr       transport.Transport
	pr       xmppParser
	liveness parser.Liveness
	logger   kitlog.Logger

	streamID string
	opened   bool
	started  bool
}

// New creates a new session instance targeting domain.
// liveness may be nil.
func New(identifier, domain string, tr transport.Transport, cfg Config, liveness parser.Liveness, logger kitlog.Logger) *Session {
	ss := &Session{
		id:       identifier,
		domain:   domain,
		cfg:      cfg,
		tr:       tr,
		liveness: liveness,
		logger:   logger,
	}
	ss.pr = ss.newParser(tr)
	return ss
}

// StreamID returns the stream identifier assigned by the server.
func (ss *Session) StreamID() string {
	return ss.streamID
}

// Transport returns the underlying session transport.
func (ss *Session) Transport() transport.Transport {
	return ss.tr
}

// OpenStream sends the stream opening header.
func (ss *Session) OpenStream(ctx context.Context) error {
	if ss.opened {
		return errAlreadyOpened
	}
	buf := &strings.Builder{}

	var hdr *xmpp.Element
	switch ss.tr.Type() {
	case transport.WebSocket:
		hdr = xmpp.NewElementNamespace(openName, xmpp.FramingNamespace)
	default:
		hdr = xmpp.NewElementNamespace(streamName, xmpp.JabberClientNamespace)
		hdr.SetAttribute(xmpp.StreamNamespace, xmpp.StreamsNamespace)
		buf.WriteString(`<?xml version='1.0'?>`)
	}
	hdr.SetAttribute(xmpp.To, ss.domain)
	hdr.SetAttribute(xmpp.Version, "1.0")
	if len(ss.cfg.Language) > 0 {
		hdr.SetAttribute(xmpp.Language, ss.cfg.Language)
	}

	var err error
	if ss.tr.Type() == transport.WebSocket {
		err = hdr.ToXML(buf, true)
	} else {
		err = parser.WriteStartTag(buf, hdr)
	}
	if err != nil {
		return err
	}
	if err := ss.sendString(ctx, buf.String()); err != nil {
		return err
	}
	ss.opened = true
	return nil
}

// Close sends the stream closing element.
func (ss *Session) Close(ctx context.Context) error {
	if !ss.opened {
		return errAlreadyClosed
	}
	var outStr string
	switch ss.tr.Type() {
	case transport.WebSocket:
		outStr = xmpp.NewElementNamespace(closeName, xmpp.FramingNamespace).String()
	default:
		outStr = "</" + streamName + ">"
	}
	if err := ss.sendString(ctx, outStr); err != nil {
		return err
	}
	ss.opened = false
	ss.started = false
	return nil
}

// Send writes an XML element to the underlying session transport.
func (ss *Session) Send(ctx context.Context, elem *xmpp.Element) error {
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("SND(%s): %v", ss.id, elem))
	}
	ss.setWriteDeadline(ctx)
	if err := parser.WriteElement(ss.tr, elem); err != nil {
		return err
	}
	return ss.tr.Flush()
}

// Receive returns next incoming element.
//
// The first element returned after opening a stream is the server stream header.
// A received stream error is returned as a *xmpp.StreamError.
func (ss *Session) Receive() (*xmpp.Element, error) {
	elem, err := ss.pr.Parse()
	if err != nil {
		return nil, mapErrorToSessionError(err)
	}
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("RCV(%s): %v", ss.id, elem))
	}
	if elem.Name() == streamErrorName {
		return nil, xmpp.NewStreamErrorFromElement(elem)
	}
	if ss.tr.Type() == transport.WebSocket && elem.Name() == closeName && elem.Namespace() == xmpp.FramingNamespace {
		return nil, ErrStreamClosedByPeer
	}
	if !ss.started {
		if err := ss.validateStreamElement(elem); err != nil {
			return nil, err
		}
		ss.streamID = elem.ID()
		ss.started = true
		return elem, nil
	}
	if xmpp.IsStanza(elem) {
		if err := validateNamespace(elem); err != nil {
			return nil, err
		}
	}
	return elem, nil
}

// Reset restarts the stream over tr, as required after STARTTLS or SASL success.
func (ss *Session) Reset(tr transport.Transport) {
	ss.tr = tr
	ss.pr = ss.newParser(tr)
	ss.streamID = ""
	ss.opened = false
	ss.started = false
}

func (ss *Session) sendString(ctx context.Context, str string) error {
	if logStanzas {
		level.Debug(ss.logger).Log("msg", fmt.Sprintf("SND(%s): %v", ss.id, str))
	}
	ss.setWriteDeadline(ctx)
	if _, err := ss.tr.WriteString(str); err != nil {
		return err
	}
	return ss.tr.Flush()
}

func (ss *Session) validateStreamElement(elem *xmpp.Element) error {
	switch ss.tr.Type() {
	case transport.WebSocket:
		if elem.Name() != openName {
			return xmpp.NewStreamError(xmpp.StreamUnsupportedStanzaType)
		}
		if elem.Namespace() != xmpp.FramingNamespace {
			return xmpp.NewStreamError(xmpp.StreamInvalidNamespace)
		}
	default:
		if elem.Name() != streamName {
			return xmpp.NewStreamError(xmpp.StreamUnsupportedStanzaType)
		}
		ns := elem.Attribute(xmpp.Namespace)
		streamNs := elem.Attribute(xmpp.StreamNamespace)
		if ns != xmpp.JabberClientNamespace || streamNs != xmpp.StreamsNamespace {
			return xmpp.NewStreamError(xmpp.StreamInvalidNamespace)
		}
	}
	if from := elem.From(); len(from) > 0 && !strings.EqualFold(from, ss.domain) {
		return xmpp.NewStreamError(xmpp.StreamHostUnknown)
	}
	if elem.Attribute(xmpp.Version) != "1.0" {
		return xmpp.NewStreamError(xmpp.StreamUnsupportedVersion)
	}
	return nil
}

func validateNamespace(elem *xmpp.Element) error {
	ns := elem.Attribute(xmpp.Namespace)
	if len(ns) == 0 || ns == xmpp.JabberClientNamespace {
		return nil
	}
	return xmpp.NewStreamError(xmpp.StreamInvalidNamespace)
}

func (ss *Session) setWriteDeadline(ctx context.Context) {
	d, ok := ctx.Deadline()
	if !ok {
		return
	}
	_ = ss.tr.SetWriteDeadline(d)
}

func (ss *Session) newParser(tr transport.Transport) *parser.Parser {
	var opts []parser.Option
	if ss.liveness != nil {
		opts = append(opts, parser.WithLiveness(ss.liveness))
	}
	pm := parser.SocketStream
	if tr.Type() == transport.WebSocket {
		pm = parser.DefaultMode
	}
	return parser.New(tr, pm, ss.cfg.MaxStanzaSize, opts...)
}

func mapErrorToSessionError(err error) error {
	switch err {
	case parser.ErrStreamClosedByPeer:
		return ErrStreamClosedByPeer

	case ratelimiter.ErrReadLimitExceeded, parser.ErrTooLargeStanza:
		se := xmpp.NewStreamError(xmpp.StreamPolicyViolation)
		se.Err = err
		return se

	default:
		switch err := err.(type) {
		case *xml.SyntaxError:
			se := xmpp.NewStreamError(xmpp.StreamInvalidXML)
			se.Err = err
			return se

		case net.Error:
			if !err.Timeout() {
				return err
			}
			se := xmpp.NewStreamError(xmpp.StreamConnectionTimeout)
			se.Err = err
			return se

		default:
			return err // unmapped error
		}
	}
}

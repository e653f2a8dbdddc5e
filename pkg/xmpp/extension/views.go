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

package extension

import (
	"time"

	"github.com/ortuman/parley/pkg/xmpp"
)

// NewPing returns an XEP-0199 ping IQ.
func NewPing(to string) *xmpp.IQ {
	iq := xmpp.NewIQ(xmpp.NewID(), xmpp.GetType)
	if len(to) > 0 {
		iq.SetAttribute(xmpp.To, to)
	}
	iq.AppendElement(xmpp.NewElementNamespace("ping", PingNamespace))
	return iq
}

// RequestReceipt adds an XEP-0184 receipt request to msg.
func RequestReceipt(msg *xmpp.Message) {
	if Get(msg.Element, Kind{"request", ReceiptsNamespace}) == nil {
		Add(msg.Element, xmpp.NewElementNamespace("request", ReceiptsNamespace))
	}
}

// ReceiptFor returns the id of the message acknowledged by msg, if any.
func ReceiptFor(msg *xmpp.Message) (string, bool) {
	r := Get(msg.Element, Kind{"received", ReceiptsNamespace})
	if r == nil {
		return "", false
	}
	return r.ID(), true
}

// NewReceipt returns a receipt for a message that requested one.
func NewReceipt(msg *xmpp.Message) *xmpp.Message {
	rs := xmpp.NewMessage(xmpp.NewID(), "")
	rs.SetAttribute(xmpp.To, msg.From())
	Add(rs.Element, xmpp.NewElementNamespace("received", ReceiptsNamespace)).SetAttribute(xmpp.ID, msg.ID())
	return rs
}

// Marker returns the XEP-0333 chat marker carried by msg.
func Marker(msg *xmpp.Message) (name, id string, ok bool) {
	for _, child := range msg.Children() {
		if child.Namespace() != ChatMarkersNamespace {
			continue
		}
		switch child.Name() {
		case "received", "displayed", "acknowledged":
			return child.Name(), child.ID(), true
		}
	}
	return "", "", false
}

// DelayedAt returns the XEP-0203 delivery timestamp of stanza, if present.
func DelayedAt(stanza *xmpp.Element) (time.Time, bool) {
	d := Get(stanza, Kind{"delay", DelayNamespace})
	if d == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, d.Attribute("stamp"))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Carbon unwraps an XEP-0280 carbon copy.
// sent reports whether the wrapped message was sent by another client of the same account.
func Carbon(msg *xmpp.Message) (fwd *xmpp.Message, sent bool, ok bool) {
	var wrapper *xmpp.Element
	if wrapper = Get(msg.Element, Kind{"sent", CarbonsNamespace}); wrapper != nil {
		sent = true
	} else if wrapper = Get(msg.Element, Kind{"received", CarbonsNamespace}); wrapper == nil {
		return nil, false, false
	}
	f := Get(wrapper, Kind{"forwarded", ForwardNamespace})
	if f == nil {
		return nil, false, false
	}
	inner := f.Child(xmpp.MessageName)
	if inner == nil {
		return nil, false, false
	}
	m, err := xmpp.NewMessageFromElement(inner)
	if err != nil {
		return nil, false, false
	}
	return m, sent, true
}

// MUCStatusCodes returns the status codes carried by an XEP-0045 <x/> user element.
func MUCStatusCodes(stanza *xmpp.Element) []string {
	x := Get(stanza, Kind{"x", MUCUserNamespace})
	if x == nil {
		return nil
	}
	var codes []string
	for _, st := range x.Children() {
		if st.Name() == "status" {
			codes = append(codes, st.Attribute("code"))
		}
	}
	return codes
}

// AvatarInfo is an XEP-0084 avatar metadata entry.
type AvatarInfo struct {
	ID     string
	Type   string
	Bytes  string
	Width  string
	Height string
}

// AvatarMetadata extracts avatar metadata published through a PubSub event notification.
func AvatarMetadata(msg *xmpp.Message) ([]AvatarInfo, bool) {
	ev := Get(msg.Element, Kind{"event", PubSubEventNamespace})
	if ev == nil {
		return nil, false
	}
	items := ev.Child("items")
	if items == nil || items.Attribute("node") != AvatarMetadataNamespace {
		return nil, false
	}
	var ret []AvatarInfo
	for _, item := range items.Children() {
		md := Get(item, Kind{"metadata", AvatarMetadataNamespace})
		if md == nil {
			continue
		}
		for _, info := range md.Children() {
			if info.Name() != "info" {
				continue
			}
			ret = append(ret, AvatarInfo{
				ID:     info.ID(),
				Type:   info.Type(),
				Bytes:  info.Attribute("bytes"),
				Width:  info.Attribute("width"),
				Height: info.Attribute("height"),
			})
		}
	}
	return ret, true
}

// RosterItem is a jabber:iq:roster item.
type RosterItem struct {
	JID          string
	Name         string
	Subscription string
	Groups       []string
}

// NewRosterGet returns a roster request IQ.
func NewRosterGet() *xmpp.IQ {
	iq := xmpp.NewIQ(xmpp.NewID(), xmpp.GetType)
	iq.AppendElement(xmpp.NewElementNamespace("query", RosterNamespace))
	return iq
}

// RosterItems reads the items of a roster result or push.
func RosterItems(iq *xmpp.IQ) []RosterItem {
	q := Get(iq.Element, Kind{"query", RosterNamespace})
	if q == nil {
		return nil
	}
	var ret []RosterItem
	for _, it := range q.Children() {
		if it.Name() != "item" {
			continue
		}
		ri := RosterItem{
			JID:          it.Attribute("jid"),
			Name:         it.Attribute("name"),
			Subscription: it.Attribute("subscription"),
		}
		for _, g := range it.Children() {
			if g.Name() == "group" {
				ri.Groups = append(ri.Groups, g.Text())
			}
		}
		ret = append(ret, ri)
	}
	return ret
}

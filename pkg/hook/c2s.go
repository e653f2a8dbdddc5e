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

package hook

import (
	"github.com/ortuman/parley/pkg/xmpp"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

const (
	// C2SStateChanged hook runs every time a client connection changes its negotiation state.
	C2SStateChanged = "c2s.state_changed"

	// C2SOnline hook runs when a client connection reaches online state.
	C2SOnline = "c2s.online"

	// C2SMessageReceived hook runs when a message stanza is received.
	C2SMessageReceived = "c2s.message_received"

	// C2SPresenceReceived hook runs when a presence stanza is received.
	C2SPresenceReceived = "c2s.presence_received"

	// C2SIQReceived hook runs when an unhandled IQ request is received.
	C2SIQReceived = "c2s.iq_received"

	// C2SDeliveryConfirmed hook runs when the server acknowledges an important stanza.
	C2SDeliveryConfirmed = "c2s.delivery_confirmed"

	// C2SDeliveryFailed hook runs for every stanza that could not be delivered.
	C2SDeliveryFailed = "c2s.delivery_failed"

	// C2SAuthFailed hook runs when SASL authentication fails.
	C2SAuthFailed = "c2s.auth_failed"
)

// C2SInfo contains all info associated to a client connection event.
type C2SInfo struct {
	// Account is the account bare JID.
	Account jid.JID

	// BoundJID is the full JID assigned by the server, if already bound.
	BoundJID jid.JID

	// State is the connection state name.
	State string

	// PreviousState is the state name before a transition.
	PreviousState string

	// Element is the event associated XMPP element.
	Element *xmpp.Element

	// Err is the failure associated to the event, if any.
	Err error
}

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
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

const (
	// JingleSessionProposed hook runs when a peer offers a file transfer.
	JingleSessionProposed = "jingle.session_proposed"

	// JingleTransferProgress hook runs periodically while a transfer moves data.
	JingleTransferProgress = "jingle.transfer_progress"

	// JingleSessionTerminated hook runs once a session reaches its terminal state.
	JingleSessionTerminated = "jingle.session_terminated"
)

// JingleInfo contains all info associated to a Jingle session event.
type JingleInfo struct {
	// Account is the local account bare JID.
	Account jid.JID

	SessionID string
	Peer      jid.JID
	Initiator bool

	FileName string
	FileSize int64

	// Transport is the negotiated transport name, once known.
	Transport string

	// Transferred is the number of bytes moved so far.
	Transferred int64

	// Reason is the termination reason.
	Reason string

	// Verified tells whether a received payload matched the digest declared by the offer.
	// A successful incoming transfer with no usable digest is left unverified.
	Verified bool
}

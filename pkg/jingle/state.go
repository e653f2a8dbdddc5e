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

// State represents a transfer session state.
type State uint32

const (
	// Proposed is the state of a session that has been offered but not yet sent, or received and not yet accepted.
	Proposed State = iota

	// SessionInitiated means the offer has been acknowledged by the peer.
	SessionInitiated

	// ContentAccepted means the receiving side accepted the file.
	ContentAccepted

	// TransportConnecting means a bytestream is being negotiated.
	TransportConnecting

	// Transferring means file data is flowing.
	Transferring

	// Terminated is the final state. Session Reason tells how it ended.
	Terminated
)

// String satisfies fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case Proposed:
		return "proposed"
	case SessionInitiated:
		return "session_initiated"
	case ContentAccepted:
		return "content_accepted"
	case TransportConnecting:
		return "transport_connecting"
	case Transferring:
		return "transferring"
	case Terminated:
		return "terminated"
	}
	return ""
}

// Reason is a Jingle session termination reason (XEP-0166 section 7.4).
type Reason string

const (
	// ReasonSuccess means the file was transferred and verified.
	ReasonSuccess Reason = "success"

	// ReasonDecline means the receiver rejected the offer.
	ReasonDecline Reason = "decline"

	// ReasonCancel means one of the parties cancelled the transfer.
	ReasonCancel Reason = "cancel"

	// ReasonTimeout means the peer did not answer in time.
	ReasonTimeout Reason = "timeout"

	// ReasonConnectivityError means the bytestream broke before the whole file was moved.
	// Retrying the transport may succeed.
	ReasonConnectivityError Reason = "connectivity-error"

	// ReasonMediaError means the received data did not match the declared digest.
	// The file has to be sent again.
	ReasonMediaError Reason = "media-error"

	// ReasonFailedTransport means no bytestream could be established at all.
	ReasonFailedTransport Reason = "failed-transport"

	// ReasonGeneralError covers any other failure.
	ReasonGeneralError Reason = "general-error"
)

var knownReasons = map[Reason]bool{
	ReasonSuccess:           true,
	ReasonDecline:           true,
	ReasonCancel:            true,
	ReasonTimeout:           true,
	ReasonConnectivityError: true,
	ReasonMediaError:        true,
	ReasonFailedTransport:   true,
	ReasonGeneralError:      true,
}

// IntegrityFailure tells whether the transfer ended because received data could not be verified.
func (r Reason) IntegrityFailure() bool {
	return r == ReasonMediaError
}

// TransportFailure tells whether the transfer ended because of the bytestream.
func (r Reason) TransportFailure() bool {
	return r == ReasonConnectivityError || r == ReasonFailedTransport
}

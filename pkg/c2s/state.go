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

// State represents a client connection negotiation state.
type State uint32

const (
	Disconnected State = iota
	TCPConnecting
	StreamOpening
	TLSNegotiating
	SASLNegotiating
	ResourceBinding
	StreamManagementEnabling
	Resuming
	Online
	Disconnecting
)

// String satisfies fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case TCPConnecting:
		return "tcp_connecting"
	case StreamOpening:
		return "stream_opening"
	case TLSNegotiating:
		return "tls_negotiating"
	case SASLNegotiating:
		return "sasl_negotiating"
	case ResourceBinding:
		return "resource_binding"
	case StreamManagementEnabling:
		return "sm_enabling"
	case Resuming:
		return "resuming"
	case Online:
		return "online"
	case Disconnecting:
		return "disconnecting"
	}
	return "unknown"
}

// negotiating tells whether s belongs to stream negotiation.
func (s State) negotiating() bool {
	return s > TCPConnecting && s < Online
}

type flags struct {
	secured       bool
	authenticated bool
	bound         bool
	smEnabled     bool
}

func (f *flags) reset() {
	*f = flags{}
}

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
	"errors"
	"fmt"
)

// ErrorKind classifies a connection failure.
type ErrorKind int

const (
	// Transport failures are socket, TLS or DNS errors. They are retried with backoff.
	Transport ErrorKind = iota

	// AuthCredentials means the server rejected the account credentials.
	// Reconnection is suspended until credentials change.
	AuthCredentials

	// AuthMechanism means no mutually usable SASL mechanism succeeded.
	AuthMechanism

	// AuthTemporary is a transient server side authentication failure.
	AuthTemporary

	// Protocol failures are malformed streams or unexpected negotiation elements.
	Protocol

	// Delivery failures affect a single stanza or request, never the connection.
	Delivery
)

// String satisfies fmt.Stringer interface.
func (k ErrorKind) String() string {
	switch k {
	case Transport:
		return "transport"
	case AuthCredentials:
		return "auth_credentials"
	case AuthMechanism:
		return "auth_mechanism"
	case AuthTemporary:
		return "auth_temporary"
	case Protocol:
		return "protocol"
	case Delivery:
		return "delivery"
	}
	return "unknown"
}

// IsAuth tells whether k is an authentication failure.
func (k ErrorKind) IsAuth() bool {
	return k == AuthCredentials || k == AuthMechanism || k == AuthTemporary
}

// Error is a classified client failure.
type Error struct {
	Kind ErrorKind

	// Condition is the protocol defined condition, if any (i.e. 'not-authorized').
	Condition string

	Err error
}

func newError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Error satisfies error interface.
func (e *Error) Error() string {
	switch {
	case len(e.Condition) > 0 && e.Err != nil:
		return fmt.Sprintf("c2s: %s error (%s): %v", e.Kind, e.Condition, e.Err)
	case len(e.Condition) > 0:
		return fmt.Sprintf("c2s: %s error (%s)", e.Kind, e.Condition)
	case e.Err != nil:
		return fmt.Sprintf("c2s: %s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("c2s: %s error", e.Kind)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, defaulting to Transport for unclassified errors.
func KindOf(err error) ErrorKind {
	var cErr *Error
	if errors.As(err, &cErr) {
		return cErr.Kind
	}
	return Transport
}

var (
	// ErrDisabled is returned when sending through a client that has been disconnected by the user.
	ErrDisabled = errors.New("c2s: account disabled")

	// ErrClosed is returned when operating on a closed client.
	ErrClosed = errors.New("c2s: client closed")

	// ErrResumptionRejected is reported for every unacknowledged stanza when the server
	// refuses to resume the previous stream.
	ErrResumptionRejected = errors.New("c2s: stream resumption rejected")

	// ErrNotDelivered is reported for unacknowledged stanzas that cannot be replayed.
	ErrNotDelivered = errors.New("c2s: stanza not delivered")

	// ErrPingTimeout is returned when a keepalive ping gets no answer in time.
	ErrPingTimeout = errors.New("c2s: keepalive ping timeout")

	// ErrTLSRequired is returned when the server does not offer STARTTLS and TLS is required.
	ErrTLSRequired = errors.New("c2s: server does not offer TLS")

	// ErrReconnectExhausted is returned once the maximum number of reconnect attempts is reached.
	ErrReconnectExhausted = errors.New("c2s: reconnect attempts exhausted")

	errUnexpectedElement = errors.New("c2s: unexpected stream element")
	errNoMechanism       = errors.New("c2s: no mutually supported SASL mechanism")
	errBindFailed        = errors.New("c2s: resource binding failed")
)

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

package trust

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
)

// Decision represents a certificate trust decision.
type Decision int

const (
	// Reject means the certificate chain must not be trusted.
	Reject Decision = iota

	// Accept means the certificate chain is trusted.
	Accept

	// Ask means the decision is delegated to the user.
	Ask
)

// String satisfies fmt.Stringer interface.
func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Ask:
		return "ask"
	default:
		return "reject"
	}
}

var (
	// ErrUntrustedCertificate is returned when a certificate chain has been rejected.
	ErrUntrustedCertificate = errors.New("trust: untrusted certificate")

	// ErrEmptyChain is returned when the peer presented no certificates.
	ErrEmptyChain = errors.New("trust: empty certificate chain")
)

// Manager decides whether a server certificate chain is trusted for a given hostname.
type Manager interface {
	Verify(hostname string, chain []*x509.Certificate) (Decision, error)
}

// Asker asks the user whether an unknown certificate chain should be trusted.
// Ask blocks until the user decides or ctx is done.
type Asker interface {
	Ask(ctx context.Context, hostname string, chain []*x509.Certificate) (bool, error)
}

// AskerFunc is an adapter to allow the use of ordinary functions as askers.
type AskerFunc func(ctx context.Context, hostname string, chain []*x509.Certificate) (bool, error)

// Ask satisfies Asker interface.
func (f AskerFunc) Ask(ctx context.Context, hostname string, chain []*x509.Certificate) (bool, error) {
	return f(ctx, hostname, chain)
}

type rememberer interface {
	Remember(hostname string, cert *x509.Certificate) error
}

// Resolve runs the full trust decision for a chain, asking the user when the manager defers to it.
// A nil asker turns every Ask decision into a rejection.
func Resolve(ctx context.Context, m Manager, asker Asker, hostname string, chain []*x509.Certificate) error {
	if len(chain) == 0 {
		return ErrEmptyChain
	}
	d, err := m.Verify(hostname, chain)
	if err != nil {
		return err
	}
	switch d {
	case Accept:
		return nil
	case Ask:
		if asker == nil {
			return ErrUntrustedCertificate
		}
		ok, err := asker.Ask(ctx, hostname, chain)
		if err != nil {
			return fmt.Errorf("trust: ask user: %w", err)
		}
		if !ok {
			return ErrUntrustedCertificate
		}
		if r, ok := m.(rememberer); ok {
			if err := r.Remember(hostname, chain[0]); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrUntrustedCertificate
	}
}

// TLSConfig returns a client TLS configuration whose certificate verification is delegated to m.
// ctx bounds the time a pending user decision may take.
func TLSConfig(ctx context.Context, serverName string, m Manager, asker Asker) *tls.Config {
	return &tls.Config{
		ServerName:         serverName,
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true, // verification is done by VerifyConnection
		VerifyConnection: func(cs tls.ConnectionState) error {
			return Resolve(ctx, m, asker, serverName, cs.PeerCertificates)
		},
	}
}

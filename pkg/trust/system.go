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
	"crypto/x509"
)

// System trusts chains that verify against a root pool.
type System struct {
	roots *x509.CertPool
}

// NewSystem returns a System manager. A nil pool uses the host root set.
func NewSystem(roots *x509.CertPool) *System {
	return &System{roots: roots}
}

// Verify satisfies Manager interface.
func (s *System) Verify(hostname string, chain []*x509.Certificate) (Decision, error) {
	if len(chain) == 0 {
		return Reject, ErrEmptyChain
	}
	if s.verifies(hostname, chain) {
		return Accept, nil
	}
	return Reject, nil
}

func (s *System) verifies(hostname string, chain []*x509.Certificate) bool {
	intermediates := x509.NewCertPool()
	for _, c := range chain[1:] {
		intermediates.AddCert(c)
	}
	_, err := chain[0].Verify(x509.VerifyOptions{
		DNSName:       hostname,
		Roots:         s.roots,
		Intermediates: intermediates,
	})
	return err == nil
}

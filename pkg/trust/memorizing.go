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
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type storeFile struct {
	Hosts map[string][]string `yaml:"hosts"`
}

// Memorizing accepts chains trusted by the system roots or pinned by the user,
// and asks the user for everything else.
// Accepted leaf fingerprints are persisted to a YAML file.
type Memorizing struct {
	sys  *System
	path string

	mu    sync.RWMutex
	hosts map[string][]string
}

// NewMemorizing loads a memorizing manager backed by the file located at path.
// A missing file is treated as an empty store.
func NewMemorizing(path string, roots *x509.CertPool) (*Memorizing, error) {
	m := &Memorizing{
		sys:   NewSystem(roots),
		path:  path,
		hosts: make(map[string][]string),
	}
	b, err := ioutil.ReadFile(path)
	switch {
	case err == nil:
		var sf storeFile
		if err := yaml.Unmarshal(b, &sf); err != nil {
			return nil, errors.Wrapf(err, "trust: decoding %s", path)
		}
		for h, fps := range sf.Hosts {
			m.hosts[strings.ToLower(h)] = fps
		}
	case os.IsNotExist(err):
		break
	default:
		return nil, err
	}
	return m, nil
}

// Verify satisfies Manager interface.
func (m *Memorizing) Verify(hostname string, chain []*x509.Certificate) (Decision, error) {
	if len(chain) == 0 {
		return Reject, ErrEmptyChain
	}
	if m.sys.verifies(hostname, chain) {
		return Accept, nil
	}
	fp := Fingerprint(chain[0])

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, pinned := range m.hosts[strings.ToLower(hostname)] {
		if pinned == fp {
			return Accept, nil
		}
	}
	return Ask, nil
}

// Remember pins cert for hostname and persists the store.
func (m *Memorizing) Remember(hostname string, cert *x509.Certificate) error {
	host := strings.ToLower(hostname)
	fp := Fingerprint(cert)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, pinned := range m.hosts[host] {
		if pinned == fp {
			return nil
		}
	}
	m.hosts[host] = append(m.hosts[host], fp)
	return m.persist()
}

func (m *Memorizing) persist() error {
	b, err := yaml.Marshal(&storeFile{Hosts: m.hosts})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	tmp := m.path + ".tmp"
	if err := ioutil.WriteFile(tmp, b, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}

// Fingerprint returns the hex encoded SHA-256 digest of a certificate.
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.Raw)
	return hex.EncodeToString(sum[:])
}

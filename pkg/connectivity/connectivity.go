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

package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/ortuman/parley/pkg/util/dns"
)

// Checker reports whether a network path is currently usable.
type Checker interface {
	Available(ctx context.Context) bool
}

// Static is a Checker that always returns the same answer.
type Static bool

// Available satisfies Checker interface.
func (s Static) Available(_ context.Context) bool { return bool(s) }

type prober interface {
	Probe(ctx context.Context, name string) error
}

// DNSProbe considers the network usable when a DNS server answers a root query.
// Results are cached for the probe interval.
type DNSProbe struct {
	pr       prober
	interval time.Duration
	timeout  time.Duration

	mu        sync.Mutex
	lastCheck time.Time
	available bool

	nowFn func() time.Time
}

// NewDNSProbe returns a DNSProbe querying resolver (host:port; empty means the host configured one).
func NewDNSProbe(resolver string, interval time.Duration) *DNSProbe {
	return &DNSProbe{
		pr:       dns.NewResolver(resolver),
		interval: interval,
		timeout:  time.Second * 3,
		nowFn:    time.Now,
	}
}

// Available satisfies Checker interface.
func (p *DNSProbe) Available(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.nowFn()
	if !p.lastCheck.IsZero() && now.Sub(p.lastCheck) < p.interval {
		return p.available
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.available = p.pr.Probe(ctx, ".") == nil
	p.lastCheck = now
	return p.available
}

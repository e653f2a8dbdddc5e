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

package dns

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
)

const (
	defaultResolvConf = "/etc/resolv.conf"
	resolveTimeout    = time.Second * 5
)

var (
	// ErrNoRecords is returned when a lookup finds no usable records.
	ErrNoRecords = errors.New("dns: no records found")

	errNoServers = errors.New("dns: no servers configured")
)

// Target represents a resolved SRV target.
type Target struct {
	Host     string
	Port     uint16
	Priority uint16
	Weight   uint16
}

// Addr returns target host:port address.
func (t Target) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(int(t.Port)))
}

// Resolver performs DNS queries against a fixed server, or the host configured one.
type Resolver struct {
	server string
	client *mdns.Client

	exchangeFn func(ctx context.Context, m *mdns.Msg, server string) (*mdns.Msg, error)
}

// NewResolver returns a Resolver that queries server (host:port).
// An empty server uses the first nameserver found in /etc/resolv.conf.
func NewResolver(server string) *Resolver {
	r := &Resolver{
		server: server,
		client: &mdns.Client{Net: "udp", Timeout: resolveTimeout},
	}
	r.exchangeFn = func(ctx context.Context, m *mdns.Msg, server string) (*mdns.Msg, error) {
		resp, _, err := r.client.ExchangeContext(ctx, m, server)
		return resp, err
	}
	return r
}

// LookupSRV resolves _service._proto.name SRV records, returning targets ordered
// by ascending priority and descending weight.
func (r *Resolver) LookupSRV(ctx context.Context, service, proto, name string) ([]Target, error) {
	qName := fmt.Sprintf("_%s._%s.%s", service, proto, name)

	resp, err := r.query(ctx, qName, mdns.TypeSRV)
	if err != nil {
		return nil, err
	}
	var targets []Target
	for _, rr := range resp.Answer {
		srv, ok := rr.(*mdns.SRV)
		if !ok {
			continue
		}
		if srv.Target == "." {
			continue // service explicitly unavailable
		}
		targets = append(targets, Target{
			Host:     strings.TrimSuffix(srv.Target, "."),
			Port:     srv.Port,
			Priority: srv.Priority,
			Weight:   srv.Weight,
		})
	}
	if len(targets) == 0 {
		return nil, ErrNoRecords
	}
	sort.SliceStable(targets, func(i, j int) bool {
		if targets[i].Priority != targets[j].Priority {
			return targets[i].Priority < targets[j].Priority
		}
		return targets[i].Weight > targets[j].Weight
	})
	return targets, nil
}

// Probe sends a single query for name and reports whether any server answered.
func (r *Resolver) Probe(ctx context.Context, name string) error {
	_, err := r.query(ctx, name, mdns.TypeNS)
	if errors.Is(err, ErrNoRecords) {
		return nil // an authoritative negative answer still proves reachability
	}
	return err
}

func (r *Resolver) query(ctx context.Context, name string, qType uint16) (*mdns.Msg, error) {
	server, err := r.serverAddr()
	if err != nil {
		return nil, err
	}
	msg := new(mdns.Msg)
	msg.SetQuestion(mdns.Fqdn(name), qType)
	msg.RecursionDesired = true

	resp, err := r.exchangeFn(ctx, msg, server)
	if err != nil {
		return nil, err
	}
	switch resp.Rcode {
	case mdns.RcodeSuccess:
		return resp, nil
	case mdns.RcodeNameError:
		return nil, ErrNoRecords
	default:
		return nil, fmt.Errorf("dns: lookup %s failed: %s", name, mdns.RcodeToString[resp.Rcode])
	}
}

func (r *Resolver) serverAddr() (string, error) {
	if len(r.server) > 0 {
		return r.server, nil
	}
	cfg, err := mdns.ClientConfigFromFile(defaultResolvConf)
	if err != nil {
		return "", err
	}
	if len(cfg.Servers) == 0 {
		return "", errNoServers
	}
	return net.JoinHostPort(cfg.Servers[0], cfg.Port), nil
}

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

import "time"

// number of consecutive answered pings after which the ping interval is lengthened
const stablePings = 3

// keepAlive computes the adaptive idle period after which a ping is sent.
// The interval starts at the configured minimum, doubles after a run of answered
// pings and halves on every timeout, always within [MinInterval, MaxInterval].
type keepAlive struct {
	cfg       KeepAliveConfig
	interval  time.Duration
	successes int
}

func newKeepAlive(cfg KeepAliveConfig) *keepAlive {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = 30 * time.Second
	}
	if cfg.MaxInterval < cfg.MinInterval {
		cfg.MaxInterval = cfg.MinInterval
	}
	return &keepAlive{cfg: cfg, interval: cfg.MinInterval}
}

func (k *keepAlive) Interval() time.Duration {
	return k.interval
}

func (k *keepAlive) succeeded() {
	k.successes++
	if k.successes < stablePings {
		return
	}
	k.successes = 0
	k.interval *= 2
	if k.interval > k.cfg.MaxInterval {
		k.interval = k.cfg.MaxInterval
	}
}

func (k *keepAlive) failed() {
	k.successes = 0
	k.interval /= 2
	if k.interval < k.cfg.MinInterval {
		k.interval = k.cfg.MinInterval
	}
}

// backoff computes exponential reconnection delays.
type backoff struct {
	cfg     ReconnectConfig
	next    time.Duration
	attempt int
}

func newBackoff(cfg ReconnectConfig) *backoff {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	return &backoff{cfg: cfg, next: cfg.InitialBackoff}
}

// Next returns the delay before the next attempt, or false once attempts are exhausted.
func (b *backoff) Next() (time.Duration, bool) {
	if b.cfg.MaxAttempts > 0 && b.attempt >= b.cfg.MaxAttempts {
		return 0, false
	}
	b.attempt++
	d := b.next
	b.next *= 2
	if b.next > b.cfg.MaxBackoff {
		b.next = b.cfg.MaxBackoff
	}
	return d, true
}

// Attempt returns the number of attempts issued since the last reset.
func (b *backoff) Attempt() int {
	return b.attempt
}

func (b *backoff) Reset() {
	b.attempt = 0
	b.next = b.cfg.InitialBackoff
}

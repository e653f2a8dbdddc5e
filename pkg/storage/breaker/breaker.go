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

package breakerrepository

import (
	"context"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	streammodel "github.com/ortuman/parley/pkg/model/stream"
	"github.com/ortuman/parley/pkg/storage/repository"
	"github.com/sony/gobreaker"
)

// Config contains circuit breaker configuration.
type Config struct {
	// Enabled tells whether repository operations go through a circuit breaker.
	Enabled bool `fig:"enabled" yaml:"enabled"`

	// ConsecutiveFailures is the number of consecutive failures that opens the circuit.
	ConsecutiveFailures uint32 `fig:"consecutive_failures" default:"5" yaml:"consecutive_failures"`

	// OpenTimeout is the time the circuit stays open before allowing a probe request.
	OpenTimeout time.Duration `fig:"open_timeout" default:"30s" yaml:"open_timeout"`
}

// Breaker is a Repository decorator that stops calling a failing backend for a while.
type Breaker struct {
	rep repository.Repository
	cb  *gobreaker.CircuitBreaker
}

// New returns a Breaker repository wrapping rep.
func New(rep repository.Repository, cfg Config, logger kitlog.Logger) *Breaker {
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	st := gobreaker.Settings{
		Name:    "storage",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			level.Warn(logger).Log("msg", "storage circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	}
	return &Breaker{
		rep: rep,
		cb:  gobreaker.NewCircuitBreaker(st),
	}
}

// InTransaction satisfies repository.Repository interface.
func (b *Breaker) InTransaction(ctx context.Context, f func(ctx context.Context, tx repository.Transaction) error) error {
	return b.exec(func() error { return b.rep.InTransaction(ctx, f) })
}

// UpsertStreamState satisfies repository.StreamState interface.
func (b *Breaker) UpsertStreamState(ctx context.Context, st *streammodel.State) error {
	return b.exec(func() error { return b.rep.UpsertStreamState(ctx, st) })
}

// FetchStreamState satisfies repository.StreamState interface.
func (b *Breaker) FetchStreamState(ctx context.Context, account string) (*streammodel.State, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.rep.FetchStreamState(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return v.(*streammodel.State), nil
}

// DeleteStreamState satisfies repository.StreamState interface.
func (b *Breaker) DeleteStreamState(ctx context.Context, account string) error {
	return b.exec(func() error { return b.rep.DeleteStreamState(ctx, account) })
}

// ReplacePendingStanzas satisfies repository.PendingStanzas interface.
func (b *Breaker) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
	return b.exec(func() error { return b.rep.ReplacePendingStanzas(ctx, account, pending) })
}

// FetchPendingStanzas satisfies repository.PendingStanzas interface.
func (b *Breaker) FetchPendingStanzas(ctx context.Context, account string) ([]streammodel.Pending, error) {
	v, err := b.cb.Execute(func() (interface{}, error) {
		return b.rep.FetchPendingStanzas(ctx, account)
	})
	if err != nil {
		return nil, err
	}
	return v.([]streammodel.Pending), nil
}

// DeletePendingStanzas satisfies repository.PendingStanzas interface.
func (b *Breaker) DeletePendingStanzas(ctx context.Context, account string) error {
	return b.exec(func() error { return b.rep.DeletePendingStanzas(ctx, account) })
}

// Start satisfies repository.Repository interface.
func (b *Breaker) Start(ctx context.Context) error { return b.rep.Start(ctx) }

// Stop satisfies repository.Repository interface.
func (b *Breaker) Stop(ctx context.Context) error { return b.rep.Stop(ctx) }

func (b *Breaker) exec(f func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, f()
	})
	return err
}

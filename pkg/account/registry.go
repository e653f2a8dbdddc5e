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

package account

import (
	"context"
	"errors"
	"sort"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/c2s"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/xmpp/jid"
	pkgerrors "github.com/pkg/errors"
)

var (
	// ErrAccountExists is returned by Add when the account is already registered.
	ErrAccountExists = errors.New("account: already registered")

	// ErrAccountNotFound is returned when referencing an unregistered account.
	ErrAccountNotFound = errors.New("account: not found")

	// ErrInvalidJID is returned by Add when the account JID is not a valid bare user JID.
	ErrInvalidJID = errors.New("account: invalid jid")
)

// Registry owns the connection state machine and file transfer engine of every configured account.
type Registry struct {
	deps      c2s.Dependencies
	jingleCfg jingle.Config
	logger    kitlog.Logger

	newClient    func(cfg Config, acc c2s.Account, logger kitlog.Logger) client
	newTransfers func(cl client, logger kitlog.Logger) transfers

	mu       sync.RWMutex
	accounts map[string]*Account
	started  bool
}

// NewRegistry returns an empty account registry.
func NewRegistry(deps c2s.Dependencies, jingleCfg jingle.Config, logger kitlog.Logger) *Registry {
	return &Registry{
		deps:      deps,
		jingleCfg: jingleCfg,
		logger:    logger,
		newClient: func(cfg Config, acc c2s.Account, logger kitlog.Logger) client {
			return c2s.New(cfg.C2S, acc, deps, logger)
		},
		newTransfers: func(cl client, logger kitlog.Logger) transfers {
			return jingle.NewManager(jingleCfg, cl, deps.Hooks, logger)
		},
		accounts: make(map[string]*Account),
	}
}

// Start connects every enabled account.
func (r *Registry) Start(_ context.Context) error {
	r.mu.Lock()
	r.started = true
	accs := r.sortedAccounts()
	r.mu.Unlock()

	for _, acc := range accs {
		if acc.Enabled() {
			acc.cl.Connect()
		}
	}
	level.Info(r.logger).Log("msg", "started account registry", "accounts", len(accs))
	return nil
}

// Stop shuts down every registered account.
func (r *Registry) Stop(ctx context.Context) error {
	r.mu.Lock()
	r.started = false
	accs := r.sortedAccounts()
	r.mu.Unlock()

	for _, acc := range accs {
		if err := shutdown(ctx, acc); err != nil {
			level.Warn(r.logger).Log("msg", "failed to shutdown account", "account", acc.jid.String(), "err", err)
		}
	}
	level.Info(r.logger).Log("msg", "stopped account registry")
	return nil
}

// Add registers a new account. Enabled accounts connect right away once the registry is started.
func (r *Registry) Add(ctx context.Context, cfg Config) (*Account, error) {
	j, err := jid.Parse(cfg.JID)
	if err != nil {
		return nil, pkgerrors.Wrap(ErrInvalidJID, err.Error())
	}
	if len(j.Node()) == 0 {
		return nil, pkgerrors.Wrap(ErrInvalidJID, "missing local part")
	}
	if j.IsFull() && len(cfg.Resource) == 0 {
		cfg.Resource = j.Resource()
	}
	bare := j.Bare()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[bare.String()]; ok {
		return nil, ErrAccountExists
	}
	logger := kitlog.With(r.logger, "account", bare.String())

	cl := r.newClient(cfg, c2s.Account{
		JID:      bare,
		Password: cfg.Password,
		Resource: cfg.Resource,
	}, r.logger)

	ft := r.newTransfers(cl, logger)
	for _, ns := range ft.Namespaces() {
		cl.RegisterIQHandler(ns, ft.HandleIQ)
	}
	if err := ft.Start(ctx); err != nil {
		_ = cl.Close(ctx)
		return nil, err
	}
	acc := &Account{
		jid: bare,
		cfg: cfg,
		cl:  cl,
		ft:  ft,
	}
	acc.setEnabled(!cfg.Disabled)
	r.accounts[bare.String()] = acc

	if r.started && acc.Enabled() {
		cl.Connect()
	}
	level.Info(logger).Log("msg", "registered account", "enabled", !cfg.Disabled)
	return acc, nil
}

// Remove unregisters an account, closing its connection.
func (r *Registry) Remove(ctx context.Context, j jid.JID) error {
	r.mu.Lock()
	acc := r.accounts[j.Bare().String()]
	if acc == nil {
		r.mu.Unlock()
		return ErrAccountNotFound
	}
	delete(r.accounts, j.Bare().String())
	r.mu.Unlock()

	if err := shutdown(ctx, acc); err != nil {
		return err
	}
	level.Info(r.logger).Log("msg", "unregistered account", "account", acc.jid.String())
	return nil
}

// Enable allows an account to connect.
func (r *Registry) Enable(j jid.JID) error {
	r.mu.RLock()
	acc := r.accounts[j.Bare().String()]
	started := r.started
	r.mu.RUnlock()

	if acc == nil {
		return ErrAccountNotFound
	}
	acc.setEnabled(true)
	if started {
		acc.cl.Connect()
	}
	return nil
}

// Disable disconnects an account and keeps it offline until enabled again.
// Stanzas waiting for a connection are discarded.
func (r *Registry) Disable(ctx context.Context, j jid.JID) error {
	acc := r.Account(j)
	if acc == nil {
		return ErrAccountNotFound
	}
	acc.setEnabled(false)
	return acc.cl.Disconnect(ctx)
}

// Account returns the registered account associated to j, or nil if not found.
func (r *Registry) Account(j jid.JID) *Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.accounts[j.Bare().String()]
}

// Accounts returns all registered accounts ordered by JID.
func (r *Registry) Accounts() []*Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedAccounts()
}

func (r *Registry) sortedAccounts() []*Account {
	accs := make([]*Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool {
		return accs[i].jid.String() < accs[j].jid.String()
	})
	return accs
}

func shutdown(ctx context.Context, acc *Account) error {
	if err := acc.ft.Stop(ctx); err != nil {
		return err
	}
	return acc.cl.Close(ctx)
}

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
	"context"
	"net"
	"strconv"

	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/delivery"
	"github.com/ortuman/parley/pkg/hook"
	streammodel "github.com/ortuman/parley/pkg/model/stream"
	"github.com/ortuman/parley/pkg/storage/repository"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

func (c *Client) accountID() string {
	return c.account.JID.Bare().String()
}

// resumable tells whether a previous stream may be resumed right now.
func (c *Client) resumable() bool {
	if c.cfg.StreamManagement.Disabled || c.cfg.StreamManagement.DisableResume {
		return false
	}
	st := streammodel.State{
		ResumeID:  c.sm.id,
		MaxResume: c.sm.max,
		UpdatedAt: c.sm.updatedAt,
	}
	return st.Resumable(c.nowFn())
}

// resumedJID returns the full JID of the stream being resumed.
func (c *Client) resumedJID() jid.JID {
	if !c.sm.bound.IsZero() {
		return c.sm.bound
	}
	// state restored after a process restart does not carry the bound resource
	j, err := c.account.JID.Bare().WithResource(c.account.Resource)
	if err != nil {
		return c.account.JID.Bare()
	}
	return j
}

func (c *Client) confirm(ctx context.Context, entries []delivery.Entry) {
	if len(entries) == 0 {
		return
	}
	for _, e := range entries {
		c.runHook(ctx, hook.C2SDeliveryConfirmed, &hook.C2SInfo{Element: e.Stanza})
	}
	reportDeliveryOutcome("confirmed", len(entries))
}

func (c *Client) failEntries(ctx context.Context, entries []delivery.Entry, reason error) {
	if len(entries) == 0 {
		return
	}
	level.Warn(c.logger).Log("msg", "unacknowledged stanzas not delivered", "count", len(entries), "reason", reason)
	for _, e := range entries {
		c.runHook(ctx, hook.C2SDeliveryFailed, &hook.C2SInfo{Element: e.Stanza, Err: reason})
	}
	reportDeliveryOutcome("failed", len(entries))
}

// discardStreamState drops any resumable state, reporting unacknowledged stanzas as failed.
func (c *Client) discardStreamState(ctx context.Context, reason error) {
	c.failEntries(ctx, c.queue.Drain(), reason)

	hadState := len(c.sm.id) > 0
	c.sm = smState{loaded: true}
	if !hadState || c.deps.Repository == nil {
		return
	}
	account := c.accountID()
	err := c.deps.Repository.InTransaction(ctx, func(ctx context.Context, tx repository.Transaction) error {
		if err := tx.DeleteStreamState(ctx, account); err != nil {
			return err
		}
		return tx.DeletePendingStanzas(ctx, account)
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to delete stream state", "err", err)
	}
}

// persistStreamState saves the state of a live resumable stream.
func (c *Client) persistStreamState(ctx context.Context) {
	if len(c.sm.id) == 0 {
		return
	}
	c.sm.updatedAt = c.nowFn()
	if c.deps.Repository == nil {
		return
	}
	snap := c.queue.Snapshot()
	st := &streammodel.State{
		Account:   c.accountID(),
		ResumeID:  c.sm.id,
		Location:  c.sm.location,
		MaxResume: c.sm.max,
		InboundH:  snap.InboundH,
		OutboundH: snap.OutboundH,
		UpdatedAt: c.sm.updatedAt,
	}
	pending := make([]streammodel.Pending, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		pending = append(pending, streammodel.Pending{
			Seq:      e.Seq,
			Stanza:   e.Stanza,
			QueuedAt: e.QueuedAt,
		})
	}
	err := c.deps.Repository.InTransaction(ctx, func(ctx context.Context, tx repository.Transaction) error {
		if err := tx.UpsertStreamState(ctx, st); err != nil {
			return err
		}
		return tx.ReplacePendingStanzas(ctx, st.Account, pending)
	})
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to persist stream state", "err", err)
	}
}

// loadStreamState restores a stream left resumable by a previous process.
func (c *Client) loadStreamState(ctx context.Context) {
	if c.sm.loaded {
		return
	}
	c.sm.loaded = true

	rep := c.deps.Repository
	if rep == nil {
		return
	}
	account := c.accountID()
	st, err := rep.FetchStreamState(ctx, account)
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to fetch stream state", "err", err)
		return
	}
	if st == nil {
		return
	}
	pending, err := rep.FetchPendingStanzas(ctx, account)
	if err != nil {
		level.Warn(c.logger).Log("msg", "failed to fetch pending stanzas", "err", err)
		return
	}
	entries := make([]delivery.Entry, 0, len(pending))
	for _, p := range pending {
		entries = append(entries, delivery.Entry{
			Seq:      p.Seq,
			Stanza:   p.Stanza,
			QueuedAt: p.QueuedAt,
		})
	}
	c.queue.Restore(delivery.State{
		InboundH:  st.InboundH,
		OutboundH: st.OutboundH,
		Entries:   entries,
	})
	c.sm = smState{
		id:        st.ResumeID,
		location:  st.Location,
		max:       st.MaxResume,
		updatedAt: st.UpdatedAt,
		loaded:    true,
	}
	if !c.resumable() {
		c.discardStreamState(ctx, ErrNotDelivered)
		return
	}
	level.Info(c.logger).Log("msg", "restored resumable stream state", "pending", len(entries))
}

// normalizeLocation returns a dialable host:port for an XEP-0198 preferred location.
func normalizeLocation(loc string) string {
	if len(loc) == 0 {
		return ""
	}
	if _, _, err := net.SplitHostPort(loc); err == nil {
		return loc
	}
	return net.JoinHostPort(loc, strconv.Itoa(defaultPort))
}

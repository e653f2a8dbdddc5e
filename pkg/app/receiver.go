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

package app

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/hook"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/storage/files"
	"github.com/ortuman/parley/pkg/xmpp/jid"
)

type fileAcceptor interface {
	AcceptFile(sid string, sink jingle.FileSink) error
	RejectFile(sid string) error
}

// receiver decides on incoming file offers, storing accepted files into the file store.
type receiver struct {
	store  *files.Store
	lookup func(j jid.JID) fileAcceptor
	reject bool
	logger kitlog.Logger
}

func (r *receiver) register(hk *hook.Hooks) {
	hk.AddHook(hook.JingleSessionProposed, r.onProposed, hook.DefaultPriority)
	hk.AddHook(hook.JingleSessionTerminated, r.onTerminated, hook.LowPriority)
}

func (r *receiver) onProposed(_ context.Context, execCtx *hook.ExecutionContext) error {
	inf := execCtx.Info.(*hook.JingleInfo)

	acc := r.lookup(inf.Account)
	if acc == nil {
		return nil
	}
	if r.reject {
		level.Info(r.logger).Log("msg", "declining file offer", "account", inf.Account.String(), "peer", inf.Peer.String(), "name", inf.FileName)
		return acc.RejectFile(inf.SessionID)
	}
	sink, err := r.store.Create(inf.FileName)
	if err != nil {
		level.Warn(r.logger).Log("msg", "failed to create file sink", "name", inf.FileName, "err", err)
		return acc.RejectFile(inf.SessionID)
	}
	if err := acc.AcceptFile(inf.SessionID, sink); err != nil {
		_ = sink.Abort()
		return err
	}
	level.Info(r.logger).Log("msg", "accepted file offer", "account", inf.Account.String(), "peer", inf.Peer.String(),
		"name", inf.FileName, "size", inf.FileSize)
	return nil
}

func (r *receiver) onTerminated(_ context.Context, execCtx *hook.ExecutionContext) error {
	inf := execCtx.Info.(*hook.JingleInfo)
	level.Info(r.logger).Log("msg", "file transfer finished",
		"account", inf.Account.String(),
		"peer", inf.Peer.String(),
		"name", inf.FileName,
		"transport", inf.Transport,
		"transferred", inf.Transferred,
		"verified", inf.Verified,
		"reason", inf.Reason,
	)
	return nil
}

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

package mysqlrepository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	streammodel "github.com/ortuman/parley/pkg/model/stream"
)

const (
	streamStatesTableName   = "stream_states"
	pendingStanzasTableName = "pending_stanzas"
)

type mySQLStreamStateRep struct {
	conn conn
}

func (r *mySQLStreamStateRep) UpsertStreamState(ctx context.Context, st *streammodel.State) error {
	q := sqb.Insert(streamStatesTableName).
		Columns("account", "resume_id", "location", "max_resume_ms", "in_h", "out_h", "updated_at").
		Values(
			st.Account,
			st.ResumeID,
			st.Location,
			st.MaxResume.Milliseconds(),
			int64(st.InboundH),
			int64(st.OutboundH),
			st.UpdatedAt,
		).
		Suffix("ON DUPLICATE KEY UPDATE " +
			"resume_id = VALUES(resume_id), location = VALUES(location), max_resume_ms = VALUES(max_resume_ms), " +
			"in_h = VALUES(in_h), out_h = VALUES(out_h), updated_at = VALUES(updated_at)")

	_, err := q.RunWith(r.conn).ExecContext(ctx)
	return err
}

func (r *mySQLStreamStateRep) FetchStreamState(ctx context.Context, account string) (*streammodel.State, error) {
	q := sqb.Select("account", "resume_id", "location", "max_resume_ms", "in_h", "out_h", "updated_at").
		From(streamStatesTableName).
		Where(sq.Eq{"account": account})

	var st streammodel.State
	var maxResumeMs, inH, outH int64

	err := q.RunWith(r.conn).
		QueryRowContext(ctx).
		Scan(&st.Account, &st.ResumeID, &st.Location, &maxResumeMs, &inH, &outH, &st.UpdatedAt)
	switch err {
	case nil:
		st.MaxResume = time.Duration(maxResumeMs) * time.Millisecond
		st.InboundH = uint32(inH)
		st.OutboundH = uint32(outH)
		return &st, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}

func (r *mySQLStreamStateRep) DeleteStreamState(ctx context.Context, account string) error {
	_, err := sqb.Delete(streamStatesTableName).
		Where(sq.Eq{"account": account}).
		RunWith(r.conn).
		ExecContext(ctx)
	return err
}

type mySQLPendingRep struct {
	conn   conn
	logger kitlog.Logger
}

func (r *mySQLPendingRep) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
	if err := r.DeletePendingStanzas(ctx, account); err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}
	q := sqb.Insert(pendingStanzasTableName).
		Columns("account", "position", "seq", "stanza", "queued_at")
	for i, p := range pending {
		q = q.Values(account, i, int64(p.Seq), p.Stanza.String(), p.QueuedAt)
	}
	_, err := q.RunWith(r.conn).ExecContext(ctx)
	return err
}

func (r *mySQLPendingRep) FetchPendingStanzas(ctx context.Context, account string) ([]streammodel.Pending, error) {
	rows, err := sqb.Select("seq", "stanza", "queued_at").
		From(pendingStanzasTableName).
		Where(sq.Eq{"account": account}).
		OrderBy("position").
		RunWith(r.conn).
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			level.Warn(r.logger).Log("msg", "failed to close SQL rows", "err", err)
		}
	}()

	var ps []streammodel.Pending
	for rows.Next() {
		var seq int64
		var raw string
		var queuedAt time.Time

		if err := rows.Scan(&seq, &raw, &queuedAt); err != nil {
			return nil, err
		}
		stanza, err := streammodel.ParseStanza(raw)
		if err != nil {
			return nil, err
		}
		ps = append(ps, streammodel.Pending{Seq: uint32(seq), Stanza: stanza, QueuedAt: queuedAt})
	}
	return ps, rows.Err()
}

func (r *mySQLPendingRep) DeletePendingStanzas(ctx context.Context, account string) error {
	_, err := sqb.Delete(pendingStanzasTableName).
		Where(sq.Eq{"account": account}).
		RunWith(r.conn).
		ExecContext(ctx)
	return err
}

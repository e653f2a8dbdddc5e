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

package pgsqlrepository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	kitlog "github.com/go-kit/log"
	streammodel "github.com/ortuman/parley/pkg/model/stream"
)

const pendingStanzasTableName = "pending_stanzas"

type pgSQLPendingRep struct {
	conn   conn
	logger kitlog.Logger
}

func (r *pgSQLPendingRep) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
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

func (r *pgSQLPendingRep) FetchPendingStanzas(ctx context.Context, account string) ([]streammodel.Pending, error) {
	q := sqb.Select("seq", "stanza", "queued_at").
		From(pendingStanzasTableName).
		Where(sq.Eq{"account": account}).
		OrderBy("position")

	rows, err := q.RunWith(r.conn).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, r.logger)

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

func (r *pgSQLPendingRep) DeletePendingStanzas(ctx context.Context, account string) error {
	q := sqb.Delete(pendingStanzasTableName).
		Where(sq.Eq{"account": account})
	_, err := q.RunWith(r.conn).ExecContext(ctx)
	return err
}

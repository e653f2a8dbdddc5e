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
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	streammodel "github.com/ortuman/parley/pkg/model/stream"
)

const streamStatesTableName = "stream_states"

type pgSQLStreamStateRep struct {
	conn conn
}

func (r *pgSQLStreamStateRep) UpsertStreamState(ctx context.Context, st *streammodel.State) error {
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
		Suffix("ON CONFLICT (account) DO UPDATE SET " +
			"resume_id = EXCLUDED.resume_id, location = EXCLUDED.location, max_resume_ms = EXCLUDED.max_resume_ms, " +
			"in_h = EXCLUDED.in_h, out_h = EXCLUDED.out_h, updated_at = EXCLUDED.updated_at")

	_, err := q.RunWith(r.conn).ExecContext(ctx)
	return err
}

func (r *pgSQLStreamStateRep) FetchStreamState(ctx context.Context, account string) (*streammodel.State, error) {
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

func (r *pgSQLStreamStateRep) DeleteStreamState(ctx context.Context, account string) error {
	q := sqb.Delete(streamStatesTableName).
		Where(sq.Eq{"account": account})
	_, err := q.RunWith(r.conn).ExecContext(ctx)
	return err
}

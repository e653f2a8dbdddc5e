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

package boltdb

import (
	"context"

	streammodel "github.com/ortuman/parley/pkg/model/stream"
	bolt "go.etcd.io/bbolt"
)

const streamStateBucket = "stream_states"

type boltDBStreamStateRep struct {
	tx *bolt.Tx
}

func newStreamStateRep(tx *bolt.Tx) *boltDBStreamStateRep {
	return &boltDBStreamStateRep{tx: tx}
}

func (r *boltDBStreamStateRep) UpsertStreamState(_ context.Context, st *streammodel.State) error {
	op := upsertKeyOp{
		tx:     r.tx,
		bucket: streamStateBucket,
		key:    st.Account,
		obj:    st,
	}
	return op.do()
}

func (r *boltDBStreamStateRep) FetchStreamState(_ context.Context, account string) (*streammodel.State, error) {
	var st streammodel.State

	op := fetchKeyOp{
		tx:     r.tx,
		bucket: streamStateBucket,
		key:    account,
		obj:    &st,
	}
	ok, err := op.do()
	if err != nil || !ok {
		return nil, err
	}
	return &st, nil
}

func (r *boltDBStreamStateRep) DeleteStreamState(_ context.Context, account string) error {
	op := delKeyOp{
		tx:     r.tx,
		bucket: streamStateBucket,
		key:    account,
	}
	return op.do()
}

// UpsertStreamState satisfies repository.StreamState interface.
func (r *Repository) UpsertStreamState(ctx context.Context, st *streammodel.State) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return newStreamStateRep(tx).UpsertStreamState(ctx, st)
	})
}

// FetchStreamState satisfies repository.StreamState interface.
func (r *Repository) FetchStreamState(ctx context.Context, account string) (st *streammodel.State, err error) {
	err = r.db.View(func(tx *bolt.Tx) error {
		st, err = newStreamStateRep(tx).FetchStreamState(ctx, account)
		return err
	})
	return
}

// DeleteStreamState satisfies repository.StreamState interface.
func (r *Repository) DeleteStreamState(ctx context.Context, account string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return newStreamStateRep(tx).DeleteStreamState(ctx, account)
	})
}

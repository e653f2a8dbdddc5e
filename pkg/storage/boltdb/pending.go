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

type boltDBPendingRep struct {
	tx *bolt.Tx
}

func newPendingRep(tx *bolt.Tx) *boltDBPendingRep {
	return &boltDBPendingRep{tx: tx}
}

func (r *boltDBPendingRep) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
	if err := r.DeletePendingStanzas(ctx, account); err != nil {
		return err
	}
	for i := range pending {
		op := insertSeqOp{
			tx:     r.tx,
			bucket: pendingBucket(account),
			obj:    &pending[i],
		}
		if err := op.do(); err != nil {
			return err
		}
	}
	return nil
}

func (r *boltDBPendingRep) FetchPendingStanzas(_ context.Context, account string) ([]streammodel.Pending, error) {
	var retVal []streammodel.Pending

	op := iterKeysOp{
		tx:     r.tx,
		bucket: pendingBucket(account),
		iterFn: func(_, b []byte) error {
			var p streammodel.Pending
			if err := p.UnmarshalBinary(b); err != nil {
				return err
			}
			retVal = append(retVal, p)
			return nil
		},
	}
	if err := op.do(); err != nil {
		return nil, err
	}
	return retVal, nil
}

func (r *boltDBPendingRep) DeletePendingStanzas(_ context.Context, account string) error {
	op := delBucketOp{
		tx:     r.tx,
		bucket: pendingBucket(account),
	}
	return op.do()
}

func pendingBucket(account string) string {
	return pendingBucketPrefix + account
}

// ReplacePendingStanzas satisfies repository.PendingStanzas interface.
func (r *Repository) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return newPendingRep(tx).ReplacePendingStanzas(ctx, account, pending)
	})
}

// FetchPendingStanzas satisfies repository.PendingStanzas interface.
func (r *Repository) FetchPendingStanzas(ctx context.Context, account string) (ps []streammodel.Pending, err error) {
	err = r.db.View(func(tx *bolt.Tx) error {
		ps, err = newPendingRep(tx).FetchPendingStanzas(ctx, account)
		return err
	})
	return
}

// DeletePendingStanzas satisfies repository.PendingStanzas interface.
func (r *Repository) DeletePendingStanzas(ctx context.Context, account string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return newPendingRep(tx).DeletePendingStanzas(ctx, account)
	})
}

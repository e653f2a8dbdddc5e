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

package measuredrepository

import (
	"context"
	"time"

	streammodel "github.com/ortuman/parley/pkg/model/stream"
	"github.com/ortuman/parley/pkg/storage/repository"
)

type measuredStreamStateRep struct {
	rep  repository.StreamState
	inTx bool
}

func (m *measuredStreamStateRep) UpsertStreamState(ctx context.Context, st *streammodel.State) error {
	t0 := time.Now()
	err := m.rep.UpsertStreamState(ctx, st)
	reportOpMetric(upsertOp, time.Since(t0).Seconds(), err == nil, m.inTx)
	return err
}

func (m *measuredStreamStateRep) FetchStreamState(ctx context.Context, account string) (*streammodel.State, error) {
	t0 := time.Now()
	st, err := m.rep.FetchStreamState(ctx, account)
	reportOpMetric(fetchOp, time.Since(t0).Seconds(), err == nil, m.inTx)
	return st, err
}

func (m *measuredStreamStateRep) DeleteStreamState(ctx context.Context, account string) error {
	t0 := time.Now()
	err := m.rep.DeleteStreamState(ctx, account)
	reportOpMetric(deleteOp, time.Since(t0).Seconds(), err == nil, m.inTx)
	return err
}

type measuredPendingRep struct {
	rep  repository.PendingStanzas
	inTx bool
}

func (m *measuredPendingRep) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
	t0 := time.Now()
	err := m.rep.ReplacePendingStanzas(ctx, account, pending)
	reportOpMetric(upsertOp, time.Since(t0).Seconds(), err == nil, m.inTx)
	return err
}

func (m *measuredPendingRep) FetchPendingStanzas(ctx context.Context, account string) ([]streammodel.Pending, error) {
	t0 := time.Now()
	ps, err := m.rep.FetchPendingStanzas(ctx, account)
	reportOpMetric(fetchOp, time.Since(t0).Seconds(), err == nil, m.inTx)
	return ps, err
}

func (m *measuredPendingRep) DeletePendingStanzas(ctx context.Context, account string) error {
	t0 := time.Now()
	err := m.rep.DeletePendingStanzas(ctx, account)
	reportOpMetric(deleteOp, time.Since(t0).Seconds(), err == nil, m.inTx)
	return err
}

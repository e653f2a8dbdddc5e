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

package repository

import (
	"context"

	streammodel "github.com/ortuman/parley/pkg/model/stream"
)

// Repository represents the storage collaborator used to survive process restarts.
type Repository interface {
	StreamState
	PendingStanzas

	// InTransaction generates a repository transaction and completes it after it's being used by f function.
	// In case f returns no error tx transaction will be committed.
	InTransaction(ctx context.Context, f func(ctx context.Context, tx Transaction) error) error

	// Start initializes repository.
	Start(ctx context.Context) error

	// Stop releases all underlying repository resources.
	Stop(ctx context.Context) error
}

// Transaction represents a repository transaction.
type Transaction interface {
	StreamState
	PendingStanzas
}

// StreamState defines stream management state repository operations.
type StreamState interface {
	// UpsertStreamState inserts or replaces an account stream state.
	UpsertStreamState(ctx context.Context, st *streammodel.State) error

	// FetchStreamState retrieves an account stream state. Returns nil if none was stored.
	FetchStreamState(ctx context.Context, account string) (*streammodel.State, error)

	// DeleteStreamState removes an account stream state.
	DeleteStreamState(ctx context.Context, account string) error
}

// PendingStanzas defines unacknowledged stanza repository operations.
type PendingStanzas interface {
	// ReplacePendingStanzas replaces the whole set of account pending stanzas.
	ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error

	// FetchPendingStanzas retrieves account pending stanzas in submission order.
	FetchPendingStanzas(ctx context.Context, account string) ([]streammodel.Pending, error)

	// DeletePendingStanzas removes all account pending stanzas.
	DeletePendingStanzas(ctx context.Context, account string) error
}

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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ortuman/parley/pkg/storage/repository"
	bolt "go.etcd.io/bbolt"
)

const pendingBucketPrefix = "pending:"

// Config contains BoltDB configuration values.
type Config struct {
	// Path is the database file location. Missing parent directories are created on start.
	Path string `fig:"path" default:".parley.db" yaml:"path"`

	// LockTimeout bounds the wait for the file lock held by another parley process.
	LockTimeout time.Duration `fig:"lock_timeout" default:"1s" yaml:"lock_timeout"`

	// NoSync skips fsync after every commit.
	NoSync bool `fig:"no_sync" yaml:"no_sync"`
}

// Repository stores account stream state and pending stanzas in a single BoltDB file.
type Repository struct {
	cfg    Config
	db     *bolt.DB
	logger kitlog.Logger
}

// New returns a BoltDB repository. The database file is opened on Start.
func New(cfg Config, logger kitlog.Logger) *Repository {
	return &Repository{cfg: cfg, logger: logger}
}

// InTransaction runs f inside a read-write transaction, committed only if f succeeds.
func (r *Repository) InTransaction(ctx context.Context, f func(ctx context.Context, tx repository.Transaction) error) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return f(ctx, newRepTx(tx))
	})
}

// Start opens the database file and drops pending stanzas left without a stream state.
func (r *Repository) Start(_ context.Context) error {
	if dir := filepath.Dir(r.cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "boltdb: create %s", dir)
		}
	}
	db, err := bolt.Open(r.cfg.Path, 0600, &bolt.Options{
		Timeout: r.cfg.LockTimeout,
		NoSync:  r.cfg.NoSync,
	})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return errors.Wrapf(err, "boltdb: %s is locked by another process", r.cfg.Path)
		}
		return err
	}
	r.db = db

	var orphans int
	err = db.Update(func(tx *bolt.Tx) error {
		orphans, err = dropOrphanPending(tx)
		return err
	})
	if err != nil {
		_ = db.Close()
		return err
	}
	if orphans > 0 {
		level.Warn(r.logger).Log("msg", "dropped pending stanzas without stream state", "accounts", orphans)
	}
	level.Info(r.logger).Log("msg", "opened BoltDB repository", "path", r.cfg.Path)
	return nil
}

// Stop closes the database file.
func (r *Repository) Stop(_ context.Context) error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		return err
	}
	level.Info(r.logger).Log("msg", "closed BoltDB repository", "path", r.cfg.Path)
	return nil
}

// dropOrphanPending removes pending buckets whose account has no stream state,
// since those stanzas can never be resumed.
func dropOrphanPending(tx *bolt.Tx) (int, error) {
	states := tx.Bucket([]byte(streamStateBucket))

	var orphans [][]byte
	err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
		if !bytes.HasPrefix(name, []byte(pendingBucketPrefix)) {
			return nil
		}
		account := name[len(pendingBucketPrefix):]
		if states != nil && states.Get(account) != nil {
			return nil
		}
		orphans = append(orphans, append([]byte(nil), name...))
		return nil
	})
	if err != nil {
		return 0, err
	}
	for _, name := range orphans {
		if err := tx.DeleteBucket(name); err != nil {
			return 0, err
		}
	}
	return len(orphans), nil
}

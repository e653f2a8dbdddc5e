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
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-sql-driver/mysql"
	streammodel "github.com/ortuman/parley/pkg/model/stream"
	"github.com/ortuman/parley/pkg/storage/repository"
)

var sqb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

type conn interface {
	sq.StdSqlCtx
}

// Config contains MySQL configuration value.
type Config struct {
	Host            string        `fig:"host" yaml:"host"`
	User            string        `fig:"user" yaml:"user"`
	Password        string        `fig:"password" yaml:"-"`
	Database        string        `fig:"database" yaml:"database"`
	MaxOpenConns    int           `fig:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `fig:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `fig:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// Repository represents a MySQL repository implementation.
type Repository struct {
	repository.StreamState
	repository.PendingStanzas

	cfg Config
	dsn string

	db     *sql.DB
	logger kitlog.Logger
}

// New creates and returns an initialized MySQL Repository instance.
func New(cfg Config, logger kitlog.Logger) *Repository {
	mCfg := mysql.NewConfig()
	mCfg.User = cfg.User
	mCfg.Passwd = cfg.Password
	mCfg.Net = "tcp"
	mCfg.Addr = cfg.Host
	mCfg.DBName = cfg.Database
	mCfg.ParseTime = true
	mCfg.Loc = time.UTC

	return &Repository{
		cfg:    cfg,
		dsn:    mCfg.FormatDSN(),
		logger: logger,
	}
}

// InTransaction generates a MySQL transaction and completes it after it's being used by f function.
func (r *Repository) InTransaction(ctx context.Context, f func(ctx context.Context, tx repository.Transaction) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := f(ctx, newRepTx(tx, r.logger)); err != nil {
		if err := tx.Rollback(); err != nil {
			level.Warn(r.logger).Log("msg", "failed to rollback MySQL transaction", "err", err)
		}
		return err
	}
	return tx.Commit()
}

// ReplacePendingStanzas satisfies repository.PendingStanzas interface.
func (r *Repository) ReplacePendingStanzas(ctx context.Context, account string, pending []streammodel.Pending) error {
	return r.InTransaction(ctx, func(ctx context.Context, tx repository.Transaction) error {
		return tx.ReplacePendingStanzas(ctx, account, pending)
	})
}

// Start implements Start interface method.
func (r *Repository) Start(ctx context.Context) error {
	db, err := sql.Open("mysql", r.dsn)
	if err != nil {
		return fmt.Errorf("mysqlrepository: failed to start MySQL connection: %v", err)
	}
	db.SetMaxIdleConns(r.cfg.MaxIdleConns)
	db.SetMaxOpenConns(r.cfg.MaxOpenConns)
	db.SetConnMaxLifetime(r.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("mysqlrepository: unable to verify MySQL connection: %v", err)
	}
	r.db = db
	r.StreamState = &mySQLStreamStateRep{conn: db}
	r.PendingStanzas = &mySQLPendingRep{conn: db, logger: r.logger}

	level.Info(r.logger).Log("msg", "dialed MySQL connection", "host", r.cfg.Host)
	return nil
}

// Stop closes MySQL database.
func (r *Repository) Stop(_ context.Context) error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("mysqlrepository: failed to close MySQL connection: %v", err)
	}
	level.Info(r.logger).Log("msg", "closed MySQL connection", "host", r.cfg.Host)
	return nil
}

type repTx struct {
	repository.StreamState
	repository.PendingStanzas
}

func newRepTx(tx *sql.Tx, logger kitlog.Logger) *repTx {
	return &repTx{
		StreamState:    &mySQLStreamStateRep{conn: tx},
		PendingStanzas: &mySQLPendingRep{conn: tx, logger: logger},
	}
}

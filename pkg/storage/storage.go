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

package storage

import (
	"fmt"

	kitlog "github.com/go-kit/log"
	boltdbrepository "github.com/ortuman/parley/pkg/storage/boltdb"
	breakerrepository "github.com/ortuman/parley/pkg/storage/breaker"
	measuredrepository "github.com/ortuman/parley/pkg/storage/measured"
	mysqlrepository "github.com/ortuman/parley/pkg/storage/mysql"
	pgsqlrepository "github.com/ortuman/parley/pkg/storage/pgsql"
	"github.com/ortuman/parley/pkg/storage/repository"
)

const (
	boltDBRepositoryType = "boltdb"
	pgSQLRepositoryType  = "pgsql"
	mySQLRepositoryType  = "mysql"
)

// Config contains repository configuration.
type Config struct {
	Type    string                   `fig:"type" default:"boltdb" yaml:"type"`
	BoltDB  boltdbrepository.Config  `fig:"boltdb" yaml:"boltdb"`
	PgSQL   pgsqlrepository.Config   `fig:"pgsql" yaml:"pgsql"`
	MySQL   mysqlrepository.Config   `fig:"mysql" yaml:"mysql"`
	Breaker breakerrepository.Config `fig:"breaker" yaml:"breaker"`
}

// New returns an initialized repository instance of the configured type.
// Every backend is measured, and optionally protected by a circuit breaker.
func New(cfg Config, logger kitlog.Logger) (repository.Repository, error) {
	var rep repository.Repository

	switch cfg.Type {
	case boltDBRepositoryType, "":
		rep = boltdbrepository.New(cfg.BoltDB, logger)
	case pgSQLRepositoryType:
		rep = pgsqlrepository.New(cfg.PgSQL, logger)
	case mySQLRepositoryType:
		rep = mysqlrepository.New(cfg.MySQL, logger)
	default:
		return nil, fmt.Errorf("storage: unrecognized repository type: %s", cfg.Type)
	}
	rep = measuredrepository.New(rep)
	if cfg.Breaker.Enabled {
		rep = breakerrepository.New(rep, cfg.Breaker, logger)
	}
	return rep, nil
}

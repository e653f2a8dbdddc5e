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

package app

import (
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
	"github.com/ortuman/parley/pkg/account"
	"github.com/ortuman/parley/pkg/c2s"
	"github.com/ortuman/parley/pkg/jingle"
	"github.com/ortuman/parley/pkg/storage"
	"github.com/ortuman/parley/pkg/storage/files"
)

const (
	systemTrustMode     = "system"
	memorizingTrustMode = "memorizing"

	staticConnectivityMode = "static"
	dnsConnectivityMode    = "dns"
)

// LoggerConfig contains logger configuration.
type LoggerConfig struct {
	Level  string `fig:"level" default:"info" yaml:"level"`
	Format string `fig:"format" default:"logfmt" yaml:"format"`
}

// TrustConfig contains server certificate trust configuration.
type TrustConfig struct {
	// Mode is either "system" or "memorizing".
	Mode string `fig:"mode" default:"system" yaml:"mode"`

	// StoreFile is where memorized certificate fingerprints are persisted.
	StoreFile string `fig:"store_file" default:"trust.yaml" yaml:"store_file"`

	// Interactive asks on the terminal before trusting an unknown certificate.
	Interactive bool `fig:"interactive" yaml:"interactive"`
}

// ConnectivityConfig contains network availability configuration.
type ConnectivityConfig struct {
	// Mode is either "static" or "dns".
	Mode string `fig:"mode" default:"static" yaml:"mode"`

	Resolver      string        `fig:"resolver" yaml:"resolver,omitempty"`
	ProbeInterval time.Duration `fig:"probe_interval" default:"30s" yaml:"probe_interval"`
}

// Config is the root application configuration.
type Config struct {
	Logger LoggerConfig `fig:"logger" yaml:"logger"`

	// HTTPPort is the metrics and pprof server port. Zero disables it.
	HTTPPort int `fig:"http_port" default:"6061" yaml:"http_port"`

	Storage      storage.Config     `fig:"storage" yaml:"storage"`
	Files        files.Config       `fig:"files" yaml:"files"`
	Trust        TrustConfig        `fig:"trust" yaml:"trust"`
	Connectivity ConnectivityConfig `fig:"connectivity" yaml:"connectivity"`
	Jingle       jingle.Config      `fig:"jingle" yaml:"jingle"`

	// RejectFiles declines every incoming file offer instead of storing it under files.dir.
	RejectFiles bool `fig:"reject_files" yaml:"reject_files"`

	Accounts []account.Config `fig:"accounts" yaml:"accounts"`
}

// LoadConfig reads configuration from configFile.
func LoadConfig(configFile string) (*Config, error) {
	var cfg Config
	file := filepath.Base(configFile)
	dir := filepath.Dir(configFile)

	err := fig.Load(&cfg, fig.File(file), fig.Dirs(dir))
	if err != nil {
		return nil, err
	}
	// accounts without a c2s block
	for i := range cfg.Accounts {
		if cfg.Accounts[i].C2S.DialTimeout == 0 && cfg.Accounts[i].C2S.MaxStanzaSize == 0 {
			cfg.Accounts[i].C2S = c2s.DefaultConfig()
		}
	}
	return &cfg, nil
}

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

package jingle

import "time"

// ProxyConfig describes a SOCKS5 bytestreams proxy (XEP-0065 streamhost).
type ProxyConfig struct {
	JID  string `fig:"jid" yaml:"jid"`
	Host string `fig:"host" yaml:"host"`
	Port int    `fig:"port" default:"7777" yaml:"port"`
}

// Config contains file transfer configuration.
type Config struct {
	// CandidateTimeout bounds every SOCKS5 candidate connection attempt.
	CandidateTimeout time.Duration `fig:"candidate_timeout" default:"5s" yaml:"candidate_timeout"`

	// BlockSize is the chunk size used when copying over a SOCKS5 bytestream.
	BlockSize int `fig:"block_size" default:"4096" yaml:"block_size"`

	// IBBBlockSize is the in-band bytestream block size, before base64 encoding.
	IBBBlockSize int `fig:"ibb_block_size" default:"4096" yaml:"ibb_block_size"`

	// Bandwidth limits outgoing transfer speed in bytes per second. Zero means unlimited.
	Bandwidth int `fig:"bandwidth" yaml:"bandwidth"`

	// Hash is the XEP-0300 algorithm declared in outgoing offers.
	Hash string `fig:"hash" default:"sha-1" yaml:"hash"`

	// LocalCandidates are host:port addresses the built-in SOCKS5 server listens on.
	// Direct candidates are only offered when at least one is set.
	LocalCandidates []string `fig:"local_candidates" yaml:"local_candidates"`

	Proxies []ProxyConfig `fig:"proxies" yaml:"proxies"`

	// ProgressInterval is the minimum period between two progress events of a session.
	ProgressInterval time.Duration `fig:"progress_interval" default:"1s" yaml:"progress_interval"`
}

// DefaultConfig returns default file transfer configuration.
func DefaultConfig() Config {
	return Config{
		CandidateTimeout: 5 * time.Second,
		BlockSize:        4096,
		IBBBlockSize:     4096,
		Hash:             HashSHA1,
		ProgressInterval: time.Second,
	}
}

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

package c2s

import "time"

// KeepAliveConfig contains adaptive ping configuration.
type KeepAliveConfig struct {
	// MinInterval is the shortest idle period after which a ping is sent.
	MinInterval time.Duration `fig:"min_interval" default:"30s" yaml:"min_interval"`

	// MaxInterval is the longest idle period after which a ping is sent.
	MaxInterval time.Duration `fig:"max_interval" default:"5m" yaml:"max_interval"`

	// PingTimeout is the time a ping has to be answered before the connection is considered broken.
	PingTimeout time.Duration `fig:"ping_timeout" default:"20s" yaml:"ping_timeout"`
}

// ReconnectConfig contains reconnection backoff configuration.
type ReconnectConfig struct {
	InitialBackoff time.Duration `fig:"initial_backoff" default:"1s" yaml:"initial_backoff"`
	MaxBackoff     time.Duration `fig:"max_backoff" default:"5m" yaml:"max_backoff"`

	// MaxAttempts is the number of consecutive failed attempts after which the client gives up.
	// Zero means unbounded.
	MaxAttempts int `fig:"max_attempts" yaml:"max_attempts"`
}

// StreamManagementConfig contains XEP-0198 configuration.
type StreamManagementConfig struct {
	// Disabled turns stream management off even when the server offers it.
	Disabled bool `fig:"disabled" yaml:"disabled"`

	// DisableResume enables stream management without requesting resumption.
	DisableResume bool `fig:"disable_resume" yaml:"disable_resume"`

	// AckInterval is the idle period after which unacknowledged stanzas trigger an ack request.
	AckInterval time.Duration `fig:"ack_interval" default:"30s" yaml:"ack_interval"`

	// MaxUnacked is the number of important stanzas sent before an ack is requested.
	MaxUnacked int `fig:"max_unacked" default:"20" yaml:"max_unacked"`
}

// Config contains client connection configuration.
type Config struct {
	// DialTimeout defines the maximum time a TCP connect may take.
	DialTimeout time.Duration `fig:"dial_timeout" default:"5s" yaml:"dial_timeout"`

	// TLSHandshakeTimeout bounds STARTTLS and direct TLS handshakes, including any trust decision.
	TLSHandshakeTimeout time.Duration `fig:"tls_handshake_timeout" default:"10s" yaml:"tls_handshake_timeout"`

	// RequestTimeout defines the timeout of every stream negotiation step.
	RequestTimeout time.Duration `fig:"req_timeout" default:"15s" yaml:"req_timeout"`

	// MaxStanzaSize is the maximum size an incoming stanza may have.
	MaxStanzaSize int `fig:"max_stanza_size" default:"131072" yaml:"max_stanza_size"`

	// DirectTLS forces XEP-0368 direct TLS even when no SRV record advertises it.
	DirectTLS bool `fig:"direct_tls" yaml:"direct_tls"`

	// AllowPlaintext accepts servers that do not offer STARTTLS.
	AllowPlaintext bool `fig:"allow_plaintext" yaml:"allow_plaintext"`

	// WebSocketURL, if set, connects over RFC 7395 websocket instead of TCP.
	WebSocketURL string `fig:"websocket_url" yaml:"websocket_url,omitempty"`

	// SOCKS5Proxy is an optional host:port SOCKS5 proxy used to reach the server.
	SOCKS5Proxy string `fig:"socks5_proxy" yaml:"socks5_proxy,omitempty"`

	// Resolver is the DNS server (host:port) used for SRV lookups. Empty uses the system one.
	Resolver string `fig:"resolver" yaml:"resolver,omitempty"`

	// Host and Port override SRV resolution when set.
	Host string `fig:"host" yaml:"host,omitempty"`
	Port int    `fig:"port" yaml:"port,omitempty"`

	KeepAlive        KeepAliveConfig        `fig:"keepalive" yaml:"keepalive"`
	Reconnect        ReconnectConfig        `fig:"reconnect" yaml:"reconnect"`
	StreamManagement StreamManagementConfig `fig:"stream_management" yaml:"stream_management"`

	// IQTimeout is the default deadline of outbound IQ requests.
	IQTimeout time.Duration `fig:"iq_timeout" default:"30s" yaml:"iq_timeout"`

	// Mechanisms is the SASL mechanism preference list, strongest first.
	Mechanisms []string `fig:"mechanisms" default:"[SCRAM-SHA-256-PLUS, SCRAM-SHA-1-PLUS, SCRAM-SHA-256, SCRAM-SHA-1, PLAIN]" yaml:"mechanisms"`
}

// DefaultConfig returns a configuration populated with default values,
// for callers not loading it through a config file.
func DefaultConfig() Config {
	return Config{
		DialTimeout:         5 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		RequestTimeout:      15 * time.Second,
		MaxStanzaSize:       131072,
		KeepAlive: KeepAliveConfig{
			MinInterval: 30 * time.Second,
			MaxInterval: 5 * time.Minute,
			PingTimeout: 20 * time.Second,
		},
		Reconnect: ReconnectConfig{
			InitialBackoff: time.Second,
			MaxBackoff:     5 * time.Minute,
		},
		StreamManagement: StreamManagementConfig{
			AckInterval: 30 * time.Second,
			MaxUnacked:  20,
		},
		IQTimeout:  30 * time.Second,
		Mechanisms: defaultMechanisms(),
	}
}

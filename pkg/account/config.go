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

package account

import "github.com/ortuman/parley/pkg/c2s"

// Config contains a single account configuration.
type Config struct {
	JID      string `fig:"jid" yaml:"jid"`
	Password string `fig:"password" yaml:"password"`

	// Resource is the requested resource. Empty lets the server assign one.
	Resource string `fig:"resource" yaml:"resource"`

	// Disabled accounts are registered but never connect until enabled.
	Disabled bool `fig:"disabled" yaml:"disabled"`

	C2S c2s.Config `fig:"c2s" yaml:"c2s"`
}

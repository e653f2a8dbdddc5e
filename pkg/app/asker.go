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
	"bufio"
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ortuman/parley/pkg/trust"
)

// terminalAsker asks on a terminal whether an unknown server certificate should be trusted.
type terminalAsker struct {
	in  io.Reader
	out io.Writer

	mu    sync.Mutex
	once  sync.Once
	lines chan string
}

func newTerminalAsker(in io.Reader, out io.Writer) *terminalAsker {
	return &terminalAsker{in: in, out: out, lines: make(chan string)}
}

// Ask satisfies trust.Asker interface.
func (a *terminalAsker) Ask(ctx context.Context, hostname string, chain []*x509.Certificate) (bool, error) {
	a.once.Do(func() { go a.readLines() })

	a.mu.Lock()
	defer a.mu.Unlock()

	leaf := chain[0]
	_, _ = fmt.Fprintf(a.out, "\nUnknown certificate presented by %s\n", hostname)
	_, _ = fmt.Fprintf(a.out, "  Subject:     %s\n", leaf.Subject.String())
	_, _ = fmt.Fprintf(a.out, "  Issuer:      %s\n", leaf.Issuer.String())
	_, _ = fmt.Fprintf(a.out, "  Valid until: %s\n", leaf.NotAfter.Format("2006-01-02"))
	_, _ = fmt.Fprintf(a.out, "  SHA-256:     %s\n", trust.Fingerprint(leaf))
	_, _ = fmt.Fprint(a.out, "Trust it? [y/N]: ")

	select {
	case line, ok := <-a.lines:
		if !ok {
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (a *terminalAsker) readLines() {
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		a.lines <- sc.Text()
	}
	close(a.lines)
}

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

package crashreporter

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/sentry-go"
)

// EnvSentryDSN names the environment variable holding the sentry DSN reports are sent to.
const EnvSentryDSN = "PARLEY_SENTRY_DSN"

// ExitPanic is the process exit code after a recovered panic.
const ExitPanic = 2

const (
	reportPanic = "panic"
	reportError = "error"

	// frames between the panicking call and panicAsError
	panicDepth = 3

	flushTimeout = 10 * time.Second
)

var (
	enabled int32

	exitFn           = os.Exit
	stderr io.Writer = os.Stderr
)

// Init enables reporting when EnvSentryDSN is set. Every report is tagged with release.
func Init(release string) error {
	dsn := os.Getenv(EnvSentryDSN)
	if len(dsn) == 0 {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:        dsn,
		Release:    "parley@" + release,
		ServerName: "<redacted>",
	})
	if err != nil {
		return errors.Wrap(err, "crashreporter: sentry init")
	}
	atomic.StoreInt32(&enabled, 1)
	return nil
}

// Enabled tells whether reports are sent.
func Enabled() bool { return atomic.LoadInt32(&enabled) == 1 }

// RecoverAndExit recovers a panicking goroutine, reports the panic and terminates
// the process with ExitPanic. It only works when deferred directly.
func RecoverAndExit() {
	r := recover()
	if r == nil {
		return
	}
	err := panicAsError(panicDepth+1, r)
	capture(err, reportPanic, nil)

	_, _ = fmt.Fprintf(stderr, "parley: unrecoverable panic\n%+v\n", err)
	exitFn(ExitPanic)
}

// ReportError sends a non fatal error report. tags are key/value pairs attached to it.
func ReportError(err error, tags ...string) {
	if err == nil {
		return
	}
	capture(errors.WithStackDepth(err, 1), reportError, tags)
}

func panicAsError(depth int, r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.WithStackDepth(err, depth+1)
	}
	return errors.NewWithDepthf(depth+1, "panic: %v", r)
}

func capture(err error, typ string, tags []string) {
	if !Enabled() {
		return
	}
	event, details := errors.BuildSentryReport(err)
	for k, v := range details {
		event.Extra[k] = v
	}
	event.Tags["report_type"] = typ
	for i := 0; i+1 < len(tags); i += 2 {
		event.Tags[tags[i]] = tags[i+1]
	}
	_ = sentry.CaptureEvent(event)
	_ = sentry.Flush(flushTimeout)
}

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

package ratelimiter

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// ErrReadLimitExceeded will be returned by Reader when current rate limit is exceeded.
var ErrReadLimitExceeded = errors.New("ratelimiter: read limit exceeded")

// Reader is an io.Reader failing reads that exceed its rate limit.
type Reader struct {
	r    io.Reader
	rLim atomic.Value
}

// NewReader returns a rate limited io.Reader implementation.
// No limit is applied until SetReadRateLimiter is called.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read implements io.Reader interface method.
func (lr *Reader) Read(p []byte) (n int, err error) {
	n, err = lr.r.Read(p)
	if n > 0 {
		if rLim := lr.ReadRateLimiter(); rLim != nil && !rLim.AllowN(time.Now(), n) {
			return 0, ErrReadLimitExceeded
		}
	}
	return n, err
}

// SetReadRateLimiter sets current read rate limit.
func (lr *Reader) SetReadRateLimiter(rLim *rate.Limiter) {
	lr.rLim.Store(rLim)
}

// ReadRateLimiter returns previously set rate limiter.
func (lr *Reader) ReadRateLimiter() *rate.Limiter {
	if v := lr.rLim.Load(); v != nil {
		return v.(*rate.Limiter)
	}
	return nil
}

// Writer is an io.Writer shaping its throughput to a rate limit.
// Writes block until enough tokens are available or ctx is done.
type Writer struct {
	ctx  context.Context
	w    io.Writer
	wLim *rate.Limiter
}

// NewWriter returns a bandwidth shaped io.Writer.
// A nil limiter leaves w unlimited.
func NewWriter(ctx context.Context, w io.Writer, wLim *rate.Limiter) *Writer {
	return &Writer{ctx: ctx, w: w, wLim: wLim}
}

// Write implements io.Writer interface method.
func (lw *Writer) Write(p []byte) (int, error) {
	if lw.wLim == nil {
		return lw.w.Write(p)
	}
	var written int
	burst := lw.wLim.Burst()
	for len(p) > 0 {
		chunk := len(p)
		if burst > 0 && chunk > burst {
			chunk = burst
		}
		if err := lw.wLim.WaitN(lw.ctx, chunk); err != nil {
			return written, err
		}
		n, err := lw.w.Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}
		p = p[chunk:]
	}
	return written, nil
}

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

package delivery

import (
	"sync"
	"time"

	"github.com/ortuman/parley/pkg/xmpp"
)

// Entry is an outbound stanza awaiting acknowledgement.
type Entry struct {
	Seq      uint32
	Stanza   *xmpp.Element
	QueuedAt time.Time
}

// State is a point in time copy of a queue, suitable for persistence.
type State struct {
	InboundH  uint32
	OutboundH uint32
	Entries   []Entry
}

// Queue keeps stream management counters and the replay buffer of unacknowledged stanzas.
//
// Every stanza written to the stream advances the outbound counter, while only
// important stanzas are retained until the peer acknowledges them.
type Queue struct {
	mu      sync.RWMutex
	entries []Entry
	outH    uint32
	inH     uint32
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue retains stanza tagged with the next outbound sequence number and returns it.
// It must be called before the stanza is written to the stream.
func (q *Queue) Enqueue(stanza *xmpp.Element) uint32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.outH = incH(q.outH)
	q.entries = append(q.entries, Entry{
		Seq:      q.outH,
		Stanza:   stanza,
		QueuedAt: time.Now(),
	})
	return q.outH
}

// Skip advances the outbound counter for a stanza not worth retaining.
func (q *Queue) Skip() uint32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.outH = incH(q.outH)
	return q.outH
}

// Acknowledge drops every entry with sequence number up to h and returns them.
func (q *Queue) Acknowledge(h uint32) []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	j := 0
	for j < len(q.entries) && seqLTE(q.entries[j].Seq, h) {
		j++
	}
	if j == 0 {
		return nil
	}
	acked := make([]Entry, j)
	copy(acked, q.entries[:j])
	q.entries = q.entries[j:]
	return acked
}

// Requeue acknowledges up to h and returns the remaining entries in submission order,
// rewinding the outbound counter to h. Callers are expected to enqueue every returned
// stanza again before sending any new traffic.
func (q *Queue) Requeue(h uint32) []Entry {
	q.Acknowledge(h)

	q.mu.Lock()
	defer q.mu.Unlock()
	pending := q.entries
	q.entries = nil
	q.outH = h
	return pending
}

// Pending returns a copy of the unacknowledged entries in submission order.
func (q *Queue) Pending() []Entry {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if len(q.entries) == 0 {
		return nil
	}
	ret := make([]Entry, len(q.entries))
	copy(ret, q.entries)
	return ret
}

// Drain removes and returns every unacknowledged entry, resetting both counters.
func (q *Queue) Drain() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	ret := q.entries
	q.entries = nil
	q.outH = 0
	q.inH = 0
	return ret
}

// Len returns the number of unacknowledged entries.
func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.entries)
}

// IncInbound accounts for a handled inbound stanza.
func (q *Queue) IncInbound() uint32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.inH = incH(q.inH)
	return q.inH
}

// InboundH returns the inbound handled counter.
func (q *Queue) InboundH() uint32 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.inH
}

// OutboundH returns the outbound counter.
func (q *Queue) OutboundH() uint32 {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.outH
}

// Snapshot returns the queue state.
func (q *Queue) Snapshot() State {
	q.mu.RLock()
	defer q.mu.RUnlock()
	st := State{InboundH: q.inH, OutboundH: q.outH}
	if len(q.entries) > 0 {
		st.Entries = make([]Entry, len(q.entries))
		copy(st.Entries, q.entries)
	}
	return st
}

// Restore replaces queue state with st.
func (q *Queue) Restore(st State) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.inH = st.InboundH
	q.outH = st.OutboundH
	q.entries = make([]Entry, len(st.Entries))
	copy(q.entries, st.Entries)
}

// incH increments a stream management counter, wrapping to zero after 2^32-1.
func incH(h uint32) uint32 {
	return h + 1
}

// seqLTE reports whether a precedes or equals b in wrapping sequence space.
func seqLTE(a, b uint32) bool {
	return int32(b-a) >= 0
}

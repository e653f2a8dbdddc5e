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

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	jingleSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "jingle",
			Name:      "sessions_total",
			Help:      "The total number of file transfer sessions by direction.",
		},
		[]string{"direction"},
	)
	jingleOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "jingle",
			Name:      "outcomes_total",
			Help:      "The total number of terminated sessions by direction, transport and reason.",
		},
		[]string{"direction", "transport", "reason"},
	)
	jingleBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "jingle",
			Name:      "transferred_bytes_total",
			Help:      "The total number of transferred payload bytes.",
		},
		[]string{"direction", "transport"},
	)
	jingleUnverified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "jingle",
			Name:      "unverified_transfers_total",
			Help:      "The total number of received files committed without a supported digest.",
		},
	)
	jingleProbeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parley",
			Subsystem: "jingle",
			Name:      "candidate_probe_duration_bucket",
			Help:      "Bucketed histogram of SOCKS5 candidate probing duration.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(jingleSessions)
	prometheus.MustRegister(jingleOutcomes)
	prometheus.MustRegister(jingleBytes)
	prometheus.MustRegister(jingleUnverified)
	prometheus.MustRegister(jingleProbeDuration)
}

func direction(initiator bool) string {
	if initiator {
		return "outgoing"
	}
	return "incoming"
}

func reportSession(initiator bool) {
	jingleSessions.With(prometheus.Labels{"direction": direction(initiator)}).Inc()
}

func reportOutcome(initiator bool, transport string, reason Reason) {
	if len(transport) == 0 {
		transport = "none"
	}
	jingleOutcomes.With(prometheus.Labels{
		"direction": direction(initiator),
		"transport": transport,
		"reason":    string(reason),
	}).Inc()
}

func reportTransferred(initiator bool, transport string, n int64) {
	jingleBytes.With(prometheus.Labels{
		"direction": direction(initiator),
		"transport": transport,
	}).Add(float64(n))
}

func reportUnverified() {
	jingleUnverified.Inc()
}

func reportProbe(ok bool, durationInSecs float64) {
	result := "failure"
	if ok {
		result = "success"
	}
	jingleProbeDuration.With(prometheus.Labels{"result": result}).Observe(durationInSecs)
}

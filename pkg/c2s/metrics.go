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

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	c2sConnectAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "connect_attempts_total",
			Help:      "The total number of connection attempts.",
		},
		[]string{"transport"},
	)
	c2sConnectionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "connection_failures_total",
			Help:      "The total number of connection failures by kind.",
		},
		[]string{"kind", "state"},
	)
	c2sOnline = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "online_total",
			Help:      "The total number of times an account reached online state.",
		},
		[]string{"resumed"},
	)
	c2sNegotiationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "negotiation_duration_bucket",
			Help:      "Bucketed histogram of stream negotiation duration.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 16),
		},
	)
	c2sOutgoingStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "outgoing_stanzas_total",
			Help:      "The total number of outgoing stanzas.",
		},
		[]string{"name", "type"},
	)
	c2sIncomingStanzas = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "incoming_stanzas_total",
			Help:      "The total number of incoming stanzas.",
		},
		[]string{"name", "type"},
	)
	c2sIncomingDurationBucket = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "incoming_stanzas_duration_bucket",
			Help:      "Bucketed histogram of incoming stanza handling duration.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 18),
		},
		[]string{"name", "type"},
	)
	c2sDeliveryOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "delivery_outcomes_total",
			Help:      "The total number of important stanza delivery outcomes.",
		},
		[]string{"outcome"},
	)
	c2sPings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parley",
			Subsystem: "c2s",
			Name:      "keepalive_pings_total",
			Help:      "The total number of keepalive pings by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(c2sConnectAttempts)
	prometheus.MustRegister(c2sConnectionFailures)
	prometheus.MustRegister(c2sOnline)
	prometheus.MustRegister(c2sNegotiationDuration)
	prometheus.MustRegister(c2sOutgoingStanzas)
	prometheus.MustRegister(c2sIncomingStanzas)
	prometheus.MustRegister(c2sIncomingDurationBucket)
	prometheus.MustRegister(c2sDeliveryOutcomes)
	prometheus.MustRegister(c2sPings)
}

func reportConnectAttempt(transportType string) {
	c2sConnectAttempts.With(prometheus.Labels{"transport": transportType}).Inc()
}

func reportConnectionFailure(kind ErrorKind, st State) {
	c2sConnectionFailures.With(prometheus.Labels{
		"kind":  kind.String(),
		"state": st.String(),
	}).Inc()
}

func reportOnline(resumed bool, negotiationSecs float64) {
	lbl := "false"
	if resumed {
		lbl = "true"
	}
	c2sOnline.With(prometheus.Labels{"resumed": lbl}).Inc()
	c2sNegotiationDuration.Observe(negotiationSecs)
}

func reportOutgoingStanza(name, typ string) {
	c2sOutgoingStanzas.With(prometheus.Labels{"name": name, "type": typ}).Inc()
}

func reportIncomingStanza(name, typ string, durationInSecs float64) {
	metricLabel := prometheus.Labels{
		"name": name,
		"type": typ,
	}
	c2sIncomingStanzas.With(metricLabel).Inc()
	c2sIncomingDurationBucket.With(metricLabel).Observe(durationInSecs)
}

func reportDeliveryOutcome(outcome string, count int) {
	c2sDeliveryOutcomes.With(prometheus.Labels{"outcome": outcome}).Add(float64(count))
}

func reportPing(result string) {
	c2sPings.With(prometheus.Labels{"result": result}).Inc()
}

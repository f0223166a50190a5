/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2025  Lucas Duport
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package proxy

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the stream proxy collectors. A nil *Metrics records nothing.
type Metrics struct {
	// Requests counts relayed requests by media kind and outcome.
	Requests *prometheus.CounterVec
	// RangeRetries counts upstream retries after a 416 answer.
	RangeRetries prometheus.Counter
	// BytesRelayed counts body bytes written to clients.
	BytesRelayed prometheus.Counter
	// StreamsActive tracks relays currently copying a body.
	StreamsActive prometheus.Gauge
	// ManifestRewrites counts rewritten HLS playlists by type.
	ManifestRewrites *prometheus.CounterVec
}

// NewMetrics registers the proxy collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iptv_proxy_requests_total",
			Help: "Total number of media requests handled by the stream proxy",
		}, []string{"kind", "outcome"}),
		RangeRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "iptv_proxy_range_retries_total",
			Help: "Total number of upstream retries without Range after a 416",
		}),
		BytesRelayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "iptv_proxy_bytes_relayed_total",
			Help: "Total number of body bytes written to clients",
		}),
		StreamsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "iptv_proxy_streams_active",
			Help: "Number of streams currently being relayed",
		}),
		ManifestRewrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iptv_proxy_manifest_rewrites_total",
			Help: "Total number of rewritten HLS manifests",
		}, []string{"type"}),
	}
}

// Outcomes recorded on the requests counter.
const (
	outcomeOK        = "ok"
	outcomeNotFound  = "not_found"
	outcomeUpstream  = "upstream_status"
	outcomeBadGate   = "bad_gateway"
	outcomeCancelled = "cancelled"
)

func (m *Metrics) request(kind, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) rangeRetry() {
	if m == nil {
		return
	}
	m.RangeRetries.Inc()
}

func (m *Metrics) relayed(n int) {
	if m == nil {
		return
	}
	m.BytesRelayed.Add(float64(n))
}

func (m *Metrics) streamStarted() func() {
	if m == nil {
		return func() {}
	}
	m.StreamsActive.Inc()
	return m.StreamsActive.Dec
}

func (m *Metrics) rewrite(t ManifestType) {
	if m == nil {
		return
	}
	m.ManifestRewrites.WithLabelValues(string(t)).Inc()
}

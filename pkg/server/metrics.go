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

package server

import (
	"github.com/gercyc/IPTVProxy/pkg/xtream"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type apiMetrics struct {
	actions *prometheus.CounterVec
	reloads *prometheus.CounterVec
}

func newAPIMetrics(reg prometheus.Registerer) *apiMetrics {
	factory := promauto.With(reg)
	return &apiMetrics{
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iptv_api_actions_total",
			Help: "Total number of player_api.php calls by action",
		}, []string{"action", "auth"}),
		reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "iptv_catalog_reloads_total",
			Help: "Total number of catalog reloads by result",
		}, []string{"result"}),
	}
}

// action counts one player_api.php call. Labels come from a closed set:
// unauthenticated calls share the "denied" action and unknown actions share
// "unknown", whatever the client sent.
func (m *apiMetrics) action(action xtream.Action, authorized bool) {
	name, auth := actionLabel(action), "ok"
	if !authorized {
		name, auth = "denied", "denied"
	}
	m.actions.WithLabelValues(name, auth).Inc()
}

func actionLabel(action xtream.Action) string {
	switch action.(type) {
	case xtream.Unknown:
		return "unknown"
	case xtream.Login:
		return "login"
	}
	return action.Name()
}

func (m *apiMetrics) reload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// metricsHandler exposes the server registry in the prometheus text format.
func (c *Config) metricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

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
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
	"github.com/gercyc/IPTVProxy/pkg/config"
	"github.com/gercyc/IPTVProxy/pkg/proxy"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	"github.com/gercyc/IPTVProxy/pkg/xtream"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 10 * time.Second

// Config represent the server configuration
type Config struct {
	*config.ProxyConfig

	store     *catalog.Store
	responder *xtream.Responder
	proxy     *proxy.Proxy

	apiKey   string
	registry *prometheus.Registry
	metrics  *apiMetrics
}

// NewServer wires the catalog store, the API responder and the stream proxy
// around one shared upstream client. The store serves the mock catalog until
// Serve or LoadCatalog publishes the configured playlist.
func NewServer(cfg *config.ProxyConfig) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, utils.PrintErrorAndReturn(err)
	}

	baseURL := cfg.ResolvedBaseURL()
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = utils.GetIPTVUserAgent()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := proxy.NewHTTPClient(cfg.UpstreamTimeout)
	store := catalog.NewStore(catalog.StoreConfig{
		BaseURL:   baseURL,
		Client:    client,
		UserAgent: userAgent,
	})

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = uuid.New().String()
		utils.InfoLog("Generated new internal API key: %s", apiKey)
	} else {
		utils.InfoLog("Using configured internal API key")
	}

	return &Config{
		ProxyConfig: cfg,
		store:       store,
		responder: xtream.NewResponder(xtream.Options{
			Store:    store,
			Username: cfg.User.String(),
			Password: cfg.Password.String(),
			BaseURL:  baseURL,
			Port:     strconv.Itoa(cfg.PublishedPort()),
			Protocol: cfg.Protocol(),
			Timezone: cfg.Timezone,
		}),
		proxy: proxy.New(proxy.Options{
			Client:    client,
			UserAgent: userAgent,
			Metrics:   proxy.NewMetrics(registry),
		}),
		apiKey:   apiKey,
		registry: registry,
		metrics:  newAPIMetrics(registry),
	}, nil
}

// InternalAPIKey returns the key guarding the internal API.
func (c *Config) InternalAPIKey() string {
	return c.apiKey
}

// Store exposes the catalog store.
func (c *Config) Store() *catalog.Store {
	return c.store
}

// LoadCatalog publishes the configured playlist. On failure the mock catalog
// stays in place and the error is returned for logging.
func (c *Config) LoadCatalog(ctx context.Context) error {
	if _, err := c.store.Load(ctx, c.PlaylistSource); err != nil {
		return utils.PrintErrorAndReturn(err)
	}
	return nil
}

// Router builds the gin engine serving every endpoint.
func (c *Config) Router() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(requestID())
	c.routes(router)
	return router
}

// Serve the iptv-proxy api until ctx is cancelled.
func (c *Config) Serve(ctx context.Context) error {
	utils.InfoLog("[iptv-proxy] Server is starting...")

	if err := c.LoadCatalog(ctx); err != nil {
		utils.WarnLog("Playlist load failed, serving mock data: %v", err)
	}

	if c.WatchPlaylist {
		stop, err := c.watchPlaylist(ctx)
		if err != nil {
			utils.WarnLog("Playlist watcher disabled: %v", err)
		} else {
			defer stop()
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", c.HostConfig.Port),
		Handler: c.Router(),
	}

	errc := make(chan error, 1)
	go func() {
		utils.InfoLog("[iptv-proxy] Server is ready and listening on :%d (base URL %s)", c.HostConfig.Port, c.ResolvedBaseURL())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return utils.PrintErrorAndReturn(err)
	case <-ctx.Done():
	}

	utils.InfoLog("[iptv-proxy] Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

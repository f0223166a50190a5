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
	"net/http"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (c *Config) routes(r *gin.Engine) {
	c.xtreamRoutes(r)
	c.streamRoutes(r)
	c.setupInternalAPI(r)

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "ok")
	})
	if c.MetricsEnabled {
		r.GET("/metrics", c.metricsHandler())
	}
}

func (c *Config) xtreamRoutes(r *gin.Engine) {
	r.GET("/player_api.php", c.playerAPI)
	r.POST("/player_api.php", c.playerAPI)
	r.GET("/get.php", c.authenticate, c.getPlaylist)
	// XXX Private need: for external Android app
	r.POST("/get.php", c.authenticate, c.getPlaylist)
	r.GET("/xmltv.php", c.authenticate, c.getXMLTV)
}

func (c *Config) streamRoutes(r *gin.Engine) {
	utils.DebugLog("Setting up stream routes with path credentials")

	r.GET("/:username/:password/:id", c.authWithPathCredentials(), c.streamHandler(playlist.KindLive))
	r.GET("/live/:username/:password/:id", c.authWithPathCredentials(), c.streamHandler(playlist.KindLive))
	r.GET("/movie/:username/:password/:id", c.authWithPathCredentials(), c.streamHandler(playlist.KindMovie))
	r.GET("/series/:username/:password/:id", c.authWithPathCredentials(), c.streamHandler(playlist.KindSeries))
}

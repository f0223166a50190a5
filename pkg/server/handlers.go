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
	"fmt"
	"net/http"
	"strings"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	"github.com/gercyc/IPTVProxy/pkg/xtream"
	"github.com/gin-gonic/gin"
)

const playlistFileName = "playlist.m3u"

// playerAPI answers /player_api.php. Every outcome, including bad
// credentials and unknown actions, is a JSON body with status 200.
func (c *Config) playerAPI(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		utils.DebugLog("player_api form error: %v", err)
	}
	form := ctx.Request.Form
	username, password := form.Get("username"), form.Get("password")

	action := xtream.ParseAction(form)
	authorized := c.responder.ValidateCredentials(username, password)
	c.metrics.action(action, authorized)
	utils.DebugLog("player_api action=%q user=%s authorized=%v", action.Name(), username, authorized)

	ctx.JSON(http.StatusOK, c.responder.Handle(username, password, action))
}

// getPlaylist answers /get.php with the whole catalog as an M3U playlist.
func (c *Config) getPlaylist(ctx *gin.Context) {
	body, err := c.responder.RenderPlaylist(ctx.GetString("username"), ctx.GetString("password"), ctx.Query("output"))
	if err != nil {
		ctx.AbortWithError(http.StatusInternalServerError, utils.PrintErrorAndReturn(err)) // nolint: errcheck
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, playlistFileName))
	ctx.Data(http.StatusOK, "application/x-mpegurl", []byte(body))
}

// getXMLTV answers /xmltv.php with a generated two day guide.
func (c *Config) getXMLTV(ctx *gin.Context) {
	body, err := c.responder.XMLTV()
	if err != nil {
		ctx.AbortWithError(http.StatusInternalServerError, utils.PrintErrorAndReturn(err)) // nolint: errcheck
		return
	}
	ctx.Data(http.StatusOK, "application/xml", body)
}

// streamHandler relays media of the given kind. The :id segment may carry a
// file extension, as in 42.ts.
func (c *Config) streamHandler(kind playlist.Kind) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ext := splitMediaID(ctx.Param("id"))
		utils.DebugLog("Stream request kind=%s id=%s ext=%s", kind, id, ext)
		c.proxy.Serve(ctx, c.store.Current(), kind, id, ext)
	}
}

// splitMediaID separates "42.ts" into "42" and "ts".
func splitMediaID(raw string) (id, ext string) {
	if i := strings.LastIndexByte(raw, '.'); i > 0 {
		return raw[:i], strings.ToLower(raw[i+1:])
	}
	return raw, ""
}

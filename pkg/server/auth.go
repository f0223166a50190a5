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
	"crypto/subtle"
	"net/http"

	"github.com/gercyc/IPTVProxy/pkg/types"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	"github.com/gin-gonic/gin"
)

// authRequest represents credentials supplied via form/query params
// for endpoints using GET/POST with standard query binding.
type authRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// authenticate validates form/query credentials against the configured pair.
func (c *Config) authenticate(ctx *gin.Context) {
	utils.DebugLog("-> Incoming URL: %s", utils.MaskURL(ctx.Request.URL.String()))
	var authReq authRequest
	if err := ctx.ShouldBind(&authReq); err != nil {
		utils.DebugLog("Bind error: %v", err)
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !c.responder.ValidateCredentials(authReq.Username, authReq.Password) {
		utils.DebugLog("Authentication failed for user: %s", authReq.Username)
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ctx.Set("username", authReq.Username)
	ctx.Set("password", authReq.Password)
}

// authWithPathCredentials validates the username and password path segments
// of media URLs.
func (c *Config) authWithPathCredentials() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username := ctx.Param("username")
		password := ctx.Param("password")
		if !c.responder.ValidateCredentials(username, password) {
			utils.DebugLog("Path credentials rejected for %s", utils.MaskURL(ctx.Request.URL.Path))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		ctx.Next()
	}
}

// apiKeyAuth middleware validates the internal API key
func (c *Config) apiKeyAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(c.apiKey)) != 1 {
			utils.DebugLog("API authentication failed - invalid key: %s", utils.MaskString(key))
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.APIResponse{
				Success: false,
				Error:   "Invalid API key",
			})
			return
		}
		ctx.Next()
	}
}

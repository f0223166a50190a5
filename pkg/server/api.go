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
	"runtime/debug"
	"strings"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/types"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	"github.com/gin-gonic/gin"
)

// setupInternalAPI registers the maintenance endpoints guarded by X-API-Key.
func (c *Config) setupInternalAPI(r *gin.Engine) {
	api := r.Group("/api/internal")
	api.Use(c.apiKeyAuth())

	// Add recovery middleware to prevent panics from taking down the server
	api.Use(func(ctx *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.ErrorLog("API PANIC RECOVERED: %v\nStack trace: %s", err, debug.Stack())
				ctx.AbortWithStatusJSON(http.StatusInternalServerError, types.APIResponse{
					Success: false,
					Error:   fmt.Sprintf("Internal server error: %v", err),
				})
			}
		}()
		ctx.Next()
	})

	api.GET("/status", c.catalogStatus)
	api.POST("/reload", c.reloadCatalog)

	// Debug endpoint to verify API is working
	api.GET("/ping", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, types.APIResponse{
			Success: true,
			Message: "API is running",
			Data: map[string]interface{}{
				"time": time.Now().String(),
			},
		})
	})
}

func (c *Config) status() types.CatalogStatus {
	source := c.store.Source()
	if strings.Contains(source, "://") {
		source = utils.MaskURL(source)
	}
	return types.NewCatalogStatus(c.store.Current(), source)
}

func (c *Config) catalogStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, types.APIResponse{
		Success: true,
		Data:    c.status(),
	})
}

// reloadCatalog rebuilds the catalog from the configured source. A failed
// reload keeps serving the previous snapshot.
func (c *Config) reloadCatalog(ctx *gin.Context) {
	_, err := c.store.Load(ctx.Request.Context(), c.PlaylistSource)
	c.metrics.reload(err)
	if err != nil {
		utils.WarnLog("Catalog reload failed: %v", err)
		ctx.JSON(http.StatusInternalServerError, types.APIResponse{
			Success: false,
			Error:   err.Error(),
			Data:    c.status(),
		})
		return
	}
	ctx.JSON(http.StatusOK, types.APIResponse{
		Success: true,
		Message: "Catalog reloaded",
		Data:    c.status(),
	})
}

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
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultContentType = "application/octet-stream"

var extensionContentTypes = map[string]string{
	"ts":   "video/mp2t",
	"m3u8": "application/vnd.apple.mpegurl",
	"mp4":  "video/mp4",
	"mkv":  "video/x-matroska",
	"avi":  "video/x-msvideo",
}

// ContentTypeForExtension maps a requested file extension to the outbound
// Content-Type. Unknown or empty extensions fall back to the upstream value,
// then to a generic binary type.
func ContentTypeForExtension(ext, upstream string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ct, ok := extensionContentTypes[ext]; ok {
		return ct
	}
	if upstream != "" {
		return upstream
	}
	return defaultContentType
}

// isManifestContentType reports whether ct names an HLS playlist.
func isManifestContentType(ct string) bool {
	lc := strings.ToLower(ct)
	return strings.Contains(lc, "mpegurl") || strings.Contains(lc, "m3u8")
}

// setNoBufferingHeaders configures common headers to minimize intermediary
// buffering and keep the connection alive during long-running streams.
func setNoBufferingHeaders(ctx *gin.Context, contentType string) {
	if contentType != "" {
		ctx.Header("Content-Type", contentType)
	}
	ctx.Header("Cache-Control", "no-store")
	ctx.Header("Pragma", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")
}

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

package catalog

import (
	"net/url"
	"strings"
)

// DefaultExtension is used when an origin carries no recognised container.
const DefaultExtension = "mp4"

var knownExtensions = map[string]struct{}{
	"mp4":  {},
	"mkv":  {},
	"avi":  {},
	"m3u8": {},
	"ts":   {},
}

// ExtensionFromURL returns the lowercase container extension of a media URL,
// ignoring any query string, or DefaultExtension.
func ExtensionFromURL(raw string) string {
	if raw == "" {
		return DefaultExtension
	}

	p := raw
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		p = u.Path
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}

	dot := strings.LastIndexByte(p, '.')
	if dot <= 0 || dot == len(p)-1 {
		return DefaultExtension
	}
	ext := strings.ToLower(p[dot+1:])
	if _, ok := knownExtensions[ext]; !ok {
		return DefaultExtension
	}
	return ext
}

// IsManifestURL reports whether raw points at an HLS playlist.
func IsManifestURL(raw string) bool {
	return strings.Contains(strings.ToLower(raw), ".m3u8")
}

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

package utils

import "strings"

// MaskString masks sensitive parts of strings for logging.
func MaskString(s string) string {
	if len(s) <= 8 {
		if len(s) == 0 {
			return "[empty]"
		}
		return s[:1] + "******"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

// MaskURL masks credentials carried by a media URL, either as path segments
// (/{user}/{pass}/{id} or /movie|series|live/{user}/{pass}/{id}) or as
// username/password query parameters.
func MaskURL(urlStr string) string {
	rest, query, hasQuery := strings.Cut(urlStr, "?")

	prefix := ""
	if i := strings.Index(rest, "://"); i >= 0 {
		if j := strings.IndexByte(rest[i+3:], '/'); j >= 0 {
			prefix, rest = rest[:i+3+j], rest[i+3+j:]
		} else {
			prefix, rest = rest, ""
		}
	}

	segments := strings.Split(strings.TrimPrefix(rest, "/"), "/")
	switch {
	case len(segments) == 4 && isMediaPrefix(segments[0]):
		segments[1] = MaskString(segments[1])
		segments[2] = MaskString(segments[2])
		rest = "/" + strings.Join(segments, "/")
	case len(segments) == 3:
		segments[0] = MaskString(segments[0])
		segments[1] = MaskString(segments[1])
		rest = "/" + strings.Join(segments, "/")
	}

	if !hasQuery {
		return prefix + rest
	}

	pairs := strings.Split(query, "&")
	for i, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if ok && (key == "username" || key == "password") {
			pairs[i] = key + "=" + MaskString(value)
		}
	}
	return prefix + rest + "?" + strings.Join(pairs, "&")
}

func isMediaPrefix(s string) bool {
	switch s {
	case "movie", "series", "live":
		return true
	}
	return false
}

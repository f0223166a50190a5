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

// DefaultUserAgent is what most Xtream players announce themselves as.
const DefaultUserAgent = "IPTVSmartersPro"

// GetIPTVUserAgent returns the user agent for upstream requests: USER_AGENT
// when set, DefaultUserAgent otherwise.
func GetIPTVUserAgent() string {
	return GetEnvOrDefault("USER_AGENT", DefaultUserAgent)
}

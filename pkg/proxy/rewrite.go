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
	"net/url"
	"strings"

	"github.com/grafov/m3u8"
)

// RewriteManifest makes every relative URI line of an HLS manifest absolute
// against origin so players fetch segments from the origin host. Blank lines,
// tag lines and absolute URLs are kept as is. Lines are joined with "\n".
func RewriteManifest(text, origin string) string {
	scheme, authority, dir := originParts(origin)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		lines[i] = line

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
		case isAbsoluteURL(trimmed):
		case strings.HasPrefix(trimmed, "/"):
			lines[i] = scheme + "://" + authority + trimmed
		default:
			lines[i] = dir + trimmed
		}
	}
	return strings.Join(lines, "\n")
}

func isAbsoluteURL(s string) bool {
	ls := strings.ToLower(s)
	return strings.HasPrefix(ls, "http://") || strings.HasPrefix(ls, "https://")
}

// originParts splits origin into its scheme, its authority and its directory
// URL, the latter ending with "/".
func originParts(origin string) (scheme, authority, dir string) {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		// not a URL we can split, fall back to plain text handling
		if i := strings.LastIndexByte(origin, '/'); i >= 0 {
			dir = origin[:i+1]
		}
		return "http", "", dir
	}

	scheme, authority = u.Scheme, u.Host
	p := u.EscapedPath()
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[:i+1]
	} else {
		p = "/"
	}
	return scheme, authority, scheme + "://" + authority + p
}

// ManifestType names the kind of an HLS playlist.
type ManifestType string

const (
	ManifestMaster  ManifestType = "master"
	ManifestMedia   ManifestType = "media"
	ManifestUnknown ManifestType = "unknown"
)

// ClassifyManifest decodes text leniently and reports whether it is a master
// or a media playlist.
func ClassifyManifest(text string) ManifestType {
	_, listType, err := m3u8.DecodeFrom(strings.NewReader(text), false)
	if err != nil {
		return ManifestUnknown
	}
	switch listType {
	case m3u8.MASTER:
		return ManifestMaster
	case m3u8.MEDIA:
		return ManifestMedia
	default:
		return ManifestUnknown
	}
}

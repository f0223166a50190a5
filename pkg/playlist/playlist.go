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

// Package playlist parses extended M3U playlists into ordered entries.
// It knows nothing about the Xtream protocol.
package playlist

import "fmt"

// Kind is the inferred nature of a playlist entry.
type Kind int

const (
	KindLive Kind = iota
	KindMovie
	KindSeries
)

func (k Kind) String() string {
	switch k {
	case KindLive:
		return "live"
	case KindMovie:
		return "movie"
	case KindSeries:
		return "series"
	default:
		return "unknown"
	}
}

// Entry is one playlist item. Optional attributes are empty when absent.
type Entry struct {
	Duration      int
	TvgID         string
	TvgName       string
	TvgLogo       string
	GroupTitle    string
	Referrer      string
	UserAgent     string
	ChannelNumber string
	Name          string
	URL           string
	Kind          Kind
	// StreamNumber is 1-based and strictly increasing in parse order.
	StreamNumber int
	// Attributes holds every key="value" pair of the entry line, keys lowercased.
	Attributes map[string]string
}

// Playlist is the parser output.
type Playlist struct {
	Entries []Entry
	// Categories are the distinct non-empty group titles, sorted.
	Categories []string
	// Attributes are the key="value" pairs found on the header line.
	Attributes map[string]string
}

// CountByKind returns the number of entries of each kind.
func (p *Playlist) CountByKind() map[Kind]int {
	counts := map[Kind]int{KindLive: 0, KindMovie: 0, KindSeries: 0}
	for _, e := range p.Entries {
		counts[e.Kind]++
	}
	return counts
}

// FormatError reports a playlist that cannot be loaded at all.
type FormatError struct {
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid M3U file (line %d): %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid M3U file: %s", e.Reason)
}

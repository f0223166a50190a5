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

package playlist

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	headerMarker    = "#EXTM3U"
	entryMarker     = "#EXTINF"
	vlcOptionMarker = "#EXTVLCOPT"
	groupMarker     = "#EXTGRP"
)

var (
	movieTokens  = []string{"movie", "filme", "vod", "cinema"}
	seriesTokens = []string{"series", "série", "serie", "episode", "temporada", "season"}
)

// ParseFile reads and parses the playlist stored at path.
func ParseFile(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader reads r to the end and parses it.
func ParseReader(r io.Reader) (*Playlist, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return Parse(string(b))
}

// Parse turns playlist text into entries. It fails with a *FormatError only
// when the header is missing; malformed entries are skipped.
func Parse(content string) (*Playlist, error) {
	lines := splitLines(content)

	header := -1
	for i, line := range lines {
		if line != "" {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, &FormatError{Reason: "empty playlist"}
	}
	if !strings.HasPrefix(lines[header], headerMarker) {
		return nil, &FormatError{Line: header + 1, Reason: "missing " + headerMarker + " header"}
	}

	p := &Playlist{
		Entries:    make([]Entry, 0),
		Categories: make([]string, 0),
		Attributes: parseAttributes(lines[header][len(headerMarker):]),
	}

	seen := make(map[string]struct{})
	next := 1
	for i := header + 1; i < len(lines); i++ {
		if !strings.HasPrefix(lines[i], entryMarker) {
			continue
		}

		entry := parseEntryLine(lines[i])

		j := i + 1
		for ; j < len(lines); j++ {
			candidate := lines[j]
			if candidate == "" {
				continue
			}
			if strings.HasPrefix(candidate, vlcOptionMarker) || strings.HasPrefix(candidate, groupMarker) {
				applyOption(&entry, candidate)
				continue
			}
			if strings.HasPrefix(candidate, "#") {
				break
			}
			entry.URL = candidate
			break
		}

		if entry.URL == "" {
			// revisit the line that stopped the scan, it may be the next entry
			i = j - 1
			continue
		}
		i = j

		entry.Kind = inferKind(entry.GroupTitle, entry.Name)
		entry.StreamNumber = next
		next++
		p.Entries = append(p.Entries, entry)

		if entry.GroupTitle != "" {
			if _, ok := seen[entry.GroupTitle]; !ok {
				seen[entry.GroupTitle] = struct{}{}
				p.Categories = append(p.Categories, entry.GroupTitle)
			}
		}
	}

	sort.Strings(p.Categories)
	return p, nil
}

func splitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}

func parseEntryLine(line string) Entry {
	attrs := parseAttributes(line)

	e := Entry{
		Duration:      parseDuration(line),
		TvgID:         attrs["tvg-id"],
		TvgName:       attrs["tvg-name"],
		TvgLogo:       attrs["tvg-logo"],
		GroupTitle:    attrs["group-title"],
		Referrer:      firstNonEmpty(attrs[":http-referrer"], attrs["http-referrer"]),
		UserAgent:     firstNonEmpty(attrs[":http-user-agent"], attrs["http-user-agent"]),
		ChannelNumber: attrs["tvg-chno"],
		Attributes:    attrs,
	}

	if idx := lastCommaOutsideQuotes(line); idx >= 0 {
		e.Name = strings.TrimSpace(line[idx+1:])
	}
	if e.Name == "" {
		e.Name = e.TvgName
	}
	return e
}

// applyOption folds a player option line into the entry without overriding
// what the entry line already set.
func applyOption(e *Entry, line string) {
	if strings.HasPrefix(line, groupMarker) {
		if e.GroupTitle == "" {
			e.GroupTitle = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, groupMarker), ":"))
		}
		return
	}

	opt := strings.TrimPrefix(strings.TrimPrefix(line, vlcOptionMarker), ":")
	key, value, ok := strings.Cut(opt, "=")
	if !ok {
		return
	}
	value = strings.Trim(strings.TrimSpace(value), `"`)
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "http-referrer":
		if e.Referrer == "" {
			e.Referrer = value
		}
	case "http-user-agent":
		if e.UserAgent == "" {
			e.UserAgent = value
		}
	}
}

func inferKind(group, name string) Kind {
	text := strings.ToLower(group + " " + name)
	if containsAny(text, movieTokens) {
		return KindMovie
	}
	if containsAny(text, seriesTokens) {
		return KindSeries
	}
	return KindLive
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

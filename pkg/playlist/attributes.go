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
	"strings"
	"unicode"
	"unicode/utf8"
)

// isKeyRune matches the characters allowed in an attribute key: letters,
// digits, underscore, dash and colon.
func isKeyRune(r rune) bool {
	return r == '_' || r == '-' || r == ':' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseAttributes walks s and collects every key="value" pair. Keys are
// lowercased and a repeated key keeps its last value. Anything that does not
// form a complete pair is skipped without error.
func parseAttributes(s string) map[string]string {
	attrs := make(map[string]string)

	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isKeyRune(r) {
			i += size
			continue
		}

		start := i
		for i < len(s) {
			r, size = utf8.DecodeRuneInString(s[i:])
			if !isKeyRune(r) {
				break
			}
			i += size
		}
		key := s[start:i]

		if !strings.HasPrefix(s[i:], `="`) {
			continue
		}
		end := strings.IndexByte(s[i+2:], '"')
		if end < 0 {
			// no closing quote anywhere after this point, so no further pair can match
			break
		}
		attrs[strings.ToLower(key)] = s[i+2 : i+2+end]
		i += 2 + end + 1
	}

	return attrs
}

// lastCommaOutsideQuotes returns the index of the last comma that is not
// inside a quoted attribute value, or -1.
func lastCommaOutsideQuotes(s string) int {
	idx := -1
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				idx = i
			}
		}
	}
	if inQuotes {
		// unbalanced quotes, fall back to the plain last comma
		return strings.LastIndexByte(s, ',')
	}
	return idx
}

// parseDuration reads the signed integer that follows the entry marker, or -1.
func parseDuration(line string) int {
	rest := strings.TrimLeft(strings.TrimPrefix(line, entryMarker), " \t")
	rest = strings.TrimLeft(strings.TrimPrefix(rest, ":"), " \t")

	n := 0
	neg := false
	if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}
	digits := 0
	for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
		if n > (1<<31-1)/10 {
			return -1
		}
		n = n*10 + int(rest[digits]-'0')
		digits++
	}
	if digits == 0 {
		return -1
	}
	if neg {
		return -n
	}
	return n
}

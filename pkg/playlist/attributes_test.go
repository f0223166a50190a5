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
	"reflect"
	"testing"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "basic pairs",
			input: `#EXTINF:-1 tvg-id="a.b" tvg-name="Name" group-title="G",Display`,
			want:  map[string]string{"tvg-id": "a.b", "tvg-name": "Name", "group-title": "G"},
		},
		{
			name:  "keys are lowercased",
			input: `TVG-ID="x" Group-Title="y"`,
			want:  map[string]string{"tvg-id": "x", "group-title": "y"},
		},
		{
			name:  "last value wins",
			input: `tvg-id="first" tvg-id="second"`,
			want:  map[string]string{"tvg-id": "second"},
		},
		{
			name:  "colon and underscore keys",
			input: `:http-referrer="http://r" catchup_days="3"`,
			want:  map[string]string{":http-referrer": "http://r", "catchup_days": "3"},
		},
		{
			name:  "empty value",
			input: `tvg-logo=""`,
			want:  map[string]string{"tvg-logo": ""},
		},
		{
			name:  "unquoted value is ignored",
			input: `tvg-id=abc group-title="ok"`,
			want:  map[string]string{"group-title": "ok"},
		},
		{
			name:  "unterminated quote",
			input: `tvg-id="ok" tvg-name="broken`,
			want:  map[string]string{"tvg-id": "ok"},
		},
		{
			name:  "value with equals and commas",
			input: `url="http://x/?a=1,b=2"`,
			want:  map[string]string{"url": "http://x/?a=1,b=2"},
		},
		{
			name:  "adjacent pairs",
			input: `a="1"b="2"`,
			want:  map[string]string{"a": "1", "b": "2"},
		},
		{
			name:  "nothing",
			input: `#EXTINF:-1,Plain`,
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseAttributes(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseAttributes(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"#EXTINF:-1 tvg-id=\"x\",A", -1},
		{"#EXTINF:0,A", 0},
		{"#EXTINF: 125,A", 125},
		{"#EXTINF:3600 tvg-id=\"x\",A", 3600},
		{"#EXTINF:,A", -1},
		{"#EXTINF:abc,A", -1},
		{"#EXTINF:99999999999,A", -1},
		{"#EXTINF 90 tvg-id=\"x\",A", 90},
		{"#EXTINF -1,A", -1},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := parseDuration(tt.line); got != tt.want {
				t.Errorf("parseDuration(%q) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}
}

func TestLastCommaOutsideQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{`a="x,y",name`, 7},
		{`a="x",b,c`, 7},
		{`no comma`, -1},
		{`a="x,y`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := lastCommaOutsideQuotes(tt.input); got != tt.want {
				t.Errorf("lastCommaOutsideQuotes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

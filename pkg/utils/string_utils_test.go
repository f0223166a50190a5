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

import "testing"

func TestMaskString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "[empty]"},
		{"demo", "d******"},
		{"demo1234", "d******"},
		{"supersecret", "supe...cret"},
	}
	for _, tt := range tests {
		if got := MaskString(tt.in); got != tt.want {
			t.Errorf("MaskString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "live path",
			in:   "http://localhost:8080/demo/demo123/1.ts",
			want: "http://localhost:8080/d******/d******/1.ts",
		},
		{
			name: "movie path",
			in:   "http://localhost:8080/movie/demo/supersecret/2000.mp4",
			want: "http://localhost:8080/movie/d******/supe...cret/2000.mp4",
		},
		{
			name: "relative series path",
			in:   "/series/demo/demo123/300010102.mp4",
			want: "/series/d******/d******/300010102.mp4",
		},
		{
			name: "query credentials",
			in:   "http://h/player_api.php?username=demo&password=demo123&action=get_vod_info",
			want: "http://h/player_api.php?username=d******&password=d******&action=get_vod_info",
		},
		{
			name: "nothing to mask",
			in:   "http://cdn.example.com/a/b/c/d/index.m3u8",
			want: "http://cdn.example.com/a/b/c/d/index.m3u8",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskURL(tt.in); got != tt.want {
				t.Errorf("MaskURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

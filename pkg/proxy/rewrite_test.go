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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteManifest(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		in     string
		want   string
	}{
		{
			name:   "relative, rooted and absolute lines",
			origin: "http://cdn.example.com/live/chan/index.m3u8",
			in:     "#EXTM3U\n#EXT-X-VERSION:3\n\nseg1.ts\n/abs/seg2.ts\nhttps://other.example.com/seg3.ts\n",
			want:   "#EXTM3U\n#EXT-X-VERSION:3\n\nhttp://cdn.example.com/live/chan/seg1.ts\nhttp://cdn.example.com/abs/seg2.ts\nhttps://other.example.com/seg3.ts\n",
		},
		{
			name:   "crlf is normalized",
			origin: "http://cdn.example.com/a/index.m3u8",
			in:     "#EXTM3U\r\n#EXTINF:10,\r\nseg.ts\r\n",
			want:   "#EXTM3U\n#EXTINF:10,\nhttp://cdn.example.com/a/seg.ts\n",
		},
		{
			name:   "origin query and port",
			origin: "https://cdn.example.com:8443/a/b/master.m3u8?token=abc",
			in:     "#EXT-X-STREAM-INF:BANDWIDTH=1\nlow/index.m3u8?k=1\n/root.m3u8",
			want:   "#EXT-X-STREAM-INF:BANDWIDTH=1\nhttps://cdn.example.com:8443/a/b/low/index.m3u8?k=1\nhttps://cdn.example.com:8443/root.m3u8",
		},
		{
			name:   "origin without path",
			origin: "http://cdn.example.com",
			in:     "seg.ts",
			want:   "http://cdn.example.com/seg.ts",
		},
		{
			name:   "tags with uri attributes pass through",
			origin: "http://cdn.example.com/x/index.m3u8",
			in:     `#EXT-X-KEY:METHOD=AES-128,URI="key.bin"` + "\nseg.ts",
			want:   `#EXT-X-KEY:METHOD=AES-128,URI="key.bin"` + "\nhttp://cdn.example.com/x/seg.ts",
		},
		{
			name:   "uppercase scheme counts as absolute",
			origin: "http://cdn.example.com/x/index.m3u8",
			in:     "HTTP://OTHER/seg.ts",
			want:   "HTTP://OTHER/seg.ts",
		},
		{
			name:   "empty manifest",
			origin: "http://cdn.example.com/x/index.m3u8",
			in:     "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteManifest(tt.in, tt.origin))
		})
	}
}

func TestRewriteManifestKeepsLineCount(t *testing.T) {
	in := "#EXTM3U\n\n#EXTINF:4,\na.ts\n#EXTINF:4,\nb.ts\n"
	out := RewriteManifest(in, "http://h/p/i.m3u8")
	assert.Equal(t, len(splitNL(in)), len(splitNL(out)))
}

func splitNL(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func TestClassifyManifest(t *testing.T) {
	master := "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1280000,RESOLUTION=1280x720\nhttp://cdn.example.com/720/index.m3u8\n"
	media := "#EXTM3U\n#EXT-X-VERSION:3\n#EXT-X-TARGETDURATION:10\n#EXT-X-MEDIA-SEQUENCE:0\n#EXTINF:10.0,\nhttp://cdn.example.com/seg1.ts\n#EXT-X-ENDLIST\n"

	assert.Equal(t, ManifestMaster, ClassifyManifest(master))
	assert.Equal(t, ManifestMedia, ClassifyManifest(media))
	assert.Equal(t, ManifestUnknown, ClassifyManifest("not a playlist"))
}

func TestContentTypeForExtension(t *testing.T) {
	tests := []struct {
		ext, upstream, want string
	}{
		{"ts", "", "video/mp2t"},
		{".m3u8", "text/plain", "application/vnd.apple.mpegurl"},
		{"MP4", "", "video/mp4"},
		{"mkv", "application/octet-stream", "video/x-matroska"},
		{"avi", "", "video/x-msvideo"},
		{"flv", "video/x-flv", "video/x-flv"},
		{"", "video/webm", "video/webm"},
		{"", "", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.ext+"|"+tt.upstream, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentTypeForExtension(tt.ext, tt.upstream))
		})
	}
}

/*
 * IPTVProxy serves an M3U playlist through an Xtream-codes compatible API and stream proxy.
 * Copyright (C) 2020  Pierre-Emmanuel Jacquier
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

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlaylist(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "list.m3u")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestRunValidate(t *testing.T) {
	file := writePlaylist(t, `#EXTM3U
#EXTINF:-1 group-title="News",News One
http://origin/live/1.ts
#EXTINF:-1 group-title="Sports",Sports One
http://origin/live/2.ts
#EXTINF:-1 group-title="VOD Action",Chase
http://origin/vod/chase.mp4
`)

	var out bytes.Buffer
	require.NoError(t, runValidate(&out, file, time.Unix(0, 0)))
	assert.Contains(t, out.String(), "3 entries")
	assert.Contains(t, out.String(), "live:   2 channels in 2 categories")
	assert.Contains(t, out.String(), "movie:  1 vods in 1 categories")
	assert.Contains(t, out.String(), "series: 0 series in 0 categories")
}

func TestRunValidateFormatError(t *testing.T) {
	file := writePlaylist(t, "no header here\n")

	var out bytes.Buffer
	err := runValidate(&out, file, time.Unix(0, 0))
	require.Error(t, err)

	var fe *playlist.FormatError
	assert.True(t, errors.As(err, &fe))
	assert.Empty(t, out.String())
}

func TestProxyConfigFromViperDefaults(t *testing.T) {
	conf := proxyConfigFromViper()
	assert.Equal(t, 8080, conf.HostConfig.Port)
	assert.Equal(t, "localhost", conf.HostConfig.Hostname)
	assert.Equal(t, "us-grc.m3u", conf.PlaylistSource)
	assert.Equal(t, "demo", conf.User.String())
	assert.Equal(t, "demo123", conf.Password.String())
	assert.Equal(t, 300*time.Second, conf.UpstreamTimeout)
	assert.True(t, conf.MetricsEnabled)
	assert.NoError(t, conf.Validate())
}

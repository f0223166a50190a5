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

package catalog

import (
	"testing"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

const builderPlaylist = `#EXTM3U
#EXTINF:-1 tvg-id="news.us" tvg-logo="http://logo/news.png" group-title="News",News One
http://origin/live/news.m3u8
#EXTINF:-1 group-title="Sports",Sports One
http://origin/live/sports.ts
#EXTINF:-1 group-title="VOD Action",Chase
http://origin/vod/chase.MKV?token=1
#EXTINF:-1,No Group Channel
http://origin/live/none
#EXTINF:-1 group-title="News",News Two
http://origin/live/news2
#EXTINF:-1 group-title="Series Drama" tvg-logo="http://logo/show.png",Show S01E01
http://origin/series/show.mp4
#EXTINF:-1 group-title="Movies Comedy" http-referrer="http://ref/",Laugh
http://origin/vod/laugh
`

func buildFixture(t *testing.T) *Catalog {
	t.Helper()
	p, err := playlist.Parse(builderPlaylist)
	require.NoError(t, err)
	return Build(p, "fixture.m3u", fixedNow)
}

func TestBuildCategoryBands(t *testing.T) {
	c := buildFixture(t)

	assert.Equal(t, []Category{
		{ID: "1", Name: "News"},
		{ID: "2", Name: "Sports"},
		{ID: "3", Name: UncategorizedName},
	}, c.LiveCategories)

	assert.Equal(t, []Category{
		{ID: "1001", Name: "Movies Comedy"},
		{ID: "1000", Name: "VOD Action"},
	}, c.VodCategories)

	assert.Equal(t, []Category{
		{ID: "2000", Name: "Series Drama"},
	}, c.SeriesCategories)
}

func TestBuildItems(t *testing.T) {
	c := buildFixture(t)

	require.Len(t, c.Channels, 4)
	require.Len(t, c.Vods, 2)
	require.Len(t, c.Series, 1)

	news := c.Channels[0]
	assert.Equal(t, 1, news.StreamID)
	assert.Equal(t, 1, news.Num)
	assert.Equal(t, "News One", news.Name)
	assert.Equal(t, "http://logo/news.png", news.Icon)
	assert.Equal(t, "news.us", news.EpgChannelID)
	assert.Equal(t, "1", news.CategoryID)
	assert.Equal(t, "1714566600", news.Added)
	assert.Equal(t, "http://origin/live/news.m3u8", news.Origin)

	// positional order follows the playlist
	assert.Equal(t, []int{1, 2, 4, 5}, []int{c.Channels[0].StreamID, c.Channels[1].StreamID, c.Channels[2].StreamID, c.Channels[3].StreamID})
	assert.Equal(t, "1", c.Channels[3].CategoryID)

	chase := c.Vods[0]
	assert.Equal(t, 3, chase.StreamID)
	assert.Equal(t, "mkv", chase.ContainerExtension)
	assert.Equal(t, "0", chase.Rating)
	assert.Equal(t, "1000", chase.CategoryID)

	laugh := c.Vods[1]
	assert.Equal(t, DefaultExtension, laugh.ContainerExtension)
	assert.Equal(t, "http://ref/", laugh.Headers.Referrer)

	show := c.Series[0]
	assert.Equal(t, 6, show.SeriesID)
	assert.Equal(t, "http://logo/show.png", show.Cover)
	assert.Equal(t, "Series Drama", show.Genre)
	assert.Equal(t, "2000", show.CategoryID)
	assert.Equal(t, []string{}, show.BackdropPath)
}

func TestBuildSeriesDetail(t *testing.T) {
	c := buildFixture(t)

	s, detail, ok := c.SeriesDetail(6)
	require.True(t, ok)
	require.NotNil(t, detail)
	assert.Equal(t, "Show S01E01", s.Name)

	require.Len(t, detail.Seasons, 1)
	assert.Equal(t, 1, detail.Seasons[0].Number)
	assert.Equal(t, 1, detail.Seasons[0].EpisodeCount)

	episodes := detail.Episodes[1]
	require.Len(t, episodes, 1)
	assert.Equal(t, "6", episodes[0].ID)
	assert.Equal(t, "mp4", episodes[0].ContainerExtension)
	assert.Equal(t, "http://origin/series/show.mp4", episodes[0].Origin)

	e, ok := c.Episode("6")
	require.True(t, ok)
	assert.Equal(t, episodes[0].Origin, e.Origin)
}

func TestBuildCategoryIDsStable(t *testing.T) {
	first := buildFixture(t)
	second := buildFixture(t)

	assert.Equal(t, first.LiveCategories, second.LiveCategories)
	assert.Equal(t, first.VodCategories, second.VodCategories)
	assert.Equal(t, first.SeriesCategories, second.SeriesCategories)

	for _, cats := range [][]Category{first.LiveCategories, first.VodCategories, first.SeriesCategories} {
		seen := map[string]bool{}
		for _, cat := range cats {
			assert.False(t, seen[cat.ID], "duplicate category id %s", cat.ID)
			seen[cat.ID] = true
		}
	}
}

func TestBuildEmptyPlaylist(t *testing.T) {
	p, err := playlist.Parse("#EXTM3U\n")
	require.NoError(t, err)

	c := Build(p, "", fixedNow)
	assert.NotNil(t, c.Channels)
	assert.NotNil(t, c.LiveCategories)
	assert.Empty(t, c.Vods)
	assert.Equal(t, Counts{}, c.Counts())
}

func TestExtensionFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://h/movie.mkv", "mkv"},
		{"http://h/movie.MP4?x=1", "mp4"},
		{"http://h/live/index.m3u8?token=abc", "m3u8"},
		{"http://h/seg.ts#frag", "ts"},
		{"http://h/file.avi", "avi"},
		{"http://h/file.webm", "mp4"},
		{"http://h.example.com/noext", "mp4"},
		{"http://h/dir.d/", "mp4"},
		{"relative/file.mkv", "mkv"},
		{"", "mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtensionFromURL(tt.in))
		})
	}
}

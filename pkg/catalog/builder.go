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
	"sort"
	"strconv"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
)

// UncategorizedName is the bucket used for entries without a group title.
const UncategorizedName = "Uncategorized"

// First id of each category band.
const (
	liveCategoryBase   = 1
	vodCategoryBase    = 1000
	seriesCategoryBase = 2000
)

// bandAllocator hands out category ids within one band on first sight of a
// name.
type bandAllocator struct {
	next  int
	ids   map[string]int
	order []string
}

func newBandAllocator(base int) *bandAllocator {
	return &bandAllocator{next: base, ids: make(map[string]int)}
}

func (b *bandAllocator) idFor(name string) string {
	id, ok := b.ids[name]
	if !ok {
		id = b.next
		b.next++
		b.ids[name] = id
		b.order = append(b.order, name)
	}
	return strconv.Itoa(id)
}

func (b *bandAllocator) categories() []Category {
	out := make([]Category, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, Category{ID: strconv.Itoa(b.ids[name]), Name: name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Build classifies every parsed entry and returns the resulting snapshot.
// It performs no I/O. now stamps the added and last_modified fields.
func Build(p *playlist.Playlist, source string, now time.Time) *Catalog {
	added := strconv.FormatInt(now.Unix(), 10)

	live := newBandAllocator(liveCategoryBase)
	vod := newBandAllocator(vodCategoryBase)
	series := newBandAllocator(seriesCategoryBase)

	c := newCatalog(ModePlaylist, source, now)

	for _, e := range p.Entries {
		group := e.GroupTitle
		if group == "" {
			group = UncategorizedName
		}
		headers := PlayerHeaders{Referrer: e.Referrer, UserAgent: e.UserAgent}

		switch e.Kind {
		case playlist.KindMovie:
			v := Vod{
				Num:                e.StreamNumber,
				StreamID:           e.StreamNumber,
				Name:               e.Name,
				Icon:               e.TvgLogo,
				Rating:             "0",
				Added:              added,
				CategoryID:         vod.idFor(group),
				ContainerExtension: ExtensionFromURL(e.URL),
				Origin:             e.URL,
				Headers:            headers,
			}
			c.Vods = append(c.Vods, v)
			c.vodDetails[v.StreamID] = playlistVodDetail(v, group)

		case playlist.KindSeries:
			s := Series{
				Num:          e.StreamNumber,
				SeriesID:     e.StreamNumber,
				Name:         e.Name,
				Cover:        e.TvgLogo,
				Genre:        e.GroupTitle,
				LastModified: added,
				Rating:       "0",
				BackdropPath: []string{},
				CategoryID:   series.idFor(group),
			}
			c.Series = append(c.Series, s)
			c.seriesDetails[s.SeriesID] = playlistSeriesDetail(s, e.URL, headers, added)

		default:
			c.Channels = append(c.Channels, Channel{
				Num:          e.StreamNumber,
				StreamID:     e.StreamNumber,
				Name:         e.Name,
				Icon:         e.TvgLogo,
				EpgChannelID: e.TvgID,
				Added:        added,
				CategoryID:   live.idFor(group),
				Origin:       e.URL,
				Headers:      headers,
			})
		}
	}

	c.LiveCategories = live.categories()
	c.VodCategories = vod.categories()
	c.SeriesCategories = series.categories()
	c.index()
	return c
}

// playlistMedia is the technical block reported for playlist-backed items,
// which carry no real probe data.
func playlistMedia() MediaInfo {
	return MediaInfo{
		Video: VideoInfo{Codec: "h264", Width: 1920, Height: 1080},
		Audio: AudioInfo{Codec: "aac", Channels: 2, SampleRate: "44100"},
	}
}

func playlistVodDetail(v Vod, genre string) *VodDetail {
	return &VodDetail{
		MovieImage:   v.Icon,
		BackdropPath: []string{},
		Genre:        genre,
		Rating:       v.Rating,
		Media:        playlistMedia(),
	}
}

// playlistSeriesDetail wraps the single playlist URL of a series entry in
// one season holding one episode. The episode id is the series id.
func playlistSeriesDetail(s Series, origin string, headers PlayerHeaders, added string) *SeriesDetail {
	rating, _ := strconv.ParseFloat(s.Rating, 64)
	return &SeriesDetail{
		Seasons: []Season{{
			Number:       1,
			Name:         "Season 1",
			EpisodeCount: 1,
			Cover:        s.Cover,
			CoverBig:     s.Cover,
		}},
		Episodes: map[int][]Episode{
			1: {{
				ID:                 strconv.Itoa(s.SeriesID),
				Num:                1,
				Title:              s.Name,
				ContainerExtension: ExtensionFromURL(origin),
				MovieImage:         s.Cover,
				Plot:               s.Plot,
				ReleaseDate:        s.ReleaseDate,
				Rating:             rating,
				Media:              playlistMedia(),
				Added:              added,
				Season:             1,
				Origin:             origin,
				Headers:            headers,
			}},
		},
	}
}

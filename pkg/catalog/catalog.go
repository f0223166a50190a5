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
	"strconv"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
)

// Catalog is one immutable snapshot. Nothing mutates it after Build or Mock
// returns, so it is safe for any number of concurrent readers. Returned
// pointers refer into the snapshot and must be treated as read-only.
type Catalog struct {
	Mode    Mode
	Source  string
	BuiltAt time.Time

	LiveCategories   []Category
	VodCategories    []Category
	SeriesCategories []Category

	Channels []Channel
	Vods     []Vod
	Series   []Series

	vodDetails    map[int]*VodDetail
	seriesDetails map[int]*SeriesDetail

	channelIdx map[int]int
	vodIdx     map[int]int
	seriesIdx  map[int]int
	episodeIdx map[string]*Episode
}

// Counts summarises a snapshot.
type Counts struct {
	LiveCategories   int `json:"live_categories"`
	VodCategories    int `json:"vod_categories"`
	SeriesCategories int `json:"series_categories"`
	Channels         int `json:"channels"`
	Vods             int `json:"vods"`
	Series           int `json:"series"`
	Episodes         int `json:"episodes"`
}

func newCatalog(mode Mode, source string, now time.Time) *Catalog {
	return &Catalog{
		Mode:             mode,
		Source:           source,
		BuiltAt:          now,
		LiveCategories:   []Category{},
		VodCategories:    []Category{},
		SeriesCategories: []Category{},
		Channels:         []Channel{},
		Vods:             []Vod{},
		Series:           []Series{},
		vodDetails:       make(map[int]*VodDetail),
		seriesDetails:    make(map[int]*SeriesDetail),
	}
}

// index builds the lookup tables. Called once, before the snapshot is shared.
func (c *Catalog) index() {
	c.channelIdx = make(map[int]int, len(c.Channels))
	for i, ch := range c.Channels {
		c.channelIdx[ch.StreamID] = i
	}
	c.vodIdx = make(map[int]int, len(c.Vods))
	for i, v := range c.Vods {
		c.vodIdx[v.StreamID] = i
	}
	c.seriesIdx = make(map[int]int, len(c.Series))
	for i, s := range c.Series {
		c.seriesIdx[s.SeriesID] = i
	}

	c.episodeIdx = make(map[string]*Episode)
	for _, s := range c.Series {
		detail := c.seriesDetails[s.SeriesID]
		if detail == nil {
			continue
		}
		for _, season := range detail.Seasons {
			episodes := detail.Episodes[season.Number]
			for i := range episodes {
				if _, dup := c.episodeIdx[episodes[i].ID]; !dup {
					c.episodeIdx[episodes[i].ID] = &episodes[i]
				}
			}
		}
	}
}

// Categories returns the category list of one kind.
func (c *Catalog) Categories(kind playlist.Kind) []Category {
	switch kind {
	case playlist.KindMovie:
		return c.VodCategories
	case playlist.KindSeries:
		return c.SeriesCategories
	default:
		return c.LiveCategories
	}
}

// ChannelsIn returns the channels of a category, or all of them when
// categoryID is empty.
func (c *Catalog) ChannelsIn(categoryID string) []Channel {
	if categoryID == "" {
		return c.Channels
	}
	out := make([]Channel, 0)
	for _, ch := range c.Channels {
		if ch.CategoryID == categoryID {
			out = append(out, ch)
		}
	}
	return out
}

func (c *Catalog) VodsIn(categoryID string) []Vod {
	if categoryID == "" {
		return c.Vods
	}
	out := make([]Vod, 0)
	for _, v := range c.Vods {
		if v.CategoryID == categoryID {
			out = append(out, v)
		}
	}
	return out
}

func (c *Catalog) SeriesIn(categoryID string) []Series {
	if categoryID == "" {
		return c.Series
	}
	out := make([]Series, 0)
	for _, s := range c.Series {
		if s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out
}

func (c *Catalog) Channel(id int) (*Channel, bool) {
	i, ok := c.channelIdx[id]
	if !ok {
		return nil, false
	}
	return &c.Channels[i], true
}

func (c *Catalog) Vod(id int) (*Vod, bool) {
	i, ok := c.vodIdx[id]
	if !ok {
		return nil, false
	}
	return &c.Vods[i], true
}

func (c *Catalog) SeriesByID(id int) (*Series, bool) {
	i, ok := c.seriesIdx[id]
	if !ok {
		return nil, false
	}
	return &c.Series[i], true
}

// VodDetail returns the detail block of a movie.
func (c *Catalog) VodDetail(id int) (*Vod, *VodDetail, bool) {
	v, ok := c.Vod(id)
	if !ok {
		return nil, nil, false
	}
	return v, c.vodDetails[id], true
}

// SeriesDetail returns the season and episode tree of a series.
func (c *Catalog) SeriesDetail(id int) (*Series, *SeriesDetail, bool) {
	s, ok := c.SeriesByID(id)
	if !ok {
		return nil, nil, false
	}
	return s, c.seriesDetails[id], true
}

func (c *Catalog) Episode(id string) (*Episode, bool) {
	e, ok := c.episodeIdx[id]
	return e, ok
}

// CategoryName resolves a category id within one band.
func (c *Catalog) CategoryName(kind playlist.Kind, id string) string {
	for _, cat := range c.Categories(kind) {
		if cat.ID == id {
			return cat.Name
		}
	}
	return ""
}

// Resolve finds the origin of a media request. It fails with ErrNotFound when
// the id is unknown or the item has no origin.
func (c *Catalog) Resolve(kind playlist.Kind, id string) (Media, error) {
	m := Media{Kind: kind, ID: id}

	switch kind {
	case playlist.KindSeries:
		e, ok := c.Episode(id)
		if !ok {
			return m, ErrNotFound
		}
		m.Origin, m.Headers, m.Extension = e.Origin, e.Headers, e.ContainerExtension

	case playlist.KindMovie:
		n, err := strconv.Atoi(id)
		if err != nil {
			return m, ErrNotFound
		}
		v, ok := c.Vod(n)
		if !ok {
			return m, ErrNotFound
		}
		m.Origin, m.Headers, m.Extension = v.Origin, v.Headers, v.ContainerExtension

	default:
		n, err := strconv.Atoi(id)
		if err != nil {
			return m, ErrNotFound
		}
		ch, ok := c.Channel(n)
		if !ok {
			return m, ErrNotFound
		}
		m.Origin, m.Headers = ch.Origin, ch.Headers
		m.Extension = "ts"
		if IsManifestURL(ch.Origin) {
			m.Extension = "m3u8"
		}
	}

	if m.Origin == "" {
		return m, ErrNotFound
	}
	return m, nil
}

// Counts returns the number of items of each type.
func (c *Catalog) Counts() Counts {
	return Counts{
		LiveCategories:   len(c.LiveCategories),
		VodCategories:    len(c.VodCategories),
		SeriesCategories: len(c.SeriesCategories),
		Channels:         len(c.Channels),
		Vods:             len(c.Vods),
		Series:           len(c.Series),
		Episodes:         len(c.episodeIdx),
	}
}

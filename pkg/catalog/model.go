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

// Package catalog turns parsed playlists into an immutable, queryable
// snapshot of categories, channels, movies and series.
package catalog

import (
	"errors"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
)

// ErrNotFound is returned when an id is absent from the snapshot or the
// matching item has no origin to fetch.
var ErrNotFound = errors.New("catalog: not found")

// Mode tells where a snapshot came from.
type Mode string

const (
	ModePlaylist Mode = "playlist"
	ModeMock     Mode = "mock"
)

// Category is shared by the three kind bands.
type Category struct {
	ID       string
	Name     string
	ParentID int
}

// Channel is a live stream.
type Channel struct {
	Num               int
	StreamID          int
	Name              string
	Icon              string
	EpgChannelID      string
	Added             string
	CategoryID        string
	TvArchive         int
	TvArchiveDuration int
	Origin            string
	Headers           PlayerHeaders
}

// Vod is a movie.
type Vod struct {
	Num                int
	StreamID           int
	Name               string
	Icon               string
	Rating             string
	Rating5Based       float64
	Added              string
	CategoryID         string
	ContainerExtension string
	Origin             string
	Headers            PlayerHeaders
}

// Series is the listing view of a show. Seasons and episodes live in
// SeriesDetail.
type Series struct {
	Num            int
	SeriesID       int
	Name           string
	Cover          string
	Plot           string
	Cast           string
	Director       string
	Genre          string
	ReleaseDate    string
	LastModified   string
	Rating         string
	Rating5Based   float64
	BackdropPath   []string
	YoutubeTrailer string
	EpisodeRunTime string
	CategoryID     string
}

// PlayerHeaders are the per-entry request headers some providers require.
type PlayerHeaders struct {
	Referrer  string
	UserAgent string
}

type VideoInfo struct {
	Codec  string
	Width  int
	Height int
}

type AudioInfo struct {
	Codec      string
	Channels   int
	SampleRate string
}

// MediaInfo is the technical block shared by movies and episodes.
type MediaInfo struct {
	DurationSecs int
	Duration     string
	Bitrate      int
	Video        VideoInfo
	Audio        AudioInfo
}

// VodDetail backs get_vod_info.
type VodDetail struct {
	MovieImage     string
	TmdbID         string
	BackdropPath   []string
	YoutubeTrailer string
	Genre          string
	Plot           string
	Cast           string
	Rating         string
	Director       string
	ReleaseDate    string
	Media          MediaInfo
}

type Season struct {
	Number       int
	AirDate      string
	Name         string
	Overview     string
	EpisodeCount int
	Cover        string
	CoverBig     string
}

// Episode ids are strings and never collide with numeric stream ids.
type Episode struct {
	ID                 string
	Num                int
	Title              string
	ContainerExtension string
	MovieImage         string
	Plot               string
	ReleaseDate        string
	Rating             float64
	Media              MediaInfo
	Added              string
	Season             int
	Origin             string
	Headers            PlayerHeaders
}

// SeriesDetail backs get_series_info. Episodes is keyed by season number
// and Seasons is ordered.
type SeriesDetail struct {
	Seasons  []Season
	Episodes map[int][]Episode
}

// Media is what the stream proxy needs to fetch one item.
type Media struct {
	Kind      playlist.Kind
	ID        string
	Origin    string
	Headers   PlayerHeaders
	Extension string
}

// IsManifest reports whether the origin looks like an HLS playlist.
func (m Media) IsManifest() bool {
	return IsManifestURL(m.Origin)
}

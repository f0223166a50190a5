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

// Package xtream answers the player_api.php protocol from a catalog snapshot.
package xtream

import (
	"strconv"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
	"github.com/gercyc/IPTVProxy/pkg/playlist"
)

// Snapshots is satisfied by *catalog.Store.
type Snapshots interface {
	Current() *catalog.Catalog
}

// Options configures a Responder.
type Options struct {
	Store    Snapshots
	Username string
	Password string
	// BaseURL is the externally visible origin used in proxy URLs.
	BaseURL string
	// Port and Protocol are published in server_info.
	Port     string
	Protocol string
	Timezone string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Responder holds no mutable state. Every call reads one snapshot from the
// store and answers from it.
type Responder struct {
	store    Snapshots
	username string
	password string
	baseURL  string
	port     string
	protocol string
	timezone string
	now      func() time.Time
}

func NewResponder(opts Options) *Responder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Protocol == "" {
		opts.Protocol = "http"
	}
	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}
	return &Responder{
		store:    opts.Store,
		username: opts.Username,
		password: opts.Password,
		baseURL:  opts.BaseURL,
		port:     opts.Port,
		protocol: opts.Protocol,
		timezone: opts.Timezone,
		now:      opts.Now,
	}
}

// ValidateCredentials is true only for the configured pair.
func (r *Responder) ValidateCredentials(username, password string) bool {
	if r.username == "" || r.password == "" {
		return false
	}
	return username == r.username && password == r.password
}

func (r *Responder) urls(username, password string) URLBuilder {
	return URLBuilder{BaseURL: r.baseURL, Username: username, Password: password}
}

// Login builds the account payload returned when no action is given.
func (r *Responder) Login(username, password string) LoginResponse {
	now := r.now().UTC()
	return LoginResponse{
		UserInfo: UserInfo{
			Username:             username,
			Password:             password,
			Message:              "Welcome!",
			Auth:                 1,
			Status:               "Active",
			ExpDate:              strconv.FormatInt(now.AddDate(1, 0, 0).Unix(), 10),
			IsTrial:              "0",
			ActiveCons:           "0",
			CreatedAt:            strconv.FormatInt(now.AddDate(0, -6, 0).Unix(), 10),
			MaxConnections:       "0",
			AllowedOutputFormats: []string{"m3u8", "ts", "rtmp"},
		},
		ServerInfo: ServerInfo{
			URL:            r.baseURL,
			Port:           r.port,
			HTTPSPort:      "443",
			ServerProtocol: r.protocol,
			RTMPPort:       "8880",
			Timezone:       r.timezone,
			TimestampNow:   now.Unix(),
			TimeNow:        now.Format("2006-01-02 15:04:05"),
		},
	}
}

// AuthError is answered with HTTP 200 on the action endpoint.
func (r *Responder) AuthError() AuthErrorResponse {
	return AuthErrorResponse{UserInfo: AuthErrorUserInfo{
		Auth:    0,
		Status:  "Disabled",
		Message: "Invalid credentials",
	}}
}

// Handle validates the credentials and dispatches the action. The result is
// always meant to be served with HTTP 200.
func (r *Responder) Handle(username, password string, a Action) interface{} {
	if !r.ValidateCredentials(username, password) {
		return r.AuthError()
	}
	return r.Dispatch(a, username, password)
}

// Dispatch answers an already authenticated action.
func (r *Responder) Dispatch(a Action, username, password string) interface{} {
	c := r.store.Current()
	urls := r.urls(username, password)

	switch a := a.(type) {
	case Login:
		return r.Login(username, password)

	case GetLiveCategories:
		return categories(c, playlist.KindLive)
	case GetVodCategories:
		return categories(c, playlist.KindMovie)
	case GetSeriesCategories:
		return categories(c, playlist.KindSeries)

	case GetLiveStreams:
		return channels(c, urls, a.CategoryID)
	case GetVodStreams:
		return vods(c, urls, a.CategoryID)
	case GetSeries:
		return series(c, a.CategoryID)

	case GetVodInfo:
		info, ok := vodInfo(c, urls, a.VodID)
		if !ok {
			return ErrorResponse{Error: "VOD not found"}
		}
		return info

	case GetSeriesInfo:
		info, ok := seriesInfo(c, urls, a.SeriesID)
		if !ok {
			return ErrorResponse{Error: "Series not found"}
		}
		return info

	case GetShortEPG:
		return r.shortEPG(c, a.StreamID, a.Limit)
	case GetSimpleDataTable:
		return r.fullEPG(c, a.StreamID)

	case InvalidParam:
		return ErrorResponse{Error: "Invalid " + a.Param}

	default:
		return ErrorResponse{Error: "Action not supported"}
	}
}

// ShortEPG returns at most limit upcoming entries of a channel.
func (r *Responder) ShortEPG(streamID, limit int) EpgResponse {
	return r.shortEPG(r.store.Current(), streamID, limit)
}

// FullEPG returns the whole day schedule of a channel.
func (r *Responder) FullEPG(streamID int) EpgResponse {
	return r.fullEPG(r.store.Current(), streamID)
}

func categories(c *catalog.Catalog, kind playlist.Kind) []Category {
	src := c.Categories(kind)
	out := make([]Category, 0, len(src))
	for _, cat := range src {
		out = append(out, Category{CategoryID: cat.ID, CategoryName: cat.Name, ParentID: cat.ParentID})
	}
	return out
}

// liveExtension is the extension advertised for a channel's proxy URL.
func liveExtension(ch *catalog.Channel) string {
	if catalog.IsManifestURL(ch.Origin) {
		return "m3u8"
	}
	return "ts"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func channels(c *catalog.Catalog, urls URLBuilder, categoryID string) []Channel {
	src := c.ChannelsIn(categoryID)
	out := make([]Channel, 0, len(src))
	for i := range src {
		ch := &src[i]
		out = append(out, Channel{
			Num:               ch.Num,
			Name:              ch.Name,
			StreamType:        "live",
			StreamID:          ch.StreamID,
			StreamIcon:        ch.Icon,
			EpgChannelID:      optional(ch.EpgChannelID),
			Added:             ch.Added,
			CategoryID:        ch.CategoryID,
			TvArchive:         ch.TvArchive,
			DirectSource:      urls.Live(ch.StreamID, liveExtension(ch)),
			TvArchiveDuration: ch.TvArchiveDuration,
		})
	}
	return out
}

func vods(c *catalog.Catalog, urls URLBuilder, categoryID string) []Vod {
	src := c.VodsIn(categoryID)
	out := make([]Vod, 0, len(src))
	for _, v := range src {
		out = append(out, Vod{
			Num:                v.Num,
			Name:               v.Name,
			StreamType:         "movie",
			StreamID:           v.StreamID,
			StreamIcon:         v.Icon,
			Rating:             v.Rating,
			Rating5Based:       v.Rating5Based,
			Added:              v.Added,
			CategoryID:         v.CategoryID,
			ContainerExtension: v.ContainerExtension,
			DirectSource:       urls.Movie(v.StreamID, v.ContainerExtension),
		})
	}
	return out
}

func series(c *catalog.Catalog, categoryID string) []Series {
	src := c.SeriesIn(categoryID)
	out := make([]Series, 0, len(src))
	for _, s := range src {
		out = append(out, Series{
			Num:            s.Num,
			Name:           s.Name,
			SeriesID:       s.SeriesID,
			Cover:          s.Cover,
			Plot:           s.Plot,
			Cast:           s.Cast,
			Director:       s.Director,
			Genre:          s.Genre,
			ReleaseDate:    s.ReleaseDate,
			LastModified:   s.LastModified,
			Rating:         s.Rating,
			Rating5Based:   s.Rating5Based,
			BackdropPath:   nonNil(s.BackdropPath),
			EpisodeRunTime: s.EpisodeRunTime,
			CategoryID:     s.CategoryID,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func videoInfo(v catalog.VideoInfo) VideoInfo {
	return VideoInfo{CodecName: v.Codec, Width: v.Width, Height: v.Height}
}

func audioInfo(a catalog.AudioInfo) AudioInfo {
	return AudioInfo{CodecName: a.Codec, Channels: a.Channels, SampleRate: a.SampleRate}
}

func vodInfo(c *catalog.Catalog, urls URLBuilder, id int) (*VodInfoResponse, bool) {
	v, d, ok := c.VodDetail(id)
	if !ok || d == nil {
		return nil, false
	}
	return &VodInfoResponse{
		Info: VodDetails{
			MovieImage:     d.MovieImage,
			TmdbID:         optional(d.TmdbID),
			BackdropPath:   nonNil(d.BackdropPath),
			YoutubeTrailer: optional(d.YoutubeTrailer),
			Genre:          d.Genre,
			Plot:           d.Plot,
			Cast:           d.Cast,
			Rating:         d.Rating,
			Director:       d.Director,
			ReleaseDate:    d.ReleaseDate,
			DurationSecs:   d.Media.DurationSecs,
			Duration:       d.Media.Duration,
			Bitrate:        d.Media.Bitrate,
			Video:          videoInfo(d.Media.Video),
			Audio:          audioInfo(d.Media.Audio),
		},
		MovieData: MovieData{
			StreamID:           v.StreamID,
			Name:               v.Name,
			Added:              v.Added,
			CategoryID:         v.CategoryID,
			ContainerExtension: v.ContainerExtension,
			DirectSource:       urls.Movie(v.StreamID, v.ContainerExtension),
		},
	}, true
}

func seriesInfo(c *catalog.Catalog, urls URLBuilder, id int) (*SeriesInfoResponse, bool) {
	s, d, ok := c.SeriesDetail(id)
	if !ok || d == nil {
		return nil, false
	}

	resp := &SeriesInfoResponse{
		Seasons: make([]SeasonInfo, 0, len(d.Seasons)),
		Info: SeriesDetails{
			Name:           s.Name,
			Cover:          s.Cover,
			Plot:           s.Plot,
			Cast:           s.Cast,
			Director:       s.Director,
			Genre:          s.Genre,
			ReleaseDate:    s.ReleaseDate,
			LastModified:   s.LastModified,
			Rating:         s.Rating,
			Rating5Based:   s.Rating5Based,
			BackdropPath:   nonNil(s.BackdropPath),
			YoutubeTrailer: optional(s.YoutubeTrailer),
			EpisodeRunTime: s.EpisodeRunTime,
			CategoryID:     s.CategoryID,
		},
		Episodes: make(map[string][]Episode, len(d.Seasons)),
	}

	for _, season := range d.Seasons {
		resp.Seasons = append(resp.Seasons, SeasonInfo{
			SeasonNumber: season.Number,
			AirDate:      season.AirDate,
			Name:         season.Name,
			Overview:     season.Overview,
			EpisodeCount: season.EpisodeCount,
			Cover:        season.Cover,
			CoverBig:     season.CoverBig,
		})

		src := d.Episodes[season.Number]
		episodes := make([]Episode, 0, len(src))
		for _, e := range src {
			episodes = append(episodes, Episode{
				ID:                 e.ID,
				EpisodeNum:         e.Num,
				Title:              e.Title,
				ContainerExtension: e.ContainerExtension,
				Info: EpisodeInfo{
					MovieImage:   e.MovieImage,
					Plot:         e.Plot,
					ReleaseDate:  e.ReleaseDate,
					Rating:       e.Rating,
					DurationSecs: e.Media.DurationSecs,
					Duration:     e.Media.Duration,
					Bitrate:      e.Media.Bitrate,
					Video:        videoInfo(e.Media.Video),
					Audio:        audioInfo(e.Media.Audio),
				},
				Added:        e.Added,
				Season:       e.Season,
				DirectSource: urls.Episode(e.ID, e.ContainerExtension),
			})
		}
		resp.Episodes[strconv.Itoa(season.Number)] = episodes
	}
	return resp, true
}

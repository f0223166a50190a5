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

package xtream

// Wire shapes of the player_api.php protocol. Field names and value types
// are fixed by clients in the wild: some counters are numeric strings, some
// are plain numbers, and a few keys differ only by case between payloads.

type UserInfo struct {
	Username             string   `json:"username"`
	Password             string   `json:"password"`
	Message              string   `json:"message"`
	Auth                 int      `json:"auth"`
	Status               string   `json:"status"`
	ExpDate              string   `json:"exp_date"`
	IsTrial              string   `json:"is_trial"`
	ActiveCons           string   `json:"active_cons"`
	CreatedAt            string   `json:"created_at"`
	MaxConnections       string   `json:"max_connections"`
	AllowedOutputFormats []string `json:"allowed_output_formats"`
}

type ServerInfo struct {
	URL            string `json:"url"`
	Port           string `json:"port"`
	HTTPSPort      string `json:"https_port"`
	ServerProtocol string `json:"server_protocol"`
	RTMPPort       string `json:"rtmp_port"`
	Timezone       string `json:"timezone"`
	TimestampNow   int64  `json:"timestamp_now"`
	TimeNow        string `json:"time_now"`
}

type LoginResponse struct {
	UserInfo   UserInfo   `json:"user_info"`
	ServerInfo ServerInfo `json:"server_info"`
}

type AuthErrorUserInfo struct {
	Auth    int    `json:"auth"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type AuthErrorResponse struct {
	UserInfo AuthErrorUserInfo `json:"user_info"`
}

// ErrorResponse is the in-band error object of the action endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

type Category struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ParentID     int    `json:"parent_id"`
}

type Channel struct {
	Num               int     `json:"num"`
	Name              string  `json:"name"`
	StreamType        string  `json:"stream_type"`
	StreamID          int     `json:"stream_id"`
	StreamIcon        string  `json:"stream_icon"`
	EpgChannelID      *string `json:"epg_channel_id"`
	Added             string  `json:"added"`
	CategoryID        string  `json:"category_id"`
	CustomSid         *string `json:"custom_sid"`
	TvArchive         int     `json:"tv_archive"`
	DirectSource      string  `json:"direct_source"`
	TvArchiveDuration int     `json:"tv_archive_duration"`
}

type Vod struct {
	Num                int     `json:"num"`
	Name               string  `json:"name"`
	StreamType         string  `json:"stream_type"`
	StreamID           int     `json:"stream_id"`
	StreamIcon         string  `json:"stream_icon"`
	Rating             string  `json:"rating"`
	Rating5Based       float64 `json:"rating_5based"`
	Added              string  `json:"added"`
	CategoryID         string  `json:"category_id"`
	ContainerExtension string  `json:"container_extension"`
	CustomSid          *string `json:"custom_sid"`
	DirectSource       string  `json:"direct_source"`
}

type Series struct {
	Num            int      `json:"num"`
	Name           string   `json:"name"`
	SeriesID       int      `json:"series_id"`
	Cover          string   `json:"cover"`
	Plot           string   `json:"plot"`
	Cast           string   `json:"cast"`
	Director       string   `json:"director"`
	Genre          string   `json:"genre"`
	ReleaseDate    string   `json:"releaseDate"`
	LastModified   string   `json:"last_modified"`
	Rating         string   `json:"rating"`
	Rating5Based   float64  `json:"rating_5based"`
	BackdropPath   []string `json:"backdrop_path"`
	YoutubeTrailer *string  `json:"youtube_trailer"`
	EpisodeRunTime string   `json:"episode_run_time"`
	CategoryID     string   `json:"category_id"`
}

type VideoInfo struct {
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type AudioInfo struct {
	CodecName  string `json:"codec_name"`
	Channels   int    `json:"channels"`
	SampleRate string `json:"sample_rate"`
}

type VodDetails struct {
	MovieImage     string    `json:"movie_image"`
	TmdbID         *string   `json:"tmdb_id"`
	BackdropPath   []string  `json:"backdrop_path"`
	YoutubeTrailer *string   `json:"youtube_trailer"`
	Genre          string    `json:"genre"`
	Plot           string    `json:"plot"`
	Cast           string    `json:"cast"`
	Rating         string    `json:"rating"`
	Director       string    `json:"director"`
	ReleaseDate    string    `json:"releasedate"`
	DurationSecs   int       `json:"duration_secs"`
	Duration       string    `json:"duration"`
	Bitrate        int       `json:"bitrate"`
	Video          VideoInfo `json:"video"`
	Audio          AudioInfo `json:"audio"`
}

type MovieData struct {
	StreamID           int     `json:"stream_id"`
	Name               string  `json:"name"`
	Added              string  `json:"added"`
	CategoryID         string  `json:"category_id"`
	ContainerExtension string  `json:"container_extension"`
	CustomSid          *string `json:"custom_sid"`
	DirectSource       string  `json:"direct_source"`
}

type VodInfoResponse struct {
	Info      VodDetails `json:"info"`
	MovieData MovieData  `json:"movie_data"`
}

type SeasonInfo struct {
	SeasonNumber int    `json:"season_number"`
	AirDate      string `json:"air_date"`
	Name         string `json:"name"`
	Overview     string `json:"overview"`
	EpisodeCount int    `json:"episode_count"`
	Cover        string `json:"cover"`
	CoverBig     string `json:"cover_big"`
}

type SeriesDetails struct {
	Name           string   `json:"name"`
	Cover          string   `json:"cover"`
	Plot           string   `json:"plot"`
	Cast           string   `json:"cast"`
	Director       string   `json:"director"`
	Genre          string   `json:"genre"`
	ReleaseDate    string   `json:"releaseDate"`
	LastModified   string   `json:"last_modified"`
	Rating         string   `json:"rating"`
	Rating5Based   float64  `json:"rating_5based"`
	BackdropPath   []string `json:"backdrop_path"`
	YoutubeTrailer *string  `json:"youtube_trailer"`
	EpisodeRunTime string   `json:"episode_run_time"`
	CategoryID     string   `json:"category_id"`
}

type EpisodeInfo struct {
	MovieImage   string    `json:"movie_image"`
	Plot         string    `json:"plot"`
	ReleaseDate  string    `json:"releasedate"`
	Rating       float64   `json:"rating"`
	DurationSecs int       `json:"duration_secs"`
	Duration     string    `json:"duration"`
	Bitrate      int       `json:"bitrate"`
	Video        VideoInfo `json:"video"`
	Audio        AudioInfo `json:"audio"`
}

type Episode struct {
	ID                 string      `json:"id"`
	EpisodeNum         int         `json:"episode_num"`
	Title              string      `json:"title"`
	ContainerExtension string      `json:"container_extension"`
	Info               EpisodeInfo `json:"info"`
	CustomSid          *string     `json:"custom_sid"`
	Added              string      `json:"added"`
	Season             int         `json:"season"`
	DirectSource       string      `json:"direct_source"`
}

// SeriesInfoResponse keys Episodes by the season number rendered as a string.
type SeriesInfoResponse struct {
	Seasons  []SeasonInfo         `json:"seasons"`
	Info     SeriesDetails        `json:"info"`
	Episodes map[string][]Episode `json:"episodes"`
}

type EpgEntry struct {
	ID             string `json:"id"`
	EpgID          string `json:"epg_id"`
	Title          string `json:"title"`
	Lang           string `json:"lang"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Description    string `json:"description"`
	ChannelID      string `json:"channel_id"`
	StartTimestamp int64  `json:"start_timestamp"`
	StopTimestamp  int64  `json:"stop_timestamp"`
	NowPlaying     int    `json:"now_playing"`
	HasArchive     int    `json:"has_archive"`
}

type EpgResponse struct {
	EpgListings []EpgEntry `json:"epg_listings"`
}

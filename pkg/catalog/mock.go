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
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

const mockSeed = 20240101

var mockLiveCategories = []Category{
	{ID: "1", Name: "Sports"},
	{ID: "2", Name: "Movies & Series"},
	{ID: "3", Name: "News"},
	{ID: "4", Name: "Kids"},
	{ID: "5", Name: "Documentaries"},
	{ID: "6", Name: "Entertainment"},
}

var mockVodCategories = []Category{
	{ID: "101", Name: "Action"},
	{ID: "102", Name: "Comedy"},
	{ID: "103", Name: "Drama"},
	{ID: "104", Name: "Horror"},
	{ID: "105", Name: "Science Fiction"},
	{ID: "106", Name: "Romance"},
}

var mockSeriesCategories = []Category{
	{ID: "201", Name: "Drama"},
	{ID: "202", Name: "Comedy"},
	{ID: "203", Name: "Action"},
	{ID: "204", Name: "Thriller"},
	{ID: "205", Name: "Science Fiction"},
}

var mockChannels = []struct {
	name, category, epgID string
}{
	{"ESPN", "1", "espn.us"},
	{"Fox Sports", "1", "foxsports.us"},
	{"NBC Sports", "1", "nbcsports.us"},
	{"CBS Sports", "1", "cbssports.us"},
	{"HBO", "2", "hbo.us"},
	{"Showtime", "2", "showtime.us"},
	{"TNT", "2", "tnt.us"},
	{"Warner Channel", "2", "warner.us"},
	{"CNN", "3", "cnn.us"},
	{"Fox News", "3", "foxnews.us"},
	{"MSNBC", "3", "msnbc.us"},
	{"Bloomberg", "3", "bloomberg.us"},
	{"Cartoon Network", "4", "cartoon.us"},
	{"Disney Channel", "4", "disney.us"},
	{"Nickelodeon", "4", "nick.us"},
	{"Discovery Kids", "4", "discoverykids.us"},
	{"Discovery Channel", "5", "discovery.us"},
	{"National Geographic", "5", "natgeo.us"},
	{"History Channel", "5", "history.us"},
	{"Animal Planet", "5", "animalplanet.us"},
	{"Bravo", "6", "bravo.us"},
	{"E!", "6", "e.us"},
	{"Comedy Central", "6", "comedycentral.us"},
	{"MTV", "6", "mtv.us"},
}

var mockVods = []struct {
	name, category string
	rating         float64
}{
	{"Fast X", "101", 7.5},
	{"John Wick: Chapter 4", "101", 8.2},
	{"Mission: Impossible - Dead Reckoning", "101", 7.8},
	{"Operation Fortune", "101", 6.5},
	{"The Hangover Part IV", "102", 6.8},
	{"Barbie", "102", 7.0},
	{"The Super Mario Bros. Movie", "102", 7.2},
	{"Elemental", "102", 7.5},
	{"Oppenheimer", "103", 8.9},
	{"Poor Things", "103", 8.1},
	{"Anatomy of a Fall", "103", 7.9},
	{"The Fabelmans", "103", 7.6},
	{"The Exorcist: Believer", "104", 5.5},
	{"The Nun II", "104", 5.8},
	{"The Black Phone", "104", 7.0},
	{"M3GAN", "104", 6.9},
	{"Dune: Part Two", "105", 8.8},
	{"Avatar: The Way of Water", "105", 7.6},
	{"Guardians of the Galaxy Vol. 3", "105", 8.0},
	{"The Flash", "105", 6.8},
	{"The Little Mermaid", "106", 7.2},
	{"Anyone but You", "106", 6.5},
	{"Persuasion", "106", 5.9},
	{"Don't Worry Darling", "106", 6.2},
}

var mockSeries = []struct {
	name, category string
	rating         float64
	genre          string
}{
	{"Breaking Bad", "201", 9.5, "Drama, Crime"},
	{"The Crown", "201", 8.6, "Drama, Biography"},
	{"Succession", "201", 8.9, "Drama"},
	{"House of the Dragon", "201", 8.4, "Drama, Fantasy"},
	{"The Office", "202", 9.0, "Comedy"},
	{"Brooklyn Nine-Nine", "202", 8.4, "Comedy"},
	{"Ted Lasso", "202", 8.8, "Comedy, Drama"},
	{"Only Murders in the Building", "202", 8.1, "Comedy, Mystery"},
	{"The Mandalorian", "203", 8.7, "Action, Adventure"},
	{"Jack Ryan", "203", 8.0, "Action, Drama"},
	{"Reacher", "203", 8.1, "Action, Crime"},
	{"The Last of Us", "203", 8.8, "Action, Drama"},
	{"True Detective", "204", 8.9, "Thriller, Crime"},
	{"Mindhunter", "204", 8.6, "Thriller, Crime"},
	{"Severance", "204", 8.7, "Thriller, Drama"},
	{"Dark", "204", 8.8, "Thriller, Science Fiction"},
	{"Stranger Things", "205", 8.7, "Science Fiction, Drama"},
	{"Black Mirror", "205", 8.8, "Science Fiction"},
	{"The Expanse", "205", 8.5, "Science Fiction"},
	{"Westworld", "205", 8.6, "Science Fiction"},
}

// mockMedia is the technical block of generated movies and episodes.
func mockMedia(secs int, duration string, bitrate int) MediaInfo {
	return MediaInfo{
		DurationSecs: secs,
		Duration:     duration,
		Bitrate:      bitrate,
		Video:        VideoInfo{Codec: "h264", Width: 1920, Height: 1080},
		Audio:        AudioInfo{Codec: "aac", Channels: 6, SampleRate: "48000"},
	}
}

// Mock builds the procedural catalog served when no playlist is available.
// Icons and posters point below baseURL. Items have no origin, so their media
// paths resolve to ErrNotFound. The generator is seeded and two calls with
// the same arguments return identical snapshots.
func Mock(baseURL string, now time.Time) *Catalog {
	rng := rand.New(rand.NewSource(mockSeed))
	added := strconv.FormatInt(now.Unix(), 10)

	c := newCatalog(ModeMock, "", now)
	c.LiveCategories = append(c.LiveCategories, mockLiveCategories...)
	c.VodCategories = append(c.VodCategories, mockVodCategories...)
	c.SeriesCategories = append(c.SeriesCategories, mockSeriesCategories...)

	for i, m := range mockChannels {
		id := 1000 + i
		c.Channels = append(c.Channels, Channel{
			Num:               i + 1,
			StreamID:          id,
			Name:              m.name,
			Icon:              fmt.Sprintf("%s/icons/channel_%d.png", baseURL, id),
			EpgChannelID:      m.epgID,
			Added:             added,
			CategoryID:        m.category,
			TvArchive:         1,
			TvArchiveDuration: 7,
		})
	}

	for i, m := range mockVods {
		id := 2000 + i
		v := Vod{
			Num:                i + 1,
			StreamID:           id,
			Name:               m.name,
			Icon:               fmt.Sprintf("%s/posters/vod_%d.jpg", baseURL, id),
			Rating:             strconv.FormatFloat(m.rating, 'f', 1, 64),
			Rating5Based:       m.rating / 2,
			Added:              added,
			CategoryID:         m.category,
			ContainerExtension: DefaultExtension,
		}
		c.Vods = append(c.Vods, v)
		c.vodDetails[id] = &VodDetail{
			MovieImage:     v.Icon,
			TmdbID:         strconv.Itoa(id * 10),
			BackdropPath:   []string{fmt.Sprintf("%s/backdrops/vod_%d.jpg", baseURL, id)},
			YoutubeTrailer: "dQw4w9WgXcQ",
			Genre:          categoryName(mockVodCategories, m.category),
			Plot:           fmt.Sprintf("A gripping story in %s that keeps you hooked from start to finish.", m.name),
			Cast:           "Lead Actor, Lead Actress, Famous Supporting Actor",
			Rating:         v.Rating,
			Director:       "Famous Director",
			ReleaseDate:    "2023-06-15",
			Media:          mockMedia(7200, "02:00:00", 5000),
		}
	}

	for i, m := range mockSeries {
		id := 3000 + i
		s := Series{
			Num:            i + 1,
			SeriesID:       id,
			Name:           m.name,
			Cover:          fmt.Sprintf("%s/posters/series_%d.jpg", baseURL, id),
			Plot:           fmt.Sprintf("An incredible series about %s.", m.name),
			Cast:           "Ensemble cast",
			Director:       "Talented director",
			Genre:          m.genre,
			ReleaseDate:    "2020-01-01",
			LastModified:   added,
			Rating:         strconv.FormatFloat(m.rating, 'f', 1, 64),
			Rating5Based:   m.rating / 2,
			BackdropPath:   []string{fmt.Sprintf("%s/backdrops/series_%d.jpg", baseURL, id)},
			YoutubeTrailer: "dQw4w9WgXcQ",
			EpisodeRunTime: "45",
			CategoryID:     m.category,
		}
		c.Series = append(c.Series, s)
		c.seriesDetails[id] = mockSeriesDetail(rng, baseURL, s, added)
	}

	c.index()
	return c
}

func mockSeriesDetail(rng *rand.Rand, baseURL string, s Series, added string) *SeriesDetail {
	detail := &SeriesDetail{Episodes: make(map[int][]Episode)}

	seasons := 2 + rng.Intn(4)
	for sn := 1; sn <= seasons; sn++ {
		count := 8 + rng.Intn(5)
		detail.Seasons = append(detail.Seasons, Season{
			Number:       sn,
			AirDate:      fmt.Sprintf("%d-01-15", 2019+sn),
			Name:         fmt.Sprintf("Season %d", sn),
			Overview:     fmt.Sprintf("Season %d of %s.", sn, s.Name),
			EpisodeCount: count,
			Cover:        fmt.Sprintf("%s/posters/series_%d_s%d.jpg", baseURL, s.SeriesID, sn),
			CoverBig:     fmt.Sprintf("%s/posters/series_%d_s%d_big.jpg", baseURL, s.SeriesID, sn),
		})

		episodes := make([]Episode, 0, count)
		for en := 1; en <= count; en++ {
			episodes = append(episodes, Episode{
				ID:                 fmt.Sprintf("%d%02d%02d", s.SeriesID, sn, en),
				Num:                en,
				Title:              fmt.Sprintf("Episode %d", en),
				ContainerExtension: DefaultExtension,
				MovieImage:         fmt.Sprintf("%s/episodes/series_%d_s%de%d.jpg", baseURL, s.SeriesID, sn, en),
				Plot:               fmt.Sprintf("In episode %d of season %d, surprising things happen.", en, sn),
				ReleaseDate:        fmt.Sprintf("%d-%02d-15", 2019+sn, en%12+1),
				Rating:             8.0 + rng.Float64(),
				Media:              mockMedia(2700, "00:45:00", 4500),
				Added:              added,
				Season:             sn,
			})
		}
		detail.Episodes[sn] = episodes
	}
	return detail
}

func categoryName(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Other"
}

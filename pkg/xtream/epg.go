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

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
)

const (
	epgTimeLayout = "2006-01-02 15:04:05"
	epgLang       = "en"

	shortEPGHorizon = 6 * time.Hour
	fullEPGHorizon  = 24 * time.Hour
	xmltvHorizon    = 48 * time.Hour
	epgLookBehind   = 2 * time.Hour
)

var programmeTitles = []string{
	"Morning News", "Variety Show", "Afternoon Movie",
	"News", "Talk Show", "Special Series", "Documentary",
	"Sports Show", "Magazine", "Evening Movie",
	"Late Show", "Rerun",
}

// epgChannelID is the guide id of a channel, its stream id when it has none.
func epgChannelID(ch *catalog.Channel) string {
	if ch.EpgChannelID != "" {
		return ch.EpgChannelID
	}
	return strconv.Itoa(ch.StreamID)
}

// generateEPG synthesises a schedule starting two hours before now, in slots
// of 30 to 119 minutes, up to now+horizon. Exactly one slot brackets now.
// The slot lengths are seeded by channel and hour so repeated calls within
// the same hour agree.
func generateEPG(ch *catalog.Channel, now time.Time, horizon time.Duration) []EpgEntry {
	now = now.UTC().Truncate(time.Second)
	seed := int64(ch.StreamID)*1_000_003 ^ now.Truncate(time.Hour).Unix()
	rng := rand.New(rand.NewSource(seed))

	channelID := epgChannelID(ch)
	end := now.Add(horizon)

	var entries []EpgEntry
	for start, i := now.Add(-epgLookBehind), 0; start.Before(end); i++ {
		stop := start.Add(time.Duration(30+rng.Intn(90)) * time.Minute)
		title := programmeTitles[i%len(programmeTitles)]

		nowPlaying := 0
		if !now.Before(start) && now.Before(stop) {
			nowPlaying = 1
		}

		entries = append(entries, EpgEntry{
			ID:             fmt.Sprintf("%d_%d", ch.StreamID, start.Unix()),
			EpgID:          channelID,
			Title:          title,
			Lang:           epgLang,
			Start:          start.Format(epgTimeLayout),
			End:            stop.Format(epgTimeLayout),
			Description:    fmt.Sprintf("Description of the programme %s.", title),
			ChannelID:      channelID,
			StartTimestamp: start.Unix(),
			StopTimestamp:  stop.Unix(),
			NowPlaying:     nowPlaying,
			HasArchive:     ch.TvArchive,
		})
		start = stop
	}
	return entries
}

func (r *Responder) shortEPG(c *catalog.Catalog, streamID, limit int) EpgResponse {
	ch, ok := c.Channel(streamID)
	if !ok {
		return EpgResponse{EpgListings: []EpgEntry{}}
	}
	if limit < 0 {
		limit = 0
	}
	entries := generateEPG(ch, r.now(), shortEPGHorizon)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return EpgResponse{EpgListings: entries}
}

func (r *Responder) fullEPG(c *catalog.Catalog, streamID int) EpgResponse {
	ch, ok := c.Channel(streamID)
	if !ok {
		return EpgResponse{EpgListings: []EpgEntry{}}
	}
	return EpgResponse{EpgListings: generateEPG(ch, r.now(), fullEPGHorizon)}
}

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
	"testing"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortEPGLimit(t *testing.T) {
	r := newPlaylistResponder(t)

	resp := r.ShortEPG(1, 2)
	require.Len(t, resp.EpgListings, 2)
	for _, e := range resp.EpgListings {
		assert.Equal(t, "news.us", e.EpgID)
		assert.Equal(t, "news.us", e.ChannelID)
		assert.Equal(t, "en", e.Lang)
		assert.Less(t, e.StartTimestamp, e.StopTimestamp)
	}

	assert.Empty(t, r.ShortEPG(1, 0).EpgListings)
	assert.Empty(t, r.ShortEPG(1, -3).EpgListings)
	assert.NotNil(t, r.ShortEPG(999, 4).EpgListings)
	assert.Empty(t, r.ShortEPG(999, 4).EpgListings)
}

func TestFullEPGCoversDay(t *testing.T) {
	r := newPlaylistResponder(t)

	entries := r.FullEPG(2).EpgListings
	require.NotEmpty(t, entries)

	first, last := entries[0], entries[len(entries)-1]
	assert.Equal(t, testNow.Add(-2*time.Hour).Unix(), first.StartTimestamp)
	assert.GreaterOrEqual(t, last.StopTimestamp, testNow.Add(24*time.Hour).Unix())

	playing := 0
	for i, e := range entries {
		length := time.Duration(e.StopTimestamp-e.StartTimestamp) * time.Second
		assert.GreaterOrEqual(t, length, 30*time.Minute)
		assert.Less(t, length, 120*time.Minute)
		if i > 0 {
			assert.Equal(t, entries[i-1].StopTimestamp, e.StartTimestamp, "slots are contiguous")
		}
		if e.NowPlaying == 1 {
			playing++
			assert.LessOrEqual(t, e.StartTimestamp, testNow.Unix())
			assert.Greater(t, e.StopTimestamp, testNow.Unix())
		}
	}
	assert.Equal(t, 1, playing)

	// channel without tvg-id falls back to its stream id
	assert.Equal(t, "2", first.EpgID)
	assert.Equal(t, "2024-05-01 10:30:00", first.Start)
}

func TestEPGIsStableWithinHour(t *testing.T) {
	c := catalog.Mock("", testNow)
	ch, ok := c.Channel(1000)
	require.True(t, ok)

	a := generateEPG(ch, testNow, shortEPGHorizon)
	b := generateEPG(ch, testNow, shortEPGHorizon)
	assert.Equal(t, a, b)

	for _, e := range a {
		assert.Equal(t, 1, e.HasArchive)
	}
}

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
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/jamesnetherton/m3u"
)

// DefaultOutput is the live extension used by get.php when no output is given.
const DefaultOutput = "m3u8"

type exportTrack struct {
	order int
	track m3u.Track
}

// Playlist renders the whole catalog as an M3U playlist pointing at proxy
// URLs. Origins never appear in the output. Playlist-backed snapshots are
// written in their original entry order.
func (r *Responder) Playlist(username, password, output string) m3u.Playlist {
	c := r.store.Current()
	urls := r.urls(username, password)

	output = strings.TrimPrefix(strings.TrimSpace(output), ".")
	if output == "" {
		output = DefaultOutput
	}

	var items []exportTrack

	for i := range c.Channels {
		ch := &c.Channels[i]
		ext := output
		if catalog.IsManifestURL(ch.Origin) {
			ext = "m3u8"
		}
		items = append(items, exportTrack{order: ch.StreamID, track: m3u.Track{
			Name:   ch.Name,
			Length: -1,
			URI:    urls.Live(ch.StreamID, ext),
			Tags: []m3u.Tag{
				{Name: "tvg-id", Value: ch.EpgChannelID},
				{Name: "tvg-name", Value: ch.Name},
				{Name: "tvg-logo", Value: ch.Icon},
				{Name: "group-title", Value: groupName(c, playlist.KindLive, ch.CategoryID)},
			},
		}})
	}

	for _, v := range c.Vods {
		items = append(items, exportTrack{order: v.StreamID, track: m3u.Track{
			Name:   v.Name,
			Length: -1,
			URI:    urls.Movie(v.StreamID, v.ContainerExtension),
			Tags: []m3u.Tag{
				{Name: "tvg-name", Value: v.Name},
				{Name: "tvg-logo", Value: v.Icon},
				{Name: "group-title", Value: groupName(c, playlist.KindMovie, v.CategoryID)},
			},
		}})
	}

	for _, s := range c.Series {
		_, detail, ok := c.SeriesDetail(s.SeriesID)
		if !ok || detail == nil {
			continue
		}
		group := groupName(c, playlist.KindSeries, s.CategoryID)
		for _, season := range detail.Seasons {
			for _, e := range detail.Episodes[season.Number] {
				name := e.Title
				if c.Mode == catalog.ModeMock {
					name = fmt.Sprintf("%s S%02dE%02d", s.Name, e.Season, e.Num)
				}
				items = append(items, exportTrack{order: s.SeriesID, track: m3u.Track{
					Name:   name,
					Length: -1,
					URI:    urls.Episode(e.ID, e.ContainerExtension),
					Tags: []m3u.Tag{
						{Name: "tvg-name", Value: name},
						{Name: "tvg-logo", Value: s.Cover},
						{Name: "group-title", Value: group},
					},
				}})
			}
		}
	}

	if c.Mode == catalog.ModePlaylist {
		sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })
	}

	p := m3u.Playlist{Tracks: make([]m3u.Track, 0, len(items))}
	for _, it := range items {
		p.Tracks = append(p.Tracks, it.track)
	}
	return p
}

// MarshalPlaylist writes p in extended M3U form, one attribute line and one
// URL line per track.
func MarshalPlaylist(p m3u.Playlist, into io.Writer) error {
	w := bufio.NewWriter(into)
	w.WriteString("#EXTM3U\n") // nolint: errcheck

	for _, track := range p.Tracks {
		var buffer bytes.Buffer
		buffer.WriteString("#EXTINF:")                      // nolint: errcheck
		buffer.WriteString(fmt.Sprintf("%d", track.Length)) // nolint: errcheck
		for _, tag := range track.Tags {
			buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", tag.Name, tagValue(tag.Value))) // nolint: errcheck
		}
		buffer.WriteString(",")        // nolint: errcheck
		buffer.WriteString(track.Name) // nolint: errcheck
		buffer.WriteString("\n")       // nolint: errcheck
		buffer.WriteString(track.URI)  // nolint: errcheck
		buffer.WriteString("\n")       // nolint: errcheck
		if _, err := w.Write(buffer.Bytes()); err != nil {
			return err
		}
	}
	return w.Flush()
}

// RenderPlaylist is Playlist followed by MarshalPlaylist.
func (r *Responder) RenderPlaylist(username, password, output string) (string, error) {
	var sb strings.Builder
	if err := MarshalPlaylist(r.Playlist(username, password, output), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// tagValue keeps attribute values parseable: a double quote would end the
// value early and a line break would end the entry.
func tagValue(v string) string {
	return strings.NewReplacer(`"`, "'", "\r", " ", "\n", " ").Replace(v)
}

func groupName(c *catalog.Catalog, kind playlist.Kind, categoryID string) string {
	if name := c.CategoryName(kind, categoryID); name != "" {
		return name
	}
	return catalog.UncategorizedName
}

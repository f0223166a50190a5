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
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/gercyc/IPTVProxy/pkg/utils"
)

// StoreConfig wires a Store.
type StoreConfig struct {
	// BaseURL prefixes mock icons and posters.
	BaseURL string
	// Client fetches http(s) playlist sources. http.DefaultClient when nil.
	Client *http.Client
	// UserAgent is sent with remote playlist fetches.
	UserAgent string
	// Now is the clock used to stamp snapshots. time.Now when nil.
	Now func() time.Time
}

// Store publishes catalog snapshots. Readers call Current once per request
// and keep the returned pointer; a reload swaps the pointer atomically and
// never touches a published snapshot.
type Store struct {
	cfg     StoreConfig
	current atomic.Pointer[Catalog]

	// serialises loads so two reloads never race on the source
	loadMu sync.Mutex
	source string
}

// NewStore returns a store serving the mock catalog until Load succeeds.
func NewStore(cfg StoreConfig) *Store {
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Store{cfg: cfg}
	s.current.Store(Mock(cfg.BaseURL, cfg.Now()))
	return s
}

// Current returns the published snapshot. It never returns nil.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Source returns the last source passed to Load.
func (s *Store) Source() string {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.source
}

// Load builds a snapshot from source and publishes it. source is a file path
// or an http(s) URL. An empty source publishes the mock catalog, and so does
// a missing file while no playlist has been published yet. Any other failure
// leaves the current snapshot in place.
func (s *Store) Load(ctx context.Context, source string) (*Catalog, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.source = source
	c, err := s.build(ctx, source)
	if err != nil {
		return nil, err
	}
	s.current.Store(c)

	counts := c.Counts()
	utils.InfoLog("Catalog published (mode=%s, channels=%d, vods=%d, series=%d)",
		c.Mode, counts.Channels, counts.Vods, counts.Series)
	return c, nil
}

// Reload rebuilds from the last loaded source.
func (s *Store) Reload(ctx context.Context) (*Catalog, error) {
	return s.Load(ctx, s.Source())
}

func (s *Store) build(ctx context.Context, source string) (*Catalog, error) {
	if source == "" {
		utils.WarnLog("No playlist source configured, using mock data")
		return Mock(s.cfg.BaseURL, s.cfg.Now()), nil
	}

	var (
		p   *playlist.Playlist
		err error
	)
	if isRemote(source) {
		p, err = s.fetch(ctx, source)
	} else {
		p, err = playlist.ParseFile(source)
		if errors.Is(err, fs.ErrNotExist) && s.Current().Mode == ModeMock {
			utils.WarnLog("Playlist file not found at %s, using mock data", source)
			return Mock(s.cfg.BaseURL, s.cfg.Now()), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load playlist %s: %w", utils.MaskURL(source), err)
	}

	utils.InfoLog("Parsed playlist %s with %d entries", utils.MaskURL(source), len(p.Entries))
	return Build(p, source, s.cfg.Now()), nil
}

func (s *Store) fetch(ctx context.Context, source string) (*playlist.Playlist, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.cfg.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return playlist.ParseReader(resp.Body)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

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
	"net/url"
	"strconv"
	"strings"
)

// Protocol action names
const (
	getLiveCategories   = "get_live_categories"
	getLiveStreams      = "get_live_streams"
	getVodCategories    = "get_vod_categories"
	getVodStreams       = "get_vod_streams"
	getVodInfo          = "get_vod_info"
	getSeriesCategories = "get_series_categories"
	getSeries           = "get_series"
	getSeriesInfo       = "get_series_info"
	getShortEPG         = "get_short_epg"
	getSimpleDataTable  = "get_simple_data_table"
)

// DefaultEPGLimit is the short EPG size when the client sends no limit.
const DefaultEPGLimit = 4

// Action is one decoded player_api.php request. The set of implementations
// is closed: every type below is handled by Responder.Dispatch.
type Action interface {
	// Name is the protocol action string, empty for Login.
	Name() string
	isAction()
}

type (
	// Login is a request without an action parameter.
	Login struct{}

	GetLiveCategories   struct{}
	GetVodCategories    struct{}
	GetSeriesCategories struct{}

	// Listing actions return everything when CategoryID is empty.
	GetLiveStreams struct{ CategoryID string }
	GetVodStreams  struct{ CategoryID string }
	GetSeries      struct{ CategoryID string }

	GetVodInfo    struct{ VodID int }
	GetSeriesInfo struct{ SeriesID int }

	GetShortEPG struct {
		StreamID int
		Limit    int
	}
	GetSimpleDataTable struct{ StreamID int }

	// InvalidParam is a known action whose required id is missing or not a
	// number.
	InvalidParam struct {
		Action string
		Param  string
	}

	// Unknown is any action string this server does not implement.
	Unknown struct{ Action string }
)

func (Login) Name() string               { return "" }
func (GetLiveCategories) Name() string   { return getLiveCategories }
func (GetVodCategories) Name() string    { return getVodCategories }
func (GetSeriesCategories) Name() string { return getSeriesCategories }
func (GetLiveStreams) Name() string      { return getLiveStreams }
func (GetVodStreams) Name() string       { return getVodStreams }
func (GetSeries) Name() string           { return getSeries }
func (GetVodInfo) Name() string          { return getVodInfo }
func (GetSeriesInfo) Name() string       { return getSeriesInfo }
func (GetShortEPG) Name() string         { return getShortEPG }
func (GetSimpleDataTable) Name() string  { return getSimpleDataTable }
func (a InvalidParam) Name() string      { return a.Action }
func (a Unknown) Name() string           { return a.Action }

func (Login) isAction()               {}
func (GetLiveCategories) isAction()   {}
func (GetVodCategories) isAction()    {}
func (GetSeriesCategories) isAction() {}
func (GetLiveStreams) isAction()      {}
func (GetVodStreams) isAction()       {}
func (GetSeries) isAction()           {}
func (GetVodInfo) isAction()          {}
func (GetSeriesInfo) isAction()       {}
func (GetShortEPG) isAction()         {}
func (GetSimpleDataTable) isAction()  {}
func (InvalidParam) isAction()        {}
func (Unknown) isAction()             {}

// ParseAction decodes the action and its parameters from a query.
func ParseAction(q url.Values) Action {
	action := strings.TrimSpace(q.Get("action"))
	categoryID := q.Get("category_id")

	switch action {
	case "":
		return Login{}
	case getLiveCategories:
		return GetLiveCategories{}
	case getVodCategories:
		return GetVodCategories{}
	case getSeriesCategories:
		return GetSeriesCategories{}
	case getLiveStreams:
		return GetLiveStreams{CategoryID: categoryID}
	case getVodStreams:
		return GetVodStreams{CategoryID: categoryID}
	case getSeries:
		return GetSeries{CategoryID: categoryID}

	case getVodInfo:
		id, ok := intParam(q, "vod_id")
		if !ok {
			return InvalidParam{Action: action, Param: "vod_id"}
		}
		return GetVodInfo{VodID: id}

	case getSeriesInfo:
		id, ok := intParam(q, "series_id")
		if !ok {
			return InvalidParam{Action: action, Param: "series_id"}
		}
		return GetSeriesInfo{SeriesID: id}

	case getShortEPG:
		id, ok := intParam(q, "stream_id")
		if !ok {
			return InvalidParam{Action: action, Param: "stream_id"}
		}
		limit, ok := intParam(q, "limit")
		if !ok {
			limit = DefaultEPGLimit
		}
		return GetShortEPG{StreamID: id, Limit: limit}

	case getSimpleDataTable:
		id, ok := intParam(q, "stream_id")
		if !ok {
			return InvalidParam{Action: action, Param: "stream_id"}
		}
		return GetSimpleDataTable{StreamID: id}

	default:
		return Unknown{Action: action}
	}
}

func intParam(q url.Values, key string) (int, bool) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

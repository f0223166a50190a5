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
	"net/url"
	"strings"
)

// URLBuilder renders the proxy URLs handed to clients in place of origins.
type URLBuilder struct {
	BaseURL  string
	Username string
	Password string
}

func (b URLBuilder) base() string {
	return strings.TrimRight(b.BaseURL, "/")
}

// Live returns {base}/{user}/{pass}/{id}.{ext}.
func (b URLBuilder) Live(id int, ext string) string {
	return fmt.Sprintf("%s/%s/%s/%d.%s", b.base(), url.PathEscape(b.Username), url.PathEscape(b.Password), id, ext)
}

// Movie returns {base}/movie/{user}/{pass}/{id}.{ext}.
func (b URLBuilder) Movie(id int, ext string) string {
	return fmt.Sprintf("%s/movie/%s/%s/%d.%s", b.base(), url.PathEscape(b.Username), url.PathEscape(b.Password), id, ext)
}

// Episode returns {base}/series/{user}/{pass}/{id}.{ext}.
func (b URLBuilder) Episode(id, ext string) string {
	return fmt.Sprintf("%s/series/%s/%s/%s.%s", b.base(), url.PathEscape(b.Username), url.PathEscape(b.Password), url.PathEscape(id), ext)
}

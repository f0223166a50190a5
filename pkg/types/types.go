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

package types

import (
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
)

// APIResponse is a standardized API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CatalogStatus describes the published catalog snapshot
type CatalogStatus struct {
	Mode     catalog.Mode   `json:"mode"`
	Source   string         `json:"source"`
	LoadedAt time.Time      `json:"loaded_at"`
	Counts   catalog.Counts `json:"counts"`
}

// NewCatalogStatus summarises c. source is masked by the caller when needed.
func NewCatalogStatus(c *catalog.Catalog, source string) CatalogStatus {
	return CatalogStatus{
		Mode:     c.Mode,
		Source:   source,
		LoadedAt: c.BuiltAt,
		Counts:   c.Counts(),
	}
}

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

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultUpstreamTimeout bounds upstream connect plus response headers. It is
// not applied to the body so long transfers are never truncated.
const DefaultUpstreamTimeout = 300 * time.Second

// CredentialString represents an iptv-proxy credential.
type CredentialString string

// String returns the credential string.
func (c CredentialString) String() string {
	return string(c)
}

// HostConfiguration holds the listening host and port.
type HostConfiguration struct {
	Hostname string
	Port     int
}

// ProxyConfig holds everything the service needs at start-up.
type ProxyConfig struct {
	HostConfig *HostConfiguration

	// PlaylistSource is a file path or an http(s) URL.
	PlaylistSource string
	// BaseURL is the externally visible address used in proxy URLs.
	BaseURL        string
	AdvertisedPort int
	HTTPS          bool

	User     CredentialString
	Password CredentialString

	UpstreamTimeout time.Duration
	UserAgent       string
	Timezone        string

	WatchPlaylist  bool
	APIKey         string
	MetricsEnabled bool
}

// Protocol returns http or https depending on the configuration.
func (c *ProxyConfig) Protocol() string {
	if c.HTTPS {
		return "https"
	}
	return "http"
}

// ResolvedBaseURL returns BaseURL without a trailing slash, or one derived from
// protocol, hostname and advertised port when BaseURL is empty.
func (c *ProxyConfig) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	host := "localhost"
	port := c.AdvertisedPort
	if c.HostConfig != nil {
		if c.HostConfig.Hostname != "" {
			host = c.HostConfig.Hostname
		}
		if port == 0 {
			port = c.HostConfig.Port
		}
	}
	if port == 0 || (port == 80 && !c.HTTPS) || (port == 443 && c.HTTPS) {
		return fmt.Sprintf("%s://%s", c.Protocol(), host)
	}
	return fmt.Sprintf("%s://%s:%d", c.Protocol(), host, port)
}

// PublishedPort returns the port announced to clients in login responses.
func (c *ProxyConfig) PublishedPort() int {
	if c.AdvertisedPort != 0 {
		return c.AdvertisedPort
	}
	if c.BaseURL != "" {
		if u, err := url.Parse(c.BaseURL); err == nil && u.Port() != "" {
			var p int
			if _, err := fmt.Sscanf(u.Port(), "%d", &p); err == nil {
				return p
			}
		}
	}
	if c.HostConfig != nil {
		return c.HostConfig.Port
	}
	return 0
}

// Validate reports configuration that would make the service unusable.
func (c *ProxyConfig) Validate() error {
	if c.HostConfig == nil || c.HostConfig.Port <= 0 || c.HostConfig.Port > 65535 {
		return fmt.Errorf("invalid listening port")
	}
	if strings.TrimSpace(c.User.String()) == "" || strings.TrimSpace(c.Password.String()) == "" {
		return fmt.Errorf("user and password must not be empty")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
		}
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream timeout must not be negative")
	}
	return nil
}

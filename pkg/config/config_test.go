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
	"testing"
	"time"
)

func TestResolvedBaseURL(t *testing.T) {
	tests := []struct {
		name string
		conf ProxyConfig
		want string
	}{
		{
			name: "explicit base url wins",
			conf: ProxyConfig{BaseURL: "http://tv.example.com:5000/", HostConfig: &HostConfiguration{Port: 8080}},
			want: "http://tv.example.com:5000",
		},
		{
			name: "derived from hostname and port",
			conf: ProxyConfig{HostConfig: &HostConfiguration{Hostname: "box.lan", Port: 8080}},
			want: "http://box.lan:8080",
		},
		{
			name: "advertised port overrides listening port",
			conf: ProxyConfig{AdvertisedPort: 443, HTTPS: true, HostConfig: &HostConfiguration{Hostname: "tv.example.com", Port: 8080}},
			want: "https://tv.example.com",
		},
		{
			name: "empty hostname falls back to localhost",
			conf: ProxyConfig{HostConfig: &HostConfiguration{Port: 9000}},
			want: "http://localhost:9000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.ResolvedBaseURL(); got != tt.want {
				t.Errorf("ResolvedBaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPublishedPort(t *testing.T) {
	c := ProxyConfig{BaseURL: "http://tv.example.com:5000", HostConfig: &HostConfiguration{Port: 8080}}
	if got := c.PublishedPort(); got != 5000 {
		t.Errorf("PublishedPort() = %d, want 5000", got)
	}
	c.AdvertisedPort = 80
	if got := c.PublishedPort(); got != 80 {
		t.Errorf("PublishedPort() = %d, want 80", got)
	}
	c = ProxyConfig{HostConfig: &HostConfiguration{Port: 8080}}
	if got := c.PublishedPort(); got != 8080 {
		t.Errorf("PublishedPort() = %d, want 8080", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() ProxyConfig {
		return ProxyConfig{
			HostConfig:      &HostConfiguration{Port: 8080},
			User:            "demo",
			Password:        "demo123",
			UpstreamTimeout: time.Minute,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*ProxyConfig)
		wantErr bool
	}{
		{name: "valid", mutate: func(*ProxyConfig) {}},
		{name: "missing host config", mutate: func(c *ProxyConfig) { c.HostConfig = nil }, wantErr: true},
		{name: "port out of range", mutate: func(c *ProxyConfig) { c.HostConfig.Port = 70000 }, wantErr: true},
		{name: "empty user", mutate: func(c *ProxyConfig) { c.User = " " }, wantErr: true},
		{name: "empty password", mutate: func(c *ProxyConfig) { c.Password = "" }, wantErr: true},
		{name: "bad base url scheme", mutate: func(c *ProxyConfig) { c.BaseURL = "ftp://host" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *ProxyConfig) { c.UpstreamTimeout = -time.Second }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

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

// Package proxy relays catalog media from its origin to players.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gercyc/IPTVProxy/pkg/catalog"
	"github.com/gercyc/IPTVProxy/pkg/config"
	"github.com/gercyc/IPTVProxy/pkg/playlist"
	"github.com/gercyc/IPTVProxy/pkg/utils"
	"github.com/gin-gonic/gin"
)

// StatusClientClosedRequest is set when the player went away before the
// upstream answered.
const StatusClientClosedRequest = 499

const relayBufferSize = 64 * 1024

// NewHTTPClient returns the upstream client shared by every request. The
// timeout bounds connect plus response headers only, so long bodies are never
// cut.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = config.DefaultUpstreamTimeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     false,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Transport: transport}
}

// UpstreamError reports a failure to obtain response headers from an origin.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request to %s failed: %v", utils.MaskURL(e.URL), e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Options configures a Proxy.
type Options struct {
	Client *http.Client
	// UserAgent is sent upstream when the item carries none.
	UserAgent string
	Metrics   *Metrics
}

// Proxy fetches origins and relays them. It is safe for concurrent use.
type Proxy struct {
	client    *http.Client
	userAgent string
	metrics   *Metrics
}

func New(opts Options) *Proxy {
	if opts.Client == nil {
		opts.Client = NewHTTPClient(config.DefaultUpstreamTimeout)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = utils.GetIPTVUserAgent()
	}
	return &Proxy{client: opts.Client, userAgent: opts.UserAgent, metrics: opts.Metrics}
}

func (p *Proxy) newRequest(ctx context.Context, m catalog.Media, rangeHeader string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.Origin, nil)
	if err != nil {
		return nil, err
	}
	ua := m.Headers.UserAgent
	if ua == "" {
		ua = p.userAgent
	}
	req.Header.Set("User-Agent", ua)
	if m.Headers.Referrer != "" {
		req.Header.Set("Referer", m.Headers.Referrer)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "identity")
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	return req, nil
}

func (p *Proxy) do(ctx context.Context, m catalog.Media, rangeHeader string) (*http.Response, error) {
	req, err := p.newRequest(ctx, m, rangeHeader)
	if err != nil {
		return nil, &UpstreamError{URL: m.Origin, Err: err}
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{URL: m.Origin, Err: err}
	}
	return resp, nil
}

// Fetch issues the upstream GET for m, forwarding rangeHeader when set. A 416
// answer to a ranged request is retried once without the range and the
// retry's answer is returned whatever it is. ranged reports whether the
// returned response was obtained with a Range header.
func (p *Proxy) Fetch(ctx context.Context, m catalog.Media, rangeHeader string) (resp *http.Response, ranged bool, err error) {
	resp, err = p.do(ctx, m, rangeHeader)
	if err != nil {
		return nil, false, err
	}
	if rangeHeader == "" || resp.StatusCode != http.StatusRequestedRangeNotSatisfiable {
		return resp, rangeHeader != "", nil
	}

	utils.DebugLog("Upstream rejected range %q for %s, retrying without it", rangeHeader, utils.MaskURL(m.Origin))
	io.Copy(io.Discard, resp.Body) // nolint: errcheck
	resp.Body.Close()
	p.metrics.rangeRetry()

	resp, err = p.do(ctx, m, "")
	if err != nil {
		return nil, false, err
	}
	return resp, false, nil
}

// Serve resolves id of the given kind in c and relays it. Unknown ids and
// items without an origin answer 404.
func (p *Proxy) Serve(ctx *gin.Context, c *catalog.Catalog, kind playlist.Kind, id, ext string) {
	m, err := c.Resolve(kind, id)
	if err != nil {
		p.metrics.request(kind.String(), outcomeNotFound)
		if errors.Is(err, catalog.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Stream not found"})
			return
		}
		ctx.AbortWithError(http.StatusInternalServerError, utils.PrintErrorAndReturn(err)) // nolint: errcheck
		return
	}
	p.Relay(ctx, m, ext)
}

// relayExtension is the extension deciding the outbound Content-Type. A live
// channel backed by an HLS origin is always served as m3u8.
func relayExtension(m catalog.Media, requested string) string {
	if m.Kind == playlist.KindLive && m.IsManifest() {
		return "m3u8"
	}
	return requested
}

// Relay streams m to the gin client. requestedExt is the extension of the
// inbound path, possibly empty.
func (p *Proxy) Relay(ctx *gin.Context, m catalog.Media, requestedExt string) {
	kind := m.Kind.String()
	reqCtx := ctx.Request.Context()
	utils.DebugLog("-> Streaming request URL: %s", utils.MaskURL(ctx.Request.URL.String()))
	utils.DebugLog("-> Proxying to upstream URL: %s", utils.MaskURL(m.Origin))

	resp, ranged, err := p.Fetch(reqCtx, m, ctx.GetHeader("Range"))
	if err != nil {
		if reqCtx.Err() != nil {
			utils.DebugLog("Client cancelled before upstream answered: %s", utils.MaskURL(m.Origin))
			p.metrics.request(kind, outcomeCancelled)
			ctx.Status(StatusClientClosedRequest)
			return
		}
		utils.WarnLog("Stream %s/%s: %v", kind, m.ID, err)
		p.metrics.request(kind, outcomeBadGate)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch stream", "details": err.Error()})
		return
	}
	defer resp.Body.Close()

	utils.DebugLog("-> Upstream response status: %d", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.metrics.request(kind, outcomeUpstream)
		ctx.Status(resp.StatusCode)
		return
	}

	contentType := ContentTypeForExtension(relayExtension(m, requestedExt), resp.Header.Get("Content-Type"))
	if ranged && resp.StatusCode == http.StatusPartialContent {
		if v := resp.Header.Get("Accept-Ranges"); v != "" {
			ctx.Header("Accept-Ranges", v)
		}
		if v := resp.Header.Get("Content-Range"); v != "" {
			ctx.Header("Content-Range", v)
		}
	}

	if isManifestContentType(contentType) || m.IsManifest() {
		p.relayManifest(ctx, m, resp, contentType)
		return
	}
	p.relayBody(ctx, m, resp, contentType)
}

func (p *Proxy) relayManifest(ctx *gin.Context, m catalog.Media, resp *http.Response, contentType string) {
	kind := m.Kind.String()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Request.Context().Err() != nil {
			p.metrics.request(kind, outcomeCancelled)
			ctx.Status(StatusClientClosedRequest)
			return
		}
		utils.WarnLog("Reading manifest %s: %v", utils.MaskURL(m.Origin), err)
		p.metrics.request(kind, outcomeBadGate)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch stream", "details": err.Error()})
		return
	}

	rewritten := RewriteManifest(string(body), m.Origin)
	listType := ClassifyManifest(rewritten)
	utils.DebugLog("Rewrote %s manifest for %s/%s (%d bytes)", listType, kind, m.ID, len(rewritten))
	p.metrics.rewrite(listType)
	p.metrics.request(kind, outcomeOK)

	ctx.Header("Cache-Control", "no-store")
	ctx.Data(resp.StatusCode, contentType, []byte(rewritten))
}

// relayBody copies the upstream body to the client with flushes and stops as
// soon as the client goes away.
func (p *Proxy) relayBody(ctx *gin.Context, m catalog.Media, resp *http.Response, contentType string) {
	kind := m.Kind.String()
	done := p.metrics.streamStarted()
	defer done()

	setNoBufferingHeaders(ctx, contentType)
	if resp.ContentLength >= 0 {
		ctx.Header("Content-Length", strconv.FormatInt(resp.ContentLength, 10))
	}
	ctx.Status(resp.StatusCode)

	w := ctx.Writer
	w.WriteHeaderNow()
	buf := make([]byte, relayBufferSize)
	reqCtx := ctx.Request.Context()

	for {
		select {
		case <-reqCtx.Done():
			utils.DebugLog("Client cancelled stream for URL: %s", utils.MaskURL(ctx.Request.URL.String()))
			p.metrics.request(kind, outcomeCancelled)
			return
		default:
		}

		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				utils.DebugLog("Client write error: %v", werr)
				p.metrics.request(kind, outcomeCancelled)
				return
			}
			w.Flush()
			p.metrics.relayed(n)
		}
		if rerr != nil {
			switch {
			case errors.Is(rerr, io.EOF):
				p.metrics.request(kind, outcomeOK)
			case reqCtx.Err() != nil:
				p.metrics.request(kind, outcomeCancelled)
			default:
				utils.DebugLog("Upstream read error: %v", rerr)
				p.metrics.request(kind, outcomeUpstream)
			}
			return
		}
	}
}

// Package upstream speaks to the upstream WebDAV store: PROPFIND for
// listings, byte-range GET for content.
package upstream

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dbytex91/plexdav/internal/apperr"
	"github.com/dbytex91/plexdav/internal/model"
)

const (
	listingCacheSize = 4 * 1024 * 1024 // 4 MiB, sized for a few thousand listing entries
	torrentsKey      = "torrents"
)

// Client lists and streams a flat torrent store exposed as WebDAV.
type Client struct {
	client *resty.Client
	cache  *freecache.Cache
	ttl    int
}

// New builds a Client against baseURL, authenticating with HTTP basic auth.
// One client is built once and reused by every call.
func New(baseURL, username, password string, ttl time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetBasicAuth(username, password).
		SetTimeout(30 * time.Second)

	return &Client{
		client: c,
		cache:  freecache.NewCache(listingCacheSize),
		ttl:    int(ttl.Seconds()),
	}
}

// ListTorrents lists the top-level torrent folders in the store.
func (c *Client) ListTorrents(ctx context.Context) ([]model.RawEntry, error) {
	if cached, ok := c.fromCache(torrentsKey); ok {
		return cached, nil
	}

	entries, err := c.propfind(ctx, "/torrents")
	if err != nil {
		log.Errorf("upstream: list torrents: %v", err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}

	c.toCache(torrentsKey, entries)
	return entries, nil
}

// ListTorrentFiles lists the non-directory members of one torrent folder.
func (c *Client) ListTorrentFiles(ctx context.Context, torrent model.RawEntry) ([]model.RawEntry, error) {
	key := "files:" + torrent.Href
	if cached, ok := c.fromCache(key); ok {
		return cached, nil
	}

	entries, err := c.propfind(ctx, torrent.Href)
	if err != nil {
		log.Errorf("upstream: list files for %s: %v", torrent.Name, err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}

	files := entries[:0:0]
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, e)
		}
	}

	c.toCache(key, files)
	return files, nil
}

// FileURL resolves href to a fully-qualified download URL.
func (c *Client) FileURL(href string) string {
	return c.client.BaseURL + href
}

// OpenRange opens a byte range of the resource at href, starting at offset
// and running length bytes (length<=0 means open-ended, to EOF).
func (c *Client) OpenRange(ctx context.Context, href string, offset, length int64) (io.ReadCloser, int64, error) {
	rng := fmt.Sprintf("bytes=%d-", offset)
	if length > 0 {
		rng = fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Range", rng).
		Get(href)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperr.ErrUpstreamUnavailable, err)
	}

	raw := resp.RawResponse
	if raw.StatusCode != http.StatusPartialContent && raw.StatusCode != http.StatusOK {
		_ = raw.Body.Close()
		return nil, 0, fmt.Errorf("%w: range get returned %d", apperr.ErrUpstreamUnavailable, raw.StatusCode)
	}

	return raw.Body, raw.ContentLength, nil
}

// Invalidate drops every cached listing, forcing the next ListTorrents /
// ListTorrentFiles call to hit the upstream again.
func (c *Client) Invalidate() {
	c.cache.Clear()
}

func (c *Client) propfind(ctx context.Context, href string) ([]model.RawEntry, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Depth", "1").
		SetHeader("Content-Type", "application/xml").
		Execute("PROPFIND", href)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("propfind %s: status %d", href, resp.StatusCode())
	}

	var ms multistatus
	if err := xml.Unmarshal(resp.Body(), &ms); err != nil {
		return nil, fmt.Errorf("propfind %s: parse multistatus: %w", href, err)
	}

	selfHref := normalizeHref(href)
	entries := make([]model.RawEntry, 0, len(ms.Responses))
	for _, r := range ms.Responses {
		childHref := normalizeHref(r.Href)
		if childHref == selfHref {
			continue // the collection's own PROPFIND entry for itself
		}

		name := path.Base(strings.TrimRight(childHref, "/"))
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}

		entries = append(entries, model.RawEntry{
			Name:  name,
			Href:  r.Href,
			IsDir: r.isCollection(),
			Size:  r.PropStat.Prop.ContentLength,
		})
	}

	return entries, nil
}

func normalizeHref(h string) string {
	if u, err := url.Parse(h); err == nil {
		h = u.Path
	}
	return strings.TrimRight(h, "/")
}

func (c *Client) fromCache(key string) ([]model.RawEntry, bool) {
	raw, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, false
	}
	return entries, true
}

func (c *Client) toCache(key string, entries []model.RawEntry) {
	_ = c.cache.Set([]byte(key), encodeEntries(entries), c.ttl)
}

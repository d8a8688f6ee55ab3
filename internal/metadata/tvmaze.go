package metadata

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"
)

// TVMazeProvider searches the free, keyless TVMaze API for series only. It
// tries a single best-match search first and falls back to a
// multi-candidate search, taking the first hit's show name.
type TVMazeProvider struct {
	client *resty.Client
}

type tvmazeShow struct {
	Name string `json:"name"`
}

type tvmazeSearchHit struct {
	Show tvmazeShow `json:"show"`
}

// NewTVMaze builds the provider against the public TVMaze API.
func NewTVMaze() *TVMazeProvider {
	return &TVMazeProvider{
		client: resty.New().SetBaseURL("https://api.tvmaze.com").SetTimeout(10 * time.Second),
	}
}

func (p *TVMazeProvider) Name() string { return "tvmaze" }

func (p *TVMazeProvider) Search(ctx context.Context, title string, _ int, kind Kind) (string, bool) {
	if kind != Series {
		return "", false
	}

	if show, ok := p.singleSearch(ctx, title); ok {
		return show, true
	}
	return p.multiSearch(ctx, title)
}

func (p *TVMazeProvider) singleSearch(ctx context.Context, title string) (string, bool) {
	result := &tvmazeShow{}
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(result).
		SetQueryParam("q", title).
		Get("/singlesearch/shows")
	if err != nil || resp.IsError() || result.Name == "" {
		return "", false
	}
	return result.Name, true
}

func (p *TVMazeProvider) multiSearch(ctx context.Context, title string) (string, bool) {
	var hits []tvmazeSearchHit
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&hits).
		SetQueryParam("q", title).
		Get("/search/shows")
	if err != nil {
		log.Warnf("metadata: tvmaze search for %q: %v", title, err)
		return "", false
	}
	if resp.IsError() || len(hits) == 0 || hits[0].Show.Name == "" {
		return "", false
	}
	return hits[0].Show.Name, true
}

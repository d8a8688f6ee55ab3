package metadata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"
)

// OMDbProvider searches the OMDb API by title and year, retrying once
// without the year if that comes back empty. A blank API key turns every
// call into a permanent miss, so the provider can stay in the cascade
// unconditionally whether or not a key is configured.
type OMDbProvider struct {
	client *resty.Client
	apiKey string
}

type omdbResponse struct {
	Response string `json:"Response"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
}

// NewOMDb builds the provider against the public OMDb API. apiKey may be
// empty, in which case Search always reports a miss.
func NewOMDb(apiKey string) *OMDbProvider {
	return &OMDbProvider{
		client: resty.New().SetBaseURL("https://www.omdbapi.com").SetTimeout(10 * time.Second),
		apiKey: apiKey,
	}
}

func (p *OMDbProvider) Name() string { return "omdb" }

func (p *OMDbProvider) Search(ctx context.Context, title string, year int, kind Kind) (string, bool) {
	if p.apiKey == "" {
		return "", false
	}

	result, ok := p.search(ctx, title, year, kind)
	if !ok && year > 0 {
		result, ok = p.search(ctx, title, 0, kind)
	}
	return result, ok
}

func (p *OMDbProvider) search(ctx context.Context, title string, year int, kind Kind) (string, bool) {
	req := p.client.R().
		SetContext(ctx).
		SetResult(&omdbResponse{}).
		SetQueryParam("apikey", p.apiKey).
		SetQueryParam("t", title).
		SetQueryParam("type", omdbType(kind))
	if year > 0 {
		req.SetQueryParam("y", strconv.Itoa(year))
	}

	resp, err := req.Get("/")
	if err != nil {
		log.Warnf("metadata: omdb search for %q: %v", title, err)
		return "", false
	}

	result, ok := resp.Result().(*omdbResponse)
	if !ok || result.Response != "True" || result.Title == "" {
		return "", false
	}

	if kind == Series {
		return result.Title, true
	}
	return formatMovieTitle(result.Title, firstYear(result.Year)), true
}

func omdbType(kind Kind) string {
	if kind == Series {
		return "series"
	}
	return "movie"
}

func formatMovieTitle(title string, year int) string {
	if year > 0 {
		return fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}

// firstYear strips a trailing range dash from an OMDb/TVMaze-style year
// field ("2019-2021" or "2019–") and parses the leading year.
func firstYear(s string) int {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '–' || r == '—' })
	if len(parts) == 0 {
		return 0
	}
	y, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	return y
}

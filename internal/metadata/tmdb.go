package metadata

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2/log"
)

// TMDbProvider is the cascade's Provider B: a multi-result search scored by
// title similarity against each candidate's primary and original-language
// name, the highest-scoring candidate wins ties broken by input order.
type TMDbProvider struct {
	client *resty.Client
	apiKey string
}

type tmdbSearchResponse struct {
	Results []tmdbResult `json:"results"`
}

type tmdbResult struct {
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	ReleaseDate   string `json:"release_date"`
	Name          string `json:"name"`
	OriginalName  string `json:"original_name"`
	FirstAirDate  string `json:"first_air_date"`
}

// NewTMDb builds the provider against the public TMDb v3 API. apiKey may be
// empty, in which case Search always reports a miss.
func NewTMDb(apiKey string) *TMDbProvider {
	return &TMDbProvider{
		client: resty.New().SetBaseURL("https://api.themoviedb.org/3").SetTimeout(10 * time.Second),
		apiKey: apiKey,
	}
}

func (p *TMDbProvider) Name() string { return "tmdb" }

func (p *TMDbProvider) Search(ctx context.Context, title string, year int, kind Kind) (string, bool) {
	if p.apiKey == "" {
		return "", false
	}

	path := "/search/movie"
	yearParam := "year"
	if kind == Series {
		path = "/search/tv"
		yearParam = "first_air_date_year"
	}

	result := &tmdbSearchResponse{}
	req := p.client.R().
		SetContext(ctx).
		SetResult(result).
		SetQueryParam("api_key", p.apiKey).
		SetQueryParam("query", title)
	if year > 0 {
		req.SetQueryParam(yearParam, strconv.Itoa(year))
	}

	resp, err := req.Get(path)
	if err != nil {
		log.Warnf("metadata: tmdb search for %q: %v", title, err)
		return "", false
	}
	if resp.IsError() || len(result.Results) == 0 {
		return "", false
	}

	best := pickBest(title, result.Results)
	if best == nil {
		return "", false
	}

	if kind == Series {
		return best.Name, true
	}
	return formatMovieTitle(best.Title, releaseYear(best.ReleaseDate)), true
}

func pickBest(query string, results []tmdbResult) *tmdbResult {
	sort.SliceStable(results, func(i, j int) bool {
		return candidateScore(query, results[i]) > candidateScore(query, results[j])
	})
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

func candidateScore(query string, r tmdbResult) float64 {
	primary, original := r.Title, r.OriginalTitle
	if r.Name != "" {
		primary, original = r.Name, r.OriginalName
	}
	return bestSimilarity(query, primary, original)
}

// releaseYear takes the first four characters of a TMDb-style date field
// ("2019-07-26"), per the formatting rule for movie results.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	return firstYear(date[:4])
}

package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReleaseYear(t *testing.T) {
	require.Equal(t, 2019, releaseYear("2019-07-26"))
	require.Equal(t, 0, releaseYear("19"))
}

func TestPickBestPrefersHigherSimilarity(t *testing.T) {
	results := []tmdbResult{
		{Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15"},
		{Title: "The Matrix", ReleaseDate: "1999-03-31"},
	}

	best := pickBest("The Matrix", results)
	require.NotNil(t, best)
	require.Equal(t, "The Matrix", best.Title)
}

func TestCandidateScoreUsesSeriesNameWhenPresent(t *testing.T) {
	r := tmdbResult{Name: "Gen V", OriginalName: "Gen V", Title: "Should Be Ignored"}
	score := candidateScore("Gen V", r)
	require.Equal(t, 1.0, score)
}

func TestTMDbSearchMissingAPIKeyIsPermanentNoOp(t *testing.T) {
	p := NewTMDb("")
	title, ok := p.Search(context.Background(), "Gen V", 0, Series)
	require.False(t, ok)
	require.Empty(t, title)
}

func TestTMDbSearchSendsYearQueryParam(t *testing.T) {
	var gotYear, gotAirDateYear string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		gotAirDateYear = r.URL.Query().Get("first_air_date_year")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"The Matrix","release_date":"1999-03-31"}]}`))
	}))
	defer srv.Close()

	p := NewTMDb("key")
	p.client.SetBaseURL(srv.URL)

	title, ok := p.Search(context.Background(), "The Matrix", 1999, Movie)
	require.True(t, ok)
	require.Equal(t, "The Matrix (1999)", title)
	require.Equal(t, "1999", gotYear)
	require.Empty(t, gotAirDateYear)
}

func TestTMDbSearchSendsFirstAirDateYearForSeries(t *testing.T) {
	var gotYear, gotAirDateYear string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		gotAirDateYear = r.URL.Query().Get("first_air_date_year")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"Gen V","first_air_date":"2023-09-29"}]}`))
	}))
	defer srv.Close()

	p := NewTMDb("key")
	p.client.SetBaseURL(srv.URL)

	title, ok := p.Search(context.Background(), "Gen V", 2023, Series)
	require.True(t, ok)
	require.Equal(t, "Gen V", title)
	require.Equal(t, "2023", gotAirDateYear)
	require.Empty(t, gotYear)
}

func TestTMDbSearchOmitsYearParamWhenYearIsZero(t *testing.T) {
	var sawYear, sawAirDateYear bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawYear = r.URL.Query()["year"]
		_, sawAirDateYear = r.URL.Query()["first_air_date_year"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	p := NewTMDb("key")
	p.client.SetBaseURL(srv.URL)

	_, ok := p.Search(context.Background(), "Gen V", 0, Series)
	require.False(t, ok)
	require.False(t, sawYear)
	require.False(t, sawAirDateYear)
}

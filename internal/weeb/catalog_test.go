package weeb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchHTML = `<!DOCTYPE html><html><body>
<span class="tooltip tooltip-bottom" data-tip="One Punch Man">
  <a href="https://example.test/series/111/one-punch-man">One Punch Man</a>
</span>
<span class="tooltip tooltip-bottom" data-tip="One Piece">
  <a href="https://example.test/series/222/one-piece">One Piece</a>
</span>
<span class="tooltip">
  <a href="https://example.test/series/333/decoy">unrelated tooltip</a>
</span>
</body></html>`

func TestSearchParsesResults(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search/data", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "one", r.URL.Query().Get("text"))
		assert.Equal(t, "Best Match", r.URL.Query().Get("sort"))
		assert.Equal(t, "Descending", r.URL.Query().Get("order"))
		assert.Equal(t, "Any", r.URL.Query().Get("official"))
		assert.Equal(t, "Full Display", r.URL.Query().Get("display_mode"))
		_, _ = w.Write([]byte(searchHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	results, err := c.Search(context.Background(), SearchQuery{Text: "one"})
	require.NoError(t, err)
	require.Len(t, results, 2, "the span without the exact class pair is skipped")
	assert.Equal(t, "One Punch Man", results[0].Title)
	assert.Equal(t, "https://example.test/series/111/one-punch-man", results[0].URL)
	assert.Equal(t, "One Piece", results[1].Title)
}

func TestSearchResultsAreCached(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/search/data", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(searchHTML))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	ctx := context.Background()
	_, err := c.Search(ctx, SearchQuery{Text: "one"})
	require.NoError(t, err)
	_, err = c.Search(ctx, SearchQuery{Text: "one"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "identical queries hit the network once")

	_, err = c.Search(ctx, SearchQuery{Text: "two"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load(), "a different query is a different cache key")
}

func TestSearchQueryFilters(t *testing.T) {
	q := SearchQuery{
		Text:   "witch",
		Sort:   SortPopularity,
		Order:  OrderAscending,
		Adult:  TriFalse,
		Status: []Status{StatusOngoing, StatusHiatus},
		Types:  []SeriesType{TypeManhwa},
		Genres: []Genre{GenreFantasy, GenreSliceOfLife},
	}

	params := q.values()
	assert.Equal(t, "Popularity", params.Get("sort"))
	assert.Equal(t, "Ascending", params.Get("order"))
	assert.Equal(t, "False", params.Get("adult"))
	assert.Equal(t, []string{"Ongoing", "Hiatus"}, params["included_status"])
	assert.Equal(t, []string{"Manhwa"}, params["included_type"])
	assert.Equal(t, []string{"Fantasy", "Slice of Life"}, params["included_tag"])
}

func TestLatestUpdates(t *testing.T) {
	const html = `<!DOCTYPE html><html><body>
<article class="bg-base-100 hover:bg-base-300 flex items-center gap-4 tooltip tooltip-bottom" data-tip="Series A">
  <a href="/series/aaa/series-a"><img src="cover.png"></a>
  <a href="/chapters/aaa-105">
    <div class="flex items-center gap-2 opacity-70"><span>Chapter 105</span></div>
  </a>
</article>
<article class="bg-base-100 hover:bg-base-300 flex items-center gap-4 tooltip tooltip-bottom" data-tip="Series B">
  <a href="/series/bbb/series-b"><img src="cover.png"></a>
  <a href="/chapters/bbb-7">
    <div class="flex items-center gap-2 opacity-70"><span>Chapter 7</span></div>
  </a>
</article>
</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/latest-updates/2", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	updates, err := c.LatestUpdates(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, "Series A", updates[0].Manga.Title)
	assert.Equal(t, "/series/aaa/series-a", updates[0].Manga.URL)
	assert.Equal(t, "105", updates[0].Chapter.Index)
	assert.Equal(t, "/chapters/aaa-105", updates[0].Chapter.URL)
	assert.Equal(t, "7", updates[1].Chapter.Index)
}

func TestHotUpdates(t *testing.T) {
	const html = `<!DOCTYPE html><html><body>
<div class="truncate text-white text-center text-lg z-20 w-[90%]">Series A</div>
<div class="truncate text-white text-center text-lg z-20 w-[90%]">Chapter 42</div>
<div class="truncate text-white text-center text-lg z-20 w-[90%]">Series B</div>
<div class="truncate text-white text-center text-lg z-20 w-[90%]">S2 Chapter 3</div>
<article class="bg-base-100 hover:bg-base-300 md:relative hidden md:block gap-4 tooltip tooltip-bottom"><a href="/chapters/a-42"></a></article>
<article class="bg-base-100 hover:bg-base-300 md:relative hidden md:block gap-4 tooltip tooltip-bottom"><a href="/chapters/b-3"></a></article>
<article class="bg-base-100 hover:bg-base-300 flex gap-4 md:hidden tooltip tooltip-bottom"><a href="/series/aaa/series-a"></a></article>
<article class="bg-base-100 hover:bg-base-300 flex gap-4 md:hidden tooltip tooltip-bottom"><a href="/series/bbb/series-b"></a></article>
</body></html>`

	mux := http.NewServeMux()
	mux.HandleFunc("/hot-updates", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(html))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	updates, err := c.HotUpdates(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, "Series A", updates[0].Manga.Title)
	assert.Equal(t, "42", updates[0].Chapter.Index)
	assert.Equal(t, 0, updates[0].Chapter.Season)

	assert.Equal(t, "Series B", updates[1].Manga.Title)
	assert.Equal(t, "3", updates[1].Chapter.Index)
	assert.Equal(t, 2, updates[1].Chapter.Season, "an explicit S2 token sets the season")
}

func TestHotSeriesPeriodDefaultsToWeekly(t *testing.T) {
	var gotSort string
	mux := http.NewServeMux()
	mux.HandleFunc("/hot-series", func(w http.ResponseWriter, r *http.Request) {
		gotSort = r.URL.Query().Get("sort")
		_, _ = w.Write([]byte(`<html><body><a href="/series/x/x-title">X Title</a></body></html>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var sleeps []time.Duration
	c := newTestClient(srv, &sleeps)

	series, err := c.HotSeries(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "weekly_views", gotSort)
	require.NotEmpty(t, series)
	assert.Equal(t, "X Title", series[0].Title)
}

func TestSeasonToken(t *testing.T) {
	cases := []struct {
		in     string
		season int
		ok     bool
	}{
		{"S2", 2, true},
		{"S10", 10, true},
		{"Chapter", 0, false},
		{"S", 0, false},
		{"Sx", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		season, ok := seasonToken(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.season, season, tc.in)
	}
}

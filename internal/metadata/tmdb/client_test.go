package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelstack/reelstack/internal/config"
	"github.com/reelstack/reelstack/internal/metrics"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.TMDBConfig{
		APIKey:       "test-key",
		BaseURL:      baseURL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		Language:     "en-US",
		Timeout:      5,
	}, metrics.Nop(), zerolog.Nop())
}

func TestClient_IsConfigured(t *testing.T) {
	assert.True(t, newTestClient("http://example.test").IsConfigured())

	unconfigured := NewClient(config.TMDBConfig{}, metrics.Nop(), zerolog.Nop())
	assert.False(t, unconfigured.IsConfigured())
}

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient(config.TMDBConfig{}, metrics.Nop(), zerolog.Nop())

	_, err := c.SearchMovies(context.Background(), "Inception", 0)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestSearchMovies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Inception", q.Get("query"))
		assert.Equal(t, "2010", q.Get("year"))
		assert.Equal(t, "false", q.Get("include_adult"))
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "en-US", q.Get("language"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page":1,"results":[{"id":27205,"title":"Inception","vote_average":8.4}],"total_pages":1,"total_results":1}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	resp, err := c.SearchMovies(context.Background(), "Inception", 2010)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 27205, resp.Results[0].ID)
	assert.Equal(t, "Inception", resp.Results[0].Title)
}

func TestSearchTV_YearParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/tv", r.URL.Path)
		assert.Equal(t, "2008", r.URL.Query().Get("first_air_date_year"))
		w.Write([]byte(`{"page":1,"results":[],"total_pages":1,"total_results":0}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SearchTV(context.Background(), "Breaking Bad", 2008)
	require.NoError(t, err)
}

func TestGetPerson_AppendsCombinedCredits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/person/6384", r.URL.Path)
		assert.Equal(t, "combined_credits", r.URL.Query().Get("append_to_response"))
		w.Write([]byte(`{"id":6384,"name":"Keanu Reeves","combined_credits":{"cast":[{"id":603,"media_type":"movie","title":"The Matrix","character":"Neo"}],"crew":[]}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	details, err := c.GetPerson(context.Background(), 6384)
	require.NoError(t, err)
	assert.Equal(t, "Keanu Reeves", details.Name)
	require.NotNil(t, details.Credits)
	require.Len(t, details.Credits.Cast, 1)
	assert.Equal(t, "Neo", details.Credits.Cast[0].Character)
}

func TestGetTVDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/1399", r.URL.Path)
		w.Write([]byte(`{"id":1399,"name":"Game of Thrones","number_of_episodes":73,"number_of_seasons":8}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	details, err := c.GetTVDetails(context.Background(), 1399)
	require.NoError(t, err)
	assert.Equal(t, 73, details.NumberOfEpisodes)
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.GetPerson(context.Background(), 99999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
}

func TestClient_UpstreamErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status_code":9,"status_message":"Service offline."}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SearchMovies(context.Background(), "Inception", 0)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Contains(t, statusErr.Error(), "503")
}

func TestClient_RetriesRateLimit(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"status_code":25,"status_message":"Your request count is over the allowed limit."}`))
			return
		}
		w.Write([]byte(`{"page":1,"results":[],"total_pages":1,"total_results":0}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SearchMovies(context.Background(), "Inception", 0)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestClient_NoRetryOnServerError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status_code":11,"status_message":"Internal error."}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SearchMovies(context.Background(), "Inception", 0)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetImageURL(t *testing.T) {
	c := newTestClient("http://example.test")

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/inc.jpg", c.GetImageURL("/inc.jpg", "w500"))
	assert.Equal(t, "", c.GetImageURL("", "w500"))
}

package metadata

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

// fakeProvider implements Provider for tests.
type fakeProvider struct {
	configured bool

	movies   *tmdb.SearchMoviesResponse
	tv       *tmdb.SearchTVResponse
	people   *tmdb.SearchPeopleResponse
	keywords *tmdb.SearchKeywordsResponse
	person   *tmdb.PersonDetails

	moviesErr   error
	tvErr       error
	peopleErr   error
	keywordsErr error
	personErr   error
	tvDetailErr error

	tvDetails map[int]*tmdb.TVDetails

	calls atomic.Int32

	mu             sync.Mutex
	discoverMovie  url.Values
	discoverTV     url.Values
	tvDetailCalls  []int
	searchedQuery  string
	searchedYear   int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		configured: true,
		movies:     &tmdb.SearchMoviesResponse{Page: 1, TotalPages: 1},
		tv:         &tmdb.SearchTVResponse{Page: 1, TotalPages: 1},
		people:     &tmdb.SearchPeopleResponse{Page: 1, TotalPages: 1},
		keywords:   &tmdb.SearchKeywordsResponse{Page: 1},
		tvDetails:  make(map[int]*tmdb.TVDetails),
	}
}

func (f *fakeProvider) IsConfigured() bool { return f.configured }

func (f *fakeProvider) SearchMovies(_ context.Context, query string, year int) (*tmdb.SearchMoviesResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.searchedQuery = query
	f.searchedYear = year
	f.mu.Unlock()
	if f.moviesErr != nil {
		return nil, f.moviesErr
	}
	return f.movies, nil
}

func (f *fakeProvider) SearchTV(_ context.Context, _ string, _ int) (*tmdb.SearchTVResponse, error) {
	f.calls.Add(1)
	if f.tvErr != nil {
		return nil, f.tvErr
	}
	return f.tv, nil
}

func (f *fakeProvider) SearchPeople(_ context.Context, _ string) (*tmdb.SearchPeopleResponse, error) {
	f.calls.Add(1)
	if f.peopleErr != nil {
		return nil, f.peopleErr
	}
	return f.people, nil
}

func (f *fakeProvider) SearchKeywords(_ context.Context, _ string) (*tmdb.SearchKeywordsResponse, error) {
	f.calls.Add(1)
	if f.keywordsErr != nil {
		return nil, f.keywordsErr
	}
	return f.keywords, nil
}

func (f *fakeProvider) DiscoverMovies(_ context.Context, params url.Values) (*tmdb.SearchMoviesResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.discoverMovie = params
	f.mu.Unlock()
	if f.moviesErr != nil {
		return nil, f.moviesErr
	}
	return f.movies, nil
}

func (f *fakeProvider) DiscoverTV(_ context.Context, params url.Values) (*tmdb.SearchTVResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.discoverTV = params
	f.mu.Unlock()
	if f.tvErr != nil {
		return nil, f.tvErr
	}
	return f.tv, nil
}

func (f *fakeProvider) GetTVDetails(_ context.Context, id int) (*tmdb.TVDetails, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.tvDetailCalls = append(f.tvDetailCalls, id)
	f.mu.Unlock()
	if f.tvDetailErr != nil {
		return nil, f.tvDetailErr
	}
	if details, ok := f.tvDetails[id]; ok {
		return details, nil
	}
	return nil, tmdb.ErrNotFound
}

func (f *fakeProvider) GetPerson(_ context.Context, _ int) (*tmdb.PersonDetails, error) {
	f.calls.Add(1)
	if f.personErr != nil {
		return nil, f.personErr
	}
	if f.person == nil {
		return nil, tmdb.ErrNotFound
	}
	return f.person, nil
}

func (f *fakeProvider) GetImageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("https://img.test/%s%s", size, path)
}

func strptr(s string) *string { return &s }

package metadata

import (
	"context"
	"net/url"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

// Provider is the interface the service needs from the TMDB client.
// Satisfied by *tmdb.Client; tests substitute fakes.
type Provider interface {
	IsConfigured() bool
	SearchMovies(ctx context.Context, query string, year int) (*tmdb.SearchMoviesResponse, error)
	SearchTV(ctx context.Context, query string, year int) (*tmdb.SearchTVResponse, error)
	SearchPeople(ctx context.Context, query string) (*tmdb.SearchPeopleResponse, error)
	SearchKeywords(ctx context.Context, keyword string) (*tmdb.SearchKeywordsResponse, error)
	DiscoverMovies(ctx context.Context, params url.Values) (*tmdb.SearchMoviesResponse, error)
	DiscoverTV(ctx context.Context, params url.Values) (*tmdb.SearchTVResponse, error)
	GetTVDetails(ctx context.Context, id int) (*tmdb.TVDetails, error)
	GetPerson(ctx context.Context, id int) (*tmdb.PersonDetails, error)
	GetImageURL(path, size string) string
}

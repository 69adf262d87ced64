// Package metadata implements the discovery, search, and person-detail
// core: provider query building, result normalization, search aggregation
// and ranking, and the ephemeral lookup cache.
package metadata

import "errors"

var (
	// ErrNotConfigured is returned when the provider API key is missing.
	ErrNotConfigured = errors.New("metadata provider is not configured")
	// ErrInvalidID is returned for structurally invalid path identifiers.
	ErrInvalidID = errors.New("invalid id")
)

// MediaType identifies the media kind of an item.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// sourceTag marks which provider produced an item.
const sourceTag = "tmdb"

// Item is the normalized display record returned by discover and search.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Poster    string    `json:"poster"`
	Year      string    `json:"year"`
	Score     string    `json:"score"`
	Desc      string    `json:"desc"`
	MediaType MediaType `json:"media_type"`
	Source    string    `json:"source"`
	// Episodes is set for TV items only; defaults to 1 and is overwritten
	// by detail hydration when a positive count is known.
	Episodes int `json:"episodes,omitempty"`
}

// PersonSummary is one person entry in search results.
type PersonSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Profile    string  `json:"profile"`
	Department string  `json:"department,omitempty"`
	KnownFor   string  `json:"known_for,omitempty"`
	Popularity float64 `json:"popularity"`
}

// PersonCredit is one role of a person in one media item.
type PersonCredit struct {
	ID          string    `json:"id"`
	MediaType   MediaType `json:"media_type"`
	Title       string    `json:"title"`
	Poster      string    `json:"poster"`
	Year        string    `json:"year"`
	ReleaseDate string    `json:"release_date"`
	Role        string    `json:"role"`
	Department  string    `json:"department"`
	Score       string    `json:"score"`
	Desc        string    `json:"desc"`
	Popularity  float64   `json:"popularity"`
}

// PersonProfile is the person-detail payload.
type PersonProfile struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Avatar       string         `json:"avatar"`
	Biography    string         `json:"biography"`
	Birthday     string         `json:"birthday"`
	Deathday     string         `json:"deathday,omitempty"`
	PlaceOfBirth string         `json:"place_of_birth"`
	Department   string         `json:"department"`
	AlsoKnownAs  []string       `json:"also_known_as,omitempty"`
	Popularity   float64        `json:"popularity"`
	Credits      []PersonCredit `json:"credits"`
}

// DiscoverResponse is the discover operation payload. Failure responses keep
// the same shape with an empty list and a populated Error field.
type DiscoverResponse struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	List         []Item `json:"list"`
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
	Error        string `json:"error,omitempty"`
}

// SearchResponse is the search operation payload.
type SearchResponse struct {
	Results []Item          `json:"results"`
	People  []PersonSummary `json:"people"`
}

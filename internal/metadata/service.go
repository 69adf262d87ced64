package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/reelstack/reelstack/internal/config"
	"github.com/reelstack/reelstack/internal/metadata/tmdb"
	"github.com/reelstack/reelstack/internal/metrics"
)

// Service orchestrates discover, search, and person-detail lookups against
// the provider.
type Service struct {
	provider Provider
	episodes *LookupCache
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewService creates a service with a real TMDB client.
func NewService(cfg *config.Config, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if m == nil {
		m = metrics.Nop()
	}
	return &Service{
		provider: tmdb.NewClient(cfg.TMDB, m, logger),
		episodes: NewLookupCache(time.Duration(cfg.Cache.EpisodeTTLHours)*time.Hour, nil),
		metrics:  m,
		logger:   logger.With().Str("component", "metadata").Logger(),
	}
}

// NewServiceWithProvider creates a service with a custom provider and clock
// (for testing).
func NewServiceWithProvider(provider Provider, episodeTTL time.Duration, now func() time.Time, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		episodes: NewLookupCache(episodeTTL, now),
		metrics:  metrics.Nop(),
		logger:   logger.With().Str("component", "metadata").Logger(),
	}
}

// IsConfigured reports whether the provider has credentials.
func (s *Service) IsConfigured() bool {
	return s.provider.IsConfigured()
}

// ClearLookupCache drops all cached episode counts.
func (s *Service) ClearLookupCache() {
	s.episodes.Clear()
}

// Discover runs a discover query for the given media kind with the
// caller-supplied filter set. Invalid filter values degrade silently to
// defaults; only configuration and upstream faults are returned as errors.
func (s *Service) Discover(ctx context.Context, kind MediaType, raw url.Values) (*DiscoverResponse, error) {
	if !s.provider.IsConfigured() {
		return nil, ErrNotConfigured
	}

	params := buildDiscoverParams(kind, raw)
	params.Set("page", strconv.Itoa(sanitizePage(raw.Get("page"))))

	// Best-effort keyword enrichment: a failed resolution never fails the
	// discover request.
	if keyword := strings.TrimSpace(raw.Get("keyword")); keyword != "" {
		if ids := s.resolveKeywordIDs(ctx, keyword); ids != "" {
			params.Set("with_keywords", ids)
		}
	}

	if kind == MediaTypeTV {
		resp, err := s.provider.DiscoverTV(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("tv discover failed: %w", err)
		}
		result := &DiscoverResponse{
			Code:         200,
			Message:      "ok",
			List:         mapTVItems(resp.Results, s.provider.GetImageURL),
			Page:         resp.Page,
			TotalPages:   resp.TotalPages,
			TotalResults: resp.TotalResults,
		}
		s.logger.Debug().Str("kind", "tv").Int("results", len(result.List)).Msg("Discover completed")
		return result, nil
	}

	resp, err := s.provider.DiscoverMovies(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("movie discover failed: %w", err)
	}
	result := &DiscoverResponse{
		Code:         200,
		Message:      "ok",
		List:         mapMovieItems(resp.Results, s.provider.GetImageURL),
		Page:         resp.Page,
		TotalPages:   resp.TotalPages,
		TotalResults: resp.TotalResults,
	}
	s.logger.Debug().Str("kind", "movie").Int("results", len(result.List)).Msg("Discover completed")
	return result, nil
}

// resolveKeywordIDs translates a free-text keyword into up to five provider
// keyword ids joined with commas. Any failure yields "".
func (s *Service) resolveKeywordIDs(ctx context.Context, keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}

	resp, err := s.provider.SearchKeywords(ctx, keyword)
	if err != nil {
		s.logger.Warn().Err(err).Str("keyword", keyword).Msg("Keyword resolution failed, continuing without")
		return ""
	}

	ids := make([]string, 0, 5)
	for _, kw := range resp.Results {
		if kw.ID <= 0 {
			continue
		}
		ids = append(ids, strconv.Itoa(kw.ID))
		if len(ids) == 5 {
			break
		}
	}
	return strings.Join(ids, ",")
}

// GetPerson fetches a person profile and their deduplicated credit list.
func (s *Service) GetPerson(ctx context.Context, id int) (*PersonProfile, error) {
	if !s.provider.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if id <= 0 {
		return nil, ErrInvalidID
	}

	details, err := s.provider.GetPerson(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get person failed: %w", err)
	}

	name := strings.TrimSpace(details.Name)
	if name == "" {
		return nil, tmdb.ErrNotFound
	}

	avatar := ""
	if details.ProfilePath != nil && *details.ProfilePath != "" {
		avatar = s.provider.GetImageURL(*details.ProfilePath, profileSize)
	}

	profile := &PersonProfile{
		ID:           strconv.Itoa(details.ID),
		Name:         name,
		Avatar:       avatar,
		Biography:    details.Biography,
		Birthday:     details.Birthday,
		Deathday:     details.Deathday,
		PlaceOfBirth: details.PlaceOfBirth,
		Department:   details.Department,
		AlsoKnownAs:  details.AlsoKnownAs,
		Popularity:   details.Popularity,
		Credits:      mapCombinedCredits(details.Credits, s.provider.GetImageURL),
	}

	s.logger.Info().
		Int("id", id).
		Str("name", profile.Name).
		Int("credits", len(profile.Credits)).
		Msg("Got person details")

	return profile, nil
}

// ProviderDetailURL returns the provider's canonical detail page for an id.
func ProviderDetailURL(kind MediaType, id int) string {
	return fmt.Sprintf("https://www.themoviedb.org/%s/%d", kind, id)
}

// ProviderSearchURL returns the provider's search page pre-filled with the
// title, and year when present.
func ProviderSearchURL(title, year string) string {
	q := url.Values{}
	q.Set("query", title)
	if year != "" {
		q.Set("year", year)
	}
	return "https://www.themoviedb.org/search?" + q.Encode()
}

// ResolveRedirect finds the provider's canonical detail URL for an exact
// title match, falling back to the provider's search page on any resolution
// failure. It never returns an error: redirecting is always possible.
func (s *Service) ResolveRedirect(ctx context.Context, title string, kind MediaType, year string) string {
	title = strings.TrimSpace(title)
	fallback := ProviderSearchURL(title, year)
	if title == "" || !s.provider.IsConfigured() {
		return fallback
	}

	yearNum := 0
	if y, ok := sanitizeYear(year); ok {
		yearNum, _ = strconv.Atoi(y)
	}

	want := normalizeTitle(title)

	if kind == MediaTypeTV {
		resp, err := s.provider.SearchTV(ctx, title, yearNum)
		if err != nil {
			s.logger.Warn().Err(err).Str("title", title).Msg("Redirect lookup failed, using search page")
			return fallback
		}
		for i := range resp.Results {
			if resp.Results[i].ID > 0 && normalizeTitle(resp.Results[i].Name) == want {
				return ProviderDetailURL(MediaTypeTV, resp.Results[i].ID)
			}
		}
		return fallback
	}

	resp, err := s.provider.SearchMovies(ctx, title, yearNum)
	if err != nil {
		s.logger.Warn().Err(err).Str("title", title).Msg("Redirect lookup failed, using search page")
		return fallback
	}
	for i := range resp.Results {
		if resp.Results[i].ID > 0 && normalizeTitle(resp.Results[i].Title) == want {
			return ProviderDetailURL(MediaTypeMovie, resp.Results[i].ID)
		}
	}
	return fallback
}

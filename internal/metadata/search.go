package metadata

import (
	"context"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

// talkShowGenreID is the provider's talk-show genre; TV candidates in this
// category are excluded before scoring.
const talkShowGenreID = 10767

// hydrationWorkers bounds concurrent episode-count lookups.
const hydrationWorkers = 8

// candidate is an in-flight, unranked search result.
type candidate struct {
	item       Item
	idNum      int
	matchScore int
	popularity float64
}

// scoreMatch ranks textual relevance between a candidate title and the
// query: exact match after whitespace normalization = 4, prefix = 3,
// substring = 2, otherwise 0.
func scoreMatch(title, query string) int {
	t := normalizeTitle(title)
	q := normalizeTitle(query)
	switch {
	case q == "" || t == "":
		return 0
	case t == q:
		return 4
	case strings.HasPrefix(t, q):
		return 3
	case strings.Contains(t, q):
		return 2
	default:
		return 0
	}
}

// searchBranches carries the three independent fan-out results. Each branch
// fails on its own; a nil slice stands in for a failed branch.
type searchBranches struct {
	movies []tmdb.MovieResult
	tv     []tmdb.TVResult
	people []tmdb.PersonResult
}

// Search fans out movie, TV, and person searches in parallel, ranks the
// merged movie/TV candidates, hydrates TV episode counts, and filters
// person results. An empty query short-circuits without network calls.
func (s *Service) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResponse{Results: []Item{}, People: []PersonSummary{}}, nil
	}
	if !s.provider.IsConfigured() {
		return nil, ErrNotConfigured
	}

	branches := s.dispatchSearches(ctx, query)

	candidates := s.collectCandidates(branches, query)
	rankCandidates(candidates)
	s.hydrateEpisodeCounts(ctx, candidates)

	results := make([]Item, len(candidates))
	for i := range candidates {
		results[i] = candidates[i].item
	}

	people := mapPeople(branches.people, s.provider.GetImageURL)

	s.logger.Info().
		Str("query", query).
		Int("results", len(results)).
		Int("people", len(people)).
		Msg("Search completed")

	return &SearchResponse{Results: results, People: people}, nil
}

// dispatchSearches runs the three provider searches in parallel. A failed
// branch logs and degrades to an empty list so it never poisons the others.
func (s *Service) dispatchSearches(ctx context.Context, query string) *searchBranches {
	branches := &searchBranches{}

	p := pool.New().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		resp, err := s.provider.SearchMovies(ctx, query, 0)
		if err != nil {
			s.logger.Warn().Err(err).Str("query", query).Msg("Movie search branch failed")
			return nil
		}
		branches.movies = resp.Results
		return nil
	})

	p.Go(func(ctx context.Context) error {
		resp, err := s.provider.SearchTV(ctx, query, 0)
		if err != nil {
			s.logger.Warn().Err(err).Str("query", query).Msg("TV search branch failed")
			return nil
		}
		branches.tv = resp.Results
		return nil
	})

	p.Go(func(ctx context.Context) error {
		resp, err := s.provider.SearchPeople(ctx, query)
		if err != nil {
			s.logger.Warn().Err(err).Str("query", query).Msg("Person search branch failed")
			return nil
		}
		branches.people = resp.Results
		return nil
	})

	// Branch errors are swallowed above; Wait only observes ctx cancellation.
	_ = p.Wait()

	return branches
}

// collectCandidates maps raw movie and TV records into scored candidates,
// excluding talk shows before scoring.
func (s *Service) collectCandidates(branches *searchBranches, query string) []candidate {
	img := s.provider.GetImageURL
	candidates := make([]candidate, 0, len(branches.movies)+len(branches.tv))

	for i := range branches.movies {
		raw := &branches.movies[i]
		item, ok := mapMovieItem(raw, img)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			item:       item,
			idNum:      raw.ID,
			matchScore: scoreMatch(raw.Title, query),
			popularity: raw.Popularity,
		})
	}

	for i := range branches.tv {
		raw := &branches.tv[i]
		if hasGenre(raw.GenreIDs, talkShowGenreID) {
			continue
		}
		item, ok := mapTVItem(raw, img)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			item:       item,
			idNum:      raw.ID,
			matchScore: scoreMatch(raw.Name, query),
			popularity: raw.Popularity,
		})
	}

	return candidates
}

func hasGenre(genres []int, id int) bool {
	for _, g := range genres {
		if g == id {
			return true
		}
	}
	return false
}

// rankCandidates sorts by match score descending, popularity descending,
// then media id ascending as the stable final tie-break. Zero-score
// candidates stay in the list and rank last.
func rankCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].matchScore != candidates[j].matchScore {
			return candidates[i].matchScore > candidates[j].matchScore
		}
		if candidates[i].popularity != candidates[j].popularity {
			return candidates[i].popularity > candidates[j].popularity
		}
		return candidates[i].idNum < candidates[j].idNum
	})
}

// hydrateEpisodeCounts fills in episode counts for TV candidates from the
// lookup cache or the provider's detail endpoint, concurrently across
// candidates. A failed or non-positive lookup leaves the default unchanged.
func (s *Service) hydrateEpisodeCounts(ctx context.Context, candidates []candidate) {
	p := pool.New().WithMaxGoroutines(hydrationWorkers)

	for i := range candidates {
		if candidates[i].item.MediaType != MediaTypeTV {
			continue
		}
		c := &candidates[i]
		p.Go(func() {
			if count, ok := s.episodes.Get(c.idNum); ok {
				s.metrics.LookupCacheHits.Inc()
				c.item.Episodes = count
				return
			}
			s.metrics.LookupCacheMiss.Inc()

			details, err := s.provider.GetTVDetails(ctx, c.idNum)
			if err != nil {
				s.logger.Debug().Err(err).Int("id", c.idNum).Msg("Episode count hydration failed")
				return
			}
			if details.NumberOfEpisodes > 0 {
				c.item.Episodes = details.NumberOfEpisodes
				s.episodes.Set(c.idNum, details.NumberOfEpisodes)
			}
		})
	}

	p.Wait()
}

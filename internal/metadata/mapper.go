package metadata

import (
	"sort"
	"strconv"
	"strings"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

// imageURLFunc builds a full image URL from a provider-relative path.
type imageURLFunc func(path, size string) string

const (
	posterSize  = "w500"
	profileSize = "w185"
)

// maxPeopleResults caps person entries in search responses.
const maxPeopleResults = 24

// mapMovieItem converts one raw movie record, discarding records that lack a
// positive id, a poster path, or a non-empty title.
func mapMovieItem(m *tmdb.MovieResult, img imageURLFunc) (Item, bool) {
	title := strings.TrimSpace(m.Title)
	if m.ID <= 0 || m.PosterPath == nil || *m.PosterPath == "" || title == "" {
		return Item{}, false
	}

	year := yearOf(m.ReleaseDate)
	if year == "" {
		year = "unknown"
	}

	return Item{
		ID:        strconv.Itoa(m.ID),
		Title:     title,
		Poster:    img(*m.PosterPath, posterSize),
		Year:      year,
		Score:     formatScore(m.VoteAverage),
		Desc:      m.Overview,
		MediaType: MediaTypeMovie,
		Source:    sourceTag,
	}, true
}

// mapTVItem converts one raw TV record with the same discard rules as movies.
// Episode count defaults to 1 until hydration learns better.
func mapTVItem(t *tmdb.TVResult, img imageURLFunc) (Item, bool) {
	title := strings.TrimSpace(t.Name)
	if t.ID <= 0 || t.PosterPath == nil || *t.PosterPath == "" || title == "" {
		return Item{}, false
	}

	year := yearOf(t.FirstAirDate)
	if year == "" {
		year = "unknown"
	}

	return Item{
		ID:        strconv.Itoa(t.ID),
		Title:     title,
		Poster:    img(*t.PosterPath, posterSize),
		Year:      year,
		Score:     formatScore(t.VoteAverage),
		Desc:      t.Overview,
		MediaType: MediaTypeTV,
		Source:    sourceTag,
		Episodes:  1,
	}, true
}

// mapMovieItems converts a raw movie list, dropping malformed records.
func mapMovieItems(results []tmdb.MovieResult, img imageURLFunc) []Item {
	items := make([]Item, 0, len(results))
	for i := range results {
		if item, ok := mapMovieItem(&results[i], img); ok {
			items = append(items, item)
		}
	}
	return items
}

// mapTVItems converts a raw TV list, dropping malformed records.
func mapTVItems(results []tmdb.TVResult, img imageURLFunc) []Item {
	items := make([]Item, 0, len(results))
	for i := range results {
		if item, ok := mapTVItem(&results[i], img); ok {
			items = append(items, item)
		}
	}
	return items
}

// mapPeople converts raw person records into summaries: a person must have an
// id and name, and either a known-for title or a profile image. The result is
// sorted by popularity descending and capped.
func mapPeople(results []tmdb.PersonResult, img imageURLFunc) []PersonSummary {
	people := make([]PersonSummary, 0, len(results))
	for i := range results {
		p := &results[i]
		name := strings.TrimSpace(p.Name)
		if p.ID <= 0 || name == "" {
			continue
		}

		knownFor := knownForTitle(p.KnownFor)
		profile := ""
		if p.ProfilePath != nil && *p.ProfilePath != "" {
			profile = img(*p.ProfilePath, profileSize)
		}
		if knownFor == "" && profile == "" {
			continue
		}

		people = append(people, PersonSummary{
			ID:         strconv.Itoa(p.ID),
			Name:       name,
			Profile:    profile,
			Department: p.Department,
			KnownFor:   knownFor,
			Popularity: p.Popularity,
		})
	}

	sort.SliceStable(people, func(i, j int) bool {
		if people[i].Popularity != people[j].Popularity {
			return people[i].Popularity > people[j].Popularity
		}
		return people[i].ID < people[j].ID
	})

	if len(people) > maxPeopleResults {
		people = people[:maxPeopleResults]
	}
	return people
}

// knownForTitle returns the first non-empty title from a known-for list.
func knownForTitle(entries []tmdb.KnownForEntry) string {
	for _, e := range entries {
		if e.Title != "" {
			return e.Title
		}
		if e.Name != "" {
			return e.Name
		}
	}
	return ""
}

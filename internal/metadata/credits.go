package metadata

import (
	"sort"
	"strconv"
	"strings"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

// creditKey is the dedup identity: media kind, media id, and the normalized
// lowercased role ("-" when the role is empty).
func creditKey(c *PersonCredit) string {
	role := normalizeTitle(c.Role)
	if role == "" {
		role = "-"
	}
	return string(c.MediaType) + "|" + c.ID + "|" + role
}

// mergeCredits deduplicates credits by identity key. The survivor for a key
// is chosen by strictly greater popularity, then by strictly more recent
// release date on ties. The flattened result is ordered by release date
// descending, popularity descending, then media id ascending. Merging is
// idempotent: feeding the output back in yields the same result.
func mergeCredits(credits []PersonCredit) []PersonCredit {
	byKey := make(map[string]PersonCredit, len(credits))
	order := make([]string, 0, len(credits))

	for _, c := range credits {
		key := creditKey(&c)
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = c
			order = append(order, key)
			continue
		}
		if c.Popularity > existing.Popularity {
			byKey[key] = c
		} else if c.Popularity == existing.Popularity && c.ReleaseDate > existing.ReleaseDate {
			byKey[key] = c
		}
	}

	merged := make([]PersonCredit, 0, len(byKey))
	for _, key := range order {
		merged = append(merged, byKey[key])
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].ReleaseDate != merged[j].ReleaseDate {
			return merged[i].ReleaseDate > merged[j].ReleaseDate
		}
		if merged[i].Popularity != merged[j].Popularity {
			return merged[i].Popularity > merged[j].Popularity
		}
		return creditIDLess(merged[i].ID, merged[j].ID)
	})

	return merged
}

// creditIDLess orders numeric id strings numerically.
func creditIDLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}

// mapCastCredit converts one raw acting credit; records without a positive
// id, a recognized media kind, or a title are discarded.
func mapCastCredit(c *tmdb.CastCredit, img imageURLFunc) (PersonCredit, bool) {
	kind, title, date, ok := creditCommon(c.MediaType, c.Title, c.Name, c.ReleaseDate, c.FirstAirDate)
	if c.ID <= 0 || !ok {
		return PersonCredit{}, false
	}

	poster := ""
	if c.PosterPath != nil && *c.PosterPath != "" {
		poster = img(*c.PosterPath, posterSize)
	}

	return PersonCredit{
		ID:          strconv.Itoa(c.ID),
		MediaType:   kind,
		Title:       title,
		Poster:      poster,
		Year:        yearOf(date),
		ReleaseDate: date,
		Role:        strings.TrimSpace(c.Character),
		Department:  "Acting",
		Score:       formatScore(c.VoteAverage),
		Desc:        c.Overview,
		Popularity:  c.Popularity,
	}, true
}

// mapCrewCredit converts one raw crew credit with the same discard rules.
func mapCrewCredit(c *tmdb.CrewCredit, img imageURLFunc) (PersonCredit, bool) {
	kind, title, date, ok := creditCommon(c.MediaType, c.Title, c.Name, c.ReleaseDate, c.FirstAirDate)
	if c.ID <= 0 || !ok {
		return PersonCredit{}, false
	}

	poster := ""
	if c.PosterPath != nil && *c.PosterPath != "" {
		poster = img(*c.PosterPath, posterSize)
	}

	return PersonCredit{
		ID:          strconv.Itoa(c.ID),
		MediaType:   kind,
		Title:       title,
		Poster:      poster,
		Year:        yearOf(date),
		ReleaseDate: date,
		Role:        strings.TrimSpace(c.Job),
		Department:  c.Department,
		Score:       formatScore(c.VoteAverage),
		Desc:        c.Overview,
		Popularity:  c.Popularity,
	}, true
}

// creditCommon resolves the media kind, display title, and release date for
// a combined-credits entry.
func creditCommon(mediaType, title, name, releaseDate, firstAirDate string) (MediaType, string, string, bool) {
	switch mediaType {
	case "movie":
		title = strings.TrimSpace(title)
		if title == "" {
			return "", "", "", false
		}
		return MediaTypeMovie, title, releaseDate, true
	case "tv":
		name = strings.TrimSpace(name)
		if name == "" {
			return "", "", "", false
		}
		return MediaTypeTV, name, firstAirDate, true
	default:
		return "", "", "", false
	}
}

// mapCombinedCredits converts and merges a person's full credit lists.
func mapCombinedCredits(credits *tmdb.CombinedCredits, img imageURLFunc) []PersonCredit {
	if credits == nil {
		return []PersonCredit{}
	}

	mapped := make([]PersonCredit, 0, len(credits.Cast)+len(credits.Crew))
	for i := range credits.Cast {
		if c, ok := mapCastCredit(&credits.Cast[i], img); ok {
			mapped = append(mapped, c)
		}
	}
	for i := range credits.Crew {
		if c, ok := mapCrewCredit(&credits.Crew[i], img); ok {
			mapped = append(mapped, c)
		}
	}

	return mergeCredits(mapped)
}

package metadata

import (
	"net/url"
)

const defaultSort = "popularity.desc"

// Per-media-kind sort allow-lists. Anything else, including empty, falls
// back to popularity.desc.
var (
	movieSortKeys = map[string]bool{
		"popularity.desc":           true,
		"vote_average.desc":         true,
		"vote_count.desc":           true,
		"primary_release_date.desc": true,
		"revenue.desc":              true,
	}
	tvSortKeys = map[string]bool{
		"popularity.desc":     true,
		"vote_average.desc":   true,
		"vote_count.desc":     true,
		"first_air_date.desc": true,
	}
)

// sanitizeSort validates a sort key against the allow-list for the media kind.
func sanitizeSort(kind MediaType, raw string) string {
	allowed := movieSortKeys
	if kind == MediaTypeTV {
		allowed = tvSortKeys
	}
	if allowed[raw] {
		return raw
	}
	return defaultSort
}

// buildDiscoverParams translates caller-supplied filter parameters into a
// validated provider query for the given media kind. Invalid values degrade
// to defaults or are omitted; a parameter is never emitted empty.
func buildDiscoverParams(kind MediaType, raw url.Values) url.Values {
	params := url.Values{}

	params.Set("sort_by", sanitizeSort(kind, raw.Get("sort_by")))
	params.Set("include_adult", "false")

	if ids := sanitizeIDList(raw.Get("with_genres")); ids != "" {
		params.Set("with_genres", ids)
	}
	if ids := sanitizeIDList(raw.Get("with_companies")); ids != "" {
		params.Set("with_companies", ids)
	}

	switch kind {
	case MediaTypeTV:
		if ids := sanitizeIDList(raw.Get("with_networks")); ids != "" {
			params.Set("with_networks", ids)
		}
		if date, ok := sanitizeDate(raw.Get("date_gte")); ok {
			params.Set("first_air_date.gte", date)
		}
		if date, ok := sanitizeDate(raw.Get("date_lte")); ok {
			params.Set("first_air_date.lte", date)
		}
		if year, ok := sanitizeYear(raw.Get("year")); ok {
			params.Set("first_air_date_year", year)
		}
	default:
		if ids := sanitizeIDList(raw.Get("with_people")); ids != "" {
			params.Set("with_people", ids)
		}
		if date, ok := sanitizeDate(raw.Get("date_gte")); ok {
			params.Set("primary_release_date.gte", date)
		}
		if date, ok := sanitizeDate(raw.Get("date_lte")); ok {
			params.Set("primary_release_date.lte", date)
		}
		if year, ok := sanitizeYear(raw.Get("year")); ok {
			params.Set("primary_release_year", year)
		}
	}

	if v, ok := sanitizeNonNegative(raw.Get("vote_average_gte")); ok {
		params.Set("vote_average.gte", v)
	}
	if v, ok := sanitizeNonNegative(raw.Get("vote_average_lte")); ok {
		params.Set("vote_average.lte", v)
	}
	if v, ok := sanitizeNonNegative(raw.Get("vote_count_gte")); ok {
		params.Set("vote_count.gte", v)
	}
	if v, ok := sanitizeNonNegative(raw.Get("runtime_gte")); ok {
		params.Set("with_runtime.gte", v)
	}
	if v, ok := sanitizeNonNegative(raw.Get("runtime_lte")); ok {
		params.Set("with_runtime.lte", v)
	}

	if langs := sanitizeIdentList(raw.Get("with_original_language")); langs != "" {
		params.Set("with_original_language", langs)
	}

	return params
}

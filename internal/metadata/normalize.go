package metadata

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	multipleSpaceRegex = regexp.MustCompile(`\s+`)
	yearRegex          = regexp.MustCompile(`^\d{4}$`)
	identRegex         = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	dateRegex          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// normalizeTitle collapses whitespace and case-folds a title for comparison.
func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(multipleSpaceRegex.ReplaceAllString(s, " ")))
}

// yearOf extracts a strict 4-digit year from the front of a date string.
// Returns "" when the date carries no usable year.
func yearOf(date string) string {
	if len(date) < 4 {
		return ""
	}
	year := date[:4]
	if !yearRegex.MatchString(year) {
		return ""
	}
	return year
}

// formatScore renders a vote average to one decimal place, blank when the
// value is not a finite positive number.
func formatScore(score float64) string {
	if math.IsNaN(score) || math.IsInf(score, 0) || score <= 0 {
		return ""
	}
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// splitListTokens splits a caller-supplied list on '|' or ',' and trims
// each token.
func splitListTokens(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ','
	})
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// sanitizeIDList validates a numeric id list: positive integers only,
// deduplicated, rejoined with commas. All-invalid input yields "".
func sanitizeIDList(raw string) string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range splitListTokens(raw) {
		n, err := strconv.Atoi(tok)
		if err != nil || n <= 0 {
			continue
		}
		id := strconv.Itoa(n)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return strings.Join(out, ",")
}

// sanitizeIdentList validates a free-text token list against a conservative
// identifier pattern, deduplicated, rejoined with commas.
func sanitizeIdentList(raw string) string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range splitListTokens(raw) {
		if !identRegex.MatchString(tok) {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return strings.Join(out, ",")
}

// sanitizePage parses a page number, defaulting to 1 and clamping to the
// provider's maximum of 500.
func sanitizePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	if page > 500 {
		return 500
	}
	return page
}

// sanitizeNonNegative parses a non-negative finite number, returning its
// canonical rendering. Invalid or negative input yields ok=false.
func sanitizeNonNegative(raw string) (string, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return "", false
	}
	return strconv.FormatFloat(v, 'f', -1, 64), true
}

// sanitizeDate accepts only YYYY-MM-DD values.
func sanitizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !dateRegex.MatchString(raw) {
		return "", false
	}
	return raw, true
}

// sanitizeYear accepts only strict 4-digit years.
func sanitizeYear(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !yearRegex.MatchString(raw) {
		return "", false
	}
	return raw, true
}

package metadata

import (
	"reflect"
	"testing"

	"github.com/reelstack/reelstack/internal/metadata/tmdb"
)

func testImg(path, size string) string {
	if path == "" {
		return ""
	}
	return "https://img.test/" + size + path
}

func TestMergeCredits_HigherPopularitySurvives(t *testing.T) {
	credits := []PersonCredit{
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Neo", ReleaseDate: "1999-03-30", Popularity: 10},
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "neo", ReleaseDate: "1999-03-30", Popularity: 25},
	}

	merged := mergeCredits(credits)
	if len(merged) != 1 {
		t.Fatalf("got %d credits, want 1", len(merged))
	}
	if merged[0].Popularity != 25 {
		t.Errorf("survivor popularity = %v, want 25", merged[0].Popularity)
	}
}

func TestMergeCredits_TieBrokenByNewerDate(t *testing.T) {
	credits := []PersonCredit{
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Neo", ReleaseDate: "1999-03-30", Popularity: 25},
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Neo", ReleaseDate: "2021-12-01", Popularity: 25},
	}

	merged := mergeCredits(credits)
	if len(merged) != 1 {
		t.Fatalf("got %d credits, want 1", len(merged))
	}
	if merged[0].ReleaseDate != "2021-12-01" {
		t.Errorf("survivor date = %s, want 2021-12-01", merged[0].ReleaseDate)
	}
}

func TestMergeCredits_DistinctRolesKept(t *testing.T) {
	credits := []PersonCredit{
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Neo", ReleaseDate: "1999-03-30", Popularity: 25},
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Director", ReleaseDate: "1999-03-30", Popularity: 25},
		{ID: "603", MediaType: MediaTypeTV, Title: "The Matrix", Role: "Neo", ReleaseDate: "1999-03-30", Popularity: 25},
	}

	merged := mergeCredits(credits)
	if len(merged) != 3 {
		t.Errorf("got %d credits, want 3 (role and media kind split identity)", len(merged))
	}
}

func TestMergeCredits_EmptyRoleCollapses(t *testing.T) {
	credits := []PersonCredit{
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "", ReleaseDate: "1999-03-30", Popularity: 10},
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "  ", ReleaseDate: "1999-03-30", Popularity: 20},
	}

	merged := mergeCredits(credits)
	if len(merged) != 1 {
		t.Fatalf("got %d credits, want 1 (empty roles share identity)", len(merged))
	}
}

func TestMergeCredits_SortOrder(t *testing.T) {
	credits := []PersonCredit{
		{ID: "300", MediaType: MediaTypeMovie, Title: "C", Role: "x", ReleaseDate: "2010-01-01", Popularity: 5},
		{ID: "100", MediaType: MediaTypeMovie, Title: "A", Role: "x", ReleaseDate: "2020-01-01", Popularity: 5},
		{ID: "200", MediaType: MediaTypeMovie, Title: "B", Role: "x", ReleaseDate: "2010-01-01", Popularity: 9},
		{ID: "400", MediaType: MediaTypeMovie, Title: "D", Role: "x", ReleaseDate: "2010-01-01", Popularity: 5},
	}

	merged := mergeCredits(credits)
	got := make([]string, len(merged))
	for i, c := range merged {
		got[i] = c.ID
	}
	// Newest date first, then popularity, then numeric id.
	want := []string{"100", "200", "300", "400"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestMergeCredits_Idempotent(t *testing.T) {
	credits := []PersonCredit{
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Neo", ReleaseDate: "1999-03-30", Popularity: 25},
		{ID: "604", MediaType: MediaTypeMovie, Title: "Reloaded", Role: "Neo", ReleaseDate: "2003-05-15", Popularity: 20},
		{ID: "603", MediaType: MediaTypeMovie, Title: "The Matrix", Role: "Neo", ReleaseDate: "1999-03-30", Popularity: 10},
	}

	once := mergeCredits(credits)
	twice := mergeCredits(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMapCastCredit(t *testing.T) {
	c := &tmdb.CastCredit{
		ID:          603,
		MediaType:   "movie",
		Title:       "The Matrix",
		Character:   "Neo",
		PosterPath:  strptr("/matrix.jpg"),
		ReleaseDate: "1999-03-30",
		VoteAverage: 8.2,
		Popularity:  60,
	}

	credit, ok := mapCastCredit(c, testImg)
	if !ok {
		t.Fatal("expected credit to map")
	}
	if credit.Department != "Acting" {
		t.Errorf("department = %q, want Acting", credit.Department)
	}
	if credit.Role != "Neo" {
		t.Errorf("role = %q, want Neo", credit.Role)
	}
	if credit.Year != "1999" {
		t.Errorf("year = %q, want 1999", credit.Year)
	}
	if credit.Score != "8.2" {
		t.Errorf("score = %q, want 8.2", credit.Score)
	}
}

func TestMapCrewCredit_TVUsesNameAndFirstAirDate(t *testing.T) {
	c := &tmdb.CrewCredit{
		ID:           1396,
		MediaType:    "tv",
		Name:         "Breaking Bad",
		Job:          "Director",
		Department:   "Directing",
		FirstAirDate: "2008-01-20",
	}

	credit, ok := mapCrewCredit(c, testImg)
	if !ok {
		t.Fatal("expected credit to map")
	}
	if credit.MediaType != MediaTypeTV {
		t.Errorf("media type = %q, want tv", credit.MediaType)
	}
	if credit.Title != "Breaking Bad" {
		t.Errorf("title = %q", credit.Title)
	}
	if credit.ReleaseDate != "2008-01-20" {
		t.Errorf("release date = %q, want first air date", credit.ReleaseDate)
	}
}

func TestMapCredits_DiscardRules(t *testing.T) {
	credits := &tmdb.CombinedCredits{
		Cast: []tmdb.CastCredit{
			{ID: 0, MediaType: "movie", Title: "No ID"},
			{ID: 1, MediaType: "movie", Title: "   "},
			{ID: 2, MediaType: "episode", Title: "Wrong Kind"},
			{ID: 3, MediaType: "movie", Title: "Kept"},
		},
	}

	mapped := mapCombinedCredits(credits, testImg)
	if len(mapped) != 1 {
		t.Fatalf("got %d credits, want 1", len(mapped))
	}
	if mapped[0].Title != "Kept" {
		t.Errorf("survivor = %q", mapped[0].Title)
	}
}

func TestMapCombinedCredits_NilCredits(t *testing.T) {
	mapped := mapCombinedCredits(nil, testImg)
	if mapped == nil || len(mapped) != 0 {
		t.Errorf("want empty non-nil slice, got %v", mapped)
	}
}

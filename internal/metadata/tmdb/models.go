package tmdb

// MovieResult represents a raw movie record from search or discover.
type MovieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

// TVResult represents a raw TV record from search or discover.
type TVResult struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

// PersonResult represents a raw person record from person search.
type PersonResult struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	ProfilePath *string         `json:"profile_path"`
	Popularity  float64         `json:"popularity"`
	Department  string          `json:"known_for_department"`
	KnownFor    []KnownForEntry `json:"known_for"`
}

// KnownForEntry is a media item attached to a person search result.
type KnownForEntry struct {
	ID        int    `json:"id"`
	MediaType string `json:"media_type"`
	Title     string `json:"title"`
	Name      string `json:"name"`
}

// KeywordResult is one entry from the keyword search endpoint.
type KeywordResult struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchMoviesResponse is the paginated movie search/discover payload.
type SearchMoviesResponse struct {
	Page         int           `json:"page"`
	Results      []MovieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// SearchTVResponse is the paginated TV search/discover payload.
type SearchTVResponse struct {
	Page         int        `json:"page"`
	Results      []TVResult `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// SearchPeopleResponse is the paginated person search payload.
type SearchPeopleResponse struct {
	Page         int            `json:"page"`
	Results      []PersonResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// SearchKeywordsResponse is the paginated keyword search payload.
type SearchKeywordsResponse struct {
	Page    int             `json:"page"`
	Results []KeywordResult `json:"results"`
}

// TVDetails holds the subset of the TV detail payload used for
// episode-count hydration.
type TVDetails struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	NumberOfEpisodes int    `json:"number_of_episodes"`
	NumberOfSeasons  int    `json:"number_of_seasons"`
}

// CastCredit is one acting credit from combined_credits.
type CastCredit struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Character    string  `json:"character"`
	PosterPath   *string `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
}

// CrewCredit is one crew credit from combined_credits.
type CrewCredit struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Job          string  `json:"job"`
	Department   string  `json:"department"`
	PosterPath   *string `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
	Popularity   float64 `json:"popularity"`
}

// CombinedCredits holds a person's full credit lists.
type CombinedCredits struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

// PersonDetails is the person detail payload with combined credits appended.
type PersonDetails struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Biography    string           `json:"biography"`
	Birthday     string           `json:"birthday"`
	Deathday     string           `json:"deathday"`
	PlaceOfBirth string           `json:"place_of_birth"`
	ProfilePath  *string          `json:"profile_path"`
	Popularity   float64          `json:"popularity"`
	Department   string           `json:"known_for_department"`
	AlsoKnownAs  []string         `json:"also_known_as"`
	Credits      *CombinedCredits `json:"combined_credits"`
}

// ErrorResponse is the provider's error payload.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

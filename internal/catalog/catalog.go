package catalog

import "strconv"

// MediaType identifies which catalog namespace an item lives in
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// Valid reports whether the media type is one the catalog understands
func (m MediaType) Valid() bool {
	return m == MediaTypeMovie || m == MediaTypeTV
}

// Item represents a catalog title as returned by the discovery and
// similar-items endpoints. Movies populate Title/ReleaseDate, TV titles
// populate Name/FirstAirDate; the helpers below normalize the two shapes.
type Item struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	GenreIDs         []int   `json:"genre_ids"`
	Popularity       float64 `json:"popularity"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	OriginalLanguage string  `json:"original_language"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	Overview         string  `json:"overview"`
}

// DisplayTitle returns the movie title or TV name, whichever is set
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// ReleaseYear parses the year out of the release or first-air date.
// Returns 0 when neither date is usable.
func (i Item) ReleaseYear() int {
	date := i.ReleaseDate
	if date == "" {
		date = i.FirstAirDate
	}
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// DiscoverParams holds the filter set for a discovery query.
// WithGenres uses the catalog's operator convention: comma-joined ids are
// ANDed, pipe-joined ids are ORed.
type DiscoverParams struct {
	WithGenres         string
	SortBy             string
	VoteAverageGTE     float64
	VoteCountGTE       int
	PopularityLTE      float64
	WithWatchProviders string
	WatchRegion        string
	Page               int
}

// Sort key constants for discovery queries
const (
	SortPopularityDesc  = "popularity.desc"
	SortVoteAverageDesc = "vote_average.desc"
)

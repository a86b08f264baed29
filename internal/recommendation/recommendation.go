package recommendation

import (
	"context"
	"strconv"

	"github.com/dustin/watchly-backend/internal/catalog"
	"github.com/dustin/watchly-backend/internal/profile"
	"github.com/dustin/watchly-backend/internal/taste"
	"github.com/dustin/watchly-backend/internal/watchlist"
	"github.com/google/uuid"
)

// Source tags where a candidate came from
type Source string

const (
	SourceGenre   Source = "genre"
	SourcePopular Source = "popular"
	SourceSimilar Source = "similar"
)

// Candidate is a catalog item under consideration. Identity is the
// (media type, id) pair; a candidate list must be deduplicated on that
// key before scoring so nothing is counted twice.
type Candidate struct {
	Item            catalog.Item
	MediaType       catalog.MediaType
	Source          Source
	MatchedGenreIDs []int
	SimilarToTitle  string
	SimilarToID     int
	Score           float64
}

// Key returns the "type-id" identity shared with dismissals and caches
func (c *Candidate) Key() string {
	return string(c.MediaType) + "-" + strconv.Itoa(c.Item.ID)
}

// PrimaryGenre is the first genre id, used by the diversity quotas
func (c *Candidate) PrimaryGenre() int {
	if len(c.Item.GenreIDs) > 0 {
		return c.Item.GenreIDs[0]
	}
	return 0
}

// Recommendation is the externally visible output, never mutated after
// construction
type Recommendation struct {
	TMDBID           int               `json:"tmdb_id"`
	MediaType        catalog.MediaType `json:"media_type"`
	Title            string            `json:"title"`
	Score            float64           `json:"score"`
	Reason           string            `json:"reason"`
	Source           Source            `json:"source"`
	GenreIDs         []int             `json:"genre_ids"`
	Popularity       float64           `json:"popularity"`
	VoteAverage      float64           `json:"vote_average"`
	ReleaseDate      string            `json:"release_date,omitempty"`
	OriginalLanguage string            `json:"original_language"`
	PosterPath       string            `json:"poster_path"`
	BackdropPath     string            `json:"backdrop_path"`
	Overview         string            `json:"overview"`
}

// FilterOptions are ad-hoc request filters. Any active filter bypasses
// the result caches entirely; filtered results are never cached.
type FilterOptions struct {
	FetchMovies bool  `json:"fetch_movies"`
	FetchTV     bool  `json:"fetch_tv"`
	GenreIDs    []int `json:"filter_genre_ids"`
}

// DefaultFilters fetches both media types with no genre constraint
func DefaultFilters() FilterOptions {
	return FilterOptions{FetchMovies: true, FetchTV: true}
}

// GenreFilterActive reports whether an explicit genre filter is set
func (f FilterOptions) GenreFilterActive() bool {
	return len(f.GenreIDs) > 0
}

// Active reports whether any ad-hoc filter deviates from the defaults
func (f FilterOptions) Active() bool {
	return f.GenreFilterActive() || !f.FetchMovies || !f.FetchTV
}

// Request carries the per-invocation inputs of one generation call
type Request struct {
	ProviderIDs []int
	Region      string
	Filters     FilterOptions
}

// scoringRegime selects which of the two mutually exclusive scoring
// formulas applies. Exactly one regime is active per invocation; the
// choice is made once at the top of the engine and passed down.
type scoringRegime int

const (
	regimeAffinity scoringRegime = iota
	regimeVector
)

// scoringContext bundles the regime with the signals it needs
type scoringContext struct {
	regime     scoringRegime
	vector     taste.Vector
	confidence taste.Confidence
	affinities map[int]float64
}

// newScoringContext centralizes regime selection: the vector regime runs
// if and only if a usable taste vector exists, affinity otherwise.
func newScoringContext(vector taste.Vector, confidence taste.Confidence, affinities map[int]float64) scoringContext {
	sc := scoringContext{
		regime:     regimeAffinity,
		affinities: affinities,
	}
	if len(vector) > 0 {
		sc.regime = regimeVector
		sc.vector = vector
		sc.confidence = confidence
	}
	return sc
}

// WatchlistStore is the engine's view of the watchlist collaborator
type WatchlistStore interface {
	FindByUserID(userID uuid.UUID) ([]*watchlist.Item, error)
	FindWatchedByRating(userID uuid.UUID, rating string) ([]*watchlist.Item, error)
}

// ProfileStore is the engine's view of the taste profile collaborator
type ProfileStore interface {
	FindByUserID(userID uuid.UUID) (*profile.TasteProfile, error)
}

// DismissalStore is the engine's view of the dismissal collaborator
type DismissalStore interface {
	DismissedKeys(userID uuid.UUID) (map[string]struct{}, error)
	CleanExpired(userID uuid.UUID) error
}

// KVStore is generic key-value persistence, used by the hidden-gems cache
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Service defines the interface for recommendation business logic
type Service interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID, req Request) []Recommendation
	GetHiddenGems(ctx context.Context, userID uuid.UUID, req Request) []Recommendation
}

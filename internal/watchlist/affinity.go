package watchlist

import "sort"

// Affinity weights per watchlist disposition. A liked watch is the
// strongest signal; a disliked watch actively suppresses its genres.
const (
	weightLiked       = 3
	weightNeutral     = 1
	weightDisliked    = -1
	weightWantToWatch = 1
)

// Affinities derives a genre->score mapping from the current watchlist.
// Recomputed on every scoring pass rather than persisted; the cost is
// proportional to watchlist size.
func Affinities(items []*Item) map[int]float64 {
	affinities := make(map[int]float64)

	for _, item := range items {
		var weight float64
		switch {
		case item.Status == StatusWatched && item.Rating == RatingLiked:
			weight = weightLiked
		case item.Status == StatusWatched && item.Rating == RatingDisliked:
			weight = weightDisliked
		case item.Status == StatusWatched:
			weight = weightNeutral
		default:
			weight = weightWantToWatch
		}

		for _, genreID := range item.GenreIDList() {
			affinities[genreID] += weight
		}
	}

	return affinities
}

// GenreScore pairs a genre id with its accumulated affinity
type GenreScore struct {
	GenreID int     `json:"genre_id"`
	Score   float64 `json:"score"`
}

// TopGenres filters to positive-score genres and returns the top count,
// sorted by score descending. Ties break by genre id so repeated calls
// over the same affinities stay deterministic.
func TopGenres(affinities map[int]float64, count int) []GenreScore {
	ranked := make([]GenreScore, 0, len(affinities))
	for genreID, score := range affinities {
		if score > 0 {
			ranked = append(ranked, GenreScore{GenreID: genreID, Score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].GenreID < ranked[j].GenreID
	})

	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	return ranked
}

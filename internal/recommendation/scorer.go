package recommendation

import (
	"math"

	"github.com/dustin/watchly-backend/internal/taste"
)

// Vector regime weights. The three sum to 1.0 by construction; change
// them only together.
const (
	vectorSimilarityWeight = 0.60
	vectorSimilarWeight    = 0.25
	vectorTrendingWeight   = 0.15
)

// Affinity regime weights
const (
	affinityGenreWeight      = 0.70
	affinitySimilarWeight    = 0.30
	affinitySimilarHalf      = 0.5
	affinityDiscoveryCeiling = 10
)

// Fixed credit granted to similar-lane candidates in both regimes
const similarContentCredit = 50

// Rating bonus kicks in at and above this vote average
const ratingBonusFloor = 7.0

// scoreCandidate assigns the working score for one candidate under the
// regime carried by the scoring context. Pure function of its inputs;
// never mutates candidate metadata beyond the score assignment done by
// the caller.
func scoreCandidate(c *Candidate, sc scoringContext) float64 {
	var score float64

	switch sc.regime {
	case regimeVector:
		contentVector := taste.Vectorize(
			c.Item.GenreIDs,
			c.Item.Popularity,
			c.Item.VoteCount,
			c.Item.ReleaseYear(),
			c.Item.OriginalLanguage,
		)
		score = taste.Similarity(sc.vector, contentVector, sc.confidence) * vectorSimilarityWeight

		if c.Source == SourceSimilar {
			// Constant credit for coming out of a liked title's neighborhood,
			// not a second similarity computation
			score += similarContentCredit * vectorSimilarWeight
		}

		score += trendingComponent(c.Item.Popularity) * 100 * vectorTrendingWeight

	default:
		normalized := normalizedGenreAffinity(c.Item.GenreIDs, sc.affinities)

		if c.Source == SourceSimilar {
			// Similar-content candidates are not pure affinity matches, so
			// their affinity contribution carries half weight
			score = similarContentCredit*affinitySimilarWeight + normalized*affinityGenreWeight*affinitySimilarHalf
		} else {
			score = normalized * affinityGenreWeight
		}

		score += trendingComponent(c.Item.Popularity) * affinityDiscoveryCeiling
	}

	if c.Item.VoteAverage >= ratingBonusFloor {
		score += (c.Item.VoteAverage - ratingBonusFloor) * 3
	}

	return math.Round(score*100) / 100
}

// normalizedGenreAffinity sums the affinities of the candidate's matched
// genres and normalizes onto a 0-100 scale, saturating at an accumulated
// affinity of 10.
func normalizedGenreAffinity(genreIDs []int, affinities map[int]float64) float64 {
	var sum float64
	for _, id := range genreIDs {
		sum += affinities[id]
	}
	if sum <= 0 {
		return 0
	}
	if sum > 10 {
		sum = 10
	}
	return sum / 10 * 100
}

func trendingComponent(popularity float64) float64 {
	scaled := popularity / 100
	if scaled > 1 {
		return 1
	}
	if scaled < 0 {
		return 0
	}
	return scaled
}

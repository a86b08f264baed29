package recommendation

import (
	"testing"

	"github.com/dustin/watchly-backend/internal/catalog"
	"github.com/dustin/watchly-backend/internal/taste"
	"github.com/stretchr/testify/assert"
)

func genreCandidate(genreIDs []int, popularity float64) *Candidate {
	return &Candidate{
		Item: catalog.Item{
			ID:               100,
			GenreIDs:         genreIDs,
			Popularity:       popularity,
			OriginalLanguage: "en",
		},
		MediaType: catalog.MediaTypeMovie,
		Source:    SourceGenre,
	}
}

func TestScoreCandidate_AffinityRegime(t *testing.T) {
	t.Run("Genre candidate scores from matched affinities", func(t *testing.T) {
		// affinities {Action: 5, Drama: 2}; candidate is Action with popularity 50:
		// min(5/10,1)*100*0.70 + min(50/100,1)*10 = 35 + 5 = 40.00
		sc := newScoringContext(nil, nil, map[int]float64{28: 5, 18: 2})
		cand := genreCandidate([]int{28}, 50)

		assert.Equal(t, 40.00, scoreCandidate(cand, sc))
	})

	t.Run("Affinity saturates at 10", func(t *testing.T) {
		sc := newScoringContext(nil, nil, map[int]float64{28: 25})
		cand := genreCandidate([]int{28}, 0)

		// min(25/10,1)*100*0.70 = 70
		assert.Equal(t, 70.00, scoreCandidate(cand, sc))
	})

	t.Run("Negative affinity sums clamp to zero", func(t *testing.T) {
		sc := newScoringContext(nil, nil, map[int]float64{27: -4})
		cand := genreCandidate([]int{27}, 0)

		assert.Equal(t, 0.00, scoreCandidate(cand, sc))
	})

	t.Run("Similar candidate gets fixed credit plus half-weight affinity", func(t *testing.T) {
		sc := newScoringContext(nil, nil, map[int]float64{28: 5})
		cand := genreCandidate([]int{28}, 0)
		cand.Source = SourceSimilar

		// 50*0.30 + 50*0.70*0.5 = 15 + 17.5 = 32.50
		assert.Equal(t, 32.50, scoreCandidate(cand, sc))
	})

	t.Run("Discovery boost caps at popularity 100", func(t *testing.T) {
		sc := newScoringContext(nil, nil, nil)
		cand := genreCandidate(nil, 350)

		// No affinity signal, only min(350/100,1)*10
		assert.Equal(t, 10.00, scoreCandidate(cand, sc))
	})
}

func TestScoreCandidate_VectorRegime(t *testing.T) {
	// A taste vector proportional to the content vector yields similarity 100
	perfectTaste := taste.Vector{taste.DimActionAdventure: 0.95}

	t.Run("Genre candidate scores from similarity and trending", func(t *testing.T) {
		sc := newScoringContext(perfectTaste, nil, nil)
		cand := genreCandidate([]int{28}, 0)

		// 100*0.60 + 0 + 0
		assert.Equal(t, 60.00, scoreCandidate(cand, sc))
	})

	t.Run("Similar candidate adds the fixed similar-content credit", func(t *testing.T) {
		sc := newScoringContext(perfectTaste, nil, nil)
		cand := genreCandidate([]int{28}, 0)
		cand.Source = SourceSimilar

		// 100*0.60 + 50*0.25
		assert.Equal(t, 72.50, scoreCandidate(cand, sc))
	})

	t.Run("Trending component scales with popularity", func(t *testing.T) {
		sc := newScoringContext(perfectTaste, nil, nil)
		cand := genreCandidate([]int{28}, 20)

		// Popularity also feeds the mainstream dimension, so the similarity
		// drops below 100; the trending term adds min(20/100,1)*100*0.15 = 3
		withPop := scoreCandidate(cand, sc)
		without := scoreCandidate(genreCandidate([]int{28}, 0), sc)
		assert.Greater(t, withPop, 0.0)
		assert.NotEqual(t, without, withPop)
	})

	t.Run("Orthogonal taste lands at the similarity midpoint", func(t *testing.T) {
		sc := newScoringContext(taste.Vector{taste.DimComedy: 0.95}, nil, nil)
		cand := genreCandidate([]int{28}, 0)

		// similarity 50 * 0.60
		assert.Equal(t, 30.00, scoreCandidate(cand, sc))
	})
}

func TestScoreCandidate_RatingBonus(t *testing.T) {
	sc := newScoringContext(nil, nil, map[int]float64{28: 5})

	t.Run("Applies above the floor", func(t *testing.T) {
		cand := genreCandidate([]int{28}, 0)
		cand.Item.VoteAverage = 8.4

		// 35 + (8.4-7)*3 = 35 + 4.2
		assert.Equal(t, 39.20, scoreCandidate(cand, sc))
	})

	t.Run("No bonus below the floor", func(t *testing.T) {
		cand := genreCandidate([]int{28}, 0)
		cand.Item.VoteAverage = 6.9

		assert.Equal(t, 35.00, scoreCandidate(cand, sc))
	})
}

func TestScoreCandidate_Deterministic(t *testing.T) {
	sc := newScoringContext(taste.Vector{taste.DimActionAdventure: 0.8, taste.DimDrama: 0.3}, taste.Confidence{taste.DimDrama: 0.5}, nil)
	cand := genreCandidate([]int{28, 18}, 42.5)
	cand.Item.VoteAverage = 7.8
	cand.Item.VoteCount = 900
	cand.Item.ReleaseDate = "2018-06-01"

	first := scoreCandidate(cand, sc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scoreCandidate(cand, sc))
	}
}

func TestScoringRegimeSelection(t *testing.T) {
	t.Run("Vector present selects the vector regime", func(t *testing.T) {
		sc := newScoringContext(taste.Vector{taste.DimDrama: 0.4}, nil, map[int]float64{18: 2})
		assert.Equal(t, regimeVector, sc.regime)
	})

	t.Run("Absent vector selects affinity regardless of confidence", func(t *testing.T) {
		sc := newScoringContext(nil, taste.Confidence{taste.DimDrama: 0.9}, map[int]float64{18: 2})
		assert.Equal(t, regimeAffinity, sc.regime)
	})

	t.Run("Empty vector selects affinity", func(t *testing.T) {
		sc := newScoringContext(taste.Vector{}, nil, nil)
		assert.Equal(t, regimeAffinity, sc.regime)
	})
}

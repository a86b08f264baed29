package taste

import "sort"

// Dimension names one axis of the preference space. The dimension set and
// the genre mapping below are a shared contract with the onboarding quiz
// that produces taste profiles; both sides must stay on the same version.
type Dimension string

const (
	DimActionAdventure Dimension = "action_adventure"
	DimComedy          Dimension = "comedy"
	DimDrama           Dimension = "drama"
	DimSciFiFantasy    Dimension = "scifi_fantasy"
	DimHorrorThriller  Dimension = "horror_thriller"
	DimCrimeMystery    Dimension = "crime_mystery"
	DimAnimationFamily Dimension = "animation_family"
	DimDocumentary     Dimension = "documentary"
	DimRomance         Dimension = "romance"
	DimRecency         Dimension = "recency"
	DimMainstream      Dimension = "mainstream"
	DimInternational   Dimension = "international"
)

// DimensionTableVersion tracks the vector space contract shared with the
// onboarding subsystem. Bump only together with the profile builder.
const DimensionTableVersion = 1

// Vector maps dimensions to signed preference weights. Taste vectors
// produced by onboarding are capped to ±0.95 per dimension.
type Vector map[Dimension]float64

// Confidence maps dimensions to evidential strength in [0,1].
// A missing entry means full confidence for that dimension.
type Confidence map[Dimension]float64

// MaxWeight is the per-dimension cap applied by the profile builder
const MaxWeight = 0.95

// dimensionWeights are the static per-dimension weights applied during
// similarity computation. Genre dimensions carry full weight; the context
// dimensions contribute less so genre taste dominates matching.
var dimensionWeights = map[Dimension]float64{
	DimActionAdventure: 1.0,
	DimComedy:          1.0,
	DimDrama:           1.0,
	DimSciFiFantasy:    1.0,
	DimHorrorThriller:  1.0,
	DimCrimeMystery:    1.0,
	DimAnimationFamily: 1.0,
	DimDocumentary:     1.0,
	DimRomance:         1.0,
	DimRecency:         0.5,
	DimMainstream:      0.5,
	DimInternational:   0.3,
}

// genreDimensions is the subset of dimensions backed by catalog genres,
// each with the movie genre id used when building discovery queries.
var genreDimensions = map[Dimension]int{
	DimActionAdventure: 28,
	DimComedy:          35,
	DimDrama:           18,
	DimSciFiFantasy:    878,
	DimHorrorThriller:  53,
	DimCrimeMystery:    80,
	DimAnimationFamily: 16,
	DimDocumentary:     99,
	DimRomance:         10749,
}

// TopGenreIDs returns the movie genre ids for the strongest positive
// genre-bearing dimensions of the vector, strongest first, capped at max.
func TopGenreIDs(v Vector, max int) []int {
	type dimWeight struct {
		dim    Dimension
		weight float64
	}

	ranked := make([]dimWeight, 0, len(genreDimensions))
	for dim := range genreDimensions {
		if w := v[dim]; w > 0 {
			ranked = append(ranked, dimWeight{dim: dim, weight: w})
		}
	}

	// Sort by weight descending with the dimension name as a stable tiebreak
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].dim < ranked[j].dim
	})

	if max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}

	ids := make([]int, 0, len(ranked))
	for _, dw := range ranked {
		ids = append(ids, genreDimensions[dw.dim])
	}
	return ids
}

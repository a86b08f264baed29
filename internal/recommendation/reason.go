package recommendation

import (
	"github.com/dustin/watchly-backend/internal/taste"
)

// genreNames maps catalog genre ids (movie and TV namespaces) to display
// names for reason strings.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Science Fiction",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
	10759: "Action & Adventure",
	10762: "Kids",
	10763: "News",
	10764: "Reality",
	10765: "Sci-Fi & Fantasy",
	10766: "Soap",
	10767: "Talk",
	10768: "War & Politics",
}

// Similarity thresholds for the vector-regime reason tiers
const (
	greatMatchThreshold = 80
	goodMatchThreshold  = 60
)

const fallbackReason = "Popular in your region"

// reasonFor produces the human-readable justification for one candidate.
// Priority: similar-lane back-reference, then vector-similarity tiers,
// then best affinity genre, then the universal fallback. Absence of any
// signal degrades to the fallback; this never fails.
func reasonFor(c *Candidate, sc scoringContext) string {
	if c.Source == SourceSimilar && c.SimilarToTitle != "" {
		return "Similar to " + c.SimilarToTitle
	}

	if sc.regime == regimeVector {
		contentVector := taste.Vectorize(
			c.Item.GenreIDs,
			c.Item.Popularity,
			c.Item.VoteCount,
			c.Item.ReleaseYear(),
			c.Item.OriginalLanguage,
		)
		similarity := taste.Similarity(sc.vector, contentVector, sc.confidence)

		if similarity >= greatMatchThreshold {
			if name := firstNamedGenre(c); name != "" {
				return "Great match for your taste in " + name
			}
			return "Great match for your taste"
		}
		if similarity >= goodMatchThreshold {
			if name := firstNamedGenre(c); name != "" {
				return "Matches your " + name + " preferences"
			}
			return "Matches your preferences"
		}
		// Weak vector match falls through to the affinity reason
	}

	if name := bestAffinityGenre(c, sc.affinities); name != "" {
		return "Because you like " + name
	}

	return fallbackReason
}

// firstNamedGenre returns the display name of the first matched genre,
// falling back to the candidate's own genre list.
func firstNamedGenre(c *Candidate) string {
	for _, id := range c.MatchedGenreIDs {
		if name, ok := genreNames[id]; ok {
			return name
		}
	}
	for _, id := range c.Item.GenreIDs {
		if name, ok := genreNames[id]; ok {
			return name
		}
	}
	return ""
}

// bestAffinityGenre picks the highest-affinity genre from the matched
// set, or else from the full genre set, and resolves its name. Empty when
// no positive-affinity genre with a known name exists.
func bestAffinityGenre(c *Candidate, affinities map[int]float64) string {
	pick := func(ids []int) (int, bool) {
		best := 0
		bestScore := 0.0
		found := false
		for _, id := range ids {
			score, ok := affinities[id]
			if !ok || score <= 0 {
				continue
			}
			if !found || score > bestScore {
				best = id
				bestScore = score
				found = true
			}
		}
		return best, found
	}

	ids := c.MatchedGenreIDs
	genre, ok := pick(ids)
	if !ok {
		genre, ok = pick(c.Item.GenreIDs)
	}
	if !ok {
		return ""
	}
	return genreNames[genre]
}

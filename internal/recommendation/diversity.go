package recommendation

import (
	"math"

	"github.com/dustin/watchly-backend/internal/catalog"
)

// Slots beyond which the per-genre quota stops applying; the top of the
// list stays varied while the tail fills with the best remaining scores.
const genreQuotaWindow = 10

// diversify walks a score-descending candidate list once and returns an
// ordered subset under the diversity quotas: at most maxPerGenre per
// primary genre within the first genreQuotaWindow slots, and no media
// type above 70% of targetCount. Greedy single pass, deterministic given
// a deterministic input order.
func diversify(sorted []*Candidate, maxPerGenre, targetCount int) []*Candidate {
	if targetCount <= 0 {
		return nil
	}

	typeLimit := int(math.Ceil(0.7 * float64(targetCount)))

	accepted := make([]*Candidate, 0, targetCount)
	seen := make(map[string]struct{}, targetCount)
	genreCounts := make(map[int]int)
	typeCounts := make(map[catalog.MediaType]int)

	for _, cand := range sorted {
		if len(accepted) >= targetCount {
			break
		}
		if _, dup := seen[cand.Key()]; dup {
			continue
		}
		if len(accepted) < genreQuotaWindow {
			if genre := cand.PrimaryGenre(); genre != 0 && genreCounts[genre] >= maxPerGenre {
				continue
			}
		}
		if typeCounts[cand.MediaType] >= typeLimit {
			continue
		}

		seen[cand.Key()] = struct{}{}
		genreCounts[cand.PrimaryGenre()]++
		typeCounts[cand.MediaType]++
		accepted = append(accepted, cand)
	}

	return accepted
}

package recommendation

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/watchly-backend/config"
	"github.com/dustin/watchly-backend/internal/catalog"
	"github.com/dustin/watchly-backend/internal/taste"
	"github.com/dustin/watchly-backend/internal/watchlist"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
)

// Engine composes sourcing, scoring, diversity filtering, reason
// annotation and caching into the two public operations. Its contract is
// to never fail the caller: any unrecoverable condition degrades to an
// empty list plus a log line.
type Engine struct {
	sourcer     *sourcer
	watchlists  WatchlistStore
	profiles    ProfileStore
	dismissals  DismissalStore
	cache       *ResultCache
	gemsCache   *kvResultCache
	maxPerGenre int
	targetCount int
	logger      *logger.Logger
}

// NewEngine creates the recommendation engine with validation and defaults
func NewEngine(
	cfg *config.RecommendationConfig,
	catalogClient catalog.CatalogClient,
	watchlists WatchlistStore,
	profiles ProfileStore,
	dismissals DismissalStore,
	kv KVStore,
	log *logger.Logger,
) (*Engine, error) {
	cacheTTL := 30 * time.Minute
	gemsTTL := 6 * time.Hour
	maxPerGenre := 3
	targetCount := 20

	if cfg != nil {
		if cfg.CacheTTL != "" {
			duration, err := time.ParseDuration(cfg.CacheTTL)
			if err != nil {
				return nil, fmt.Errorf("invalid recommendation cache TTL '%s': %v", cfg.CacheTTL, err)
			}
			cacheTTL = duration
		}
		if cfg.HiddenGemsCacheTTL != "" {
			duration, err := time.ParseDuration(cfg.HiddenGemsCacheTTL)
			if err != nil {
				return nil, fmt.Errorf("invalid hidden gems cache TTL '%s': %v", cfg.HiddenGemsCacheTTL, err)
			}
			gemsTTL = duration
		}
		if cfg.MaxPerGenre != "" {
			n, err := parsePositiveInt(cfg.MaxPerGenre)
			if err != nil {
				return nil, fmt.Errorf("invalid max per genre '%s': %v", cfg.MaxPerGenre, err)
			}
			maxPerGenre = n
		}
		if cfg.TargetCount != "" {
			n, err := parsePositiveInt(cfg.TargetCount)
			if err != nil {
				return nil, fmt.Errorf("invalid target count '%s': %v", cfg.TargetCount, err)
			}
			targetCount = n
		}
	}

	engineLogger := log.WithComponent("recommendation-engine")

	return &Engine{
		sourcer:     newSourcer(catalogClient, log),
		watchlists:  watchlists,
		profiles:    profiles,
		dismissals:  dismissals,
		cache:       NewResultCache(cacheTTL),
		gemsCache:   newKVResultCache(kv, "hidden_gems:", gemsTTL),
		maxPerGenre: maxPerGenre,
		targetCount: targetCount,
		logger:      engineLogger,
	}, nil
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("must be positive")
	}
	return n, nil
}

// generationState gathers the per-invocation signals shared by both
// operations
type generationState struct {
	items      []*watchlist.Item
	affinities map[int]float64
	likedSeeds []*watchlist.Item
	signature  string
	scoring    scoringContext
}

func (e *Engine) prepare(userID uuid.UUID) generationState {
	if err := e.dismissals.CleanExpired(userID); err != nil {
		e.logger.Warn("Failed to clean expired dismissals for user " + userID.String() + ": " + err.Error())
	}

	items, err := e.watchlists.FindByUserID(userID)
	if err != nil {
		e.logger.Warn("Failed to load watchlist for user " + userID.String() + ": " + err.Error())
		items = nil
	}

	likedSeeds, err := e.watchlists.FindWatchedByRating(userID, watchlist.RatingLiked)
	if err != nil {
		e.logger.Warn("Failed to load liked titles for user " + userID.String() + ": " + err.Error())
		likedSeeds = nil
	}

	affinities := watchlist.Affinities(items)

	likedKeys := make([]string, 0, len(likedSeeds))
	for _, seed := range likedSeeds {
		likedKeys = append(likedKeys, seed.Key())
	}

	// Missing or malformed profile data selects the affinity regime; it
	// is the unconditional fallback, never an error
	stored, err := e.profiles.FindByUserID(userID)
	if err != nil {
		stored = nil
	}

	return generationState{
		items:      items,
		affinities: affinities,
		likedSeeds: likedSeeds,
		signature:  buildSignature(affinities, likedKeys),
		scoring:    newScoringContext(stored.Vector(), stored.Confidence(), affinities),
	}
}

// Recommend generates the personalized recommendation list
func (e *Engine) Recommend(ctx context.Context, userID uuid.UUID, req Request) []Recommendation {
	state := e.prepare(userID)
	filtered := req.Filters.Active()

	if !filtered {
		if recs, ok := e.cache.Get(userID.String(), state.signature); ok {
			e.logger.Debug("Returning cached recommendations for user " + userID.String())
			// Dismissals land between generations, so the cached list is
			// re-filtered at read time
			return e.withoutDismissedRecs(recs, userID)
		}
	}

	candidates := e.sourcer.source(ctx, sourceInput{
		vector:     state.scoring.vector,
		topGenres:  watchlist.TopGenres(state.affinities, topAffinityGenres),
		likedSeeds: state.likedSeeds,
		req:        req,
		profile:    recommendationDiscover,
	})

	candidates = dedupeCandidates(candidates)
	for _, cand := range candidates {
		cand.Score = scoreCandidate(cand, state.scoring)
	}
	sortByScore(candidates)

	candidates = e.removeWatchlisted(candidates, state.items)
	candidates = e.removeDismissed(candidates, userID)
	candidates = diversify(candidates, e.maxPerGenre, e.targetCount)

	recs := e.annotate(candidates, state.scoring)

	if !filtered {
		e.cache.Set(userID.String(), state.signature, recs)
	}

	e.logger.Info(fmt.Sprintf("Generated %d recommendations for user %s", len(recs), userID))
	return recs
}

// HiddenGems generates high-rated, low-popularity discoveries. Dismissals
// do not apply here; hidden gems are meant to resurface the long tail.
func (e *Engine) HiddenGems(ctx context.Context, userID uuid.UUID, req Request) []Recommendation {
	state := e.prepare(userID)
	filtered := req.Filters.Active()

	if !filtered {
		if recs, ok := e.gemsCache.Get(userID.String(), state.signature); ok {
			e.logger.Debug("Returning cached hidden gems for user " + userID.String())
			return recs
		}
	}

	candidates := e.sourcer.source(ctx, sourceInput{
		vector:     state.scoring.vector,
		topGenres:  watchlist.TopGenres(state.affinities, topAffinityGenres),
		likedSeeds: state.likedSeeds,
		req:        req,
		profile:    hiddenGemsDiscover,
	})

	candidates = dedupeCandidates(candidates)
	for _, cand := range candidates {
		cand.Score = scoreCandidate(cand, state.scoring)
	}

	// Hidden gems rank by taste-vector similarity when one exists;
	// otherwise the catalog's own ordering stands
	if state.scoring.regime == regimeVector {
		sortBySimilarity(candidates, state.scoring)
	}

	candidates = e.removeWatchlisted(candidates, state.items)
	candidates = diversify(candidates, e.maxPerGenre, e.targetCount)

	recs := e.annotate(candidates, state.scoring)

	if !filtered {
		if err := e.gemsCache.Set(userID.String(), state.signature, recs); err != nil {
			e.logger.Warn("Failed to cache hidden gems for user " + userID.String() + ": " + err.Error())
		}
	}

	e.logger.Info(fmt.Sprintf("Generated %d hidden gems for user %s", len(recs), userID))
	return recs
}

// dedupeCandidates enforces (type,id) uniqueness across lanes, keeping
// the first occurrence. Required before scoring so nothing double-counts.
func dedupeCandidates(candidates []*Candidate) []*Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, cand := range candidates {
		if _, dup := seen[cand.Key()]; dup {
			continue
		}
		seen[cand.Key()] = struct{}{}
		out = append(out, cand)
	}
	return out
}

// sortByScore orders score-descending with the candidate key as a stable
// tiebreak, which the caching contract's byte-identical replay relies on
func sortByScore(candidates []*Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Key() < candidates[j].Key()
	})
}

func sortBySimilarity(candidates []*Candidate, sc scoringContext) {
	similarity := make(map[string]float64, len(candidates))
	for _, cand := range candidates {
		contentVector := taste.Vectorize(
			cand.Item.GenreIDs,
			cand.Item.Popularity,
			cand.Item.VoteCount,
			cand.Item.ReleaseYear(),
			cand.Item.OriginalLanguage,
		)
		similarity[cand.Key()] = taste.Similarity(sc.vector, contentVector, sc.confidence)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := similarity[candidates[i].Key()], similarity[candidates[j].Key()]
		if si != sj {
			return si > sj
		}
		return candidates[i].Key() < candidates[j].Key()
	})
}

func (e *Engine) removeWatchlisted(candidates []*Candidate, items []*watchlist.Item) []*Candidate {
	if len(items) == 0 {
		return candidates
	}
	onList := make(map[string]struct{}, len(items))
	for _, item := range items {
		onList[item.Key()] = struct{}{}
	}

	out := candidates[:0]
	for _, cand := range candidates {
		if _, skip := onList[cand.Key()]; skip {
			continue
		}
		out = append(out, cand)
	}
	return out
}

func (e *Engine) withoutDismissedRecs(recs []Recommendation, userID uuid.UUID) []Recommendation {
	dismissed, err := e.dismissals.DismissedKeys(userID)
	if err != nil || len(dismissed) == 0 {
		return recs
	}

	out := make([]Recommendation, 0, len(recs))
	for _, rec := range recs {
		key := string(rec.MediaType) + "-" + strconv.Itoa(rec.TMDBID)
		if _, skip := dismissed[key]; skip {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (e *Engine) removeDismissed(candidates []*Candidate, userID uuid.UUID) []*Candidate {
	dismissed, err := e.dismissals.DismissedKeys(userID)
	if err != nil {
		e.logger.Warn("Failed to load dismissals for user " + userID.String() + ": " + err.Error())
		return candidates
	}
	if len(dismissed) == 0 {
		return candidates
	}

	out := candidates[:0]
	for _, cand := range candidates {
		if _, skip := dismissed[cand.Key()]; skip {
			continue
		}
		out = append(out, cand)
	}
	return out
}

// annotate builds the immutable output projection with reason strings
func (e *Engine) annotate(candidates []*Candidate, sc scoringContext) []Recommendation {
	recs := make([]Recommendation, 0, len(candidates))
	for _, cand := range candidates {
		releaseDate := cand.Item.ReleaseDate
		if releaseDate == "" {
			releaseDate = cand.Item.FirstAirDate
		}

		recs = append(recs, Recommendation{
			TMDBID:           cand.Item.ID,
			MediaType:        cand.MediaType,
			Title:            cand.Item.DisplayTitle(),
			Score:            cand.Score,
			Reason:           reasonFor(cand, sc),
			Source:           cand.Source,
			GenreIDs:         cand.Item.GenreIDs,
			Popularity:       cand.Item.Popularity,
			VoteAverage:      cand.Item.VoteAverage,
			ReleaseDate:      releaseDate,
			OriginalLanguage: cand.Item.OriginalLanguage,
			PosterPath:       cand.Item.PosterPath,
			BackdropPath:     cand.Item.BackdropPath,
			Overview:         cand.Item.Overview,
		})
	}
	return recs
}

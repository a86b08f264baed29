package recommendation

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/watchly-backend/internal/catalog"
	"github.com/dustin/watchly-backend/internal/taste"
	"github.com/dustin/watchly-backend/internal/watchlist"
	"github.com/dustin/watchly-backend/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const (
	maxGenreCombos    = 4
	maxSimilarSeeds   = 3
	topAffinityGenres = 3
)

// movieToTVGenre translates movie genre ids into the TV namespace. The
// catalog uses disjoint id spaces for the two media types; genres with no
// TV equivalent are absent and must be dropped, not passed through.
var movieToTVGenre = map[int]int{
	28:    10759, // Action -> Action & Adventure
	12:    10759, // Adventure -> Action & Adventure
	878:   10765, // Science Fiction -> Sci-Fi & Fantasy
	14:    10765, // Fantasy -> Sci-Fi & Fantasy
	10752: 10768, // War -> War & Politics
	16:    16,    // Animation
	35:    35,    // Comedy
	80:    80,    // Crime
	99:    99,    // Documentary
	18:    18,    // Drama
	10751: 10751, // Family
	9648:  9648,  // Mystery
	37:    37,    // Western
}

// discoverProfile carries the per-operation discovery constraints.
// Hidden gems constrain to high-rating, low-popularity, moderate-vote
// discovery; regular recommendations just chase popularity.
type discoverProfile struct {
	sortBy         string
	voteAverageGTE float64
	voteCountGTE   int
	popularityLTE  float64
}

var (
	recommendationDiscover = discoverProfile{
		sortBy: catalog.SortPopularityDesc,
	}
	hiddenGemsDiscover = discoverProfile{
		sortBy:         catalog.SortVoteAverageDesc,
		voteAverageGTE: 7.5,
		voteCountGTE:   200,
		popularityLTE:  50,
	}
)

// sourcer fans out candidate queries against the catalog. Individual
// request failures degrade that query's results to empty; they never
// abort sibling requests or the overall sourcing pass.
type sourcer struct {
	catalog catalog.CatalogClient
	logger  *logger.Logger
}

func newSourcer(client catalog.CatalogClient, log *logger.Logger) *sourcer {
	return &sourcer{
		catalog: client,
		logger:  log.WithComponent("candidate-sourcer"),
	}
}

// sourceInput bundles the signals one sourcing pass works from
type sourceInput struct {
	vector     taste.Vector
	topGenres  []watchlist.GenreScore
	likedSeeds []*watchlist.Item
	req        Request
	profile    discoverProfile
}

// source runs the genre lane and the similar-content lane in parallel and
// concatenates their results. Cross-lane deduplication happens later, in
// the engine, before scoring.
func (s *sourcer) source(ctx context.Context, in sourceInput) []*Candidate {
	var genreLane, similarLane []*Candidate

	var g errgroup.Group
	g.Go(func() error {
		genreLane = s.genreLane(ctx, in)
		return nil
	})
	g.Go(func() error {
		similarLane = s.similarLane(ctx, in)
		return nil
	})
	_ = g.Wait()

	return append(genreLane, similarLane...)
}

// genreLane picks one of three mutually exclusive strategies: vector-driven
// AND combinations, plain popularity discovery, or an OR-combination
// fallback over affinity/filter genres.
func (s *sourcer) genreLane(ctx context.Context, in sourceInput) []*Candidate {
	filterGenres := in.req.Filters.GenreIDs
	vectorGenres := taste.TopGenreIDs(in.vector, maxGenreCombos)

	switch {
	case len(vectorGenres) > 0:
		combos := buildGenreCombos(vectorGenres, filterGenres)
		return s.discoverCombos(ctx, combos, in)
	case len(filterGenres) == 0 && len(in.topGenres) == 0:
		return s.discoverPopular(ctx, in)
	default:
		return s.discoverDisjunctive(ctx, in)
	}
}

// buildGenreCombos assembles up to maxGenreCombos conjunctive genre sets.
// With an active genre filter every combination includes the filter
// genres, paired with each remaining top vector genre, plus one
// standalone filter-only combination for breadth. Combinations dedupe on
// their sorted genre-set signature.
func buildGenreCombos(vectorGenres, filterGenres []int) [][]int {
	var combos [][]int
	seen := make(map[string]struct{})

	add := func(ids []int) {
		if len(ids) == 0 || len(combos) >= maxGenreCombos {
			return
		}
		sig := comboSignature(ids)
		if _, dup := seen[sig]; dup {
			return
		}
		seen[sig] = struct{}{}
		combos = append(combos, ids)
	}

	if len(filterGenres) > 0 {
		for _, genre := range vectorGenres {
			if containsInt(filterGenres, genre) {
				continue
			}
			if len(combos) >= maxGenreCombos-1 {
				break
			}
			combo := make([]int, 0, len(filterGenres)+1)
			combo = append(combo, filterGenres...)
			combo = append(combo, genre)
			add(combo)
		}
		add(filterGenres)
		return combos
	}

	if len(vectorGenres) == 1 {
		add(vectorGenres)
		return combos
	}

	for i := 0; i < len(vectorGenres); i++ {
		for j := i + 1; j < len(vectorGenres); j++ {
			add([]int{vectorGenres[i], vectorGenres[j]})
		}
	}
	return combos
}

// comboQuery is one discovery request, keyed by combination identity
// rather than array position so skipped requests cannot shift results.
type comboQuery struct {
	genres    []int
	mediaType catalog.MediaType
}

func (q comboQuery) key() string {
	return string(q.mediaType) + ":" + comboSignature(q.genres)
}

func (s *sourcer) discoverCombos(ctx context.Context, combos [][]int, in sourceInput) []*Candidate {
	var queries []comboQuery
	for _, combo := range combos {
		if in.req.Filters.FetchMovies {
			queries = append(queries, comboQuery{genres: combo, mediaType: catalog.MediaTypeMovie})
		}
		if in.req.Filters.FetchTV {
			if tvGenres, ok := tvEquivalent(combo); ok {
				queries = append(queries, comboQuery{genres: tvGenres, mediaType: catalog.MediaTypeTV})
			}
		}
	}

	results := s.runQueries(ctx, queries, in, joinAND)

	seen := make(map[string]struct{})
	var candidates []*Candidate
	for _, q := range queries {
		for _, item := range results[q.key()] {
			cand := &Candidate{
				Item:            item,
				MediaType:       q.mediaType,
				Source:          SourceGenre,
				MatchedGenreIDs: intersect(item.GenreIDs, q.genres),
			}
			if _, dup := seen[cand.Key()]; dup {
				continue
			}
			seen[cand.Key()] = struct{}{}
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// discoverPopular is the no-signal fallback: plain popularity-sorted
// discovery across the allowed media types.
func (s *sourcer) discoverPopular(ctx context.Context, in sourceInput) []*Candidate {
	var queries []comboQuery
	if in.req.Filters.FetchMovies {
		queries = append(queries, comboQuery{mediaType: catalog.MediaTypeMovie})
	}
	if in.req.Filters.FetchTV {
		queries = append(queries, comboQuery{mediaType: catalog.MediaTypeTV})
	}

	results := s.runQueries(ctx, queries, in, joinAND)

	var candidates []*Candidate
	for _, q := range queries {
		for _, item := range results[q.key()] {
			candidates = append(candidates, &Candidate{
				Item:      item,
				MediaType: q.mediaType,
				Source:    SourcePopular,
			})
		}
	}
	return candidates
}

// discoverDisjunctive is the OR fallback: one query per media type with a
// pipe-joined genre filter. Filter genres take precedence and replace the
// affinity genres entirely.
func (s *sourcer) discoverDisjunctive(ctx context.Context, in sourceInput) []*Candidate {
	genres := in.req.Filters.GenreIDs
	if len(genres) == 0 {
		top := in.topGenres
		if len(top) > topAffinityGenres {
			top = top[:topAffinityGenres]
		}
		for _, gs := range top {
			genres = append(genres, gs.GenreID)
		}
	}

	var queries []comboQuery
	if in.req.Filters.FetchMovies {
		queries = append(queries, comboQuery{genres: genres, mediaType: catalog.MediaTypeMovie})
	}
	if in.req.Filters.FetchTV {
		if tvGenres, ok := tvAny(genres); ok {
			queries = append(queries, comboQuery{genres: tvGenres, mediaType: catalog.MediaTypeTV})
		}
	}

	results := s.runQueries(ctx, queries, in, joinOR)

	var candidates []*Candidate
	for _, q := range queries {
		for _, item := range results[q.key()] {
			candidates = append(candidates, &Candidate{
				Item:            item,
				MediaType:       q.mediaType,
				Source:          SourceGenre,
				MatchedGenreIDs: intersect(item.GenreIDs, q.genres),
			})
		}
	}
	return candidates
}

// runQueries fires the given discovery queries concurrently and returns
// results keyed by query identity. A failed query logs and contributes
// nothing.
func (s *sourcer) runQueries(ctx context.Context, queries []comboQuery, in sourceInput, join func([]int) string) map[string][]catalog.Item {
	results := make(map[string][]catalog.Item, len(queries))
	var mu sync.Mutex

	var g errgroup.Group
	for _, q := range queries {
		q := q
		g.Go(func() error {
			items, err := s.catalog.Discover(ctx, q.mediaType, s.discoverParams(join(q.genres), in))
			if err != nil {
				s.logger.Warn("Discovery query failed for " + q.key() + ": " + err.Error())
				return nil
			}
			mu.Lock()
			results[q.key()] = items
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (s *sourcer) discoverParams(withGenres string, in sourceInput) catalog.DiscoverParams {
	params := catalog.DiscoverParams{
		WithGenres:     withGenres,
		SortBy:         in.profile.sortBy,
		VoteAverageGTE: in.profile.voteAverageGTE,
		VoteCountGTE:   in.profile.voteCountGTE,
		PopularityLTE:  in.profile.popularityLTE,
		WatchRegion:    in.req.Region,
	}
	if len(in.req.ProviderIDs) > 0 {
		params.WithWatchProviders = joinOR(in.req.ProviderIDs)
	}
	return params
}

// similarLane issues one similar-items query per recently liked seed, in
// parallel. The endpoint takes no genre parameters, so active genre
// filters are applied as a post-filter over the results.
func (s *sourcer) similarLane(ctx context.Context, in sourceInput) []*Candidate {
	var seeds []*watchlist.Item
	for _, seed := range in.likedSeeds {
		mediaType := catalog.MediaType(seed.MediaType)
		if mediaType == catalog.MediaTypeMovie && !in.req.Filters.FetchMovies {
			continue
		}
		if mediaType == catalog.MediaTypeTV && !in.req.Filters.FetchTV {
			continue
		}
		seeds = append(seeds, seed)
		if len(seeds) == maxSimilarSeeds {
			break
		}
	}

	results := make(map[string][]catalog.Item, len(seeds))
	var mu sync.Mutex

	var g errgroup.Group
	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			items, err := s.catalog.Similar(ctx, catalog.MediaType(seed.MediaType), seed.TMDBID)
			if err != nil {
				s.logger.Warn("Similar-items query failed for " + seed.Key() + ": " + err.Error())
				return nil
			}
			mu.Lock()
			results[seed.Key()] = items
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	filterSet := filterGenreSet(in.req.Filters.GenreIDs)

	var candidates []*Candidate
	for _, seed := range seeds {
		for _, item := range results[seed.Key()] {
			if filterSet != nil && !matchesAnyGenre(item.GenreIDs, filterSet) {
				continue
			}
			candidates = append(candidates, &Candidate{
				Item:           item,
				MediaType:      catalog.MediaType(seed.MediaType),
				Source:         SourceSimilar,
				SimilarToTitle: seed.Title,
				SimilarToID:    seed.TMDBID,
			})
		}
	}
	return candidates
}

// filterGenreSet expands filter genres with their TV equivalents so the
// similar-lane post-filter accepts matching TV titles too. Nil when no
// filter is active.
func filterGenreSet(filterGenres []int) map[int]struct{} {
	if len(filterGenres) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(filterGenres)*2)
	for _, id := range filterGenres {
		set[id] = struct{}{}
		if tvID, ok := movieToTVGenre[id]; ok {
			set[tvID] = struct{}{}
		}
	}
	return set
}

func matchesAnyGenre(genreIDs []int, set map[int]struct{}) bool {
	for _, id := range genreIDs {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// tvEquivalent maps a conjunctive genre set into the TV namespace.
// Returns false when any member has no TV equivalent; an AND query with a
// dropped member would mean something else, so the whole query is skipped.
func tvEquivalent(genres []int) ([]int, bool) {
	mapped := make([]int, 0, len(genres))
	seen := make(map[int]struct{}, len(genres))
	for _, id := range genres {
		tvID, ok := movieToTVGenre[id]
		if !ok {
			return nil, false
		}
		if _, dup := seen[tvID]; dup {
			continue
		}
		seen[tvID] = struct{}{}
		mapped = append(mapped, tvID)
	}
	return mapped, true
}

// tvAny maps a disjunctive genre set, dropping unmapped members. Returns
// false only when nothing maps.
func tvAny(genres []int) ([]int, bool) {
	mapped := make([]int, 0, len(genres))
	seen := make(map[int]struct{}, len(genres))
	for _, id := range genres {
		tvID, ok := movieToTVGenre[id]
		if !ok {
			continue
		}
		if _, dup := seen[tvID]; dup {
			continue
		}
		seen[tvID] = struct{}{}
		mapped = append(mapped, tvID)
	}
	return mapped, len(mapped) > 0
}

func comboSignature(ids []int) string {
	sorted := append([]int{}, ids...)
	sort.Ints(sorted)
	return joinAND(sorted)
}

func joinAND(ids []int) string {
	return joinInts(ids, ",")
}

func joinOR(ids []int) string {
	return joinInts(ids, "|")
}

func joinInts(ids []int, sep string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, sep)
}

func intersect(a, b []int) []int {
	var out []int
	for _, x := range a {
		if containsInt(b, x) {
			out = append(out, x)
		}
	}
	return out
}

func containsInt(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

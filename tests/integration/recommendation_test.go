//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RecommendationTestSuite struct {
	suite.Suite
	client    *http.Client
	userToken string
}

func (suite *RecommendationTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.userToken = testToken(uuid.New())
	suite.seedWatchlist()
}

// seedWatchlist gives the user enough history for genre affinities
func (suite *RecommendationTestSuite) seedWatchlist() {
	titles := []map[string]any{
		{"tmdb_id": 603, "media_type": "movie", "title": "The Matrix", "genre_ids": []int{28, 878}},
		{"tmdb_id": 157336, "media_type": "movie", "title": "Interstellar", "genre_ids": []int{878, 18}},
		{"tmdb_id": 1396, "media_type": "tv", "title": "Breaking Bad", "genre_ids": []int{18, 80}},
	}

	for _, title := range titles {
		resp := suite.doJSON("POST", "/watchlist", title)
		resp.Body.Close()
	}

	// Mark the first two watched and liked so the similar lane has seeds
	for _, path := range []string{"/watchlist/movie/603", "/watchlist/movie/157336"} {
		resp := suite.doJSON("PUT", path, map[string]any{"status": "watched", "rating": "liked"})
		resp.Body.Close()
	}
}

func (suite *RecommendationTestSuite) doJSON(method, path string, body any) *http.Response {
	var buf *bytes.Buffer
	if body != nil {
		jsonData, _ := json.Marshal(body)
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, APIBaseURL+path, buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.userToken)

	resp, err := suite.client.Do(req)
	require.NoError(suite.T(), err)
	return resp
}

type recommendationsEnvelope struct {
	Recommendations []struct {
		TMDBID    int     `json:"tmdb_id"`
		MediaType string  `json:"media_type"`
		Title     string  `json:"title"`
		Score     float64 `json:"score"`
		Reason    string  `json:"reason"`
		Source    string  `json:"source"`
	} `json:"recommendations"`
	Count int `json:"count"`
}

func (suite *RecommendationTestSuite) fetchRecommendations(path string) recommendationsEnvelope {
	resp := suite.doJSON("GET", path, nil)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var envelope recommendationsEnvelope
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func (suite *RecommendationTestSuite) TestRecommendationsShape() {
	envelope := suite.fetchRecommendations("/recommendations")

	assert.Equal(suite.T(), len(envelope.Recommendations), envelope.Count)
	for _, rec := range envelope.Recommendations {
		assert.NotZero(suite.T(), rec.TMDBID)
		assert.NotEmpty(suite.T(), rec.Reason, "every recommendation carries a reason")
		assert.Contains(suite.T(), []string{"movie", "tv"}, rec.MediaType)
	}
}

func (suite *RecommendationTestSuite) TestWatchlistedTitlesExcluded() {
	envelope := suite.fetchRecommendations("/recommendations")

	for _, rec := range envelope.Recommendations {
		if rec.MediaType == "movie" {
			assert.NotEqual(suite.T(), 603, rec.TMDBID, "watchlisted titles must never be recommended")
			assert.NotEqual(suite.T(), 157336, rec.TMDBID)
		}
	}
}

func (suite *RecommendationTestSuite) TestConsecutiveCallsStable() {
	first := suite.fetchRecommendations("/recommendations")
	second := suite.fetchRecommendations("/recommendations")

	require.Equal(suite.T(), first.Count, second.Count)
	for i := range first.Recommendations {
		assert.Equal(suite.T(), first.Recommendations[i].TMDBID, second.Recommendations[i].TMDBID)
		assert.Equal(suite.T(), first.Recommendations[i].Score, second.Recommendations[i].Score)
	}
}

func (suite *RecommendationTestSuite) TestGenreFilterApplied() {
	envelope := suite.fetchRecommendations("/recommendations?genres=35")

	// A filtered list may legitimately be shorter; what matters is the
	// call succeeds and the envelope stays well-formed
	assert.Equal(suite.T(), len(envelope.Recommendations), envelope.Count)
}

func (suite *RecommendationTestSuite) TestMoviesOnlyFilter() {
	envelope := suite.fetchRecommendations("/recommendations?tv=false")

	for _, rec := range envelope.Recommendations {
		assert.Equal(suite.T(), "movie", rec.MediaType)
	}
}

func (suite *RecommendationTestSuite) TestDismissedTitleDisappears() {
	envelope := suite.fetchRecommendations("/recommendations")
	if len(envelope.Recommendations) == 0 {
		suite.T().Skip("no recommendations available to dismiss")
	}

	target := envelope.Recommendations[0]
	resp := suite.doJSON("POST", "/dismissals", map[string]any{
		"tmdb_id":    target.TMDBID,
		"media_type": target.MediaType,
	})
	resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	after := suite.fetchRecommendations("/recommendations")
	for _, rec := range after.Recommendations {
		if rec.MediaType == target.MediaType {
			assert.NotEqual(suite.T(), target.TMDBID, rec.TMDBID, "dismissed title must disappear")
		}
	}
}

func (suite *RecommendationTestSuite) TestHiddenGems() {
	envelope := suite.fetchRecommendations("/recommendations/hidden-gems")

	assert.Equal(suite.T(), len(envelope.Recommendations), envelope.Count)
	for _, rec := range envelope.Recommendations {
		assert.NotEmpty(suite.T(), rec.Reason)
	}
}

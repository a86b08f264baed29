//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WatchlistTestSuite struct {
	suite.Suite
	client    *http.Client
	userToken string
}

func (suite *WatchlistTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.userToken = testToken(uuid.New())
}

func (suite *WatchlistTestSuite) authedRequest(method, path string, body any) *http.Request {
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
	return req
}

func (suite *WatchlistTestSuite) TestWatchlistLifecycle() {
	// Add a title
	addReq := map[string]any{
		"tmdb_id":    603,
		"media_type": "movie",
		"title":      "The Matrix",
		"genre_ids":  []int{28, 878},
	}

	resp, err := suite.client.Do(suite.authedRequest("POST", "/watchlist", addReq))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	// List it back
	resp, err = suite.client.Do(suite.authedRequest("GET", "/watchlist", nil))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var listResp struct {
		Items []map[string]any `json:"items"`
		Count int              `json:"count"`
	}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&listResp))
	assert.Equal(suite.T(), 1, listResp.Count)
	assert.Equal(suite.T(), "The Matrix", listResp.Items[0]["title"])

	// Mark it watched and liked
	updateReq := map[string]any{"status": "watched", "rating": "liked"}
	resp, err = suite.client.Do(suite.authedRequest("PUT", "/watchlist/movie/603", updateReq))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	// Remove it
	resp, err = suite.client.Do(suite.authedRequest("DELETE", "/watchlist/movie/603", nil))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
}

func (suite *WatchlistTestSuite) TestDuplicateAdditionRejected() {
	addReq := map[string]any{
		"tmdb_id":    550,
		"media_type": "movie",
		"title":      "Fight Club",
	}

	resp, err := suite.client.Do(suite.authedRequest("POST", "/watchlist", addReq))
	require.NoError(suite.T(), err)
	resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	resp, err = suite.client.Do(suite.authedRequest("POST", "/watchlist", addReq))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusConflict, resp.StatusCode)
}

func (suite *WatchlistTestSuite) TestRatingRequiresWatchedStatus() {
	addReq := map[string]any{
		"tmdb_id":    1399,
		"media_type": "tv",
		"title":      "Game of Thrones",
	}

	resp, err := suite.client.Do(suite.authedRequest("POST", "/watchlist", addReq))
	require.NoError(suite.T(), err)
	resp.Body.Close()
	require.Equal(suite.T(), http.StatusCreated, resp.StatusCode)

	// Rating a want_to_watch title must fail
	resp, err = suite.client.Do(suite.authedRequest("PUT", "/watchlist/tv/1399", map[string]any{"rating": "liked"}))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *WatchlistTestSuite) TestUnknownTitleUpdate() {
	resp, err := suite.client.Do(suite.authedRequest("PUT", fmt.Sprintf("/watchlist/movie/%d", 99999999), map[string]any{"status": "watched"}))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

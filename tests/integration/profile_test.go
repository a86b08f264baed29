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

type ProfileTestSuite struct {
	suite.Suite
	client    *http.Client
	userToken string
}

func (suite *ProfileTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}
	suite.userToken = testToken(uuid.New())
}

func (suite *ProfileTestSuite) doJSON(method, path string, body any) *http.Response {
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

func (suite *ProfileTestSuite) TestProfileNotFoundBeforeOnboarding() {
	resp := suite.doJSON("GET", "/profile", nil)
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *ProfileTestSuite) TestSaveAndFetchProfile() {
	saveReq := map[string]any{
		"vector": map[string]float64{
			"action_adventure": 0.8,
			"scifi_fantasy":    0.6,
			"horror_thriller":  -0.4,
		},
		"confidence": map[string]float64{
			"action_adventure": 0.9,
		},
	}

	resp := suite.doJSON("PUT", "/profile", saveReq)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	resp = suite.doJSON("GET", "/profile", nil)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var profileResp struct {
		Vector  map[string]float64 `json:"vector"`
		Version int                `json:"version"`
	}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&profileResp))
	assert.Equal(suite.T(), 0.8, profileResp.Vector["action_adventure"])
	assert.Equal(suite.T(), 1, profileResp.Version)
}

func (suite *ProfileTestSuite) TestWeightsCappedOnSave() {
	saveReq := map[string]any{
		"vector": map[string]float64{
			"comedy": 2.5,
			"drama":  -3.0,
		},
	}

	resp := suite.doJSON("PUT", "/profile", saveReq)
	defer resp.Body.Close()
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var profileResp struct {
		Vector map[string]float64 `json:"vector"`
	}
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&profileResp))
	assert.Equal(suite.T(), 0.95, profileResp.Vector["comedy"])
	assert.Equal(suite.T(), -0.95, profileResp.Vector["drama"])
}

func (suite *ProfileTestSuite) TestSaveWithoutVectorRejected() {
	resp := suite.doJSON("PUT", "/profile", map[string]any{"confidence": map[string]float64{}})
	defer resp.Body.Close()
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

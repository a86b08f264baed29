//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// APIBaseURL points at the running watchly-backend instance under test
var APIBaseURL = envOrDefault("INTEGRATION_API_URL", "http://localhost:8080/api/v1")

// HealthBaseURL is the unauthenticated root of the same instance
var HealthBaseURL = envOrDefault("INTEGRATION_HEALTH_URL", "http://localhost:8080")

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// testToken mints a JWT for the given user with the shared secret the
// service validates against
func testToken(userID uuid.UUID) string {
	secret := envOrDefault("JWT_SECRET", "change-me-in-production")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte(secret))
	return signed
}

// IntegrationTestSuite runs all integration tests in order
type IntegrationTestSuite struct {
	suite.Suite
	client *http.Client
}

func (suite *IntegrationTestSuite) SetupSuite() {
	suite.client = &http.Client{Timeout: 30 * time.Second}

	// Wait for services to be ready
	suite.waitForServices()
}

func (suite *IntegrationTestSuite) waitForServices() {
	maxRetries := 30
	retryDelay := 2 * time.Second

	suite.T().Log("Waiting for services to be ready...")

	for i := 0; i < maxRetries; i++ {
		resp, err := suite.client.Get(HealthBaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			suite.T().Log("✅ Watchly API service is ready")
			break
		}
		if resp != nil {
			resp.Body.Close()
		}
		if i == maxRetries-1 {
			suite.T().Fatal("❌ Watchly API service is not ready after maximum retries")
		}
		time.Sleep(retryDelay)
	}

	suite.T().Log("🚀 All services are ready! Starting integration tests...")
}

func (suite *IntegrationTestSuite) TestServiceHealthChecks() {
	resp, err := suite.client.Get(HealthBaseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	resp, err = suite.client.Get(HealthBaseURL + "/health/detailed")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)
}

func (suite *IntegrationTestSuite) TestUnauthorizedAccessRejected() {
	resp, err := suite.client.Get(APIBaseURL + "/watchlist")
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// TestIntegrationSuite runs all integration test suites
func TestIntegrationSuite(t *testing.T) {
	fmt.Println("🧪 Running Watchly Backend Integration Tests")
	fmt.Println("================================================")
	fmt.Printf("API URL: %s\n", APIBaseURL)
	fmt.Println("================================================")

	// Run basic integration suite first
	suite.Run(t, new(IntegrationTestSuite))

	fmt.Println("\n📋 Running Watchlist Tests...")
	suite.Run(t, new(WatchlistTestSuite))

	fmt.Println("\n🎯 Running Taste Profile Tests...")
	suite.Run(t, new(ProfileTestSuite))

	fmt.Println("\n💡 Running Recommendation Tests...")
	suite.Run(t, new(RecommendationTestSuite))

	fmt.Println("\n✅ All integration tests completed!")
}

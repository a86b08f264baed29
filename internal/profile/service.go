package profile

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/dustin/watchly-backend/internal/taste"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new taste profile service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: log.WithComponent("profile-service"),
	}
}

func (s *service) GetProfile(userID uuid.UUID) (*TasteProfile, error) {
	stored, err := s.repo.FindByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("taste profile not found")
	}
	return stored, nil
}

func (s *service) SaveProfile(userID uuid.UUID, req *SaveProfileRequest) (*TasteProfile, error) {
	// Re-apply the per-dimension cap so a misbehaving client cannot store
	// weights outside the contract range
	capped := make(map[string]float64, len(req.Vector))
	for dim, weight := range req.Vector {
		capped[dim] = math.Max(-taste.MaxWeight, math.Min(taste.MaxWeight, weight))
	}

	vectorJSON, err := json.Marshal(capped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode vector: %w", err)
	}

	stored := &TasteProfile{
		UserID:     userID,
		VectorJSON: string(vectorJSON),
		Version:    req.Version,
	}
	if stored.Version == 0 {
		stored.Version = taste.DimensionTableVersion
	}

	if len(req.Confidence) > 0 {
		confidenceJSON, err := json.Marshal(req.Confidence)
		if err != nil {
			return nil, fmt.Errorf("failed to encode confidence: %w", err)
		}
		stored.ConfidenceJSON = string(confidenceJSON)
	}

	if err := s.repo.Upsert(stored); err != nil {
		s.logger.Error("Failed to save taste profile for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("failed to save taste profile: %w", err)
	}

	s.logger.Info("Taste profile saved for user " + userID.String())
	return stored, nil
}

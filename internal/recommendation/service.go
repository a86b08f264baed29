package recommendation

import (
	"context"
	"fmt"

	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	engine *Engine
	logger *logger.Logger
}

// NewService creates a new recommendation service
func NewService(engine *Engine, log *logger.Logger) Service {
	return &service{
		engine: engine,
		logger: log.WithComponent("recommendation-service"),
	}
}

func (s *service) GetRecommendations(ctx context.Context, userID uuid.UUID, req Request) []Recommendation {
	recs := s.engine.Recommend(ctx, userID, req)
	if recs == nil {
		recs = []Recommendation{}
	}

	s.logger.Info("Recommendations served for user " + userID.String() + ": " + fmt.Sprintf("%d", len(recs)))
	return recs
}

func (s *service) GetHiddenGems(ctx context.Context, userID uuid.UUID, req Request) []Recommendation {
	recs := s.engine.HiddenGems(ctx, userID, req)
	if recs == nil {
		recs = []Recommendation{}
	}

	s.logger.Info("Hidden gems served for user " + userID.String() + ": " + fmt.Sprintf("%d", len(recs)))
	return recs
}

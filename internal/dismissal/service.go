package dismissal

import (
	"fmt"
	"time"

	"github.com/dustin/watchly-backend/config"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a dismissal service with validation and defaults
func NewService(cfg *config.RecommendationConfig, repo Repository, log *logger.Logger) (Service, error) {
	ttl := 30 * 24 * time.Hour
	if cfg != nil && cfg.DismissalTTL != "" {
		duration, err := time.ParseDuration(cfg.DismissalTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid dismissal TTL '%s': %v", cfg.DismissalTTL, err)
		}
		ttl = duration
	}

	return &service{
		repo:   repo,
		ttl:    ttl,
		logger: log.WithComponent("dismissal-service"),
	}, nil
}

func (s *service) Dismiss(userID uuid.UUID, mediaType string, tmdbID int) error {
	d := &Dismissal{
		UserID:    userID,
		Key:       TitleKey(mediaType, tmdbID),
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.repo.Create(d); err != nil {
		s.logger.Error("Failed to dismiss " + d.Key + " for user " + userID.String() + ": " + err.Error())
		return fmt.Errorf("failed to dismiss title: %w", err)
	}

	s.logger.Info("Title dismissed for user " + userID.String() + ": " + d.Key)
	return nil
}

func (s *service) DismissedKeys(userID uuid.UUID) (map[string]struct{}, error) {
	keys, err := s.repo.DismissedKeys(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dismissed titles: %w", err)
	}
	return keys, nil
}

func (s *service) CleanExpired(userID uuid.UUID) error {
	if err := s.repo.DeleteExpiredForUser(userID, time.Now()); err != nil {
		return fmt.Errorf("failed to clean expired dismissals: %w", err)
	}
	return nil
}

// SweepExpired removes expired dismissals across all users; wired to the
// background sweep worker.
func (s *service) SweepExpired() error {
	deleted, err := s.repo.DeleteExpired(time.Now())
	if err != nil {
		return fmt.Errorf("failed to sweep expired dismissals: %w", err)
	}

	if deleted > 0 {
		s.logger.Info(fmt.Sprintf("Swept %d expired dismissals", deleted))
	}
	return nil
}

package watchlist

import (
	"fmt"
	"time"

	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new watchlist service
func NewService(repo Repository, log *logger.Logger) Service {
	return &service{
		repo:   repo,
		logger: log.WithComponent("watchlist-service"),
	}
}

func (s *service) AddItem(userID uuid.UUID, req *AddItemRequest) (*Item, error) {
	existing, err := s.repo.FindByUserAndTitle(userID, req.MediaType, req.TMDBID)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("title already on watchlist")
	}

	item := &Item{
		UserID:     userID,
		TMDBID:     req.TMDBID,
		MediaType:  req.MediaType,
		Title:      req.Title,
		Status:     StatusWantToWatch,
		PosterPath: req.PosterPath,
	}
	item.SetGenreIDs(req.GenreIDs)

	if err := s.repo.Create(item); err != nil {
		s.logger.Error("Failed to add watchlist item for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("failed to add watchlist item: %w", err)
	}

	s.logger.Info("Watchlist item added for user " + userID.String() + ": " + item.Key())
	return item, nil
}

func (s *service) GetWatchlist(userID uuid.UUID) ([]*Item, error) {
	items, err := s.repo.FindByUserID(userID)
	if err != nil {
		s.logger.Error("Failed to get watchlist for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("failed to get watchlist: %w", err)
	}
	return items, nil
}

func (s *service) UpdateItem(userID uuid.UUID, mediaType string, tmdbID int, req *UpdateItemRequest) (*Item, error) {
	item, err := s.repo.FindByUserAndTitle(userID, mediaType, tmdbID)
	if err != nil {
		return nil, fmt.Errorf("watchlist item not found")
	}

	if req.Status != "" {
		item.Status = req.Status
		if req.Status == StatusWatched && item.WatchedAt == nil {
			now := time.Now()
			item.WatchedAt = &now
		}
	}

	if req.Rating != "" {
		if item.Status != StatusWatched {
			return nil, fmt.Errorf("rating requires watched status")
		}
		item.Rating = req.Rating
	}

	if err := s.repo.Update(item); err != nil {
		s.logger.Error("Failed to update watchlist item " + item.Key() + " for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("failed to update watchlist item: %w", err)
	}

	return item, nil
}

func (s *service) RemoveItem(userID uuid.UUID, mediaType string, tmdbID int) error {
	item, err := s.repo.FindByUserAndTitle(userID, mediaType, tmdbID)
	if err != nil {
		return fmt.Errorf("watchlist item not found")
	}

	if err := s.repo.Delete(item.ID); err != nil {
		s.logger.Error("Failed to remove watchlist item " + item.Key() + " for user " + userID.String() + ": " + err.Error())
		return fmt.Errorf("failed to remove watchlist item: %w", err)
	}

	s.logger.Info("Watchlist item removed for user " + userID.String() + ": " + item.Key())
	return nil
}

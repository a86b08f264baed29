package repository

import (
	"fmt"

	watchlistPkg "github.com/dustin/watchly-backend/internal/watchlist"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormWatchlistRepository implements the watchlist.Repository interface
type gormWatchlistRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMWatchlistRepository creates a new GORM-based watchlist repository
func NewGORMWatchlistRepository(db *gorm.DB, log *logger.Logger) watchlistPkg.Repository {
	return &gormWatchlistRepository{
		db:     db,
		logger: log.WithComponent("gorm-watchlist-repository"),
	}
}

func (r *gormWatchlistRepository) Create(item *watchlistPkg.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		r.logger.Error("Failed to create watchlist item " + item.Key() + " for user " + item.UserID.String() + ": " + err.Error())
		return fmt.Errorf("failed to create watchlist item: %w", err)
	}
	return nil
}

func (r *gormWatchlistRepository) FindByUserID(userID uuid.UUID) ([]*watchlistPkg.Item, error) {
	var items []*watchlistPkg.Item

	err := r.db.Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error
	if err != nil {
		r.logger.Error("Database error finding watchlist for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return items, nil
}

func (r *gormWatchlistRepository) FindByUserAndTitle(userID uuid.UUID, mediaType string, tmdbID int) (*watchlistPkg.Item, error) {
	var item watchlistPkg.Item

	err := r.db.Where("user_id = ? AND media_type = ? AND tmdb_id = ?", userID, mediaType, tmdbID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("watchlist item not found")
		}
		r.logger.Error("Database error finding watchlist item for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &item, nil
}

// FindWatchedByRating returns watched items carrying the given rating,
// most recently watched first; the engine uses these as similar-content
// seeds.
func (r *gormWatchlistRepository) FindWatchedByRating(userID uuid.UUID, rating string) ([]*watchlistPkg.Item, error) {
	var items []*watchlistPkg.Item

	err := r.db.Where("user_id = ? AND status = ? AND rating = ?", userID, watchlistPkg.StatusWatched, rating).
		Order("watched_at DESC NULLS LAST").
		Find(&items).Error
	if err != nil {
		r.logger.Error("Database error finding rated items for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return items, nil
}

func (r *gormWatchlistRepository) Update(item *watchlistPkg.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		r.logger.Error("Failed to update watchlist item " + item.Key() + " for user " + item.UserID.String() + ": " + err.Error())
		return fmt.Errorf("failed to update watchlist item: %w", err)
	}
	return nil
}

func (r *gormWatchlistRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&watchlistPkg.Item{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete watchlist item " + id.String() + ": " + result.Error.Error())
		return fmt.Errorf("failed to delete watchlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("watchlist item not found")
	}
	return nil
}

package repository

import (
	"fmt"
	"time"

	dismissalPkg "github.com/dustin/watchly-backend/internal/dismissal"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormDismissalRepository implements the dismissal.Repository interface
type gormDismissalRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMDismissalRepository creates a new GORM-based dismissal repository
func NewGORMDismissalRepository(db *gorm.DB, log *logger.Logger) dismissalPkg.Repository {
	return &gormDismissalRepository{
		db:     db,
		logger: log.WithComponent("gorm-dismissal-repository"),
	}
}

// Create records a dismissal; re-dismissing a title refreshes its expiry
func (r *gormDismissalRepository) Create(d *dismissalPkg.Dismissal) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"dismissed_at", "expires_at"}),
	}).Create(d).Error
	if err != nil {
		r.logger.Error("Failed to create dismissal " + d.Key + " for user " + d.UserID.String() + ": " + err.Error())
		return fmt.Errorf("failed to create dismissal: %w", err)
	}

	return nil
}

func (r *gormDismissalRepository) DismissedKeys(userID uuid.UUID) (map[string]struct{}, error) {
	var keys []string

	err := r.db.Model(&dismissalPkg.Dismissal{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Pluck("key", &keys).Error
	if err != nil {
		r.logger.Error("Database error finding dismissals for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set, nil
}

func (r *gormDismissalRepository) DeleteExpiredForUser(userID uuid.UUID, now time.Time) error {
	err := r.db.Where("user_id = ? AND expires_at <= ?", userID, now).
		Delete(&dismissalPkg.Dismissal{}).Error
	if err != nil {
		r.logger.Error("Failed to delete expired dismissals for user " + userID.String() + ": " + err.Error())
		return fmt.Errorf("failed to delete expired dismissals: %w", err)
	}
	return nil
}

func (r *gormDismissalRepository) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at <= ?", now).Delete(&dismissalPkg.Dismissal{})
	if result.Error != nil {
		r.logger.Error("Failed to delete expired dismissals: " + result.Error.Error())
		return 0, fmt.Errorf("failed to delete expired dismissals: %w", result.Error)
	}
	return result.RowsAffected, nil
}

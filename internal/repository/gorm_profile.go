package repository

import (
	"fmt"

	profilePkg "github.com/dustin/watchly-backend/internal/profile"
	"github.com/dustin/watchly-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormProfileRepository implements the profile.Repository interface
type gormProfileRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewGORMProfileRepository creates a new GORM-based taste profile repository
func NewGORMProfileRepository(db *gorm.DB, log *logger.Logger) profilePkg.Repository {
	return &gormProfileRepository{
		db:     db,
		logger: log.WithComponent("gorm-profile-repository"),
	}
}

func (r *gormProfileRepository) FindByUserID(userID uuid.UUID) (*profilePkg.TasteProfile, error) {
	var stored profilePkg.TasteProfile

	err := r.db.First(&stored, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("taste profile not found")
		}
		r.logger.Error("Database error finding taste profile for user " + userID.String() + ": " + err.Error())
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &stored, nil
}

func (r *gormProfileRepository) Upsert(stored *profilePkg.TasteProfile) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stored).Error
	if err != nil {
		r.logger.Error("Failed to upsert taste profile for user " + stored.UserID.String() + ": " + err.Error())
		return fmt.Errorf("failed to upsert taste profile: %w", err)
	}

	return nil
}

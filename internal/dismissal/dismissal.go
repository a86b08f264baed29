package dismissal

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Dismissal records a recommendation the user waved away. Dismissed
// titles stay out of recommendation results until the entry expires.
type Dismissal struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_user_dismissals;uniqueIndex:idx_user_key,composite:user_key"`
	Key         string    `json:"key" gorm:"size:40;not null;uniqueIndex:idx_user_key,composite:user_key"`
	DismissedAt time.Time `json:"dismissed_at" gorm:"autoCreateTime"`
	ExpiresAt   time.Time `json:"expires_at" gorm:"index"`
}

// TitleKey builds the "type-id" identity used across dismissals and caches
func TitleKey(mediaType string, tmdbID int) string {
	return mediaType + "-" + strconv.Itoa(tmdbID)
}

// Repository defines the interface for dismissal data access
type Repository interface {
	Create(d *Dismissal) error
	DismissedKeys(userID uuid.UUID) (map[string]struct{}, error)
	DeleteExpiredForUser(userID uuid.UUID, now time.Time) error
	DeleteExpired(now time.Time) (int64, error)
}

// Service defines the interface for dismissal business logic
type Service interface {
	Dismiss(userID uuid.UUID, mediaType string, tmdbID int) error
	DismissedKeys(userID uuid.UUID) (map[string]struct{}, error)
	CleanExpired(userID uuid.UUID) error
	SweepExpired() error
}

// DismissRequest identifies the title being dismissed
type DismissRequest struct {
	TMDBID    int    `json:"tmdb_id" binding:"required"`
	MediaType string `json:"media_type" binding:"required,oneof=movie tv"`
}

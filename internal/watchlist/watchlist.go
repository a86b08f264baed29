package watchlist

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item represents one title on a user's watchlist
type Item struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_user_watchlist;uniqueIndex:idx_user_title,composite:user_title"`
	TMDBID     int        `json:"tmdb_id" gorm:"not null;uniqueIndex:idx_user_title,composite:user_title"`
	MediaType  string     `json:"media_type" gorm:"size:10;not null;uniqueIndex:idx_user_title,composite:user_title"`
	Title      string     `json:"title" gorm:"size:500"`
	Status     string     `json:"status" gorm:"size:20;default:'want_to_watch';index"`
	Rating     string     `json:"rating" gorm:"size:20"`
	GenreIDs   string     `json:"-" gorm:"size:255"`
	PosterPath string     `json:"poster_path" gorm:"size:255"`
	AddedAt    time.Time  `json:"added_at" gorm:"autoCreateTime;index"`
	WatchedAt  *time.Time `json:"watched_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// Status constants
const (
	StatusWantToWatch = "want_to_watch"
	StatusWatched     = "watched"
)

// Rating constants for watched titles
const (
	RatingLiked    = "liked"
	RatingNeutral  = "neutral"
	RatingDisliked = "disliked"
)

// GenreIDList parses the serialized genre ids into a slice
func (i *Item) GenreIDList() []int {
	if i.GenreIDs == "" {
		return nil
	}

	parts := strings.Split(i.GenreIDs, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// SetGenreIDs serializes genre ids for storage
func (i *Item) SetGenreIDs(ids []int) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	i.GenreIDs = strings.Join(parts, ",")
}

// Key returns the "type-id" identity used by the dismissal store and caches
func (i *Item) Key() string {
	return i.MediaType + "-" + strconv.Itoa(i.TMDBID)
}

// Repository defines the interface for watchlist data access
type Repository interface {
	Create(item *Item) error
	FindByUserID(userID uuid.UUID) ([]*Item, error)
	FindByUserAndTitle(userID uuid.UUID, mediaType string, tmdbID int) (*Item, error)
	FindWatchedByRating(userID uuid.UUID, rating string) ([]*Item, error)
	Update(item *Item) error
	Delete(id uuid.UUID) error
}

// Service defines the interface for watchlist business logic
type Service interface {
	AddItem(userID uuid.UUID, req *AddItemRequest) (*Item, error)
	GetWatchlist(userID uuid.UUID) ([]*Item, error)
	UpdateItem(userID uuid.UUID, mediaType string, tmdbID int, req *UpdateItemRequest) (*Item, error)
	RemoveItem(userID uuid.UUID, mediaType string, tmdbID int) error
}

// AddItemRequest represents a watchlist addition
type AddItemRequest struct {
	TMDBID     int    `json:"tmdb_id" binding:"required"`
	MediaType  string `json:"media_type" binding:"required,oneof=movie tv"`
	Title      string `json:"title" binding:"required"`
	GenreIDs   []int  `json:"genre_ids"`
	PosterPath string `json:"poster_path"`
}

// UpdateItemRequest represents a status/rating change
type UpdateItemRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=want_to_watch watched"`
	Rating string `json:"rating" binding:"omitempty,oneof=liked neutral disliked"`
}

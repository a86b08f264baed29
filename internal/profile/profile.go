package profile

import (
	"encoding/json"
	"time"

	"github.com/dustin/watchly-backend/internal/taste"
	"github.com/google/uuid"
)

// TasteProfile stores the preference vector produced by the onboarding
// quiz. This service only persists and serves it; the vector semantics
// live in the taste package's versioned dimension table.
type TasteProfile struct {
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	VectorJSON     string    `json:"-" gorm:"type:jsonb;column:vector"`
	ConfidenceJSON string    `json:"-" gorm:"type:jsonb;column:confidence"`
	Version        int       `json:"version" gorm:"default:1"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Vector decodes the stored taste vector. Malformed or empty data decodes
// to nil, which downstream treats as "no taste vector".
func (p *TasteProfile) Vector() taste.Vector {
	if p == nil || p.VectorJSON == "" {
		return nil
	}

	var v taste.Vector
	if err := json.Unmarshal([]byte(p.VectorJSON), &v); err != nil {
		return nil
	}
	if len(v) == 0 {
		return nil
	}
	return v
}

// Confidence decodes the stored confidence vector, nil when absent or
// malformed. A nil confidence means uniform weighting.
func (p *TasteProfile) Confidence() taste.Confidence {
	if p == nil || p.ConfidenceJSON == "" {
		return nil
	}

	var c taste.Confidence
	if err := json.Unmarshal([]byte(p.ConfidenceJSON), &c); err != nil {
		return nil
	}
	if len(c) == 0 {
		return nil
	}
	return c
}

// Repository defines the interface for taste profile data access
type Repository interface {
	FindByUserID(userID uuid.UUID) (*TasteProfile, error)
	Upsert(profile *TasteProfile) error
}

// Service defines the interface for taste profile business logic
type Service interface {
	GetProfile(userID uuid.UUID) (*TasteProfile, error)
	SaveProfile(userID uuid.UUID, req *SaveProfileRequest) (*TasteProfile, error)
}

// SaveProfileRequest carries the onboarding output
type SaveProfileRequest struct {
	Vector     map[string]float64 `json:"vector" binding:"required"`
	Confidence map[string]float64 `json:"confidence"`
	Version    int                `json:"version"`
}

// ProfileResponse is the API projection of a stored profile
type ProfileResponse struct {
	UserID     uuid.UUID          `json:"user_id"`
	Vector     map[string]float64 `json:"vector"`
	Confidence map[string]float64 `json:"confidence,omitempty"`
	Version    int                `json:"version"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// ToResponse converts a stored profile for API output
func (p *TasteProfile) ToResponse() *ProfileResponse {
	resp := &ProfileResponse{
		UserID:    p.UserID,
		Vector:    map[string]float64{},
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
	}
	for dim, w := range p.Vector() {
		resp.Vector[string(dim)] = w
	}
	if conf := p.Confidence(); conf != nil {
		resp.Confidence = map[string]float64{}
		for dim, c := range conf {
			resp.Confidence[string(dim)] = c
		}
	}
	return resp
}

package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AIModel is a registered engine that can be seated in matches. Capabilities
// name the game keys it can play.
type AIModel struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Description  string         `json:"description"`
	APIProvider  string         `json:"api_provider"`
	APIModelID   string         `json:"api_model_id"`
	OwnerID      string         `json:"owner_id" gorm:"type:uuid;index"`
	Capabilities datatypes.JSON `json:"capabilities"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *AIModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// GetCapabilities decodes the JSON capability list, returning nil on bad data.
func (m *AIModel) GetCapabilities() []string {
	var caps []string
	if len(m.Capabilities) == 0 {
		return nil
	}
	if err := json.Unmarshal(m.Capabilities, &caps); err != nil {
		return nil
	}
	return caps
}

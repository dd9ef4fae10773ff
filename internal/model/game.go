package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameStatus string

const (
	GameDraft GameStatus = "DRAFT"
	GameLive  GameStatus = "LIVE"
)

type GameSettingType string

const (
	SettingInt     GameSettingType = "INT"
	SettingFloat   GameSettingType = "FLOAT"
	SettingBoolean GameSettingType = "BOOLEAN"
	SettingText    GameSettingType = "TEXT"
	SettingEnum    GameSettingType = "ENUM"
)

type GameDefinition struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey"`
	Key              string         `json:"key" gorm:"uniqueIndex;not null"`
	Name             string         `json:"name" gorm:"not null"`
	DescriptionShort string         `json:"description_short"`
	Roles            datatypes.JSON `json:"roles"`
	Capabilities     datatypes.JSON `json:"capabilities"`
	MaxPlayers       int            `json:"max_players" gorm:"default:2"`
	Status           GameStatus     `json:"status" gorm:"type:varchar(8);default:'DRAFT'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Settings []GameSetting `json:"settings,omitempty" gorm:"foreignKey:GameID"`
	UISchema *GameUISchema `json:"ui_schema,omitempty" gorm:"foreignKey:GameID"`
	Releases []GameRelease `json:"releases,omitempty" gorm:"foreignKey:GameID"`
}

func (g *GameDefinition) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type GameSetting struct {
	ID           string           `json:"id" gorm:"type:uuid;primaryKey"`
	GameID       string           `json:"game_id" gorm:"type:uuid;not null;uniqueIndex:idx_game_setting,priority:1"`
	Key          string           `json:"key" gorm:"not null;uniqueIndex:idx_game_setting,priority:2"`
	Type         GameSettingType  `json:"type" gorm:"type:varchar(8);not null"`
	MinValue     datatypes.JSON   `json:"min_value"`
	MaxValue     datatypes.JSON   `json:"max_value"`
	DefaultValue datatypes.JSON   `json:"default_value"`
	TierRequired SubscriptionTier `json:"tier_required" gorm:"type:varchar(16);default:'FREE'"`
	HelpText     string           `json:"help_text"`
	EnumOptions  datatypes.JSON   `json:"enum_options"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *GameSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type GameUISchema struct {
	ID               string         `json:"id" gorm:"type:uuid;primaryKey"`
	GameID           string         `json:"game_id" gorm:"type:uuid;uniqueIndex;not null"`
	CreateFormLayout datatypes.JSON `json:"create_form_layout"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *GameUISchema) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type GameRelease struct {
	ID     string     `json:"id" gorm:"type:uuid;primaryKey"`
	GameID string     `json:"game_id" gorm:"type:uuid;not null;index"`
	Status GameStatus `json:"status" gorm:"type:varchar(8);default:'DRAFT'"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *GameRelease) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

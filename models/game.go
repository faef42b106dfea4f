package models

import (
	"errors"
	"fmt"
	"time"
)

// CollectCooldown is the minimum time between two resource collections.
const CollectCooldown = time.Hour

// Default values of a freshly initialized game state.
const (
	DefaultResourceAmount = 0
	DefaultBuildingLevel  = 1
)

// Per-level yields of a single collection.
const (
	WoodPerSawmillLevel = 10
	StonePerQuarryLevel = 5
	GoldPerMineLevel    = 2
)

// ErrInvalidBuildingType is returned when a building name is outside the
// closed set {sawmill, quarry, mine}.
var ErrInvalidBuildingType = errors.New("invalid building type")

// Resources is the per-user resource record owned by the game service.
type Resources struct {
	UserID        int64     `json:"user_id"`
	Wood          int64     `json:"wood"`
	Stone         int64     `json:"stone"`
	Gold          int64     `json:"gold"`
	LastCollected time.Time `json:"last_collected"`
}

// TableName returns the name of the database table
// associated with the Resources model.
func (r Resources) TableName() string {
	return "resources"
}

// Buildings is the per-user building record, one-to-one with [Resources].
type Buildings struct {
	UserID       int64 `json:"user_id"`
	SawmillLevel int   `json:"sawmill_level"`
	QuarryLevel  int   `json:"quarry_level"`
	MineLevel    int   `json:"mine_level"`
}

// TableName returns the name of the database table
// associated with the Buildings model.
func (b Buildings) TableName() string {
	return "buildings"
}

// Yield returns the resources produced by one collection at the current
// building levels. Only the counters are populated.
func (b Buildings) Yield() Resources {
	return Resources{
		Wood:  int64(b.SawmillLevel) * WoodPerSawmillLevel,
		Stone: int64(b.QuarryLevel) * StonePerQuarryLevel,
		Gold:  int64(b.MineLevel) * GoldPerMineLevel,
	}
}

// GameState is the complete view of a user's game records.
type GameState struct {
	Username  string    `json:"username,omitempty"`
	Resources Resources `json:"resources"`
	Buildings Buildings `json:"buildings"`
}

// NextCollectAt returns the earliest moment the next collection is allowed.
func (s GameState) NextCollectAt() time.Time {
	return s.Resources.LastCollected.Add(CollectCooldown)
}

// CanCollect reports whether the collection cooldown has elapsed at now.
func (s GameState) CanCollect(now time.Time) bool {
	return !now.Before(s.NextCollectAt())
}

// NewGameState returns the default state for a user that is initialized at now.
func NewGameState(userID int64, now time.Time) GameState {
	return GameState{
		Resources: Resources{
			UserID:        userID,
			Wood:          DefaultResourceAmount,
			Stone:         DefaultResourceAmount,
			Gold:          DefaultResourceAmount,
			LastCollected: now,
		},
		Buildings: Buildings{
			UserID:       userID,
			SawmillLevel: DefaultBuildingLevel,
			QuarryLevel:  DefaultBuildingLevel,
			MineLevel:    DefaultBuildingLevel,
		},
	}
}

// BuildingType enumerates the buildings a user can upgrade.
type BuildingType int

const (
	Sawmill BuildingType = iota + 1
	Quarry
	Mine
)

var buildingTypeNames = map[BuildingType]string{
	Sawmill: "sawmill",
	Quarry:  "quarry",
	Mine:    "mine",
}

// BuildingTypes lists every valid building type in display order.
func BuildingTypes() []BuildingType {
	return []BuildingType{Sawmill, Quarry, Mine}
}

// ParseBuildingType maps a building name to its [BuildingType].
// Names are matched exactly; anything else yields [ErrInvalidBuildingType].
func ParseBuildingType(name string) (BuildingType, error) {
	for buildingType, buildingName := range buildingTypeNames {
		if buildingName == name {
			return buildingType, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidBuildingType, name)
}

// String returns the lowercase building name used in URLs and messages.
func (t BuildingType) String() string {
	if name, ok := buildingTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("BuildingType(%d)", int(t))
}

// Valid reports whether t is one of the known building types.
func (t BuildingType) Valid() bool {
	_, ok := buildingTypeNames[t]
	return ok
}

// Level returns the level of building t in b.
func (t BuildingType) Level(b Buildings) int {
	switch t {
	case Sawmill:
		return b.SawmillLevel
	case Quarry:
		return b.QuarryLevel
	case Mine:
		return b.MineLevel
	default:
		return 0
	}
}

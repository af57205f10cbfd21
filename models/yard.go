package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Yard is a shipyard location. Boundary holds a GeoJSON Polygon (or
// MultiPolygon) used to check that position-tagged progress reports
// were actually submitted from inside the yard.
type Yard struct {
	ID       uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string         `gorm:"column:name;size:255;uniqueIndex;not null" json:"name"`
	Boundary datatypes.JSON `gorm:"column:boundary;type:jsonb" json:"boundary,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

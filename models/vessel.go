package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Vessel is reference data: one ship a customer brings to the yard.
// Work orders hang off it; the vessel record itself rarely changes.
type Vessel struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"column:name;size:255;not null" json:"name"`
	VesselType     string         `gorm:"column:vessel_type;size:100;not null" json:"vesselType"` // Tug, Barge, Tanker, ...
	OwnerCompany   string         `gorm:"column:owner_company;size:255;not null" json:"ownerCompany"`
	IMONumber      *string        `gorm:"column:imo_number;size:20" json:"imoNumber,omitempty"`
	Flag           *string        `gorm:"column:flag;size:100" json:"flag,omitempty"`
	ClassNotations pq.StringArray `gorm:"column:class_notations;type:text[]" json:"classNotations,omitempty"`

	WorkOrders []WorkOrder `gorm:"foreignKey:VesselID" json:"workOrders,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

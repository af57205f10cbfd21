package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationRecord is a surveyor sign-off on one work detail.
type VerificationRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkDetailID uuid.UUID `gorm:"type:uuid;index;not null" json:"workDetailId"`
	Verified     bool      `gorm:"column:verified;not null" json:"verified"`
	VerifiedDate JSONTime  `gorm:"column:verified_date;not null" json:"verifiedDate"`
	VerifierName string    `gorm:"column:verifier_name;size:255;not null" json:"verifierName"`
	Remarks      *string   `gorm:"column:remarks" json:"remarks,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

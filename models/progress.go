package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressReport is a dated percentage-complete submission. Exactly one
// of WorkDetailID / WorkOrderID is set: detail-scoped reports are the
// normal case, order-scoped reports cover jobs tracked without a
// detail breakdown. At most one report may exist per (parent, date)
// pair; the handler enforces this with an existence check before insert.
type ProgressReport struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkDetailID  *uuid.UUID `gorm:"type:uuid;index" json:"workDetailId,omitempty"`
	WorkOrderID   *uuid.UUID `gorm:"type:uuid;index" json:"workOrderId,omitempty"`
	Percentage    int        `gorm:"column:percentage;not null" json:"percentage"`
	ReportDate    JSONTime   `gorm:"column:report_date;not null" json:"reportDate"`
	ReporterName  string     `gorm:"column:reporter_name;size:255;not null" json:"reporterName"`
	ReporterPhone string     `gorm:"column:reporter_phone;size:15" json:"reporterPhone,omitempty"`
	Remarks       *string    `gorm:"column:remarks" json:"remarks,omitempty"`
	Latitude      *float64   `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude     *float64   `gorm:"column:longitude" json:"longitude,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

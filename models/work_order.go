package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkOrder is one contracted job against a vessel. Progress and
// completion are never stored on the order itself; they are derived
// from the work details' progress reports on every read.
type WorkOrder struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	VesselID      uuid.UUID `gorm:"type:uuid;index;not null" json:"vesselId"`
	Vessel        Vessel    `gorm:"foreignKey:VesselID" json:"vessel,omitempty"`
	YardID        *uuid.UUID `gorm:"type:uuid;index" json:"yardId,omitempty"`
	Yard          *Yard      `gorm:"foreignKey:YardID" json:"yard,omitempty"`
	CustomerRefNo string     `gorm:"column:customer_ref_no;size:100;not null" json:"customerRefNo"`
	ShipyardRefNo string     `gorm:"column:shipyard_ref_no;size:100;not null" json:"shipyardRefNo"`
	Description   string     `gorm:"column:description;type:text" json:"description"`
	OrderDate     JSONTime   `gorm:"column:order_date;not null" json:"orderDate"`
	StartDate     *JSONTime  `gorm:"column:start_date" json:"startDate,omitempty"`
	TargetDate    *JSONTime  `gorm:"column:target_date" json:"targetDate,omitempty"`

	WorkDetails     []WorkDetail     `gorm:"foreignKey:WorkOrderID" json:"workDetails,omitempty"`
	Invoices        []Invoice        `gorm:"foreignKey:WorkOrderID" json:"invoices,omitempty"`
	ProgressReports []ProgressReport `gorm:"foreignKey:WorkOrderID" json:"progressReports,omitempty"`
	BastpDocuments  []BastpDocument  `gorm:"foreignKey:WorkOrderID" json:"bastpDocuments,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// WorkDetail is a discrete task within a work order, tracked for
// progress independently of its siblings.
type WorkDetail struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkOrderID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"workOrderId"`
	WorkOrder    *WorkOrder `gorm:"foreignKey:WorkOrderID" json:"workOrder,omitempty"`
	Description  string     `gorm:"column:description;type:text;not null" json:"description"`
	PlannedStart *JSONTime  `gorm:"column:planned_start" json:"plannedStart,omitempty"`
	PlannedEnd   *JSONTime  `gorm:"column:planned_end" json:"plannedEnd,omitempty"`
	ActualStart  *JSONTime  `gorm:"column:actual_start" json:"actualStart,omitempty"`
	ActualEnd    *JSONTime  `gorm:"column:actual_end" json:"actualEnd,omitempty"`

	ProgressReports []ProgressReport     `gorm:"foreignKey:WorkDetailID" json:"progressReports,omitempty"`
	Verifications   []VerificationRecord `gorm:"foreignKey:WorkDetailID" json:"verifications,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

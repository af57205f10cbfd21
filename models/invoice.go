package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice payment status values. Transitions are single-row updates,
// last write wins.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Invoice bills one work order. In practice at most one active invoice
// exists per order; the export pipeline only ever looks at the first.
// Creation is gated on an uploaded BASTP (handover/acceptance) document.
type Invoice struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkOrderID     uuid.UUID      `gorm:"type:uuid;index;not null" json:"workOrderId"`
	InvoiceNumber   string         `gorm:"column:invoice_number;size:100;uniqueIndex;not null" json:"invoiceNumber"`
	Amount          float64        `gorm:"column:amount;not null" json:"amount"`
	Currency        string         `gorm:"column:currency;size:10;not null;default:'USD'" json:"currency"`
	PaymentStatus   string         `gorm:"column:payment_status;size:20;not null;default:'unpaid'" json:"paymentStatus"`
	InvoiceDate     JSONTime       `gorm:"column:invoice_date;not null" json:"invoiceDate"`
	DueDate         *JSONTime      `gorm:"column:due_date" json:"dueDate,omitempty"`
	PaidDate        *JSONTime      `gorm:"column:paid_date" json:"paidDate,omitempty"`
	BastpDocumentID *uuid.UUID     `gorm:"type:uuid" json:"bastpDocumentId,omitempty"`
	BastpDocument   *BastpDocument `gorm:"foreignKey:BastpDocumentID" json:"bastpDocument,omitempty"`
	Remarks         *string        `gorm:"column:remarks" json:"remarks,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BastpDocument is an uploaded handover/acceptance file for a work
// order. Files live in GCS (or a local dir during development); the
// row records where. Metadata holds whatever the uploading client sent
// alongside the file.
type BastpDocument struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	WorkOrderID uuid.UUID      `gorm:"type:uuid;index;not null" json:"workOrderId"`
	FileName    string         `gorm:"column:file_name;size:255;not null" json:"fileName"`
	StorageKey  string         `gorm:"column:storage_key;size:500;not null" json:"storageKey"`
	ContentType string         `gorm:"column:content_type;size:100" json:"contentType"`
	SizeBytes   int64          `gorm:"column:size_bytes" json:"sizeBytes"`
	UploadedBy  string         `gorm:"column:uploaded_by;size:255" json:"uploadedBy"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"p9e.in/marops/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250114_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Yard{}, &models.Vessel{},
					&models.WorkOrder{}, &models.WorkDetail{}, &models.ProgressReport{},
					&models.VerificationRecord{})
			},
		},
		{
			ID: "20250210_add_invoicing_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.BastpDocument{}, &models.Invoice{})
			},
		},
		{
			ID: "20250318_progress_parent_date_index",
			Migrate: func(tx *gorm.DB) error {
				// Backs the duplicate (parent, date) existence check on
				// progress insertion. Partial indexes because exactly one
				// parent column is set per row.
				if err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_progress_detail_date
					ON progress_reports (work_detail_id, report_date)
					WHERE work_detail_id IS NOT NULL AND deleted_at IS NULL`).Error; err != nil {
					return err
				}
				return tx.Exec(`CREATE INDEX IF NOT EXISTS idx_progress_order_date
					ON progress_reports (work_order_id, report_date)
					WHERE work_order_id IS NOT NULL AND deleted_at IS NULL`).Error
			},
		},
	})

	return m.Migrate()
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"medscan_gateway/models"
	"medscan_gateway/pkg/logging"
)

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Create(ctx context.Context, record *models.ScanRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *scanRepository) GetByID(ctx context.Context, scanID string) (*models.ScanRecord, error) {
	var res models.ScanRecord
	err := r.db.WithContext(ctx).Where("scan_id = ?", scanID).First(&res).Error
	if err != nil {
		logging.Logger.Error("fail GetByID", "error", err)
		return nil, err
	}
	return &res, nil
}

func (r *scanRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.ScanRecord, error) {
	var res []*models.ScanRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&res).Error
	if err != nil {
		logging.Logger.Error("fail ListByUser", "error", err)
		return nil, err
	}
	return res, nil
}

func (r *scanRepository) UpdateStatus(ctx context.Context, scanID string, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.ScanRecord{}).
		Where("scan_id = ?", scanID).
		Update("status", status).Error
}

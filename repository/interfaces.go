package repository

import (
	"context"

	"medscan_gateway/models"
)

type ScanRepository interface {
	Create(ctx context.Context, record *models.ScanRecord) error
	GetByID(ctx context.Context, scanID string) (*models.ScanRecord, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.ScanRecord, error)
	UpdateStatus(ctx context.Context, scanID string, status string) error
}

package services

import (
	"context"
	"time"

	"medscan_gateway/models"
	"medscan_gateway/platform/inference"
)

// InferenceAPI is the slice of the model backend the services use.
type InferenceAPI interface {
	AnalyzeImage(ctx context.Context, path string, scan *models.StagedScan, onProgress inference.ProgressFunc) (*models.BackendAnalysis, error)
	ChatWithReport(ctx context.Context, message, report string) (string, error)
	SearchDoctors(ctx context.Context, location, specialty string) ([]models.DoctorRecord, error)
	BookAppointment(ctx context.Context, booking *models.AppointmentRequest) error
}

type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
	Forward(ctx context.Context, location string) (*models.Coordinates, error)
}

// ReportStore is the durable hand-off between a finished analysis and
// the report chat.
type ReportStore interface {
	SetReport(ctx context.Context, userID, report string) error
	GetReport(ctx context.Context, userID string) (string, bool, error)
}

type ConsentStore interface {
	SetConsent(ctx context.Context, sessionID string, ttl time.Duration) error
	HasConsent(ctx context.Context, sessionID string) (bool, error)
}

type ScanEventPublisher interface {
	PublishScanEvent(event *models.ScanEvent) error
}

type ImageArchive interface {
	ArchiveImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

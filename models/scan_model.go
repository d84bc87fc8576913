package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Modality is the medical imaging category of an uploaded file.
type Modality string

const (
	ModalityXray       Modality = "xray"
	ModalityCT2D       Modality = "ct_2d"
	ModalityCT3D       Modality = "ct_3d"
	ModalityMRI2D      Modality = "mri_2d"
	ModalityMRI3D      Modality = "mri_3d"
	ModalityUltrasound Modality = "ultrasound"
)

// IngestSource tells the staging layer how the file reached the client.
// Only drag-and-drop enforces the image/* content-type check; the file
// picker never did, and that asymmetry is kept.
type IngestSource string

const (
	SourceDrop   IngestSource = "drop"
	SourcePicker IngestSource = "picker"
)

// StagedScan status values.
const (
	ScanStatusStaged    = "staged"
	ScanStatusUploading = "uploading"
	ScanStatusSucceeded = "succeeded"
	ScanStatusFailed    = "failed"
)

// StagedScan is one upload attempt held in the staging cache between
// file selection and analysis. Discarded on removal or TTL expiry.
type StagedScan struct {
	ID          string
	UserID      string
	Filename    string
	ContentType string
	Data        []byte
	Preview     string // base64 data URL
	Status      string
	Progress    int
	ErrorMsg    string
	StagedAt    time.Time
}

type StageScanResp struct {
	ScanID      string `json:"scan_id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Preview     string `json:"preview"`
	Status      string `json:"status"`
}

type AnalyzeScanReq struct {
	ImageType string `json:"image_type"`
}

// BackendAnalysis is the response shape shared by the prediction and the
// report endpoints of the model backend. Prediction responses carry
// predictions and, for non-xray modalities, the report fields as well;
// the xray report endpoint carries the report fields only.
type BackendAnalysis struct {
	Predictions json.RawMessage `json:"predictions,omitempty"`
	Report      string          `json:"report,omitempty"`
	Disease     string          `json:"disease,omitempty"`
	Symptoms    []string        `json:"symptoms,omitempty"`
}

// AnalysisResult is the normalized outcome of one analyze call and the
// single source of truth handed back to the client.
type AnalysisResult struct {
	ScanID       string          `json:"scan_id"`
	Predictions  json.RawMessage `json:"predictions"`
	Report       string          `json:"report"`
	Disease      string          `json:"disease"`
	Symptoms     []string        `json:"symptoms"`
	ImagePreview string          `json:"image_preview"`
	ImageType    Modality        `json:"image_type"`
}

// ScanRecord is the persisted analysis history row.
type ScanRecord struct {
	ScanID    string         `gorm:"column:scan_id;type:varchar(255);primaryKey" json:"scan_id"`
	UserID    string         `gorm:"column:user_id;type:varchar(255);not null;index:idx_scan_user" json:"user_id"`
	Filename  string         `gorm:"column:filename;type:varchar(512);not null" json:"filename"`
	FileKey   string         `gorm:"column:file_key;type:varchar(255);index:idx_scan_file_key" json:"file_key"`
	ImageType string         `gorm:"column:image_type;type:varchar(50);not null" json:"image_type"`
	Disease   string         `gorm:"column:disease;type:varchar(512)" json:"disease"`
	Report    string         `gorm:"column:report;type:text" json:"report"`
	Symptoms  pq.StringArray `gorm:"column:symptoms;type:text[]" json:"symptoms"`
	Status    string         `gorm:"column:status;type:varchar(50);default:'completed';index:idx_scan_status" json:"status"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp" json:"created_at"`
}

func (ScanRecord) TableName() string {
	return "scan_records"
}

const (
	RecordStatusCompleted = "completed"
	RecordStatusFailed    = "failed"
)

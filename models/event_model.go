package models

import "time"

type ScanEventType string

const (
	EventScanUploading ScanEventType = "uploading"
	EventScanProgress  ScanEventType = "progress"
	EventScanCompleted ScanEventType = "completed"
	EventScanFailed    ScanEventType = "failed"
)

type ProgressInfo struct {
	BytesSent  int64 `json:"bytes_sent"`
	BytesTotal int64 `json:"bytes_total"`
	Percentage int   `json:"percentage"`
}

type ScanEvent struct {
	Type      ScanEventType `json:"type"`
	ScanID    string        `json:"scan_id"`
	UserID    string        `json:"user_id"`
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Progress  *ProgressInfo `json:"progress,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

package services

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"medscan_gateway/models"
)

const ingestRejectMsg = "Please upload an image file."

// IngestService is the staging area between file selection and
// analysis. Attempts live in a TTL cache and disappear on removal or
// expiry, like the page state they replace.
type IngestService struct {
	staged *gocache.Cache
}

func NewIngestService(ttl time.Duration) *IngestService {
	return &IngestService{
		staged: gocache.New(ttl, 2*ttl),
	}
}

// Stage validates and stores one upload attempt. Only drag-and-drop
// sources get the image/* content-type check; a rejected drop stages
// nothing, so whatever the user had staged before stays untouched.
func (s *IngestService) Stage(userID, filename, contentType string, data []byte, source models.IngestSource) (*models.StagedScan, error) {
	if source == models.SourceDrop && !strings.HasPrefix(contentType, "image/") {
		return nil, NewValidationError(ingestRejectMsg)
	}

	scan := &models.StagedScan{
		ID:          uuid.New().String(),
		UserID:      userID,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
		Preview:     dataURL(contentType, data),
		Status:      models.ScanStatusStaged,
		StagedAt:    time.Now(),
	}
	s.staged.Set(scan.ID, scan, gocache.DefaultExpiration)
	return scan, nil
}

// Get returns the staged attempt when it exists and belongs to the user.
func (s *IngestService) Get(scanID, userID string) (*models.StagedScan, bool) {
	v, ok := s.staged.Get(scanID)
	if !ok {
		return nil, false
	}
	scan, ok := v.(*models.StagedScan)
	if !ok || scan.UserID != userID {
		return nil, false
	}
	return scan, true
}

// Remove discards the attempt: file, preview and error state all go.
func (s *IngestService) Remove(scanID, userID string) {
	if _, ok := s.Get(scanID, userID); ok {
		s.staged.Delete(scanID)
	}
}

func dataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

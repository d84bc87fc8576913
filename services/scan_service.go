package services

import (
	"context"

	"github.com/lib/pq"

	"medscan_gateway/models"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/repository"
)

const (
	noFileMsg        = "Please select a file first."
	noModalityMsg    = "Please select an image type first."
	badModalityMsg   = "Unsupported image type selected."
	uploadFailureMsg = "An error occurred during upload or analysis. Please try again."
	historyLimit     = 20
)

type modalityRoute struct {
	predictPath string
	reportPath  string // empty when the prediction response is authoritative
}

// modalityRoutes is the closed routing table; anything outside it is
// rejected before a single byte goes on the wire.
var modalityRoutes = map[models.Modality]modalityRoute{
	models.ModalityXray:       {predictPath: "/predict/xray/", reportPath: "/generate-report/xray/"},
	models.ModalityCT2D:       {predictPath: "/predict/ct/2d/"},
	models.ModalityCT3D:       {predictPath: "/predict/ct/3d/"},
	models.ModalityMRI2D:      {predictPath: "/predict/mri/2d/"},
	models.ModalityMRI3D:      {predictPath: "/predict/mri/3d/"},
	models.ModalityUltrasound: {predictPath: "/predict/ultrasound/"},
}

// ScanService runs the upload-and-analyze choreography: route by
// modality, stream the file to the prediction endpoint with progress
// events, fetch the x-ray report when required, normalize, persist the
// hand-offs. No retries; an in-flight attempt cannot be cancelled and a
// newer attempt simply wins by overwriting state.
type ScanService struct {
	ingest   *IngestService
	backend  InferenceAPI
	events   ScanEventPublisher
	reports  ReportStore
	archive  ImageArchive
	scanRepo repository.ScanRepository
}

func NewScanService(ingest *IngestService, backend InferenceAPI, events ScanEventPublisher, reports ReportStore, archive ImageArchive, scanRepo repository.ScanRepository) *ScanService {
	return &ScanService{
		ingest:   ingest,
		backend:  backend,
		events:   events,
		reports:  reports,
		archive:  archive,
		scanRepo: scanRepo,
	}
}

func (s *ScanService) Analyze(ctx context.Context, scanID, imageType, userID string) (*models.AnalysisResult, error) {
	scan, ok := s.ingest.Get(scanID, userID)
	if !ok {
		return nil, NewValidationError(noFileMsg)
	}
	if imageType == "" {
		return nil, NewValidationError(noModalityMsg)
	}
	modality := models.Modality(imageType)
	route, ok := modalityRoutes[modality]
	if !ok {
		return nil, NewValidationError(badModalityMsg)
	}

	scan.Status = models.ScanStatusUploading
	scan.Progress = 0
	scan.ErrorMsg = ""
	s.publish(&models.ScanEvent{
		Type:   models.EventScanUploading,
		ScanID: scan.ID,
		UserID: userID,
		Status: models.ScanStatusUploading,
	})

	onProgress := func(sent, total int64) {
		pct := 0
		if total > 0 {
			pct = int(sent * 100 / total)
		}
		if pct > 100 {
			pct = 100
		}
		if pct <= scan.Progress {
			return
		}
		scan.Progress = pct
		s.publish(&models.ScanEvent{
			Type:   models.EventScanProgress,
			ScanID: scan.ID,
			UserID: userID,
			Status: models.ScanStatusUploading,
			Progress: &models.ProgressInfo{
				BytesSent:  sent,
				BytesTotal: total,
				Percentage: pct,
			},
		})
	}

	prediction, err := s.backend.AnalyzeImage(ctx, route.predictPath, scan, onProgress)
	if err != nil {
		return nil, s.fail(scan, userID, err)
	}

	// The x-ray report call is authoritative for report/disease/symptoms;
	// everywhere else the prediction response already carries them. A
	// report failure after a successful prediction is still a total
	// failure, no partial result escapes.
	authoritative := prediction
	if route.reportPath != "" {
		reportRes, err := s.backend.AnalyzeImage(ctx, route.reportPath, scan, nil)
		if err != nil {
			return nil, s.fail(scan, userID, err)
		}
		authoritative = reportRes
	}

	symptoms := authoritative.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	result := &models.AnalysisResult{
		ScanID:       scan.ID,
		Predictions:  prediction.Predictions,
		Report:       authoritative.Report,
		Disease:      authoritative.Disease,
		Symptoms:     symptoms,
		ImagePreview: scan.Preview,
		ImageType:    modality,
	}

	scan.Status = models.ScanStatusSucceeded
	scan.Progress = 100

	// hand-off for the chat flow; the next analysis overwrites it
	if err := s.reports.SetReport(ctx, userID, result.Report); err != nil {
		logging.Logger.Error("fail SetReport", "error", err, "scanID", scan.ID)
	}
	s.archiveResult(ctx, scan, result, userID)

	s.publish(&models.ScanEvent{
		Type:   models.EventScanCompleted,
		ScanID: scan.ID,
		UserID: userID,
		Status: models.ScanStatusSucceeded,
	})
	return result, nil
}

// History lists the user's recent persisted analyses.
func (s *ScanService) History(ctx context.Context, userID string) ([]*models.ScanRecord, error) {
	records, err := s.scanRepo.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, &TransferError{Message: "Failed to load scan history. Please try again.", Cause: err}
	}
	return records, nil
}

func (s *ScanService) fail(scan *models.StagedScan, userID string, cause error) error {
	scan.Status = models.ScanStatusFailed
	scan.ErrorMsg = uploadFailureMsg
	logging.Logger.Error("scan analysis failed", "scanID", scan.ID, "error", cause)
	s.publish(&models.ScanEvent{
		Type:    models.EventScanFailed,
		ScanID:  scan.ID,
		UserID:  userID,
		Status:  models.ScanStatusFailed,
		Message: uploadFailureMsg,
	})
	return &TransferError{Message: uploadFailureMsg, Cause: cause}
}

// archiveResult stores the image and the history row. Both are side
// effects of a success and never fail the user-visible action.
func (s *ScanService) archiveResult(ctx context.Context, scan *models.StagedScan, result *models.AnalysisResult, userID string) {
	fileKey, err := s.archive.ArchiveImage(ctx, scan.Filename, scan.ContentType, scan.Data)
	if err != nil {
		logging.Logger.Error("fail ArchiveImage", "error", err, "scanID", scan.ID)
	}

	record := &models.ScanRecord{
		ScanID:    scan.ID,
		UserID:    userID,
		Filename:  scan.Filename,
		FileKey:   fileKey,
		ImageType: string(result.ImageType),
		Disease:   result.Disease,
		Report:    result.Report,
		Symptoms:  pq.StringArray(result.Symptoms),
		Status:    models.RecordStatusCompleted,
	}
	if err := s.scanRepo.Create(ctx, record); err != nil {
		logging.Logger.Error("fail creating scan record", "error", err, "scanID", scan.ID)
	}
}

func (s *ScanService) publish(event *models.ScanEvent) {
	if err := s.events.PublishScanEvent(event); err != nil {
		logging.Logger.Error("fail publishing scan event", "error", err, "scanID", event.ScanID)
	}
}

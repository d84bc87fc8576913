package services

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"medscan_gateway/models"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/platform/inference"
)

func TestMain(m *testing.M) {
	logging.Init()
	os.Exit(m.Run())
}

type fakeBackend struct {
	mu          sync.Mutex
	analyzeFn   func(path string, scan *models.StagedScan) (*models.BackendAnalysis, error)
	chatFn      func(message, report string) (string, error)
	searchFn    func(location, specialty string) ([]models.DoctorRecord, error)
	bookFn      func(booking *models.AppointmentRequest) error
	analyzed    []string
	chatCalls   int
	searchCalls int
	bookCalls   int
	lastChatReq models.ChatBackendReq
}

func (f *fakeBackend) AnalyzeImage(_ context.Context, path string, scan *models.StagedScan, onProgress inference.ProgressFunc) (*models.BackendAnalysis, error) {
	f.mu.Lock()
	f.analyzed = append(f.analyzed, path)
	f.mu.Unlock()
	if onProgress != nil {
		total := int64(len(scan.Data))
		onProgress(total/2, total)
		onProgress(total, total)
	}
	if f.analyzeFn != nil {
		return f.analyzeFn(path, scan)
	}
	return &models.BackendAnalysis{}, nil
}

func (f *fakeBackend) ChatWithReport(_ context.Context, message, report string) (string, error) {
	f.mu.Lock()
	f.chatCalls++
	f.lastChatReq = models.ChatBackendReq{Message: message, Report: report}
	f.mu.Unlock()
	if f.chatFn != nil {
		return f.chatFn(message, report)
	}
	return "", nil
}

func (f *fakeBackend) SearchDoctors(_ context.Context, location, specialty string) ([]models.DoctorRecord, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	if f.searchFn != nil {
		return f.searchFn(location, specialty)
	}
	return nil, nil
}

func (f *fakeBackend) BookAppointment(_ context.Context, booking *models.AppointmentRequest) error {
	f.mu.Lock()
	f.bookCalls++
	f.mu.Unlock()
	if f.bookFn != nil {
		return f.bookFn(booking)
	}
	return nil
}

type fakeGeocoder struct {
	reverseFn func(lat, lon float64) (string, error)
	forwardFn func(location string) (*models.Coordinates, error)
}

func (f *fakeGeocoder) Reverse(_ context.Context, lat, lon float64) (string, error) {
	if f.reverseFn != nil {
		return f.reverseFn(lat, lon)
	}
	return "", nil
}

func (f *fakeGeocoder) Forward(_ context.Context, location string) (*models.Coordinates, error) {
	if f.forwardFn != nil {
		return f.forwardFn(location)
	}
	return nil, nil
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports map[string]string
	setErr  error
	getErr  error
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: map[string]string{}}
}

func (f *fakeReportStore) SetReport(_ context.Context, userID, report string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[userID] = report
	return nil
}

func (f *fakeReportStore) GetReport(_ context.Context, userID string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[userID]
	return report, ok, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*models.ScanEvent
}

func (f *fakePublisher) PublishScanEvent(event *models.ScanEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *event
	f.events = append(f.events, &copied)
	return nil
}

func (f *fakePublisher) byType(t models.ScanEventType) []*models.ScanEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*models.ScanEvent
	for _, e := range f.events {
		if e.Type == t {
			res = append(res, e)
		}
	}
	return res
}

type fakeArchive struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (f *fakeArchive) ArchiveImage(_ context.Context, filename, _ string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := "scans/test/" + filename
	f.keys = append(f.keys, key)
	return key, nil
}

type fakeScanRepo struct {
	mu      sync.Mutex
	records []*models.ScanRecord
	err     error
}

func (f *fakeScanRepo) Create(_ context.Context, record *models.ScanRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeScanRepo) GetByID(_ context.Context, scanID string) (*models.ScanRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ScanID == scanID {
			return r, nil
		}
	}
	return nil, f.err
}

func (f *fakeScanRepo) ListByUser(_ context.Context, userID string, limit int) ([]*models.ScanRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*models.ScanRecord
	for _, r := range f.records {
		if r.UserID == userID && len(res) < limit {
			res = append(res, r)
		}
	}
	return res, nil
}

func (f *fakeScanRepo) UpdateStatus(_ context.Context, scanID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ScanID == scanID {
			r.Status = status
		}
	}
	return nil
}

type fakeConsentStore struct {
	mu       sync.Mutex
	sessions map[string]bool
	err      error
}

func newFakeConsentStore() *fakeConsentStore {
	return &fakeConsentStore{sessions: map[string]bool{}}
}

func (f *fakeConsentStore) SetConsent(_ context.Context, sessionID string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[sessionID] = true
	return nil
}

func (f *fakeConsentStore) HasConsent(_ context.Context, sessionID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[sessionID], nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]interface{}{}}
}

func (f *fakeCache) GetCache(key string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	return v, ok
}

func (f *fakeCache) SetCache(key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	return nil
}

func (f *fakeCache) DelCache(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

type fakeQueue struct {
	mu     sync.Mutex
	pushed map[string][]interface{}
	err    error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{pushed: map[string][]interface{}{}}
}

func (f *fakeQueue) PushToQueue(queueName string, value interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed[queueName] = append(f.pushed[queueName], value)
	return nil
}

func (f *fakeQueue) PopFromQueue(queueName string) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.pushed[queueName]
	if len(items) == 0 {
		return nil, nil
	}
	item := items[len(items)-1]
	f.pushed[queueName] = items[:len(items)-1]
	return item, nil
}

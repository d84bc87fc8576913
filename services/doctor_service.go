package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"medscan_gateway/models"
	"medscan_gateway/pkg/logging"
	"medscan_gateway/platform/cache"
)

const (
	doctorsPerPage      = 6
	locationRequiredMsg = "Please enter a location."
	searchFailureMsg    = "Failed to fetch doctors. Please try again."
	bookingFailureMsg   = "Failed to book appointment. Please try again."
	notificationQueue   = "notifications"
	directoryCacheTTL   = 2 * time.Minute
)

// The relaxed form the booking form always used; validator's own email
// rule is stricter and would reject addresses the backend accepts.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DoctorService covers the search-and-book flow: geocoding, directory
// lookups with client-side pagination, and appointment validation.
type DoctorService struct {
	backend  InferenceAPI
	geocoder Geocoder
	cache    cache.CacheService
	queue    cache.MessageQueue
	validate *validator.Validate
	sf       singleflight.Group
}

func NewDoctorService(backend InferenceAPI, geocoder Geocoder, cacheService cache.CacheService, queue cache.MessageQueue) *DoctorService {
	v := validator.New()
	_ = v.RegisterValidation("relaxed_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &DoctorService{
		backend:  backend,
		geocoder: geocoder,
		cache:    cacheService,
		queue:    queue,
		validate: v,
	}
}

// Locate reverse-geocodes device coordinates to a default search
// location. Best effort: an empty name just means manual entry.
func (s *DoctorService) Locate(ctx context.Context, lat, lon float64) string {
	name, err := s.geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		logging.Logger.Warn("reverse geocoding failed", "error", err)
		return ""
	}
	return name
}

// Search runs the forward geocode and the directory query concurrently;
// they update disjoint fields, so no ordering is needed between them.
// Geocode failure leaves the map uncentered; directory failure is fatal
// to the search.
func (s *DoctorService) Search(ctx context.Context, location, specialty string, page int) (*models.DoctorSearchRes, error) {
	if strings.TrimSpace(location) == "" {
		return nil, NewValidationError(locationRequiredMsg)
	}

	var (
		center    *models.Coordinates
		doctors   []models.DoctorRecord
		searchErr error
		wg        sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		c, err := s.geocoder.Forward(ctx, location)
		if err != nil {
			logging.Logger.Warn("forward geocoding failed", "error", err, "location", location)
			return
		}
		center = c
	}()
	go func() {
		defer wg.Done()
		doctors, searchErr = s.lookupDoctors(ctx, location, specialty)
	}()
	wg.Wait()

	if searchErr != nil {
		return nil, &TransferError{Message: searchFailureMsg, Cause: searchErr}
	}

	total := len(doctors)
	totalPages := (total + doctorsPerPage - 1) / doctorsPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * doctorsPerPage
	end := start + doctorsPerPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &models.DoctorSearchRes{
		Doctors:    doctors[start:end],
		Center:     center,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page*doctorsPerPage < total,
	}, nil
}

// lookupDoctors collapses concurrent identical queries through
// singleflight and keeps hot results in the two-level cache.
func (s *DoctorService) lookupDoctors(ctx context.Context, location, specialty string) ([]models.DoctorRecord, error) {
	key := "doctors:" + location + ":" + specialty
	if cached, ok := s.cache.GetCache(key); ok {
		if doctors, ok := cached.([]models.DoctorRecord); ok {
			return doctors, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		doctors, err := s.backend.SearchDoctors(ctx, location, specialty)
		if err != nil {
			return nil, err
		}
		if cerr := s.cache.SetCache(key, doctors, directoryCacheTTL); cerr != nil {
			logging.Logger.Error("fail caching directory results", "error", cerr)
		}
		return doctors, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.DoctorRecord), nil
}

// Book validates the appointment fully client-side, then submits it.
// Validation failures never reach the network.
func (s *DoctorService) Book(ctx context.Context, booking *models.AppointmentRequest) (*models.BookingRes, error) {
	if err := s.validateBooking(booking); err != nil {
		return nil, err
	}

	if err := s.backend.BookAppointment(ctx, booking); err != nil {
		logging.Logger.Error("fail BookAppointment", "error", err)
		return nil, &TransferError{Message: bookingFailureMsg, Cause: err}
	}

	// hand the confirmation mail to the out-of-process mailer
	task := models.NotificationTask{
		PatientEmail:    booking.PatientEmail,
		PatientName:     booking.PatientName,
		DoctorName:      booking.DoctorName,
		AppointmentDate: booking.AppointmentDate,
		AppointmentTime: booking.AppointmentTime,
	}
	if err := s.queue.PushToQueue(notificationQueue, task); err != nil {
		logging.Logger.Error("fail queueing booking notification", "error", err)
	}

	return &models.BookingRes{Message: "Appointment booked successfully.", Status: "confirmed"}, nil
}

func (s *DoctorService) validateBooking(booking *models.AppointmentRequest) error {
	if err := s.validate.Struct(booking); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return NewValidationError(bookingFieldMessage(vErrs[0]))
		}
		return NewValidationError("All fields are required.")
	}

	day, err := time.ParseInLocation("2006-01-02", booking.AppointmentDate, time.Local)
	if err != nil {
		return NewValidationError("Please enter a valid appointment date.")
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return NewValidationError("Appointment date cannot be in the past.")
	}
	return nil
}

func bookingFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "PatientName":
		return "Patient name is required."
	case "PatientGender":
		return "Please select a gender."
	case "PatientEmail":
		if fe.Tag() == "relaxed_email" {
			return "Please enter a valid email address."
		}
		return "Email is required."
	case "AppointmentDate":
		return "Appointment date is required."
	case "AppointmentTime":
		return "Appointment time is required."
	default:
		return "Doctor details are missing."
	}
}

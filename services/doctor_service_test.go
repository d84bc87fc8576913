package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"medscan_gateway/models"
)

func sampleDoctors(n int) []models.DoctorRecord {
	doctors := make([]models.DoctorRecord, 0, n)
	for i := 1; i <= n; i++ {
		doctors = append(doctors, models.DoctorRecord{
			Name:      fmt.Sprintf("Dr. %02d", i),
			Specialty: "Cardiologist",
			Location:  "Mumbai",
		})
	}
	return doctors
}

func validBooking() *models.AppointmentRequest {
	return &models.AppointmentRequest{
		PatientName:     "Asha Rao",
		PatientGender:   "Female",
		PatientEmail:    "asha@example.com",
		AppointmentDate: time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		AppointmentTime: "10:30",
		DoctorName:      "Dr. Mehta",
		DoctorSpecialty: "Cardiologist",
		DoctorLocation:  "Mumbai",
	}
}

func newDoctorFixture(backend *fakeBackend, geocoder *fakeGeocoder) (*DoctorService, *fakeQueue) {
	queue := newFakeQueue()
	return NewDoctorService(backend, geocoder, newFakeCache(), queue), queue
}

func TestLocateReturnsPlaceName(t *testing.T) {
	geocoder := &fakeGeocoder{
		reverseFn: func(_, _ float64) (string, error) { return "Andheri", nil },
	}
	svc, _ := newDoctorFixture(&fakeBackend{}, geocoder)

	require.Equal(t, "Andheri", svc.Locate(context.Background(), 19.1, 72.8))
}

func TestLocateFailureReturnsEmpty(t *testing.T) {
	geocoder := &fakeGeocoder{
		reverseFn: func(_, _ float64) (string, error) { return "", errors.New("timeout") },
	}
	svc, _ := newDoctorFixture(&fakeBackend{}, geocoder)

	require.Empty(t, svc.Locate(context.Background(), 19.1, 72.8))
}

func TestSearchRequiresLocation(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	_, err := svc.Search(context.Background(), "   ", "", 1)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, "Please enter a location.", vErr.Message)
	require.Zero(t, backend.searchCalls)
}

func TestSearchPagination(t *testing.T) {
	backend := &fakeBackend{
		searchFn: func(_, _ string) ([]models.DoctorRecord, error) {
			return sampleDoctors(14), nil
		},
	}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	page1, err := svc.Search(context.Background(), "Mumbai", "", 1)
	require.NoError(t, err)
	require.Len(t, page1.Doctors, 6)
	require.Equal(t, "Dr. 01", page1.Doctors[0].Name)
	require.Equal(t, 14, page1.Total)
	require.Equal(t, 3, page1.TotalPages)
	require.False(t, page1.HasPrev)
	require.True(t, page1.HasNext)

	page3, err := svc.Search(context.Background(), "Mumbai", "", 3)
	require.NoError(t, err)
	require.Len(t, page3.Doctors, 2)
	require.Equal(t, "Dr. 13", page3.Doctors[0].Name)
	require.True(t, page3.HasPrev)
	require.False(t, page3.HasNext)
}

func TestSearchClampsPageIntoRange(t *testing.T) {
	backend := &fakeBackend{
		searchFn: func(_, _ string) ([]models.DoctorRecord, error) {
			return sampleDoctors(14), nil
		},
	}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	res, err := svc.Search(context.Background(), "Mumbai", "", 99)
	require.NoError(t, err)
	require.Equal(t, 3, res.Page)
	require.Len(t, res.Doctors, 2)

	res, err = svc.Search(context.Background(), "Mumbai", "", -5)
	require.NoError(t, err)
	require.Equal(t, 1, res.Page)
}

func TestSearchEmptyResults(t *testing.T) {
	svc, _ := newDoctorFixture(&fakeBackend{}, &fakeGeocoder{})

	res, err := svc.Search(context.Background(), "Nowhere", "", 1)
	require.NoError(t, err)
	require.Empty(t, res.Doctors)
	require.Zero(t, res.Total)
	require.Equal(t, 1, res.TotalPages)
	require.False(t, res.HasNext)
}

func TestSearchGeocodeFailureIsNonFatal(t *testing.T) {
	backend := &fakeBackend{
		searchFn: func(_, _ string) ([]models.DoctorRecord, error) {
			return sampleDoctors(2), nil
		},
	}
	geocoder := &fakeGeocoder{
		forwardFn: func(_ string) (*models.Coordinates, error) {
			return nil, errors.New("nominatim down")
		},
	}
	svc, _ := newDoctorFixture(backend, geocoder)

	res, err := svc.Search(context.Background(), "Mumbai", "", 1)
	require.NoError(t, err)
	require.Nil(t, res.Center)
	require.Len(t, res.Doctors, 2)
}

func TestSearchCentersMapWhenGeocoded(t *testing.T) {
	geocoder := &fakeGeocoder{
		forwardFn: func(_ string) (*models.Coordinates, error) {
			return &models.Coordinates{Lat: 19.07, Lng: 72.87}, nil
		},
	}
	svc, _ := newDoctorFixture(&fakeBackend{}, geocoder)

	res, err := svc.Search(context.Background(), "Mumbai", "", 1)
	require.NoError(t, err)
	require.NotNil(t, res.Center)
	require.InDelta(t, 19.07, res.Center.Lat, 0.001)
}

func TestSearchDirectoryFailureIsTransferError(t *testing.T) {
	backend := &fakeBackend{
		searchFn: func(_, _ string) ([]models.DoctorRecord, error) {
			return nil, errors.New("directory down")
		},
	}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	_, err := svc.Search(context.Background(), "Mumbai", "", 1)

	var tErr *TransferError
	require.ErrorAs(t, err, &tErr)
	require.Equal(t, "Failed to fetch doctors. Please try again.", tErr.Message)
}

func TestSearchServesRepeatQueriesFromCache(t *testing.T) {
	backend := &fakeBackend{
		searchFn: func(_, _ string) ([]models.DoctorRecord, error) {
			return sampleDoctors(3), nil
		},
	}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	_, err := svc.Search(context.Background(), "Mumbai", "Cardiologist", 1)
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), "Mumbai", "Cardiologist", 2)
	require.NoError(t, err)

	require.Equal(t, 1, backend.searchCalls)
}

func TestBookSuccess(t *testing.T) {
	backend := &fakeBackend{}
	svc, queue := newDoctorFixture(backend, &fakeGeocoder{})

	res, err := svc.Book(context.Background(), validBooking())
	require.NoError(t, err)
	require.Equal(t, "Appointment booked successfully.", res.Message)
	require.Equal(t, "confirmed", res.Status)
	require.Equal(t, 1, backend.bookCalls)
	require.Len(t, queue.pushed["notifications"], 1)

	task, ok := queue.pushed["notifications"][0].(models.NotificationTask)
	require.True(t, ok)
	require.Equal(t, "asha@example.com", task.PatientEmail)
	require.Equal(t, "Dr. Mehta", task.DoctorName)
}

func TestBookAcceptsToday(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	booking := validBooking()
	booking.AppointmentDate = time.Now().Format("2006-01-02")

	_, err := svc.Book(context.Background(), booking)
	require.NoError(t, err)
}

func TestBookValidationFailuresNeverReachBackend(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(b *models.AppointmentRequest)
		msg    string
	}{
		{
			name:   "missing name",
			mutate: func(b *models.AppointmentRequest) { b.PatientName = "" },
			msg:    "Patient name is required.",
		},
		{
			name:   "missing gender",
			mutate: func(b *models.AppointmentRequest) { b.PatientGender = "" },
			msg:    "Please select a gender.",
		},
		{
			name:   "unknown gender",
			mutate: func(b *models.AppointmentRequest) { b.PatientGender = "unknown" },
			msg:    "Please select a gender.",
		},
		{
			name:   "missing email",
			mutate: func(b *models.AppointmentRequest) { b.PatientEmail = "" },
			msg:    "Email is required.",
		},
		{
			name:   "malformed email",
			mutate: func(b *models.AppointmentRequest) { b.PatientEmail = "abc@" },
			msg:    "Please enter a valid email address.",
		},
		{
			name:   "missing date",
			mutate: func(b *models.AppointmentRequest) { b.AppointmentDate = "" },
			msg:    "Appointment date is required.",
		},
		{
			name:   "missing time",
			mutate: func(b *models.AppointmentRequest) { b.AppointmentTime = "" },
			msg:    "Appointment time is required.",
		},
		{
			name:   "missing doctor",
			mutate: func(b *models.AppointmentRequest) { b.DoctorName = "" },
			msg:    "Doctor details are missing.",
		},
		{
			name:   "garbled date",
			mutate: func(b *models.AppointmentRequest) { b.AppointmentDate = "31-12-2026" },
			msg:    "Please enter a valid appointment date.",
		},
		{
			name:   "past date",
			mutate: func(b *models.AppointmentRequest) { b.AppointmentDate = "2020-01-01" },
			msg:    "Appointment date cannot be in the past.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{}
			svc, queue := newDoctorFixture(backend, &fakeGeocoder{})

			booking := validBooking()
			tc.mutate(booking)

			_, err := svc.Book(context.Background(), booking)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tc.msg, vErr.Message)
			require.Zero(t, backend.bookCalls)
			require.Empty(t, queue.pushed)
		})
	}
}

func TestBookRelaxedEmailAcceptsUnusualAddresses(t *testing.T) {
	backend := &fakeBackend{}
	svc, _ := newDoctorFixture(backend, &fakeGeocoder{})

	booking := validBooking()
	booking.PatientEmail = "a+b@x.co.in"

	_, err := svc.Book(context.Background(), booking)
	require.NoError(t, err)
}

func TestBookBackendFailureIsTransferError(t *testing.T) {
	backend := &fakeBackend{
		bookFn: func(_ *models.AppointmentRequest) error {
			return errors.New("booking backend down")
		},
	}
	svc, queue := newDoctorFixture(backend, &fakeGeocoder{})

	_, err := svc.Book(context.Background(), validBooking())

	var tErr *TransferError
	require.ErrorAs(t, err, &tErr)
	require.Equal(t, "Failed to book appointment. Please try again.", tErr.Message)
	require.Empty(t, queue.pushed)
}

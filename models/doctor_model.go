package models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DoctorRecord is read-only, sourced from the directory backend.
type DoctorRecord struct {
	Name      string  `json:"name"`
	Specialty string  `json:"specialty"`
	Location  string  `json:"location"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email,omitempty"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type DoctorSearchRes struct {
	Doctors    []DoctorRecord `json:"doctors"`
	Center     *Coordinates   `json:"center,omitempty"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	HasPrev    bool           `json:"has_prev"`
	HasNext    bool           `json:"has_next"`
}

type LocateRes struct {
	Location string `json:"location"`
	GeoError bool   `json:"geo_error"`
}

// AppointmentRequest is validated here before it ever reaches the
// booking backend; ephemeral, one-shot.
type AppointmentRequest struct {
	PatientName     string `json:"patient_name" validate:"required"`
	PatientGender   string `json:"patient_gender" validate:"required,oneof=Male Female Other"`
	PatientEmail    string `json:"patient_email" validate:"required,relaxed_email"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	AppointmentTime string `json:"appointment_time" validate:"required"`
	DoctorName      string `json:"doctor_name" validate:"required"`
	DoctorSpecialty string `json:"doctor_specialty" validate:"required"`
	DoctorLocation  string `json:"doctor_location" validate:"required"`
}

type BookingRes struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NotificationTask goes onto the redis queue after a confirmed booking
// for an out-of-process mailer to pick up.
type NotificationTask struct {
	PatientEmail    string `json:"patient_email"`
	PatientName     string `json:"patient_name"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

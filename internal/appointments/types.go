package appointments

// DateLayout is the display format of appointment dates.
const DateLayout = "02/01/2006"

// Appointment is an exam booking in the client's registry.
type Appointment struct {
	Worker   string `json:"worker"`
	ExamType string `json:"examType"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Unit     string `json:"unit"`
	Status   string `json:"status"`
}

// ListRequest optionally restricts the registry to one day of the month.
type ListRequest struct {
	Day string `form:"day"`
}

// ListResponse is the filtered registry plus the days that have bookings,
// for calendar highlighting.
type ListResponse struct {
	Items []Appointment `json:"items"`
	Days  []int         `json:"days"`
	Day   int           `json:"day,omitempty"`
}

// BookingRequest asks for a new exam slot. PreferredDate accepts the
// display format or an ISO date.
type BookingRequest struct {
	Worker        string `json:"worker" validate:"required,max=120"`
	ExamType      string `json:"examType" validate:"required,exam_type"`
	PreferredDate string `json:"preferredDate" validate:"required,max=10"`
	Unit          string `json:"unit" validate:"required,unit"`
}

// BookingResponse acknowledges a request. It is not stored.
type BookingResponse struct {
	Message       string `json:"message"`
	PreferredDate string `json:"preferredDate"`
}

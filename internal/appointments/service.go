package appointments

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"sst_portal_backend/internal/events"
	"sst_portal_backend/platform/apperr"
	"sst_portal_backend/platform/logger"
	"sst_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	msgInvalidDay  = "day must be between 1 and 31"
	msgInvalidDate = "preferred date must be DD/MM/AAAA or AAAA-MM-DD"
	msgRequested   = "Agendamento solicitado. Aguarde confirmação."
)

var seed = []Appointment{
	{Worker: "João Silva", ExamType: "Periódico", Date: "10/12/2025", Time: "09:00", Unit: "SESI Feira de Santana", Status: "Confirmado"},
	{Worker: "Maria Santos", ExamType: "Admissional", Date: "12/12/2025", Time: "14:00", Unit: "SESI Salvador", Status: "Aguardando confirmação"},
}

var workers = []string{"João Silva", "Maria Santos", "Novo colaborador"}

// Service is the read-only appointment registry.
type Service struct {
	items []Appointment
	bus   events.Bus
	log   *logger.Logger
}

func NewService(bus events.Bus, log *logger.Logger) *Service {
	return &Service{items: slices.Clone(seed), bus: bus, log: log}
}

// Workers returns the employees a booking can be made for.
func (s *Service) Workers() []string {
	return slices.Clone(workers)
}

// List returns the registry, filtered to a day of the month when day is set.
func (s *Service) List(req ListRequest) (ListResponse, error) {
	day := 0
	if raw := strings.TrimSpace(req.Day); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 1 || d > 31 {
			return ListResponse{}, apperr.Validation(msgInvalidDay)
		}
		day = d
	}

	resp := ListResponse{Items: []Appointment{}, Days: s.days(), Day: day}
	for _, a := range s.items {
		if day == 0 || dayOfMonth(a.Date) == day {
			resp.Items = append(resp.Items, a)
		}
	}
	return resp, nil
}

// Request acknowledges a booking request.
func (s *Service) Request(ctx context.Context, accountID uuid.UUID, req BookingRequest) (BookingResponse, error) {
	date, err := parsePreferredDate(req.PreferredDate)
	if err != nil {
		return BookingResponse{}, apperr.Validation(msgInvalidDate)
	}
	preferred := date.Format(DateLayout)

	s.log.Info("appointment requested", "accountId", accountID, "examType", req.ExamType, "unit", req.Unit)
	s.bus.Publish(ctx, events.AppointmentRequested{
		BaseEvent:  events.NewBaseEvent(),
		AccountID:  accountID,
		WorkerName: sanitize.Line(req.Worker),
		ExamType:   req.ExamType,
		Date:       preferred,
		Unit:       req.Unit,
	})
	return BookingResponse{Message: msgRequested, PreferredDate: preferred}, nil
}

func (s *Service) days() []int {
	var days []int
	for _, a := range s.items {
		if d := dayOfMonth(a.Date); d > 0 && !slices.Contains(days, d) {
			days = append(days, d)
		}
	}
	slices.Sort(days)
	return days
}

func dayOfMonth(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	return t.Day()
}

func parsePreferredDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, raw)
}

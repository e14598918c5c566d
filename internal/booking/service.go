package booking

import (
	"context"
	"log"
	"strings"
	"time"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/notify"
)

// Gateway is the storage the workflow needs. *store.Store satisfies it.
type Gateway interface {
	InsertAppointment(ctx context.Context, a *model.Appointment) error
	InsertAddress(ctx context.Context, a *model.Address) error
	LatestAddress(ctx context.Context) (*model.Address, error)
	CountAppointmentsAt(ctx context.Context, date time.Time, slot string) (int, error)
	TimesBookedOn(ctx context.Context, date time.Time) ([]string, error)
}

type Mailer interface {
	Send(ctx context.Context, msg notify.Message) error
}

type Service struct {
	gw       Gateway
	composer *notify.Composer
	mailer   Mailer
	logger   *log.Logger
}

func New(gw Gateway, composer *notify.Composer, mailer Mailer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{gw: gw, composer: composer, mailer: mailer, logger: logger}
}

// Request is a booking as submitted by the patient.
type Request struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Age     *int    `json:"age"`
	Gender  *string `json:"gender"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Address string  `json:"address"`
}

type Availability struct {
	Available bool
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// parseDate accepts YYYY-MM-DD and returns midnight UTC of that day.
func parseDate(s string) (time.Time, bool) {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	return d, err == nil
}

func (r Request) validate() (time.Time, error) {
	var missing []string
	if blank(r.Email) {
		missing = append(missing, "email")
	}
	if blank(r.Name) {
		missing = append(missing, "name")
	}
	d, ok := parseDate(r.Date)
	if !ok {
		missing = append(missing, "date")
	}
	if blank(r.Time) {
		missing = append(missing, "time")
	}
	if blank(r.Address) {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return time.Time{}, &ValidationError{Fields: missing}
	}
	return d, nil
}

// ConfirmAndBook emails the confirmation and then stores the appointment.
// A failed send stops the booking. A failed insert after a successful send
// cannot be undone; the patient has already been told.
//
// The slot is not checked first. Storage rejects a second booking for the
// same slot with store.ErrSlotTaken, wrapped in a PersistenceError.
func (s *Service) ConfirmAndBook(ctx context.Context, req Request) error {
	date, err := req.validate()
	if err != nil {
		return err
	}

	a := &model.Appointment{
		Email:   strings.TrimSpace(req.Email),
		Name:    strings.TrimSpace(req.Name),
		Age:     req.Age,
		Gender:  req.Gender,
		Date:    date,
		Time:    strings.TrimSpace(req.Time),
		Address: req.Address,
	}
	if a.Age != nil && *a.Age <= 0 {
		a.Age = nil
	}
	if a.Gender != nil && blank(*a.Gender) {
		a.Gender = nil
	}

	msg, err := s.composer.Compose(*a)
	if err != nil {
		return &NotificationError{Err: err}
	}

	s.logger.Printf("sending appointment confirmation to %s", a.Email)
	if err := s.mailer.Send(ctx, msg); err != nil {
		return &NotificationError{Err: err}
	}

	if err := s.gw.InsertAppointment(ctx, a); err != nil {
		s.logger.Printf("confirmation sent to %s but appointment %s %s not stored: %v",
			a.Email, req.Date, a.Time, err)
		return &PersistenceError{Err: err}
	}
	return nil
}

// CheckSlotAvailability is advisory: nothing holds the slot afterwards.
func (s *Service) CheckSlotAvailability(ctx context.Context, date, slot string) (Availability, error) {
	var bad []string
	d, ok := parseDate(date)
	if !ok {
		bad = append(bad, "date")
	}
	if blank(slot) {
		bad = append(bad, "time")
	}
	if len(bad) > 0 {
		return Availability{}, &ValidationError{Fields: bad}
	}

	n, err := s.gw.CountAppointmentsAt(ctx, d, strings.TrimSpace(slot))
	if err != nil {
		return Availability{}, err
	}
	return Availability{Available: n == 0}, nil
}

func (s *Service) ListBookedSlots(ctx context.Context, date string) ([]string, error) {
	d, ok := parseDate(date)
	if !ok {
		return nil, &ValidationError{Fields: []string{"date"}}
	}
	times, err := s.gw.TimesBookedOn(ctx, d)
	if err != nil {
		return nil, err
	}
	if times == nil {
		times = []string{}
	}
	return times, nil
}

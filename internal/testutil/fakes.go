// Package testutil provides in-memory stand-ins for storage and mail used by
// workflow and HTTP tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/notify"
	"clinic-booking-api/internal/store"
)

// Journal records the order of side effects across fakes.
type Journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *Journal) add(c string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, c)
}

func (j *Journal) Calls() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

// MemGateway keeps appointments and addresses in memory and enforces one
// booking per slot like the real schema. Set a *Err field to fail that call.
type MemGateway struct {
	Journal *Journal

	InsertAppointmentErr error
	InsertAddressErr     error
	LatestAddressErr     error
	CountErr             error
	TimesErr             error

	InsertAppointmentCalls int32
	InsertAddressCalls     int32

	mu           sync.Mutex
	appointments []model.Appointment
	addresses    []model.Address
}

func NewMemGateway(j *Journal) *MemGateway { return &MemGateway{Journal: j} }

func (g *MemGateway) note(c string) {
	if g.Journal != nil {
		g.Journal.add(c)
	}
}

func (g *MemGateway) InsertAppointment(ctx context.Context, a *model.Appointment) error {
	atomic.AddInt32(&g.InsertAppointmentCalls, 1)
	g.note("insert")
	if g.InsertAppointmentErr != nil {
		return &store.StorageError{Op: "insert appointment", Err: g.InsertAppointmentErr}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, b := range g.appointments {
		if b.Date.Equal(a.Date) && b.Time == a.Time {
			return &store.StorageError{Op: "insert appointment", Err: store.ErrSlotTaken}
		}
	}
	a.ID = int64(len(g.appointments) + 1)
	a.CreatedAt = time.Now()
	g.appointments = append(g.appointments, *a)
	return nil
}

func (g *MemGateway) InsertAddress(ctx context.Context, a *model.Address) error {
	atomic.AddInt32(&g.InsertAddressCalls, 1)
	if g.InsertAddressErr != nil {
		return &store.StorageError{Op: "insert address", Err: g.InsertAddressErr}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	a.ID = int64(len(g.addresses) + 1)
	a.CreatedAt = time.Now()
	g.addresses = append(g.addresses, *a)
	return nil
}

func (g *MemGateway) LatestAddress(ctx context.Context) (*model.Address, error) {
	if g.LatestAddressErr != nil {
		return nil, &store.StorageError{Op: "latest address", Err: g.LatestAddressErr}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.addresses) == 0 {
		return nil, store.ErrNotFound
	}
	a := g.addresses[len(g.addresses)-1]
	return &a, nil
}

func (g *MemGateway) CountAppointmentsAt(ctx context.Context, date time.Time, slot string) (int, error) {
	if g.CountErr != nil {
		return 0, &store.StorageError{Op: "count appointments", Err: g.CountErr}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, a := range g.appointments {
		if a.Date.Equal(date) && a.Time == slot {
			n++
		}
	}
	return n, nil
}

func (g *MemGateway) TimesBookedOn(ctx context.Context, date time.Time) ([]string, error) {
	if g.TimesErr != nil {
		return nil, &store.StorageError{Op: "list booked times", Err: g.TimesErr}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := []string{}
	for _, a := range g.appointments {
		if a.Date.Equal(date) {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

// Appointments returns a copy of everything stored so far.
func (g *MemGateway) Appointments() []model.Appointment {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.Appointment(nil), g.appointments...)
}

// FakeMailer captures messages instead of sending them.
type FakeMailer struct {
	Journal *Journal
	SendErr error

	SendCalls int32

	mu   sync.Mutex
	sent []notify.Message
}

func (m *FakeMailer) Send(ctx context.Context, msg notify.Message) error {
	atomic.AddInt32(&m.SendCalls, 1)
	if m.Journal != nil {
		m.Journal.add("send")
	}
	if m.SendErr != nil {
		return m.SendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *FakeMailer) Sent() []notify.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notify.Message(nil), m.sent...)
}

// FakePinger answers health probes.
type FakePinger struct {
	Err error
}

func (p FakePinger) Ping(ctx context.Context) error { return p.Err }

var ErrBoom = errors.New("boom")

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-booking-api/internal/model"
)

func (s *Store) InsertAppointment(ctx context.Context, a *model.Appointment) error {
	return s.withConn(ctx, "insert appointment", func(c *pgxpool.Conn) error {
		err := c.QueryRow(ctx,
			`INSERT INTO appointments (email, name, age, gender, "date", "time", address)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)
			 RETURNING id, created_at`,
			a.Email, a.Name, a.Age, a.Gender, a.Date, a.Time, a.Address,
		).Scan(&a.ID, &a.CreatedAt)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %w", ErrSlotTaken, err)
		}
		return err
	})
}

func (s *Store) CountAppointmentsAt(ctx context.Context, date time.Time, slot string) (int, error) {
	var n int
	err := s.withConn(ctx, "count appointments", func(c *pgxpool.Conn) error {
		return c.QueryRow(ctx,
			`SELECT COUNT(*) FROM appointments WHERE "date" = $1 AND "time" = $2`,
			date, slot,
		).Scan(&n)
	})
	return n, err
}

// TimesBookedOn lists the slot labels taken on date in booking order.
func (s *Store) TimesBookedOn(ctx context.Context, date time.Time) ([]string, error) {
	out := []string{}
	err := s.withConn(ctx, "list booked times", func(c *pgxpool.Conn) error {
		rows, err := c.Query(ctx,
			`SELECT "time" FROM appointments WHERE "date" = $1 ORDER BY id`, date)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				return err
			}
			out = append(out, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

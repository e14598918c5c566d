package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"clinic-booking-api/internal/model"
)

func (s *Store) InsertAddress(ctx context.Context, a *model.Address) error {
	return s.withConn(ctx, "insert address", func(c *pgxpool.Conn) error {
		return c.QueryRow(ctx,
			`INSERT INTO addresses (door_no, street, landmark, area, city)
			 VALUES ($1,$2,$3,$4,$5)
			 RETURNING id, created_at`,
			a.DoorNo, a.Street, a.Landmark, a.Area, a.City,
		).Scan(&a.ID, &a.CreatedAt)
	})
}

// LatestAddress returns the most recently inserted address, or ErrNotFound.
func (s *Store) LatestAddress(ctx context.Context) (*model.Address, error) {
	a := &model.Address{}
	err := s.withConn(ctx, "latest address", func(c *pgxpool.Conn) error {
		err := c.QueryRow(ctx,
			`SELECT id, door_no, street, landmark, area, city, created_at
			 FROM addresses WHERE id = (SELECT MAX(id) FROM addresses)`,
		).Scan(&a.ID, &a.DoorNo, &a.Street, &a.Landmark, &a.Area, &a.City, &a.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

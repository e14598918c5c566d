// Package health reports whether the service can reach its database,
// over the standard grpc.health.v1 protocol.
package health

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name clients may ask about besides the empty overall name.
const ServiceName = "clinic.booking.v1.Booking"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Checker struct {
	healthpb.UnimplementedHealthServer
	db      Pinger
	timeout time.Duration
}

func New(db Pinger, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Checker{db: db, timeout: timeout}
}

// Ping checks the database within the checker's timeout.
func (c *Checker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c *Checker) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	if svc := req.GetService(); svc != "" && svc != ServiceName {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", svc)
	}
	st := healthpb.HealthCheckResponse_SERVING
	if err := c.Ping(ctx); err != nil {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	return &healthpb.HealthCheckResponse{Status: st}, nil
}

func Register(s *grpc.Server, c *Checker) {
	healthpb.RegisterHealthServer(s, c)
}

package middleware

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// UnaryLogger logs every unary gRPC call with its peer, code and latency.
func UnaryLogger(l *log.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		addr := "unknown"
		if p, ok := peer.FromContext(ctx); ok {
			addr = p.Addr.String()
		}
		l.Printf("grpc %s from %s -> %s (%s)",
			info.FullMethod, addr, status.Code(err), time.Since(start).Round(time.Microsecond))
		return resp, err
	}
}

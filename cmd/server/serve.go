package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"clinic-booking-api/internal/booking"
	"clinic-booking-api/internal/config"
	"clinic-booking-api/internal/handler"
	"clinic-booking-api/internal/health"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/notify"
	"clinic-booking-api/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health endpoint",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	loc, _ := cfg.Location()
	logger := log.Default()

	// database
	ctx := context.Background()
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	st := store.New(pool, cfg.DB.AcquireTimeout)
	if cfg.DB.MigrateOnStart {
		if err := st.Migrate(ctx); err != nil {
			logger.Printf("migration warning: %v", err)
		} else {
			logger.Println("migration applied")
		}
	}

	// mail
	mailer := notify.NewSMTPMailer(cfg.Mailer())
	if err := mailer.Verify(); err != nil {
		logger.Printf("mail transport error: %v", err)
	} else {
		logger.Println("mail transport is ready to send emails")
	}

	svc := booking.New(st, notify.NewComposer(loc), mailer, logger)
	checker := health.New(st, 2*time.Second)

	// grpc health
	grpcSrv := grpc.NewServer(grpc.ChainUnaryInterceptor(middleware.UnaryLogger(logger)))
	health.Register(grpcSrv, checker)

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errs := make(chan error, 2)
	go func() {
		logger.Printf("grpc on :%s", cfg.GRPCPort)
		if err := grpcSrv.Serve(lis); err != nil {
			errs <- fmt.Errorf("grpc: %w", err)
		}
	}()

	// http api
	gin.SetMode(gin.ReleaseMode)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler.New(svc, checker, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Printf("http on :%s", cfg.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http: %w", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)
	return awaitShutdown(ch, errs, logger, grpcSrv.GracefulStop, httpSrv.Shutdown)
}

// awaitShutdown blocks until a signal arrives or a listener fails, then stops
// both servers. A listener failure is returned so the process exits non-zero.
func awaitShutdown(sig <-chan os.Signal, errs <-chan error, logger *log.Logger,
	stopGRPC func(), stopHTTP func(context.Context) error) error {
	var cause error
	select {
	case s := <-sig:
		logger.Printf("shutting down on %v", s)
	case cause = <-errs:
		logger.Printf("listener failed, shutting down: %v", cause)
	}

	stopGRPC()
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.Join(cause, stopHTTP(sctx))
}

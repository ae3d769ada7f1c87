package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/KirkDiggler/rpg-rotation/internal/errors"
)

const shutdownTimeout = 10 * time.Second

// healthReporter exposes one health service per character flow. The empty
// service name reports the whole session.
type healthReporter struct {
	server *health.Server
}

func newHealthReporter() *healthReporter {
	h := &healthReporter{server: health.NewServer()}
	h.server.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	return h
}

func (h *healthReporter) flowStarted(character string) {
	h.server.SetServingStatus(character, grpc_health_v1.HealthCheckResponse_SERVING)
}

func (h *healthReporter) flowStopped(character string, err error) {
	h.server.SetServingStatus(character, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	if err != nil {
		h.server.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}
}

// serve runs the health server until ctx ends. Port 0 disables it.
func (h *healthReporter) serve(ctx context.Context, port int) error {
	if port == 0 {
		<-ctx.Done()
		return nil
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to listen on %d", port)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)
	grpc_health_v1.RegisterHealthServer(srv, h.server)
	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("health server starting", "port", port)
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve health")
		}
	}()

	select {
	case <-ctx.Done():
		h.server.Shutdown()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(shutdownTimeout):
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("health server stopped")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Default().Log(ctx, slog.Level(level), msg, fields...)
}

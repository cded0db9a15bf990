package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/kilianp07/premium/api/middleware"
	"github.com/kilianp07/premium/api/predict"
	"github.com/kilianp07/premium/config"
	coremetrics "github.com/kilianp07/premium/core/metrics"
	"github.com/kilianp07/premium/core/prediction"
	"github.com/kilianp07/premium/infra/logger"
	"github.com/kilianp07/premium/infra/metrics"
	"github.com/kilianp07/premium/infra/telemetry"
)

// Service owns the loaded pipeline and the HTTP servers exposing it.
type Service struct {
	Pipeline prediction.Pipeline
	Sink     coremetrics.MetricsSink

	cfg      *config.Config
	log      logger.Logger
	handler  http.Handler
	logFile  io.Closer
	shutdown func(context.Context) error
}

// New configures logging and tracing, loads the artifacts and builds the
// HTTP handler. Nothing listens until Run is called.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logFile, err := logger.Configure(cfg.Logging.Options())
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logg := logger.New("service")

	p, info, err := LoadPipeline(cfg.Pipeline)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("artifacts: %w", err)
	}
	logg.Infof("loaded %s pipeline (model %s %s) from %v in %s", info.Pipeline, info.Model, info.Detail, info.Paths, info.LoadTime)

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	if rec, ok := sink.(coremetrics.ArtifactRecorder); ok {
		if err := rec.RecordArtifacts(info); err != nil {
			logg.Warnf("record artifacts: %v", err)
		}
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Tracing)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("tracing: %w", err)
	}

	h := predict.NewHandler(p, sink, logger.New("predict"), predict.WithMaxBodyBytes(cfg.Server.MaxBodyBytes))
	handler := middleware.Chain(predict.Routes(h, p),
		middleware.RequestID,
		middleware.Tracing("premium"),
		middleware.Recover(logg),
		middleware.Logger(logger.New("http")),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
	)

	return &Service{
		Pipeline: p,
		Sink:     sink,
		cfg:      cfg,
		log:      logg,
		handler:  handler,
		logFile:  logFile,
		shutdown: shutdown,
	}, nil
}

// Handler returns the fully wrapped API handler.
func (s *Service) Handler() http.Handler { return s.handler }

// Run serves the API on the configured address and blocks until the context
// is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr, nil); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infof("serving predictions on %s", ln.Addr())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.log.Infof("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close flushes pending spans and releases the log file.
func (s *Service) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	return errors.Join(s.shutdown(ctx), s.logFile.Close())
}

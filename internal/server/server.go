// internal/server/server.go
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"degen/internal/config"
	"degen/internal/metrics"
	"degen/internal/service"
	"degen/internal/tracing"
)

// Server is the degen HTTP API.
type Server struct {
	cfg      config.Server
	designer *service.Designer
	m        *metrics.Metrics
	log      *slog.Logger
	router   *gin.Engine
}

type Options struct {
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
}

func New(cfg config.Server, d *service.Designer, o Options) *Server {
	if o.Metrics == nil {
		o.Metrics = metrics.New()
	}
	s := &Server{cfg: cfg, designer: d, m: o.Metrics, log: o.Logger, router: gin.New()}
	if s.log == nil {
		s.log = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	var otelOpts []otelgin.Option
	if o.TracerProvider != nil {
		otelOpts = append(otelOpts, otelgin.WithTracerProvider(o.TracerProvider))
	}

	s.router.Use(gin.Recovery(), requestID(), otelgin.Middleware(tracing.ServiceName, otelOpts...), s.observe())
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(s.m.Handler()))

	v1 := s.router.Group("/v1", rateLimit(limiter))
	v1.POST("/designs", s.design)
	v1.POST("/expand", s.expand)
	v1.GET("/table", s.table)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.log.Info("serving", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

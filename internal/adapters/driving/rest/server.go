package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/custodia-labs/gconnect/internal/core/ports/driving"
	"github.com/custodia-labs/gconnect/internal/logger"
)

const (
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
	// ReadHeaderTimeout bounds reading request headers.
	ReadHeaderTimeout = 10 * time.Second
)

// Server serves the facade over HTTP.
type Server struct {
	echo    *echo.Echo
	handler *handler
}

// NewServer creates the HTTP facade over service.
func NewServer(service driving.ConnectorService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Server.ReadHeaderTimeout = ReadHeaderTimeout

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	s := &Server{
		echo:    e,
		handler: &handler{service: service},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	h := s.handler
	s.echo.GET("/health", h.health)
	s.echo.GET("/calendar/next", h.calendarNext)
	s.echo.GET("/calendar/list", h.calendarList)
	s.echo.GET("/gmail/unread", h.gmailUnread)
	s.echo.GET("/drive/recent", h.driveRecent)
	s.echo.GET("/drive/search", h.driveSearch)
	s.echo.GET("/drive/file/:file_id", h.driveFile)
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.echo.Listener = ln

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on http://%s", ln.Addr())
		errCh <- s.echo.Start("")
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

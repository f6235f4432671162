// Package web — HTTP API StudySync на echo: экраны, формы, выгрузки.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/Spok95/studysync/internal/ctxutil"
	"github.com/Spok95/studysync/internal/metrics"
	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/Spok95/studysync/internal/repo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Options struct {
	Repos  *repo.Set
	Pinger recordsvc.Pinger
	Logger *zap.Logger

	Location    *time.Location
	DueSoonDays int
	// Now подменяется в тестах.
	Now func() time.Time

	Debug          bool
	DisableReqLogs bool
	// LogLevel — обработчик смены уровня логов (zap.AtomicLevel), необязателен.
	LogLevel http.Handler
	// Records — публикация хранилища записей по /records, необязательна.
	Records http.Handler
}

type Server struct {
	opts *Options
	app  *echo.Echo
	v    *validators
	log  *zap.Logger
}

func NewServer(opts *Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{
		opts: opts,
		app:  echo.New(),
		v:    newValidators(),
		log:  opts.Logger,
	}
	s.setup()
	return s
}

func (s *Server) now() time.Time { return s.opts.Now().In(s.opts.Location) }

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.SetRequest(c.Request().WithContext(ctxutil.WithRequestID(c.Request().Context(), id)))
		},
	}))
	s.app.Use(metricsMiddleware)
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLogger(s.log))
	}
	s.app.Use(middleware.Recover())
	s.app.HTTPErrorHandler = newHTTPErrorHandler(s.log)

	s.app.GET("/healthz", s.health)
	s.app.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if s.opts.LogLevel != nil {
		s.app.Any("/debug/loglevel", echo.WrapHandler(s.opts.LogLevel))
	}
	if s.opts.Records != nil {
		s.app.Any("/records/*", echo.WrapHandler(http.StripPrefix("/records", s.opts.Records)))
	}

	v1 := s.app.Group("/api/v1")
	v1.GET("/meta", s.meta)
	registerDashboardAPI(v1, s)
	registerStudentAPI(v1, s)
	registerCourseAPI(v1, s)
	registerAssignmentAPI(v1, s)
	registerCalendarAPI(v1, s)
	registerGradesAPI(v1, s)
	registerExportAPI(v1, s)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) health(c echo.Context) error {
	if s.opts.Pinger == nil {
		return c.String(http.StatusOK, "ok")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.opts.Pinger.Ping(ctx); err != nil {
		return c.String(http.StatusServiceUnavailable, "backend not ok: "+err.Error())
	}
	metrics.ObserveBackendPing(time.Since(t0))
	return c.String(http.StatusOK, "ok")
}

package web

import (
	"strconv"
	"time"

	"github.com/Spok95/studysync/internal/logging"
	"github.com/Spok95/studysync/internal/metrics"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// route — шаблон маршрута для меток метрик; неизвестные пути сводятся в один.
func route(c echo.Context) string {
	if p := c.Path(); p != "" {
		return p
	}
	return "unmatched"
}

func metricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		code := c.Response().Status
		metrics.HTTPRequests.WithLabelValues(c.Request().Method, route(c), strconv.Itoa(code)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request().Method, route(c)).Observe(time.Since(start).Seconds())
		return nil
	}
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			l := logging.FromContext(req.Context(), log)
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("route", route(c)),
				zap.String("uri", req.RequestURI),
				zap.Int("status", res.Status),
				zap.Int64("bytes", res.Size),
				zap.Duration("latency", time.Since(start)),
			}
			switch {
			case res.Status >= 500:
				l.Error("request", fields...)
			case res.Status >= 400:
				l.Warn("request", fields...)
			default:
				l.Info("request", fields...)
			}
			return nil
		}
	}
}

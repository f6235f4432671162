package web

import (
	"net/http"

	"github.com/Spok95/studysync/internal/logging"
	"github.com/Spok95/studysync/internal/metrics"
	"github.com/Spok95/studysync/internal/observability"
	"github.com/Spok95/studysync/internal/recordsvc"
	"github.com/Spok95/studysync/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	errHTTPNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")
	errBadID        = echo.NewHTTPError(http.StatusBadRequest, "invalid id")
)

type failedRecord struct {
	Message string           `json:"message"`
	Data    recordsvc.Record `json:"data,omitempty"`
}

// newHTTPErrorHandler переводит ошибки обработчиков в JSON-ответы:
// 400 — ошибки полей, 404 — нет записи, 502 — отказ сервиса записей
// (клиент может повторить), остальное — 500 с отправкой в Sentry.
func newHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message any

		var writeErr *repo.WriteError
		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fields := make(map[string]string, len(origErr))
			for _, fe := range origErr {
				fields[fe.Field()] = fe.Error()
			}
			code = http.StatusBadRequest
			message = fields
		case *ValidationError:
			code = http.StatusBadRequest
			if len(origErr.Fields) > 0 {
				message = origErr.Map()
			} else {
				message = origErr.Error()
			}
		default:
			switch {
			case errors.As(err, &writeErr):
				failed := make([]failedRecord, 0, len(writeErr.Failed))
				for _, r := range writeErr.Failed {
					failed = append(failed, failedRecord{Message: r.Message, Data: r.Data})
				}
				code = http.StatusBadGateway
				message = echo.Map{"error": writeErr.Error(), "failed": failed, "retry": true}
				logging.FromContext(ctx.Request().Context(), log).Warn("record write failed", zap.Error(err))
			case errors.Is(err, repo.ErrNotFound):
				code = http.StatusNotFound
				message = errHTTPNotFound.Message
			case errors.Is(err, repo.ErrUnavailable):
				code = http.StatusBadGateway
				message = echo.Map{"error": "record service unavailable", "retry": true}
				logging.FromContext(ctx.Request().Context(), log).Warn("record read failed", zap.Error(err))
			default:
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				rid := ctx.Response().Header().Get(echo.HeaderXRequestID)
				logging.FromContext(ctx.Request().Context(), log).Error(msg, zap.Error(errors.Wrap(err, msg)))
				observability.CaptureRequestErr(err, ctx.Request().Method, ctx.Path(), rid)
				metrics.HandlerErrors.Inc()
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			message = echo.Map{"error": err.Error()}
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				log.Error("write error response", zap.Error(err))
			}
		}
	}
}

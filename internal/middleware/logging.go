package middleware

import (
	"errors"
	"time"

	"weathercat/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RequestIDKey is the context key holding the update's request id
const RequestIDKey = "request_id"

// Logging tags every update with a request id and logs how it was handled
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			requestID := uuid.NewString()
			c.Set(RequestIDKey, requestID)

			var userID int64
			if sender := c.Sender(); sender != nil {
				userID = sender.ID
			}

			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.Int64("user_id", userID),
				zap.Duration("duration", time.Since(start)),
			}
			switch {
			case err == nil:
				logger.Debug("Update handled", fields...)
			case errors.Is(err, domain.ErrUnrecognizedInput):
				logger.Debug("Update not recognized", fields...)
			default:
				logger.Warn("Update handled with error", append(fields, zap.Error(err))...)
			}
			return err
		}
	}
}

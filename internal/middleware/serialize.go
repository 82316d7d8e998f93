package middleware

import (
	"weathercat/internal/worker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Serialize hands every update to the worker pool keyed by the sender, so one
// user's updates are processed one at a time and in order. It returns as soon
// as the update is queued.
func Serialize(pool *worker.Serial, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}

			err := pool.Submit(sender.ID, func() {
				if err := next(c); err != nil {
					logger.Debug("Update handler returned error",
						zap.Int64("user_id", sender.ID),
						zap.Error(err),
					)
				}
			})
			if err != nil {
				logger.Warn("Dropping update, worker pool stopped", zap.Int64("user_id", sender.ID))
			}
			return nil
		}
	}
}

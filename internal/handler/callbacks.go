package handler

import (
	"strings"
	"unicode"

	"weathercat/internal/engine"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackUnique returns the button id of a callback. Telebot fills Unique
// only for buttons with a registered handler, otherwise the id is still
// encoded in Data as "\funique|data".
func callbackUnique(cb *tele.Callback) string {
	if cb.Unique != "" {
		return cb.Unique
	}
	data := cleanCallbackData(cb.Data)
	if i := strings.Index(data, "|"); i >= 0 {
		data = data[:i]
	}
	return data
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique := callbackUnique(callback)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.String("data_raw", callback.Data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", c.Sender().ID),
	)

	ev := engine.Event{
		UserID:     c.Sender().ID,
		Kind:       engine.KindCallback,
		Payload:    unique,
		CallbackID: callback.ID,
		FirstName:  c.Sender().FirstName,
	}
	if callback.Message != nil {
		ev.MessageID = callback.Message.ID
	}
	return h.dispatch(c, ev)
}

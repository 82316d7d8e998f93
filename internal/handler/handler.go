package handler

import (
	"context"
	"strings"
	"time"

	"weathercat/internal/engine"
	"weathercat/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Dispatcher consumes user events
type Dispatcher interface {
	Handle(ctx context.Context, ev engine.Event) error
}

// Handler turns telebot updates into engine events
type Handler struct {
	bot        *tele.Bot
	dispatcher Dispatcher
	timeout    time.Duration
	logger     *zap.Logger
}

// NewHandler creates a new handler instance. timeout bounds the processing of one update.
func NewHandler(bot *tele.Bot, dispatcher Dispatcher, timeout time.Duration, logger *zap.Logger) *Handler {
	return &Handler{
		bot:        bot,
		dispatcher: dispatcher,
		timeout:    timeout,
		logger:     logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages, including the other slash commands and reply keyboard labels
	h.bot.Handle(tele.OnText, h.handleText)

	// Inline buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// handleText handles all text messages
func (h *Handler) handleText(c tele.Context) error {
	return h.dispatch(c, textEvent(c))
}

func (h *Handler) dispatch(c tele.Context, ev engine.Event) error {
	ctx, cancel := h.context()
	defer cancel()

	err := h.dispatcher.Handle(ctx, ev)
	if err != nil {
		h.logger.Debug("Event finished with error",
			zap.Int64("user_id", ev.UserID),
			zap.String("kind", ev.Kind.String()),
			zap.Any("request_id", c.Get(middleware.RequestIDKey)),
			zap.Error(err),
		)
	}
	return err
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), h.timeout)
}

func textEvent(c tele.Context) engine.Event {
	text := strings.TrimSpace(c.Text())
	kind := engine.KindText
	if strings.HasPrefix(text, "/") {
		kind = engine.KindCommand
	}

	ev := engine.Event{
		UserID:  c.Sender().ID,
		Kind:    kind,
		Payload: text,
	}
	if msg := c.Message(); msg != nil {
		ev.MessageID = msg.ID
	}
	ev.FirstName = c.Sender().FirstName
	return ev
}

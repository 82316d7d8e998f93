// Package engine is the per-user dialogue state machine of the bot.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"weathercat/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	textlang "golang.org/x/text/language"
)

// Store holds user records
type Store interface {
	Get(id int64) domain.UserRecord
	Put(ctx context.Context, id int64, rec domain.UserRecord) error
}

// Weather answers forecast questions for a user's settings
type Weather interface {
	CheckLocation(ctx context.Context, location string) error
	Current(ctx context.Context, settings domain.Settings) (domain.LocationInfo, domain.CurrentReport, error)
	Tomorrow(ctx context.Context, settings domain.Settings) (domain.LocationInfo, []domain.TomorrowReport, error)
	Forecast(ctx context.Context, settings domain.Settings) (domain.LocationInfo, []domain.DayReport, error)
}

// Option configures an Engine
type Option func(*Engine)

// WithRand replaces the source used to pick bad command answers
func WithRand(intn func(n int) int) Option {
	return func(e *Engine) {
		e.intn = intn
	}
}

// Engine routes events through the transition table. Events of one user
// must not be handled concurrently.
type Engine struct {
	store   Store
	weather Weather
	gateway Gateway
	logger  *zap.Logger
	intn    func(n int) int

	transitions map[transitionKey]action
	fallbacks   map[domain.DialogueState]action
}

// New creates a new engine
func New(store Store, weather Weather, gateway Gateway, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		weather: weather,
		gateway: gateway,
		logger:  logger,
		intn:    rand.Intn,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.buildTransitions()
	return e
}

// Handle processes one event to completion. The returned error is only
// informational: the user has already been answered. Unaccepted input
// returns domain.ErrUnrecognizedInput.
func (e *Engine) Handle(ctx context.Context, ev Event) error {
	rec := e.store.Get(ev.UserID)
	in := resolve(ev)

	e.logger.Debug("Handling event",
		zap.Int64("user_id", ev.UserID),
		zap.String("kind", ev.Kind.String()),
		zap.String("state", rec.State.String()),
		zap.String("input", in.String()),
	)

	if act, ok := e.transitions[transitionKey{state: rec.State, in: in}]; ok {
		return act(ctx, ev, rec)
	}

	if ev.Kind == KindCallback {
		// stale inline button from an earlier prompt
		e.answer(ev, "")
		return nil
	}

	if act, ok := e.fallbacks[rec.State]; ok {
		return act(ctx, ev, rec)
	}
	return e.badCommand(ctx, ev, rec)
}

// persist stores the record before anything is said to the user. On failure
// the user gets the server error reply and the stored record is unchanged.
func (e *Engine) persist(ctx context.Context, ev Event, from domain.DialogueState, rec domain.UserRecord) error {
	if err := e.store.Put(ctx, ev.UserID, rec); err != nil {
		e.logger.Error("Failed to persist user state",
			zap.Int64("user_id", ev.UserID),
			zap.String("state", rec.State.String()),
			zap.Error(err),
		)
		e.send(ev.UserID, Message{Text: textServerError})
		return err
	}

	if from != rec.State {
		e.logger.Info("State changed",
			zap.Int64("user_id", ev.UserID),
			zap.String("from", from.String()),
			zap.String("to", rec.State.String()),
		)
	}
	return nil
}

// fail answers a provider or normalizer error without touching state
func (e *Engine) fail(ev Event, err error) error {
	switch {
	case errors.Is(err, domain.ErrProviderUnavailable):
		e.logger.Warn("Forecast provider unavailable", zap.Int64("user_id", ev.UserID), zap.Error(err))
	case errors.Is(err, domain.ErrMalformedPayload):
		e.logger.Error("Malformed forecast payload", zap.Int64("user_id", ev.UserID), zap.Error(err))
	default:
		e.logger.Error("Forecast request failed", zap.Int64("user_id", ev.UserID), zap.Error(err))
	}
	e.send(ev.UserID, Message{Text: textServerError})
	return err
}

func (e *Engine) titleCase(s string) string {
	// Caser is stateful, one per call
	return cases.Title(textlang.Und).String(s)
}

func (e *Engine) pickBadAnswer() string {
	return badCommandAnswers[e.intn(len(badCommandAnswers))]
}

// Gateway failures never abort a transition

func (e *Engine) send(userID int64, msg Message) {
	if err := e.gateway.Send(userID, msg); err != nil {
		e.logger.Warn("Failed to send message", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (e *Engine) reply(ev Event, text string) {
	if err := e.gateway.Reply(ev.UserID, ev.MessageID, text); err != nil {
		e.logger.Warn("Failed to reply", zap.Int64("user_id", ev.UserID), zap.Error(err))
	}
}

func (e *Engine) edit(ev Event, text string) {
	if err := e.gateway.Edit(ev.UserID, ev.MessageID, text); err != nil {
		e.logger.Warn("Failed to edit message",
			zap.Int64("user_id", ev.UserID),
			zap.Int("message_id", ev.MessageID),
			zap.Error(err),
		)
	}
}

func (e *Engine) remove(ev Event) {
	if err := e.gateway.Delete(ev.UserID, ev.MessageID); err != nil {
		e.logger.Warn("Failed to delete message",
			zap.Int64("user_id", ev.UserID),
			zap.Int("message_id", ev.MessageID),
			zap.Error(err),
		)
	}
}

func (e *Engine) typing(userID int64) {
	if err := e.gateway.Typing(userID); err != nil {
		e.logger.Debug("Failed to send typing action", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (e *Engine) answer(ev Event, text string) {
	if ev.CallbackID == "" {
		return
	}
	if err := e.gateway.Answer(ev.CallbackID, text); err != nil {
		e.logger.Warn("Failed to answer callback", zap.Int64("user_id", ev.UserID), zap.Error(err))
	}
}

func (e *Engine) setMenuCommands(enabled bool) {
	if err := e.gateway.SetMenuCommands(enabled); err != nil {
		e.logger.Warn("Failed to update menu commands", zap.Bool("enabled", enabled), zap.Error(err))
	}
}

func normalizeText(s string) string {
	return strings.TrimSpace(s)
}

package handler

import (
	"strconv"
	"strings"

	"weathercat/internal/engine"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var _ engine.Gateway = (*Gateway)(nil)

// Gateway sends engine output through the Telegram bot API
type Gateway struct {
	bot    *tele.Bot
	logger *zap.Logger
}

// NewGateway creates a new gateway
func NewGateway(bot *tele.Bot, logger *zap.Logger) *Gateway {
	return &Gateway{bot: bot, logger: logger}
}

func (g *Gateway) Send(userID int64, msg engine.Message) error {
	opts := &tele.SendOptions{ReplyMarkup: markupFor(msg.Keyboard)}
	if msg.HTML {
		opts.ParseMode = tele.ModeHTML
	}
	_, err := g.bot.Send(tele.ChatID(userID), msg.Text, opts)
	return err
}

func (g *Gateway) Reply(userID int64, messageID int, text string) error {
	opts := &tele.SendOptions{}
	if messageID != 0 {
		opts.ReplyTo = &tele.Message{ID: messageID, Chat: &tele.Chat{ID: userID}}
	}
	_, err := g.bot.Send(tele.ChatID(userID), text, opts)
	return err
}

// Edit replaces the text of a message and drops its inline keyboard
func (g *Gateway) Edit(userID int64, messageID int, text string) error {
	_, err := g.bot.Edit(storedMessage(userID, messageID), text, &tele.ReplyMarkup{})
	return g.handleEditError(err, userID)
}

func (g *Gateway) Delete(userID int64, messageID int) error {
	return g.bot.Delete(storedMessage(userID, messageID))
}

func (g *Gateway) Typing(userID int64) error {
	return g.bot.Notify(tele.ChatID(userID), tele.Typing)
}

func (g *Gateway) Answer(callbackID, text string) error {
	resp := &tele.CallbackResponse{}
	if text != "" {
		resp.Text = text
	}
	return g.bot.Respond(&tele.Callback{ID: callbackID}, resp)
}

// SetMenuCommands shows or clears the bot's command menu
func (g *Gateway) SetMenuCommands(enabled bool) error {
	if enabled {
		return g.bot.SetCommands(menuCommands())
	}
	return g.bot.DeleteCommands()
}

// handleEditError ignores "message is not modified", which means the message
// already shows the requested text
func (g *Gateway) handleEditError(err error, userID int64) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "message is not modified") {
		g.logger.Debug("Message already modified, skipping edit",
			zap.Int64("user_id", userID),
		)
		return nil
	}
	return err
}

func storedMessage(userID int64, messageID int) tele.StoredMessage {
	return tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    userID,
	}
}

// Package webhook handles inbound Telegram updates delivered over HTTP.
// The bot's private chats are write-only: it greets on /start and keeps the
// chat clean by deleting both its own greeting and every inbound message.
package webhook

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"lunchbot/internal/schedule"
	"lunchbot/internal/transport/telegram"
)

// Update is the subset of the Telegram update envelope the handler acts on.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	ID   int    `json:"message_id"`
	Date int64  `json:"date"`
	Chat Chat   `json:"chat"`
	From *User  `json:"from,omitempty"`
	Text string `json:"text,omitempty"`
}

type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

const chatPrivate = "private"

const (
	startCommand = "/start"
	greetingText = "Этот бот работает только на отправку сообщений в групповой чат магазина."

	// cleanupDelay is how long the greeting stays visible before the bot
	// deletes it again.
	cleanupDelay = 5 * time.Second
)

// Messenger is the slice of the Telegram transport the handler needs.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) (telegram.MessageRef, error)
	DeleteMessage(ctx context.Context, ref telegram.MessageRef) error
}

type Handler struct {
	bot    Messenger
	runner schedule.Runner
	log    zerolog.Logger
}

func New(bot Messenger, runner schedule.Runner, log zerolog.Logger) *Handler {
	return &Handler{bot: bot, runner: runner, log: log}
}

// HandleUpdate processes one inbound update. It never fails: whatever
// happens here only gets logged, so the webhook endpoint can ack
// unconditionally and Telegram stops redelivering.
func (h *Handler) HandleUpdate(ctx context.Context, up Update) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Int64("update_id", up.UpdateID).Msg("webhook update panicked")
		}
	}()

	msg := up.Message
	if msg == nil || msg.Chat.Type != chatPrivate {
		return
	}

	if msg.Text == startCommand {
		h.greet(ctx, msg.Chat.ID)
	}

	// Always clear the inbound message; the private chat is not a place to
	// hold a conversation.
	ref := telegram.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}
	if err := h.bot.DeleteMessage(ctx, ref); err != nil {
		h.log.Debug().Err(err).Int64("chat_id", msg.Chat.ID).Int("message_id", msg.ID).Msg("inbound message delete failed")
	}
}

func (h *Handler) greet(ctx context.Context, chatID int64) {
	ref, err := h.bot.SendText(ctx, chatID, greetingText)
	if err != nil {
		h.log.Warn().Err(err).Int64("chat_id", chatID).Msg("greeting send failed")
		return
	}

	// The request context is gone by the time the timer fires.
	h.runner.AfterFunc(cleanupDelay, func() {
		if err := h.bot.DeleteMessage(context.Background(), ref); err != nil {
			h.log.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", ref.MessageID).Msg("greeting delete failed")
		}
	})
}

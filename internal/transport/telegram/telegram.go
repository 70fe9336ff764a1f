// Package telegram wraps the Telegram Bot API client used for outbound
// sends and message cleanup. Inbound updates arrive over the HTTP webhook,
// not long polling, so the bot here never starts a poller.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

type Config struct {
	Token   string
	GroupID int64

	// URL overrides the Bot API host (tests).
	URL string
	// Offline skips the getMe probe on construction (tests).
	Offline bool
}

type Adapter struct {
	cfg     Config
	bot     *tele.Bot
	log     zerolog.Logger
	limiter *rate.Limiter
}

// MessageRef identifies a sent message for later deletion.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// MessageSig implements tele.Editable.
func (r MessageRef) MessageSig() (string, int64) {
	return strconv.Itoa(r.MessageID), r.ChatID
}

func New(cfg Config, log zerolog.Logger) (*Adapter, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("telegram token is empty")
	}
	b, err := tele.NewBot(tele.Settings{
		Token:   cfg.Token,
		URL:     cfg.URL,
		Offline: cfg.Offline,
	})
	if err != nil {
		return nil, err
	}
	return &Adapter{
		cfg: cfg,
		bot: b,
		log: log,
		// Bot API allows ~30 msg/s overall; one order never comes close,
		// but a burst of orders should not trip flood limits.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}, nil
}

// SendGroupMessage posts a MarkdownV2 message to the configured group chat
// with notifications enabled.
func (a *Adapter) SendGroupMessage(ctx context.Context, text string) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := a.bot.Send(&tele.Chat{ID: a.cfg.GroupID}, text, &tele.SendOptions{
		ParseMode:           tele.ModeMarkdownV2,
		DisableNotification: false,
	})
	return err
}

// SendText sends a plain-text reply into an arbitrary chat and returns a
// reference usable for later deletion.
func (a *Adapter) SendText(ctx context.Context, chatID int64, text string) (MessageRef, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return MessageRef{}, err
	}
	msg, err := a.bot.Send(&tele.Chat{ID: chatID}, text)
	if err != nil {
		return MessageRef{}, err
	}
	return MessageRef{ChatID: chatID, MessageID: msg.ID}, nil
}

// DeleteMessage removes a message. Callers treat failures as cosmetic.
func (a *Adapter) DeleteMessage(ctx context.Context, ref MessageRef) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	return a.bot.Delete(ref)
}

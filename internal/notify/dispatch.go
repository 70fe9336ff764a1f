package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lunchbot/internal/order"
)

// MailSender delivers a rendered notification to the mail relay.
type MailSender interface {
	Send(ctx context.Context, subject, body string) error
}

// ChatSender posts a MarkdownV2 message to the order group chat.
type ChatSender interface {
	SendGroupMessage(ctx context.Context, text string) error
}

// Status tags the result of one channel attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the per-channel dispatch result.
type Outcome struct {
	Channel string
	Status  Status
	Err     error
}

// Dispatcher renders both notification documents for a confirmed order and
// delivers them over mail and chat.
type Dispatcher struct {
	mail MailSender
	log  zerolog.Logger
	now  func() time.Time

	mu   sync.Mutex
	chat ChatSender // nil while chat credentials are absent
}

func NewDispatcher(mail MailSender, chat ChatSender, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{mail: mail, chat: chat, log: log, now: time.Now}
}

// SetChat swaps the chat channel at runtime. Passing nil returns the
// dispatcher to the credentials-absent skip policy.
func (d *Dispatcher) SetChat(chat ChatSender) {
	d.mu.Lock()
	d.chat = chat
	d.mu.Unlock()
}

// SetClock overrides the wall clock used for the rush decision. Tests only.
func (d *Dispatcher) SetClock(now func() time.Time) { d.now = now }

// Dispatch sends both documents concurrently; each channel runs to
// completion on its own and a slow or failed channel never cancels the
// other. Any non-sent, non-skipped outcome folds into a single logged
// failure. Nothing propagates to the caller: notification is auxiliary to
// order placement and must never break it.
func (d *Dispatcher) Dispatch(ctx context.Context, id int64, o order.Processed) []Outcome {
	now := d.now()

	subject := fmt.Sprintf("Новый заказ %d", id)
	if IsRush(o.Days, now) {
		subject = "[СРОЧНО] " + subject
	}
	body := RenderEmail(id, o, now)
	text := RenderMessage(id, o, now)

	outcomes := make([]Outcome, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		outcomes[0] = d.sendMail(ctx, subject, body)
	}()
	go func() {
		defer wg.Done()
		outcomes[1] = d.sendChat(ctx, text)
	}()
	wg.Wait()

	failed := false
	for _, out := range outcomes {
		if out.Status == StatusFailed {
			failed = true
		}
	}
	if failed {
		evt := d.log.Error()
		for _, out := range outcomes {
			evt = evt.Str(out.Channel, string(out.Status))
			if out.Err != nil {
				evt = evt.AnErr(out.Channel+"_err", out.Err)
			}
		}
		evt.Int64("order_id", id).Msg("order notification failed")
	} else {
		d.log.Debug().Int64("order_id", id).Msg("order notifications dispatched")
	}
	return outcomes
}

func (d *Dispatcher) sendMail(ctx context.Context, subject, body string) Outcome {
	if err := d.mail.Send(ctx, subject, body); err != nil {
		return Outcome{Channel: "mail", Status: StatusFailed, Err: err}
	}
	return Outcome{Channel: "mail", Status: StatusSent}
}

func (d *Dispatcher) sendChat(ctx context.Context, text string) Outcome {
	d.mu.Lock()
	chat := d.chat
	d.mu.Unlock()

	// Absent credentials are a deliberate no-op, not a failure.
	if chat == nil {
		return Outcome{Channel: "telegram", Status: StatusSkipped}
	}
	if err := chat.SendGroupMessage(ctx, text); err != nil {
		return Outcome{Channel: "telegram", Status: StatusFailed, Err: err}
	}
	return Outcome{Channel: "telegram", Status: StatusSent}
}

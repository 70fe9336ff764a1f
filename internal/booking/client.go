// Package booking forwards confirmed orders to the external reservation
// API. The API itself is an external collaborator; nothing here interprets
// the order beyond wrapping it in the reservation envelope.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lunchbot/internal/order"
)

// API places an order with the reservation service and returns its id.
type API interface {
	PlaceOrder(ctx context.Context, o order.Order) (int64, error)
}

type Config struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Token    string `yaml:"token" json:"token"`
	UserHash string `yaml:"user_hash" json:"user_hash"`
}

type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
	now  func() time.Time
}

func New(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 20 * time.Second},
		log:  log,
		now:  time.Now,
	}
}

// seatSlot is the fixed ticket slot the reservation API expects orders
// under. The API models everything as seat bookings; meal orders ride along
// in one well-known slot.
const seatSlot = "123"

type seatPayload struct {
	order.Order
	CreatedAt string `json:"createdAt"`
}

type reservationEnvelope struct {
	StartAddress  string  `json:"b_start_address"`
	StartDatetime string  `json:"b_start_datetime"`
	PaymentWay    int     `json:"b_payment_way"`
	MaxWaiting    string  `json:"b_max_waiting"`
	Options       options `json:"b_options"`
}

type options struct {
	Tickets tickets `json:"tickets"`
}

type tickets struct {
	Seats   map[string]map[string]seatPayload `json:"seats"`
	TID     map[string]string                 `json:"t_id"`
	Payment string                            `json:"payment"`
}

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Data    struct {
		BookingID int64 `json:"b_id"`
	} `json:"data"`
}

// PlaceOrder wraps the order in the reservation envelope and posts it
// form-encoded. An API-level "error" status is returned as an error even
// when the HTTP exchange itself succeeded.
func (c *Client) PlaceOrder(ctx context.Context, o order.Order) (int64, error) {
	env := reservationEnvelope{
		StartAddress:  "new",
		StartDatetime: "now",
		PaymentWay:    2,
		MaxWaiting:    "630000000",
		Options: options{Tickets: tickets{
			Seats: map[string]map[string]seatPayload{
				seatSlot: {"1": {Order: o, CreatedAt: c.now().UTC().Format(time.RFC3339)}},
			},
			TID:     map[string]string{seatSlot: seatSlot},
			Payment: seatSlot,
		}},
	}

	data, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("marshal reservation envelope: %w", err)
	}

	form := url.Values{}
	form.Set("data", string(data))
	form.Set("token", c.cfg.Token)
	form.Set("u_hash", c.cfg.UserHash)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("reservation api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("reservation api read: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return 0, fmt.Errorf("reservation api returned http %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("reservation api decode: %w", err)
	}
	if out.Status == "error" {
		msg := out.Message
		if msg == "" {
			msg = "unknown error"
		}
		return 0, fmt.Errorf("reservation api rejected order: %s", msg)
	}

	c.log.Debug().Int64("booking_id", out.Data.BookingID).Msg("order placed with reservation api")
	return out.Data.BookingID, nil
}

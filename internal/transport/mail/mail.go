// Package mail posts rendered notifications to the external mail relay.
package mail

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Client struct {
	endpoint string
	http     *http.Client
	log      zerolog.Logger
}

func New(endpoint string, log zerolog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

// Send posts a subject/body pair form-encoded. A non-2xx status is an
// error: the relay accepted the connection but refused the mail.
func (c *Client) Send(ctx context.Context, subject, body string) error {
	form := url.Values{}
	form.Set("subject", subject)
	form.Set("body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("mail relay returned http %d", resp.StatusCode)
	}
	c.log.Debug().Str("subject", subject).Msg("mail accepted by relay")
	return nil
}

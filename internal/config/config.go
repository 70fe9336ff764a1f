// Package config loads service configuration from an optional YAML/JSON
// file with an environment overlay on top. Chat credentials are optional by
// design: their absence switches the dispatcher to its skip policy, it is
// not an error state.
package config

import (
	"fmt"

	"lunchbot/internal/booking"
	"lunchbot/internal/logging"
	"lunchbot/internal/order"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Logging  logging.Config `yaml:"logging" json:"logging"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
	Mail     MailConfig     `yaml:"mail" json:"mail"`
	Booking  booking.Config `yaml:"booking" json:"booking"`
	Pricing  PricingConfig  `yaml:"pricing" json:"pricing"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr" json:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout" json:"shutdown_timeout"` // Go duration string
}

type TelegramConfig struct {
	Token   string `yaml:"token" json:"token"`
	GroupID int64  `yaml:"group_id" json:"group_id"`
}

// Enabled reports whether both chat credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.GroupID != 0
}

type MailConfig struct {
	Endpoint string `yaml:"endpoint" json:"endpoint"`
}

type PricingConfig struct {
	// Tier holds [price for 2 dishes, price for 3+ dishes].
	Tier []int `yaml:"tier" json:"tier"`
}

// PriceTier converts the configured slice to the fixed two-tier table.
func (p PricingConfig) PriceTier() order.PriceTier {
	var t order.PriceTier
	copy(t[:], p.Tier)
	return t
}

// Default returns the built-in configuration. Mail and booking endpoints
// default to the production services; chat credentials default to absent.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "15s",
		},
		Logging: logging.Config{Level: "info"},
		Mail: MailConfig{
			Endpoint: "https://ibronevik.ru/taxi/c/0/api/v1/mail/4/send",
		},
		Booking: booking.Config{
			Endpoint: "https://ibronevik.ru/taxi/c/0/api/v1/drive",
		},
		Pricing: PricingConfig{Tier: []int{2690, 3290}},
	}
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Mail.Endpoint == "" {
		return fmt.Errorf("mail.endpoint is required")
	}
	if c.Booking.Endpoint == "" {
		return fmt.Errorf("booking.endpoint is required")
	}
	if len(c.Pricing.Tier) != 2 {
		return fmt.Errorf("pricing.tier must have exactly 2 entries, got %d", len(c.Pricing.Tier))
	}
	// A token without a group id (or vice versa) is almost certainly a
	// half-finished deployment; refuse instead of silently skipping chat.
	if (c.Telegram.Token == "") != (c.Telegram.GroupID == 0) {
		return fmt.Errorf("telegram.token and telegram.group_id must be set together")
	}
	return nil
}

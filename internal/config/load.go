package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	yaml "go.yaml.in/yaml/v3"
)

// Load reads the config file at path (empty path means defaults only),
// applies the environment overlay and validates the result. A .env file in
// the working directory is folded into the environment first, so local
// setups don't need to export secrets.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// yaml.v3 accepts JSON as well, so one decoder covers both formats.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv lets the environment override file values. Secrets normally
// arrive this way rather than via the config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LUNCHBOT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_GROUP_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.GroupID = id
		}
	}
	if v := os.Getenv("MAIL_ENDPOINT"); v != "" {
		cfg.Mail.Endpoint = v
	}
	if v := os.Getenv("BOOKING_TOKEN"); v != "" {
		cfg.Booking.Token = v
	}
	if v := os.Getenv("BOOKING_USER_HASH"); v != "" {
		cfg.Booking.UserHash = v
	}
}

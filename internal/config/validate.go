package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
)

// ScheduleParser parses relay schedules, which carry a leading seconds field.
var ScheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	return nil
}

func (n *NotifyConfig) validate() error {
	if n.WebhookURL != "" {
		u, err := url.Parse(n.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("webhook_url %q must be an absolute http(s) URL", n.WebhookURL)
		}
	}
	if _, err := ScheduleParser.Parse(n.Schedule); err != nil {
		return fmt.Errorf("schedule %q: %w", n.Schedule, err)
	}
	if n.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", n.BatchSize)
	}
	if n.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be > 0 (got %d)", n.Concurrency)
	}
	if n.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be > 0 (got %d)", n.MaxAttempts)
	}
	if n.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", n.Timeout)
	}
	if n.RetentionDays <= 0 {
		return fmt.Errorf("retention_days must be > 0 (got %d)", n.RetentionDays)
	}
	if n.ClaimLease < n.Timeout {
		return fmt.Errorf("claim_lease %s must be at least timeout %s", n.ClaimLease, n.Timeout)
	}
	return nil
}

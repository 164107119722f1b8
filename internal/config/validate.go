package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn must not be blank")
	}

	if strings.TrimSpace(c.Session.Actor) == "" {
		return fmt.Errorf("session.actor must not be blank")
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Presence.Interval <= 0 {
		return fmt.Errorf("presence.interval must be > 0 (got %v)", c.Presence.Interval)
	}
	if c.Presence.TTL <= c.Presence.Interval {
		// Entries would expire between beats and the roster would flicker.
		return fmt.Errorf("presence.ttl (%v) must exceed presence.interval (%v)",
			c.Presence.TTL, c.Presence.Interval)
	}

	if c.Retention.ArchivedDays <= 0 {
		return fmt.Errorf("retention.archived_days must be > 0 (got %d)", c.Retention.ArchivedDays)
	}

	return nil
}

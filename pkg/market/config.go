package market

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"openterminal-api/pkg/confkit"
)

const defaultTickInterval = 1500 * time.Millisecond

// Config describes the simulated market: the seeded watchlist and the cadence
// at which the tick generator advances it.
type Config struct {
	TickIntervalRaw string        `yaml:"tick_interval"`
	TickInterval    time.Duration `yaml:"-"`
	Watchlist       []SeedEntry   `yaml:"watchlist"`
}

// DefaultConfig returns a config with the reference cadence and the built-in
// watchlist.
func DefaultConfig() *Config {
	return &Config{TickInterval: defaultTickInterval}
}

// LoadConfig reads market configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read market config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal market config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	raw := strings.TrimSpace(os.ExpandEnv(c.TickIntervalRaw))
	if raw == "" {
		c.TickInterval = defaultTickInterval
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("market config: invalid tick_interval %q: %w", raw, err)
	}
	c.TickInterval = d
	return nil
}

// Validate checks the watchlist entries and cadence.
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("market config: tick_interval must be positive, got %s", c.TickInterval)
	}
	seen := make(map[string]struct{}, len(c.Watchlist))
	for i, entry := range c.Watchlist {
		if err := entry.validate(i); err != nil {
			return err
		}
		sym := Canonical(entry.Symbol)
		if _, dup := seen[sym]; dup {
			return fmt.Errorf("market config: duplicate watchlist symbol %s", sym)
		}
		seen[sym] = struct{}{}
	}
	return nil
}

// Seed returns the configured watchlist, falling back to the built-in list
// when the config omits one.
func (c *Config) Seed() []SeedEntry {
	if c == nil || len(c.Watchlist) == 0 {
		return DefaultSeed()
	}
	return c.Watchlist
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"openterminal-api/pkg/confkit"
	llmpkg "openterminal-api/pkg/llm"
	marketpkg "openterminal-api/pkg/market"
)

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	// Defaults to dev.
	Env string `json:",default=dev"`

	LLM    confkit.Section[llmpkg.Config]    `json:",optional"`
	Market confkit.Section[marketpkg.Config] `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test"
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "dev"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.LLM.Hydrate(base, llmpkg.LoadConfig); err != nil {
		return fmt.Errorf("load llm config: %w", err)
	}
	if err := c.Market.Hydrate(base, marketpkg.LoadConfig); err != nil {
		return fmt.Errorf("load market config: %w", err)
	}

	return nil
}

// LLMConfig returns the hydrated LLM section, or env-derived defaults when
// the section is absent.
func (c *Config) LLMConfig() *llmpkg.Config {
	if c.LLM.Value != nil {
		return c.LLM.Value
	}
	return llmpkg.DefaultConfig()
}

// MarketConfig returns the hydrated market section, or defaults when the
// section is absent.
func (c *Config) MarketConfig() *marketpkg.Config {
	if c.Market.Value != nil {
		return c.Market.Value
	}
	return marketpkg.DefaultConfig()
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/cookiebot/pkg/game"
)

const (
	// DefaultURL is the game page the bot plays.
	DefaultURL = "https://orteil.dashnet.org/cookieclicker/"

	// DefaultBakeryName is the save name set on startup.
	DefaultBakeryName = "selenium"

	defaultStartupTimeout = 60 * time.Second
	defaultSettleDelay    = 2 * time.Second
	defaultClickTimeout   = 500 * time.Millisecond
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

// Config holds everything a run needs.
type Config struct {
	// URL of the game page
	URL string `yaml:"url" json:"url"`

	// BakeryName is typed into the rename prompt once at startup
	BakeryName string `yaml:"bakery_name" json:"bakery_name"`

	// ClickWindow is the length of each clicking phase
	ClickWindow time.Duration `yaml:"click_window" json:"click_window"`

	// ClickInterval is the pause between clicks (0 clicks back to back)
	ClickInterval time.Duration `yaml:"click_interval" json:"click_interval"`

	// StartupTimeout bounds the wait for the primary action to appear
	StartupTimeout time.Duration `yaml:"startup_timeout" json:"startup_timeout"`

	// SettleDelay is waited after the primary action appears, before the first click
	SettleDelay time.Duration `yaml:"settle_delay" json:"settle_delay"`

	// ClickTimeout bounds how long a single click waits for its target to be clickable
	ClickTimeout time.Duration `yaml:"click_timeout" json:"click_timeout"`

	Browser  BrowserConfig `yaml:"browser" json:"browser"`
	Locators game.Locators `yaml:"locators" json:"locators"`
	Logging  LoggingConfig `yaml:"logging" json:"logging"`
}

// BrowserConfig configures the browser session.
type BrowserConfig struct {
	Headless       bool `yaml:"headless" json:"headless"`
	ViewportWidth  int  `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int  `yaml:"viewport_height" json:"viewport_height"`

	// SkipInstall skips downloading the Playwright driver and browsers
	SkipInstall bool `yaml:"skip_install" json:"skip_install"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls logging level: quiet, normal, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`

	// Dir overrides the log directory (default ~/.cookiebot/logs)
	Dir string `yaml:"dir" json:"dir"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		URL:            DefaultURL,
		BakeryName:     DefaultBakeryName,
		ClickWindow:    game.DefaultClickWindow,
		StartupTimeout: defaultStartupTimeout,
		SettleDelay:    defaultSettleDelay,
		ClickTimeout:   defaultClickTimeout,
		Browser: BrowserConfig{
			ViewportWidth:  defaultViewportWidth,
			ViewportHeight: defaultViewportHeight,
		},
		Locators: game.DefaultLocators(),
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url must be an absolute URL, got %q", c.URL)
	}

	if c.ClickWindow <= 0 {
		return fmt.Errorf("click_window must be positive, got %v", c.ClickWindow)
	}
	if c.ClickInterval < 0 {
		return fmt.Errorf("click_interval cannot be negative")
	}
	if c.StartupTimeout <= 0 {
		return fmt.Errorf("startup_timeout must be positive, got %v", c.StartupTimeout)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("settle_delay cannot be negative")
	}
	if c.ClickTimeout <= 0 {
		return fmt.Errorf("click_timeout must be positive, got %v", c.ClickTimeout)
	}

	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Browser.ViewportWidth, c.Browser.ViewportHeight)
	}

	if missing := c.Locators.Missing(); len(missing) > 0 {
		return fmt.Errorf("missing locators: %s", strings.Join(missing, ", "))
	}

	switch c.Logging.Verbosity {
	case "quiet", "normal", "verbose", "debug":
	case "":
		c.Logging.Verbosity = "normal"
	default:
		return fmt.Errorf("invalid verbosity: %s (must be quiet, normal, verbose or debug)", c.Logging.Verbosity)
	}

	return nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"sheetgrip/internal/detent"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/spring"
	"sheetgrip/internal/transition"
)

// FileName is the config file looked up in the working directory
const FileName = ".sheetgrip.toml"

// CurrentVersion is the config schema version
const CurrentVersion = 1

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Sheet   SheetSettings  `toml:"sheet"`
	Spring  SpringSettings `toml:"spring"`
	UI      UISettings     `toml:"ui"`
	Log     LogSettings    `toml:"log"`
}

// SheetSettings configures the sheet itself
type SheetSettings struct {
	Detents               []detent.Detent `toml:"detents"`
	SelectedDetent        detent.Detent   `toml:"selected_detent"`
	LargestUndimmedDetent detent.Detent   `toml:"largest_undimmed_detent"`
	PrefersGrabberVisible bool            `toml:"prefers_grabber_visible"`
	PreferredCornerRadius *float64        `toml:"preferred_corner_radius,omitempty"`
	ModalLocked           bool            `toml:"modal_locked"`
	// TopMargin is in rows; 0 uses the engine default
	TopMargin float64 `toml:"top_margin"`
}

// SpringSettings tunes the animations
type SpringSettings struct {
	Damping              float64 `toml:"damping"`
	PresentationResponse float64 `toml:"presentation_response"`
	SettleResponse       float64 `toml:"settle_response"`
	FPS                  int     `toml:"fps"`
	ReduceMotion         bool    `toml:"reduce_motion"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowStatus     bool   `toml:"show_status"`
	BackgroundText string `toml:"background_text"`
	// safe-area insets in rows, reserved for the status and help lines
	SafeTop    int `toml:"safe_top"`
	SafeBottom int `toml:"safe_bottom"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path; an empty path uses
// FileName in the working directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = FileName
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file, falling back to DefaultConfig
// when the file does not exist.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Default: true})
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}
	cs.publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values; unknown keys are an error.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) publish(e eventbus.DomainEvent) {
	if cs.bus != nil {
		cs.bus.Publish(e)
	}
}

// Parse decodes and validates a TOML document on top of DefaultConfig
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config at line %d, column %d: %w", row, col, err)
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown config keys:\n%s", serr.String())
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration: the platform's system
// sheet with a single large detent.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Sheet: SheetSettings{
			Detents:               []detent.Detent{detent.Large()},
			PrefersGrabberVisible: true,
			TopMargin:             2,
		},
		Spring: SpringSettings{
			Damping:              spring.CriticalDamping,
			PresentationResponse: spring.PresentationResponse,
			SettleResponse:       spring.SettleResponse,
			FPS:                  spring.DefaultFPS,
		},
		UI: UISettings{
			ShowStatus: true,
			SafeTop:    1,
			SafeBottom: 1,
		},
		Log: LogSettings{
			Level: "info",
			File:  "sheetgrip.log",
		},
	}
}

// Validate reports the first configuration error
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Spring.FPS <= 0 || c.Spring.FPS > 240 {
		return &transition.ConfigError{Field: "spring.fps", Value: fmt.Sprint(c.Spring.FPS), Err: errors.New("must be within 1..240")}
	}
	if c.UI.SafeTop < 0 || c.UI.SafeBottom < 0 {
		return &transition.ConfigError{Field: "ui safe area", Err: errors.New("insets must not be negative")}
	}
	if _, err := c.LogLevel(); err != nil {
		return &transition.ConfigError{Field: "log.level", Value: c.Log.Level, Err: err}
	}
	return c.Options().Validate()
}

// Options converts the sheet and spring settings for the controller
func (c *Config) Options() transition.Options {
	return transition.Options{
		Detents:               append([]detent.Detent(nil), c.Sheet.Detents...),
		SelectedDetent:        c.Sheet.SelectedDetent,
		LargestUndimmedDetent: c.Sheet.LargestUndimmedDetent,
		PrefersGrabberVisible: c.Sheet.PrefersGrabberVisible,
		PreferredCornerRadius: c.Sheet.PreferredCornerRadius,
		ModalLocked:           c.Sheet.ModalLocked,
		TopMargin:             c.Sheet.TopMargin,
		Damping:               c.Spring.Damping,
		PresentationResponse:  c.Spring.PresentationResponse,
		SettleResponse:        c.Spring.SettleResponse,
	}
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

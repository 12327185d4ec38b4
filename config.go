package corkboard

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds board configuration.
type Config struct {
	Window WindowConfig
	Board  BoardConfig
	Log    LogConfig
}

// WindowConfig holds host window settings.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Debug  bool
}

// BoardConfig describes the cards placed on the surface.
type BoardConfig struct {
	// CardCount is used when Cards is empty: that many placeholder cards are
	// created.
	CardCount  int     `mapstructure:"card_count"`
	CardWidth  float64 `mapstructure:"card_width"`
	CardHeight float64 `mapstructure:"card_height"`
	// StartX/StartY is the initial logical position of every card.
	StartX float64 `mapstructure:"start_x"`
	StartY float64 `mapstructure:"start_y"`
	// Cascade offsets each successive card so the stack stays readable.
	// Zero stacks all cards exactly at the start position.
	Cascade float64
	Cards   []CardConfig
}

// CardConfig is a single card's content.
type CardConfig struct {
	Title string
	Text  string
	Color string // hex "#rrggbb"; empty = white
}

// LogConfig controls the package logger.
type LogConfig struct {
	Level string // debug, info, warn, error; empty disables logging
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present: five white cards stacked at (100, 100).
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "Corkboard", Width: 1024, Height: 768},
		Board: BoardConfig{
			CardCount:  5,
			CardWidth:  200,
			CardHeight: 100,
			StartX:     DefaultPosition.X,
			StartY:     DefaultPosition.Y,
		},
	}
}

// LoadConfig reads configuration from file and env. The file is
// $CORKBOARD_CONFIG if set, else $HOME/.config/corkboard/config.toml when
// present. Env var overrides use prefix CORKBOARD_ (e.g. CORKBOARD_BOARD_CARD_COUNT).
func LoadConfig() (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CORKBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "corkboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CORKBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return decodeConfig(v)
}

// ParseConfig decodes a TOML document on top of the defaults. Env overrides
// do not apply.
func ParseConfig(toml string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(toml)); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return decodeConfig(v)
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.debug", d.Window.Debug)
	v.SetDefault("board.card_count", d.Board.CardCount)
	v.SetDefault("board.card_width", d.Board.CardWidth)
	v.SetDefault("board.card_height", d.Board.CardHeight)
	v.SetDefault("board.start_x", d.Board.StartX)
	v.SetDefault("board.start_y", d.Board.StartY)
	v.SetDefault("board.cascade", d.Board.Cascade)
	v.SetDefault("log.level", d.Log.Level)
}

func decodeConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Board.CardWidth <= 0 || c.Board.CardHeight <= 0 {
		return fmt.Errorf("config: card size %vx%v must be positive", c.Board.CardWidth, c.Board.CardHeight)
	}
	if c.Board.CardCount < 0 {
		return fmt.Errorf("config: card_count %d must not be negative", c.Board.CardCount)
	}
	for i, card := range c.Board.Cards {
		if _, err := parseHexColor(card.Color); err != nil {
			return fmt.Errorf("config: card %d: %w", i, err)
		}
	}
	if _, err := c.Log.slogLevel(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// NewLogger builds a text logger writing to stderr at the configured level,
// or nil when logging is disabled.
func (c LogConfig) NewLogger() *slog.Logger {
	level, err := c.slogLevel()
	if err != nil || c.Level == "" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (c LogConfig) slogLevel() (slog.Level, error) {
	var level slog.Level
	if c.Level == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("log level %q: %w", c.Level, err)
	}
	return level, nil
}

// parseHexColor parses "#rrggbb" or "rrggbb". Empty means white.
func parseHexColor(s string) (Color, error) {
	if s == "" {
		return ColorWhite, nil
	}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: want #rrggbb: %w", s, err)
	}
	r, g, b := uint8(v>>16), uint8(v>>8), uint8(v)
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}, nil
}

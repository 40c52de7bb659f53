package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/aaronzipp/werewolf/internal/game"
	"github.com/aaronzipp/werewolf/internal/models"
)

// Config holds the process configuration, read from the environment and an
// optional .env file
type Config struct {
	Board      string         `env:"WEREWOLF_BOARD" envDefault:"basic"`
	Roles      map[string]int `env:"WEREWOLF_ROLES" envKeyValSeparator:":"` // e.g. werewolf:2,seer:1,villager:3
	PlayerName string         `env:"WEREWOLF_PLAYER_NAME"`
	Autoplay   bool           `env:"WEREWOLF_AUTOPLAY"`
	Seed       uint64         `env:"WEREWOLF_SEED"` // 0 draws a random seed

	DiscussionRounds int           `env:"WEREWOLF_DISCUSSION_ROUNDS" envDefault:"3"`
	MaxPKRounds      int           `env:"WEREWOLF_MAX_PK_ROUNDS" envDefault:"5"`
	MaxRounds        int           `env:"WEREWOLF_MAX_ROUNDS" envDefault:"20"`
	DecisionTimeout  time.Duration `env:"WEREWOLF_DECISION_TIMEOUT" envDefault:"45s"`
	HumanTimeout     time.Duration `env:"WEREWOLF_HUMAN_TIMEOUT" envDefault:"5m"`

	LogLevel  string `env:"WEREWOLF_LOG_LEVEL" envDefault:"info"`
	LogDir    string `env:"WEREWOLF_LOG_DIR" envDefault:"storage/game_logs"`
	ArchiveDB string `env:"WEREWOLF_ARCHIVE_DB"` // sqlite path, empty disables the archive

	LLM LLM
}

// LLM configures the OpenAI-compatible text generator
type LLM struct {
	APIKey      string        `env:"DEEPSEEK_API_KEY"`
	BaseURL     string        `env:"DEEPSEEK_BASE_URL" envDefault:"https://api.deepseek.com/v1"`
	Model       string        `env:"WEREWOLF_LLM_MODEL" envDefault:"deepseek-chat"`
	Temperature float64       `env:"WEREWOLF_LLM_TEMPERATURE" envDefault:"0.1"`
	Timeout     time.Duration `env:"WEREWOLF_LLM_TIMEOUT" envDefault:"30s"`
	RPS         float64       `env:"WEREWOLF_LLM_RPS" envDefault:"2"`
}

// Enabled reports whether generation can reach a model
func (l LLM) Enabled() bool {
	return l.APIKey != ""
}

// Load reads .env files when present, then parses and validates the
// environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse reads the environment without validating it
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Composition turns the custom role list into counts; aliases add up
func (c *Config) Composition() (game.Composition, error) {
	if len(c.Roles) == 0 {
		return nil, nil
	}
	comp := make(game.Composition, len(c.Roles))
	for name, n := range c.Roles {
		kind, err := models.ParseRoleKind(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", game.ErrInvalidComposition, err)
		}
		comp[kind] += n
	}
	return comp, nil
}

// Validate rejects configurations the game cannot start with
func (c *Config) Validate() error {
	comp, err := c.Composition()
	if err != nil {
		return err
	}
	if _, err := game.BoardComposition(c.Board, comp); err != nil {
		return err
	}
	if c.LLM.RPS < 0 {
		return fmt.Errorf("WEREWOLF_LLM_RPS must not be negative, got %v", c.LLM.RPS)
	}
	return nil
}

// Settings returns the engine policy
func (c *Config) Settings() game.Settings {
	return game.Settings{
		DiscussionRounds: c.DiscussionRounds,
		MaxPKRounds:      c.MaxPKRounds,
		MaxRounds:        c.MaxRounds,
		DecisionTimeout:  c.DecisionTimeout,
		HumanTimeout:     c.HumanTimeout,
	}
}

// Package config loads game and simulation settings from files, the
// environment and command-line flags, and applies the input defaulting
// rules shared by every front end.
package config

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ismaeelS/WarCardGame/engine"
	"github.com/ismaeelS/WarCardGame/game"
)

// EnvPrefix is prepended to every environment override, e.g.
// WARSIM_TURN_LIMIT or WARSIM_SIMULATE_GAMES.
const EnvPrefix = "WARSIM"

const (
	DefaultGames    = 1000
	DefaultLogLevel = "info"
)

type PlayersConfig struct {
	First  string `mapstructure:"first"`
	Second string `mapstructure:"second"`
}

type SimulateConfig struct {
	Games   int `mapstructure:"games"`
	Workers int `mapstructure:"workers"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Config is the fully resolved configuration.
type Config struct {
	Players       PlayersConfig  `mapstructure:"players"`
	TurnLimit     int            `mapstructure:"-"`
	TurnsPerBatch int            `mapstructure:"turns_per_batch"`
	Seed          uint64         `mapstructure:"seed"`
	DealFile      string         `mapstructure:"deal_file"`
	Simulate      SimulateConfig `mapstructure:"simulate"`
	Log           LogConfig      `mapstructure:"log"`
}

// flagKeys maps CLI flag names onto configuration keys.
var flagKeys = map[string]string{
	"first":           "players.first",
	"second":          "players.second",
	"turn-limit":      "turn_limit",
	"turns-per-batch": "turns_per_batch",
	"seed":            "seed",
	"deal":            "deal_file",
	"games":           "simulate.games",
	"workers":         "simulate.workers",
	"log-level":       "log.level",
	"dev":             "log.development",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("players.first", game.DefaultFirstName)
	v.SetDefault("players.second", game.DefaultSecondName)
	v.SetDefault("turn_limit", strconv.Itoa(game.DefaultTurnLimit))
	v.SetDefault("turns_per_batch", 0)
	v.SetDefault("seed", 0)
	v.SetDefault("deal_file", "")
	v.SetDefault("simulate.games", DefaultGames)
	v.SetDefault("simulate.workers", 0)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.development", false)
}

// Load resolves configuration from defaults, the optional file at path,
// WARSIM_* environment variables and any of flags that were set, in
// increasing order of precedence.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// Read as text so that junk input falls back to the default instead of
	// failing the decode.
	cfg.TurnLimit = ParseTurnLimit(v.GetString("turn_limit"))
	cfg.Normalize()
	return &cfg, nil
}

// Normalize applies the defaulting rules to values set directly.
func (c *Config) Normalize() {
	c.Players.First = strings.TrimSpace(c.Players.First)
	c.Players.Second = strings.TrimSpace(c.Players.Second)
	if c.Players.First == "" {
		c.Players.First = game.DefaultFirstName
	}
	if c.Players.Second == "" {
		c.Players.Second = game.DefaultSecondName
	}
	if c.TurnLimit < 0 {
		c.TurnLimit = game.DefaultTurnLimit
	}
	if c.TurnsPerBatch != 0 {
		c.TurnsPerBatch = NormalizeTurnsToPlay(c.TurnsPerBatch)
	}
	if c.Simulate.Games < 1 {
		c.Simulate.Games = 1
	}
	if c.Simulate.Workers <= 0 {
		c.Simulate.Workers = runtime.NumCPU()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// GameConfig is the per-game part of c.
func (c *Config) GameConfig() game.Config {
	return game.Config{
		FirstName:  c.Players.First,
		SecondName: c.Players.Second,
		TurnLimit:  c.TurnLimit,
	}
}

// Deal returns the opening decks: the deal file when one is configured,
// otherwise the standard set shuffled with Seed and dealt alternately.
func (c *Config) Deal() (first, second []engine.Card, err error) {
	if c.DealFile != "" {
		d, err := LoadDeal(c.DealFile)
		if err != nil {
			return nil, nil, err
		}
		return d.First, d.Second, nil
	}
	cards := engine.StandardCards()
	engine.Shuffle(cards, c.Seed)
	first, second = engine.Split(cards)
	return first, second, nil
}

// ParseTurnLimit reads a turn limit. Anything that is not an integer of at
// least 0 gives game.DefaultTurnLimit.
func ParseTurnLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return game.DefaultTurnLimit
	}
	return n
}

// ParseTurnsToPlay reads a batch size. Anything that is not an integer
// greater than 1 means a single turn.
func ParseTurnsToPlay(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 1
	}
	return NormalizeTurnsToPlay(n)
}

func NormalizeTurnsToPlay(n int) int {
	if n < 2 {
		return 1
	}
	return n
}

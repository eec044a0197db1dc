package meta

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type Config struct {
	Mode      string        `mapstructure:"mode"`
	Depth     int           `mapstructure:"depth"`
	MoveTime  time.Duration `mapstructure:"move_time"`
	EvalCache bool          `mapstructure:"eval_cache"`
	LogLevel  string        `mapstructure:"log_level"`
	Games     int           `mapstructure:"games"`
	Workers   int           `mapstructure:"workers"`
	Episodes  int           `mapstructure:"episodes"`
	OutputDir string        `mapstructure:"output_dir"`
}

// Load reads the configuration from defaults, the optional file at path and
// UTTT_* environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("mode", MODE)
	v.SetDefault("depth", DEPTH)
	v.SetDefault("move_time", MOVE_TIME)
	v.SetDefault("eval_cache", false)
	v.SetDefault("log_level", LOG_LEVEL)
	v.SetDefault("games", GAMES)
	v.SetDefault("workers", WORKERS)
	v.SetDefault("episodes", EPISODES)
	v.SetDefault("output_dir", OUTPUT_DIR)

	v.SetEnvPrefix("UTTT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Mode != "" && !slices.Contains(Modes, c.Mode) {
		return fmt.Errorf("invalid mode %q, expected one of %v", c.Mode, Modes)
	}
	if c.Depth < 1 {
		return fmt.Errorf("invalid depth %d, must be at least 1", c.Depth)
	}
	if c.MoveTime < 0 {
		return fmt.Errorf("invalid move time %v", c.MoveTime)
	}
	if c.Games < 1 || c.Workers < 1 || c.Episodes < 1 {
		return fmt.Errorf("games (%d), workers (%d) and episodes (%d) must be positive", c.Games, c.Workers, c.Episodes)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the configured zerolog level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

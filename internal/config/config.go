package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/riemann/internal/numtheory"
	"github.com/ensigniasec/riemann/internal/validate"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "~/.config/riemann/config.yaml"

const (
	defaultMaxPrimeN    = 1_000_000
	defaultRoundSeconds = 10
	defaultResultDelay  = 2 * time.Second
	defaultAddr         = ":8080"
)

// Game tunes the prime prediction game.
type Game struct {
	RoundSeconds int           `yaml:"round_seconds" validate:"min=1,max=120"`
	ResultDelay  time.Duration `yaml:"result_delay"  validate:"min=0,max=30s"`
}

// Server tunes the HTTP API.
type Server struct {
	Addr string `yaml:"addr" validate:"required,listenaddr"`
}

// Config represents the structure of the optional config file.
// The file is only ever read; session state is never written back.
type Config struct {
	ZetaTerms int    `yaml:"zeta_terms"  validate:"min=1,max=1000000"`
	MaxPrimeN int    `yaml:"max_prime_n" validate:"min=1,max=10000000"`
	LogLevel  string `yaml:"log_level"   validate:"omitempty,loglevel"`
	Game      Game   `yaml:"game"`
	Server    Server `yaml:"server"`

	// Path is the resolved file the values came from; empty when defaults were used.
	Path string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ZetaTerms: numtheory.DefaultZetaTerms,
		MaxPrimeN: defaultMaxPrimeN,
		Game: Game{
			RoundSeconds: defaultRoundSeconds,
			ResultDelay:  defaultResultDelay,
		},
		Server: Server{Addr: defaultAddr},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Values present in the file replace the defaults; the result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	expandedPath, err := expandTilde(path)
	if err != nil {
		return cfg, err
	}

	logrus.Debug("Loading config file from: ", expandedPath)
	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debug("No config file found; using defaults")
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", expandedPath, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", expandedPath, err)
	}
	cfg.Path = expandedPath
	return cfg, nil
}

// ApplyLogLevel sets the logrus level from the config when one is given.
func (c Config) ApplyLogLevel() {
	if c.LogLevel == "" {
		return
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return
	}
	logrus.SetLevel(lvl)
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

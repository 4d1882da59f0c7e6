// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Backend selects where issues live.
type Backend string

const (
	BackendGitHub Backend = "github"
	BackendLocal  Backend = "local"
)

// Backends lists the accepted backend names.
var Backends = []Backend{BackendGitHub, BackendLocal}

// String, Set and Type make *Backend usable as a pflag.Value.
func (b *Backend) String() string { return string(*b) }

func (b *Backend) Set(v string) error {
	for _, known := range Backends {
		if v == string(known) {
			*b = known
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", joinBackends())
}

func (b *Backend) Type() string { return "backend" }

var _ pflag.Value = (*Backend)(nil)

func joinBackends() string {
	names := make([]string, len(Backends))
	for i, b := range Backends {
		names[i] = string(b)
	}
	return strings.Join(names, "|")
}

var (
	ErrMissingRepository = errors.New("owner and repo are required")
	ErrMissingToken      = errors.New("a GitHub token is required")
)

// Config holds every setting the commands need.
type Config struct {
	Token     string
	Owner     string
	Repo      string
	Backend   Backend
	APIURL    string
	DBPath    string
	LocaleDir string
	PageSize  int
	Log       bool
	TimeoutMs int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	dbPath := filepath.Join(".pld", "tracker.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".pld", "tracker.db")
	}
	return Config{
		Backend:   BackendGitHub,
		APIURL:    "https://api.github.com",
		DBPath:    dbPath,
		PageSize:  100,
		TimeoutMs: 30000,
	}
}

// Load reads envFiles (default ".env") into the process environment, without
// overriding variables already set, then builds the configuration. Missing
// env files are ignored; invalid values fall back to defaults.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() Config {
	cfg := DefaultConfig()

	cfg.Token = os.Getenv("PLD_GITHUB_TOKEN")
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	cfg.Owner = os.Getenv("PLD_OWNER")
	cfg.Repo = os.Getenv("PLD_REPO")
	if v := os.Getenv("PLD_BACKEND"); v != "" {
		_ = cfg.Backend.Set(v)
	}
	if v := os.Getenv("PLD_GITHUB_API"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("PLD_DB"); v != "" {
		cfg.DBPath = v
	}
	cfg.LocaleDir = os.Getenv("PLD_LOCALE_DIR")
	if v := os.Getenv("PLD_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 && n <= 100 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("PLD_LOG"); v != "" {
		cfg.Log, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PLD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	return cfg
}

// Timeout is the per-request tracker timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// ValidateTracker checks what a command talking to the tracker needs.
func (c Config) ValidateTracker() error {
	if c.Owner == "" || c.Repo == "" {
		return ErrMissingRepository
	}
	if c.Backend == BackendGitHub && c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

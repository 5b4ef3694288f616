// Package config loads user settings from .deen.yaml and DEEN_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/sadopc/deen/internal/ledger"
	"github.com/sadopc/deen/internal/schedule"
	"github.com/sadopc/deen/internal/store"
)

const (
	BackendSQLite = "sqlite"
	BackendDiskv  = "diskv"
)

var (
	ErrUnknownBackend   = errors.New("unknown backend")
	ErrDuplicateCounter = errors.New("duplicate counter id")
	ErrNoCounters       = errors.New("at least one counter is required")
)

type Config struct {
	Backend  string
	Path     string
	LogFile  string
	Location *time.Location
	Schedule []schedule.Event
	Counters []ledger.Definition
}

type scheduleEntry struct {
	Name   string `mapstructure:"name"`
	Arabic string `mapstructure:"arabic"`
	Time   string `mapstructure:"time"`
}

// DefaultCatalog is the built-in tasbih set.
func DefaultCatalog() []ledger.Definition {
	return []ledger.Definition{
		{ID: "1", Name: "Subhanallah", Arabic: "سُبْحَانَ اللَّهِ", Target: 33},
		{ID: "2", Name: "Alhamdulillah", Arabic: "الْحَمْدُ لِلَّهِ", Target: 33},
		{ID: "3", Name: "Allahu Akbar", Arabic: "اللَّهُ أَكْبَرُ", Target: 33},
		{ID: "4", Name: "La ilaha illallah", Arabic: "لَا إِلَهَ إِلَّا اللَّهُ", Target: 100},
		{ID: "5", Name: "Astaghfirullah", Arabic: "أَسْتَغْفِرُ اللَّهَ", Target: 100},
	}
}

// Load reads .deen.yaml from $DEEN_CONFIG_PATH, $HOME or the working
// directory. A missing file leaves every setting at its default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("timezone", "")
	v.SetConfigName(".deen") // .yaml is implicit
	v.SetEnvPrefix("DEEN")
	v.AutomaticEnv()

	if override := os.Getenv("DEEN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{Backend: v.GetString("backend")}

	switch cfg.Backend {
	case BackendSQLite, BackendDiskv:
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, cfg.Backend)
	}

	path, err := resolvePath(v.GetString("path"), cfg.Backend)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	logFile := v.GetString("log_file")
	if logFile == "" {
		dir := path
		if cfg.Backend == BackendSQLite {
			dir = filepath.Dir(path)
		}
		logFile = filepath.Join(dir, "deen.log")
	}
	if cfg.LogFile, err = homedir.Expand(logFile); err != nil {
		return nil, fmt.Errorf("expand log_file: %w", err)
	}

	cfg.Location = time.Local
	if tz := v.GetString("timezone"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("timezone %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	cfg.Schedule = schedule.Default()
	if v.IsSet("schedule") {
		var entries []scheduleEntry
		if err := v.UnmarshalKey("schedule", &entries); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
		if cfg.Schedule, err = toEvents(entries); err != nil {
			return nil, err
		}
	}
	if err := schedule.Validate(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	cfg.Counters = DefaultCatalog()
	if v.IsSet("counters") {
		var defs []ledger.Definition
		if err := v.UnmarshalKey("counters", &defs); err != nil {
			return nil, fmt.Errorf("decode counters: %w", err)
		}
		cfg.Counters = defs
	}
	if err := ValidateCatalog(cfg.Counters); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(p, backend string) (string, error) {
	if p == "" {
		if backend == BackendDiskv {
			return store.DefaultDiskPath()
		}
		return store.DefaultDBPath()
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("expand path: %w", err)
	}
	return expanded, nil
}

func toEvents(entries []scheduleEntry) ([]schedule.Event, error) {
	events := make([]schedule.Event, 0, len(entries))
	for _, e := range entries {
		at, err := schedule.ParseTimeOfDay(e.Time)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", e.Name, err)
		}
		events = append(events, schedule.Event{Name: e.Name, Arabic: e.Arabic, At: at})
	}
	return events, nil
}

// ValidateCatalog rejects catalogs with missing or repeated ids or
// non-positive targets.
func ValidateCatalog(defs []ledger.Definition) error {
	if len(defs) == 0 {
		return ErrNoCounters
	}
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("counter %q: empty id", d.Name)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w %q", ErrDuplicateCounter, d.ID)
		}
		seen[d.ID] = true
		if d.Target <= 0 {
			return fmt.Errorf("counter %q: %w", d.ID, ledger.ErrInvalidTarget)
		}
	}
	return nil
}

// OpenStore opens the configured backend.
func (c *Config) OpenStore() (Store, error) {
	if c.Backend == BackendDiskv {
		s, err := store.NewDisk(c.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := store.New(c.Path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

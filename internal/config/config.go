package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=sqlite diskv memory"`
	Path    string `mapstructure:"path" validate:"required_unless=Backend memory"`
}

type IDsConfig struct {
	Scheme string `mapstructure:"scheme" validate:"oneof=base36 uuid"`
}

type NavConfig struct {
	Pages          int     `mapstructure:"pages" validate:"gte=1,lte=5"`
	StartPage      int     `mapstructure:"start_page" validate:"gte=1,ltefield=Pages"`
	AxisLockPx     float64 `mapstructure:"axis_lock_px" validate:"gte=0"`
	RubberBand     float64 `mapstructure:"rubber_band" validate:"gt=0,lte=1"`
	MaxThresholdPx float64 `mapstructure:"max_threshold_px" validate:"gt=0"`
	ThresholdRatio float64 `mapstructure:"threshold_ratio" validate:"gt=0,lte=1"`
	Velocity       float64 `mapstructure:"velocity" validate:"gt=0"`
	TransitionMs   int     `mapstructure:"transition_ms" validate:"gte=0"`
}

type MoodConfig struct {
	Category string `mapstructure:"category" validate:"required"`
}

type NotificationsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type ReminderConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Time     string   `mapstructure:"time" validate:"omitempty,datetime=15:04"` // "20:00"
	Workdays []string `mapstructure:"workdays"`                                  // ["Mon","Tue",...]
	Holidays []string `mapstructure:"holidays"`                                  // ["2025-01-26"]
	Timezone string   `mapstructure:"timezone" validate:"omitempty,timezone"`    // e.g. "Asia/Kolkata"
}

type Config struct {
	Theme         string              `mapstructure:"theme" validate:"oneof=default green purple"`
	Storage       StorageConfig       `mapstructure:"storage"`
	IDs           IDsConfig           `mapstructure:"ids"`
	Nav           NavConfig           `mapstructure:"nav"`
	Mood          MoodConfig          `mapstructure:"mood"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Reminder      ReminderConfig      `mapstructure:"reminder"`
}

func Default() Config {
	return Config{
		Theme: "default",
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    filepath.Join("~", ".local", "share", "lifelog"),
		},
		IDs: IDsConfig{Scheme: "base36"},
		Nav: NavConfig{
			Pages:          5,
			StartPage:      3,
			AxisLockPx:     6,
			RubberBand:     0.35,
			MaxThresholdPx: 90,
			ThresholdRatio: 0.18,
			Velocity:       0.65,
			TransitionMs:   220,
		},
		Mood:          MoodConfig{Category: "Mood"},
		Notifications: NotificationsConfig{Enabled: true},
		Reminder: ReminderConfig{
			Enabled:  false,
			Time:     "20:00",
			Workdays: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
			Holidays: []string{},
		},
	}
}

// Load reads configuration from configFile, or from config.yaml in
// ~/.config/lifelog when configFile is empty. A missing default file is not
// an error. LIFELOG_* environment variables override file values.
func Load(configFile string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.config/lifelog")
	}
	v.SetEnvPrefix("LIFELOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("ids.scheme", cfg.IDs.Scheme)
	v.SetDefault("nav.pages", cfg.Nav.Pages)
	v.SetDefault("nav.start_page", cfg.Nav.StartPage)
	v.SetDefault("nav.axis_lock_px", cfg.Nav.AxisLockPx)
	v.SetDefault("nav.rubber_band", cfg.Nav.RubberBand)
	v.SetDefault("nav.max_threshold_px", cfg.Nav.MaxThresholdPx)
	v.SetDefault("nav.threshold_ratio", cfg.Nav.ThresholdRatio)
	v.SetDefault("nav.velocity", cfg.Nav.Velocity)
	v.SetDefault("nav.transition_ms", cfg.Nav.TransitionMs)
	v.SetDefault("mood.category", cfg.Mood.Category)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("reminder.enabled", cfg.Reminder.Enabled)
	v.SetDefault("reminder.time", cfg.Reminder.Time)
	v.SetDefault("reminder.workdays", cfg.Reminder.Workdays)
	v.SetDefault("reminder.holidays", cfg.Reminder.Holidays)
	v.SetDefault("reminder.timezone", cfg.Reminder.Timezone)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.Storage.Path != "" {
		path, err := homedir.Expand(cfg.Storage.Path)
		if err != nil {
			return cfg, fmt.Errorf("expand storage path: %w", err)
		}
		cfg.Storage.Path = path
	}
	cfg.Reminder.Workdays = normalizeWorkdays(cfg.Reminder.Workdays)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func normalizeWorkdays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToLower(strings.TrimSpace(d))
		if len(d) < 3 {
			continue
		}
		out = append(out, strings.ToUpper(d[:1])+d[1:3])
	}
	return out
}

func (c Config) Location() *time.Location {
	if tz := strings.TrimSpace(c.Reminder.Timezone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

// Transition is the duration of the settle animation after a page change.
func (c NavConfig) Transition() time.Duration {
	return time.Duration(c.TransitionMs) * time.Millisecond
}

package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./gossip.db" description:"SQLite database file path"`

	// Application configuration
	TablesDir        string `long:"tables-dir" env:"TABLES_DIR" description:"Directory with table files overriding the embedded defaults"`
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey     string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	CheckInterval    int    `long:"check-interval" env:"CHECK_INTERVAL" default:"30" description:"Minutes between checks"`
	MinScore         int    `long:"min-score" env:"MIN_SCORE" default:"40" description:"Minimum drama score required to publish"`
	MaxPostsPerDay   int    `long:"max-posts-per-day" env:"MAX_POSTS_PER_DAY" default:"8" description:"Daily publish budget"`
	ActiveHoursStart string `long:"active-hours-start" env:"ACTIVE_HOURS_START" description:"Start of the publish window, HH:MM local time (optional)"`
	ActiveHoursEnd   string `long:"active-hours-end" env:"ACTIVE_HOURS_END" description:"End of the publish window, HH:MM local time (optional)"`
	AutoPublish      bool   `long:"auto-publish" env:"AUTO_PUBLISH" description:"Publish qualifying items instead of only recording them"`
	TopK             int    `long:"top-k" env:"TOP_K" default:"15" description:"Size of the top-ranked pool the selector samples from"`
	DedupWindowHours int    `long:"dedup-window-hours" env:"DEDUP_WINDOW_HOURS" default:"24" description:"Hours within which a repeated item is suppressed"`
	MaxArticles      int    `long:"max-articles" env:"MAX_ARTICLES" default:"30" description:"Maximum articles considered per news tick"`
	HistoryLanguage  string `long:"history-language" env:"HISTORY_LANGUAGE" default:"tr" description:"Wikipedia language edition for on-this-day events"`

	// Platform credentials
	BearerToken string `long:"bearer-token" env:"BEARER_TOKEN" description:"Platform API bearer token for reads"`
	AccessToken string `long:"access-token" env:"ACCESS_TOKEN" description:"Platform API access token for publishing"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Football Gossip Bot/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Istanbul)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:           raw.DBPath,
		TablesDir:        raw.TablesDir,
		Port:             raw.Port,
		APIAccessKey:     raw.APIAccessKey,
		CheckInterval:    raw.CheckInterval,
		MinScore:         raw.MinScore,
		MaxPostsPerDay:   raw.MaxPostsPerDay,
		ActiveHoursStart: raw.ActiveHoursStart,
		ActiveHoursEnd:   raw.ActiveHoursEnd,
		AutoPublish:      raw.AutoPublish,
		TopK:             raw.TopK,
		DedupWindowHours: raw.DedupWindowHours,
		MaxArticles:      raw.MaxArticles,
		HistoryLanguage:  raw.HistoryLanguage,
		BearerToken:      raw.BearerToken,
		AccessToken:      raw.AccessToken,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}

package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		DBPath:           "./test.db",
		TablesDir:        "./tables",
		Port:             "8080",
		APIAccessKey:     "test-key",
		CheckInterval:    30,
		MinScore:         40,
		MaxPostsPerDay:   8,
		ActiveHoursStart: "09:00",
		ActiveHoursEnd:   "23:00",
		AutoPublish:      true,
		TopK:             15,
		DedupWindowHours: 24,
		MaxArticles:      30,
		HistoryLanguage:  "tr",
		UserAgent:        "Test Agent",
		Timezone:         "UTC",
		Debug:            true,
		Version:          "test-version",
	}

	// Test direct field access
	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected db path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.CheckInterval != 30 {
		t.Errorf("Expected check interval 30, got %d", cfg.CheckInterval)
	}
	if cfg.MinScore != 40 {
		t.Errorf("Expected min score 40, got %d", cfg.MinScore)
	}
	if cfg.MaxPostsPerDay != 8 {
		t.Errorf("Expected max posts per day 8, got %d", cfg.MaxPostsPerDay)
	}
	if cfg.ActiveHoursStart != "09:00" {
		t.Errorf("Expected active hours start '09:00', got '%s'", cfg.ActiveHoursStart)
	}
	if !cfg.AutoPublish {
		t.Error("Expected auto publish enabled")
	}
	if cfg.HistoryLanguage != "tr" {
		t.Errorf("Expected history language 'tr', got '%s'", cfg.HistoryLanguage)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}

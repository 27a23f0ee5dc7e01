package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigMatchesOptionGrammarDefaults(t *testing.T) {
	c := DefaultConfig()
	if c.Suggest.Strategy != "best" || c.Suggest.TimeoutMS != 5000 || c.Suggest.MaxCount != 9999 {
		t.Errorf("got %+v, want Strategy=best TimeoutMS=5000 MaxCount=9999", c.Suggest)
	}
}

func TestSaveAndLoadConfigRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	original := DefaultConfig()
	original.Suggest.Strategy = "fast"
	original.Suggest.MaxCount = 42
	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.Suggest.Strategy != "fast" || loaded.Suggest.MaxCount != 42 {
		t.Errorf("got %+v, want round-tripped Strategy=fast MaxCount=42", loaded.Suggest)
	}
}

func TestInitConfigMissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "does-not-exist.toml")

	config, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if config.Suggest.Strategy != "best" {
		t.Errorf("expected InitConfig to create a default-valued file, got %+v", config.Suggest)
	}
}

func TestToModeAdaptsSuggestSection(t *testing.T) {
	c := DefaultConfig()
	strategy, timeoutMS, maxCount := c.ToMode()
	if strategy != "best" || timeoutMS != 5000 || maxCount != 9999 {
		t.Errorf("got (%q, %d, %d), want (best, 5000, 9999)", strategy, timeoutMS, maxCount)
	}
}

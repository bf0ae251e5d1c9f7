package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMergedMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, source, err := LoadMerged(path, Options{})
	if err != nil {
		t.Fatalf("LoadMerged() error = %v", err)
	}
	if !strings.Contains(source, "default") {
		t.Errorf("source = %q", source)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Output = "out/book.epub"
	cfg.FullEmptyStars = true
	cfg.RollingUserAgent = false
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: fr\ndebug: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Language != "fr" || !cfg.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.RollingUserAgent || cfg.EntryPageTitle != "Intro" || cfg.TimeoutSeconds != 30 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadMerged(path, Options{}); err == nil {
		t.Error("LoadMerged() should fail on invalid yaml")
	}
}

func TestMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CloudflareBypass = true

	cfg.Merge(Options{
		Output:          "x.epub",
		Language:        "de",
		StaticUserAgent: true,
		TimeoutSeconds:  5,
	})

	if cfg.Output != "x.epub" || cfg.Language != "de" || cfg.TimeoutSeconds != 5 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RollingUserAgent {
		t.Error("StaticUserAgent should turn rolling off")
	}
	if !cfg.CloudflareBypass {
		t.Error("unset bool option should not clear the config value")
	}
	if cfg.EntryPageTitle != "Intro" {
		t.Errorf("EntryPageTitle = %q", cfg.EntryPageTitle)
	}
}

func TestPrint(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := DefaultConfig()
	cfg.TextExport = "txt"
	cfg.Print(buf)

	for _, want := range []string{" -language: en", " -rolling_user_agent: true", " -text_export: txt"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Print() output lacks %q:\n%s", want, buf.String())
		}
	}
	if strings.Contains(buf.String(), "-debug") {
		t.Error("Print() should omit unset debug")
	}
}

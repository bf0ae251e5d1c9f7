package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appName = "watty-downloader"

type Config struct {
	// Output is the EPUB file path. Empty means "{title}.epub" in the
	// working directory.
	Output              string `yaml:"output"`
	EntryPageTitle      string `yaml:"entry_page_title"`
	EntryPageTemplate   string `yaml:"entry_page_template"`
	ChapterPageTemplate string `yaml:"chapter_page_template"`
	Language            string `yaml:"language"`

	UserAgent        string `yaml:"user_agent"`
	RollingUserAgent bool   `yaml:"rolling_user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`
	TimeoutSeconds   int    `yaml:"timeout_seconds"`

	FullEmptyStars   bool   `yaml:"full_empty_stars"`
	SanitizeFilename bool   `yaml:"sanitize_filename"`
	TextExport       string `yaml:"text_export"`
	Debug            bool   `yaml:"debug"`
}

// Options are command line overrides. Zero values leave the config alone.
type Options struct {
	Output              string
	EntryPageTitle      string
	EntryPageTemplate   string
	ChapterPageTemplate string
	Language            string
	UserAgent           string
	StaticUserAgent     bool
	CloudflareBypass    bool
	TimeoutSeconds      int
	FullEmptyStars      bool
	SanitizeFilename    bool
	TextExport          string
	Debug               bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:           "",
		EntryPageTitle:   "Intro",
		Language:         "en",
		RollingUserAgent: true,
		TimeoutSeconds:   30,
	}
}

// DefaultPath is config.yaml in the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	normalizeDefaults(c)

	return c, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMerged loads path, or the default path when empty, and applies opts on
// top. A missing file yields the defaults; the returned string says where the
// config came from.
func LoadMerged(path string, opts Options) (*Config, string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, "", err
		}
		path = p
	}

	source := path
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
		source = "(default config in memory)"
	} else if err != nil {
		return nil, "", err
	}

	cfg.Merge(opts)
	normalizeDefaults(cfg)

	return cfg, source, nil
}

func (c *Config) Merge(o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.EntryPageTitle != "" {
		c.EntryPageTitle = o.EntryPageTitle
	}
	if o.EntryPageTemplate != "" {
		c.EntryPageTemplate = o.EntryPageTemplate
	}
	if o.ChapterPageTemplate != "" {
		c.ChapterPageTemplate = o.ChapterPageTemplate
	}
	if o.Language != "" {
		c.Language = o.Language
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.StaticUserAgent {
		c.RollingUserAgent = false
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.FullEmptyStars {
		c.FullEmptyStars = true
	}
	if o.SanitizeFilename {
		c.SanitizeFilename = true
	}
	if o.TextExport != "" {
		c.TextExport = o.TextExport
	}
	if o.Debug {
		c.Debug = true
	}
}

func normalizeDefaults(c *Config) {
	if c.EntryPageTitle == "" {
		c.EntryPageTitle = "Intro"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

func (c *Config) Print(w io.Writer) {
	if c.Output != "" {
		fmt.Fprintf(w, " -output: %s\n", c.Output)
	}
	fmt.Fprintf(w, " -entry_page_title: %s\n", c.EntryPageTitle)
	if c.EntryPageTemplate != "" {
		fmt.Fprintf(w, " -entry_page_template: %s\n", c.EntryPageTemplate)
	}
	if c.ChapterPageTemplate != "" {
		fmt.Fprintf(w, " -chapter_page_template: %s\n", c.ChapterPageTemplate)
	}
	fmt.Fprintf(w, " -language: %s\n", c.Language)
	if c.UserAgent != "" {
		fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	fmt.Fprintf(w, " -rolling_user_agent: %t\n", c.RollingUserAgent)
	if c.CloudflareBypass {
		fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	fmt.Fprintf(w, " -timeout_seconds: %d\n", c.TimeoutSeconds)
	if c.FullEmptyStars {
		fmt.Fprintf(w, " -full_empty_stars: %t\n", c.FullEmptyStars)
	}
	if c.SanitizeFilename {
		fmt.Fprintf(w, " -sanitize_filename: %t\n", c.SanitizeFilename)
	}
	if c.TextExport != "" {
		fmt.Fprintf(w, " -text_export: %s\n", c.TextExport)
	}
	if c.Debug {
		fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Output      string `yaml:"output"`
	PageWorkers int    `yaml:"page_workers"`
	Format      string `yaml:"format"`
	CacheSize   int    `yaml:"cache_size"`
	Debug       bool   `yaml:"debug"`
	UserAgent   string `yaml:"user_agent"`

	DefaultURL    string  `yaml:"default_url"`
	DefaultStart  float64 `yaml:"default_start"`
	DefaultEnd    float64 `yaml:"default_end"`
	DefaultSeason int     `yaml:"default_season"`
}

type Options struct {
	IgnoreConfig  bool
	Debug         bool
	Output        string
	PageWorkers   int
	Format        string
	CacheSize     int
	UserAgent     string
	DefaultURL    string
	DefaultStart  float64
	DefaultEnd    float64
	DefaultSeason int
}

func DefaultConfig() *Config {
	return &Config{
		Output:      ".",
		PageWorkers: 15,
		Format:      "pdf",
		CacheSize:   100,
		Debug:       false,
		UserAgent:   "",
		DefaultURL:  "",
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	return &c, nil
}

func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `weebdl config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.PageWorkers != 0 {
		c.PageWorkers = o.PageWorkers
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.CacheSize != 0 {
		c.CacheSize = o.CacheSize
	}
	if o.Debug {
		c.Debug = true
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.DefaultURL != "" {
		c.DefaultURL = o.DefaultURL
	}
	if o.DefaultStart != 0 {
		c.DefaultStart = o.DefaultStart
	}
	if o.DefaultEnd != 0 {
		c.DefaultEnd = o.DefaultEnd
	}
	if o.DefaultSeason != 0 {
		c.DefaultSeason = o.DefaultSeason
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.PageWorkers == 0 {
		c.PageWorkers = 15
	}
	if c.Format == "" {
		c.Format = "pdf"
	}
	if c.CacheSize == 0 {
		c.CacheSize = 100
	}
}

func (c *Config) Print() {
	if c.Output != "" {
		fmt.Printf(" -output: %s\n", c.Output)
	}
	fmt.Printf(" -page_workers: %d\n", c.PageWorkers)
	fmt.Printf(" -format: %s\n", c.Format)
	fmt.Printf(" -cache_size: %d\n", c.CacheSize)
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.DefaultURL != "" {
		fmt.Printf(" -url: %s\n", c.DefaultURL)
	}
	if c.DefaultStart != 0 {
		fmt.Printf(" -start: %g\n", c.DefaultStart)
	}
	if c.DefaultEnd != 0 {
		fmt.Printf(" -end: %g\n", c.DefaultEnd)
	}
	if c.DefaultSeason != 0 {
		fmt.Printf(" -season: %d\n", c.DefaultSeason)
	}
}

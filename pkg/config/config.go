package config

import (
	"fmt"
	"os"
	"reflect"
)

// Config loads an application configuration struct from optional files
// (YAML, TOML or JSON, chosen by extension) and then applies `default:`
// struct tags and environment overrides. Loading happens once at process
// start; the populated struct is passed to components by injection.
type Config struct {
	*Settings
}

type Settings struct {
	ENVPrefix string
	Debug     bool
	Verbose   bool
}

// New initializes a Config
func New(settings *Settings) *Config {
	if settings == nil {
		settings = &Settings{}
	}

	if os.Getenv("CONFIG_DEBUG_MODE") != "" {
		settings.Debug = true
	}
	if os.Getenv("CONFIG_VERBOSE_MODE") != "" {
		settings.Verbose = true
	}

	return &Config{Settings: settings}
}

// Load populates cfg from the given files, in order, then from the
// environment. Missing files are skipped; decode failures are not.
func (c *Config) Load(cfg interface{}, files ...string) error {
	value := reflect.Indirect(reflect.ValueOf(cfg))
	if !value.CanAddr() {
		return fmt.Errorf("config %v should be addressable", cfg)
	}

	if err := processDefaults(cfg); err != nil {
		return err
	}

	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || !info.Mode().IsRegular() {
			if c.Verbose {
				fmt.Printf("Skipping configuration file %v\n", file)
			}
			continue
		}
		if c.Debug || c.Verbose {
			fmt.Printf("Loading configuration from file '%v'...\n", file)
		}
		if err := processFile(cfg, file); err != nil {
			return err
		}
	}

	return processTags(cfg, c.getENVPrefix())
}

func (c *Config) getENVPrefix() string {
	if c.Settings.ENVPrefix == "" {
		if prefix := os.Getenv("CONFIG_ENV_PREFIX"); prefix != "" {
			return prefix
		}
		return "CONFIG"
	}
	return c.Settings.ENVPrefix
}

// Load populates cfg using a Config with default settings.
func Load(cfg interface{}, files ...string) (*Config, error) {
	c := New(nil)
	if err := c.Load(cfg, files...); err != nil {
		return nil, err
	}
	return c, nil
}

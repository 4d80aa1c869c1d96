// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/BurntSushi/toml"

	"github.com/gviegas/pbr/engine"
)

// Config is the application configuration.
// It is read from a TOML file whose keys match the
// struct tags below; missing keys keep their defaults.
type Config struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Title   string `toml:"title"`
	Samples int    `toml:"samples"`
	VSync   bool   `toml:"vsync"`

	// Path of a YAML scene description.
	// The built-in scene is used if empty.
	Scene string `toml:"scene"`

	// Movement speed, in units per second.
	Speed float32 `toml:"speed"`
	// Mouse sensitivity, in radians per pixel per
	// second.
	Sensitivity float32 `toml:"sensitivity"`

	// Where snapshots are written.
	Snapshot string `toml:"snapshot"`

	Engine engine.Config `toml:"engine"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       1920,
		Height:      1080,
		Title:       "PBR Demo",
		Samples:     4,
		VSync:       true,
		Speed:       7,
		Sensitivity: 0.75,
		Snapshot:    "snapshot.png",
		Engine:      engine.DefaultConfig(),
	}
}

// LoadConfig reads the configuration file at path on top
// of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("pbr: no config file at %s, using defaults", path)
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("pbr: config: %w", err)
	}
	for _, k := range md.Undecoded() {
		log.Printf("[!] pbr: unknown config key '%s'", k)
	}
	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) check() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("pbr: config: invalid window size %dx%d", c.Width, c.Height)
	case c.Samples < 0:
		return fmt.Errorf("pbr: config: invalid sample count %d", c.Samples)
	case c.Speed < 0 || c.Sensitivity < 0:
		return errors.New("pbr: config: speed and sensitivity must not be negative")
	}
	return nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

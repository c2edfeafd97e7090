package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"travelmap/internal/geom"
)

// Config holds all user-facing configuration for travelmap.
type Config struct {
	Topology TopologyConfig `toml:"topology"`
	Canvas   CanvasConfig   `toml:"canvas"`
	Crop     CropConfig     `toml:"crop"`
	Chapters ChaptersConfig `toml:"chapters"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// TopologyConfig locates the boundary document. A zero Timeout leaves the
// HTTP client default in place.
type TopologyConfig struct {
	URL     string   `toml:"url"`
	File    string   `toml:"file"`
	Object  string   `toml:"object"`
	Timeout duration `toml:"timeout"`
}

type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type CropConfig struct {
	MinLon float64 `toml:"min_lon"`
	MaxLon float64 `toml:"max_lon"`
	MinLat float64 `toml:"min_lat"`
	MaxLat float64 `toml:"max_lat"`
}

type ChaptersConfig struct {
	File string `toml:"file"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Topology: TopologyConfig{URL: geom.DefaultTopologyURL, Object: geom.DefaultObject},
		Canvas:   CanvasConfig{Width: 1000, Height: 500},
		Crop:     CropConfig{MinLon: -15, MaxLon: 100, MinLat: 10, MaxLat: 65},
		Server:   ServerConfig{Host: "localhost", Port: 8080},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %vx%v", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Crop.MinLon >= c.Crop.MaxLon || c.Crop.MinLat >= c.Crop.MaxLat {
		return fmt.Errorf("crop window is empty")
	}
	if c.Topology.URL == "" && c.Topology.File == "" {
		return fmt.Errorf("topology needs a url or a file")
	}
	return nil
}

func (c *Config) Projector() geom.Projector {
	return geom.Projector{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

func (c *Config) CropWindow() geom.CropWindow {
	return geom.NewCrop(c.Crop.MinLon, c.Crop.MinLat, c.Crop.MaxLon, c.Crop.MaxLat)
}

// Source prefers a local topology file over the URL.
func (c *Config) Source() geom.Source {
	if c.Topology.File != "" {
		return geom.FileSource{Path: c.Topology.File}
	}
	src := geom.HTTPSource{URL: c.Topology.URL}
	if c.Topology.Timeout.Duration > 0 {
		src.Client = &http.Client{Timeout: c.Topology.Timeout.Duration}
	}
	return src
}

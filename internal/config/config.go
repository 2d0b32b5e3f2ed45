package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Data     DataConfig     `yaml:"data" json:"data"`
	Schedule ScheduleConfig `yaml:"schedule" json:"schedule"`
}

type ServerConfig struct {
	Port          string `yaml:"port" json:"port"`
	UseDiskStatic bool   `yaml:"use_disk_static" json:"use_disk_static"`
	StaticDir     string `yaml:"static_dir" json:"static_dir"`
}

type DataConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

type ScheduleConfig struct {
	DefaultWeeks int    `yaml:"default_weeks" json:"default_weeks"`
	HistoryLimit int    `yaml:"history_limit" json:"history_limit"`
	SeedPath     string `yaml:"seed_path" json:"seed_path"` // empty = embedded seed
}

func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "static"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
	if c.Schedule.DefaultWeeks < 1 {
		c.Schedule.DefaultWeeks = 12
	}
	if c.Schedule.HistoryLimit < 1 {
		c.Schedule.HistoryLimit = 10
	}
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

// LoadOrDefault reads the config file when it exists and falls back to the
// defaults when it does not. Any other read or parse error is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

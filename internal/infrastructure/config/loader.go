package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/covpipe/internal/application"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = ".covpipe.yaml"

type Loader struct{}

type fileConfig struct {
	History fileHistory `yaml:"history"`
	Trend   fileTrend   `yaml:"trend"`
}

type fileHistory struct {
	Path       string `yaml:"path"`
	MaxEntries int    `yaml:"maxEntries"`
}

type fileTrend struct {
	Days int `yaml:"days"`
}

func (l Loader) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (l Loader) Load(path string) (application.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return application.Config{}, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return application.Config{}, err
	}

	return application.Config{
		History: application.HistoryConfig{
			Path:       cfg.History.Path,
			MaxEntries: cfg.History.MaxEntries,
		},
		Trend: application.TrendConfig{
			Days: cfg.Trend.Days,
		},
	}, nil
}

// Default returns the configuration used when no config file exists.
func Default() application.Config {
	return application.Config{
		History: application.HistoryConfig{Path: ".covpipe/snapshots.json"},
		Trend:   application.TrendConfig{Days: application.DefaultTrendDays},
	}
}

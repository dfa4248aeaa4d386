// Package settings holds the configuration of the droidguard command.
package settings

import (
	"runtime"

	"github.com/Givikap120/droidguard/app/rulesets/osu/antiabuse"
	"github.com/sirupsen/logrus"
)

type Settings struct {
	// LogLevel is one of logrus' levels: trace, debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Workers is the number of jobs analysed at the same time.
	Workers int `koanf:"workers"`

	// CachePath is the sqlite database results are cached in. Empty disables caching.
	CachePath string `koanf:"cache_path"`

	// MetricsPath is the prometheus textfile written after a run. Empty disables metrics.
	MetricsPath string `koanf:"metrics_path"`

	Thresholds antiabuse.Config `koanf:"thresholds"`
}

func Default() *Settings {
	return &Settings{
		LogLevel:   "info",
		Workers:    runtime.NumCPU(),
		CachePath:  "droidguard.db",
		Thresholds: antiabuse.DefaultConfig(),
	}
}

func (s *Settings) Level() logrus.Level {
	level, err := logrus.ParseLevel(s.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}

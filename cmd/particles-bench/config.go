package main

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config is read from the environment and then overridden by flags.
type Config struct {
	LogLevel   string `config:"PARTICLES_LOG_LEVEL"`
	StatsdAddr string `config:"PARTICLES_STATSD_ADDR"`
	Samples    int    `config:"PARTICLES_SAMPLES"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: zerolog.InfoLevel.String(),
		Samples:  5,
	}
}

// LoadConfig fills the defaults from any matching environment variables.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "failed to load config from environment")
	}
	return cfg, nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}

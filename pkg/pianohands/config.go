package pianohands

import "github.com/hritwiksinha/PianoHands/pkg/models"

type Config struct {
	DBPath     string
	Difficulty models.Difficulty
	Logger     Logger
	Storage    Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithDifficulty(d models.Difficulty) Option {
	return func(c *Config) {
		c.Difficulty = d
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:     "pianohands.sqlite3",
		Difficulty: models.Intermediate,
	}
}

package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultPort is used when PORT is unset or empty.
const DefaultPort = "3000"

// Config holds process settings read at startup.
type Config struct {
	Port string
}

// Addr returns the listen address for Port on all interfaces.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads the process environment only. A .env file in the working
// directory is ignored; use LoadFiles to opt in to one.
func Load() (Config, error) {
	return FromEnv(), nil
}

// LoadFiles loads the given dotenv files and then reads the environment.
// Variables already set in the environment take precedence over the files.
// Missing files are skipped.
func LoadFiles(paths ...string) (Config, error) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}
	return Config{Port: port}
}

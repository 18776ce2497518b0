// Package config reads the server's environment and the backdrop scene file.
package config

import (
	"log"
	"os"

	// Load .env into the environment before anything reads it.
	_ "github.com/joho/godotenv/autoload"
)

// Config is the process configuration taken from the environment.
type Config struct {
	Port          string
	DBPath        string
	SceneFile     string
	AdminUsername string
	AdminPassword string
	GinMode       string
}

// Load reads the environment, falling back to development defaults.
func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "portfolio.db"),
		SceneFile:     os.Getenv("SCENE_FILE"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		GinMode:       os.Getenv("GIN_MODE"),
	}

	// Default credentials for development only.
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
		log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"log"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	_ = godotenv.Load()
	// A missing .env is fine; env vars can be set by other means.
	log.Println("Environment variables loaded (if .env present)")
}

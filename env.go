package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func loadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("[env] loaded", p)
			return
		}
	}
}

func mustLoadEnv() {
	loadDotenv()
	// minimal checks
	required := []string{"DATABASE_URL", "JWT_SECRET"}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("missing required env %s", k)
		}
	}
}

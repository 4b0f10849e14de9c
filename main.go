package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB
var resolver *Resolver

// newRouter wires middleware and the route table. Split from main so
// the HTTP surface can run under httptest.
func newRouter(corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(corsOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CID-User", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	// ---- Routes
	// Auth / profile
	r.Post("/api/auth/sign-in", handleAuthSignIn)
	r.Post("/api/auth/sign-out", handleAuthSignOut)
	r.Get("/api/auth/me", handleAuthMe)
	r.Put("/api/auth/profile", handleAuthProfile)

	// Caller ID
	r.Get("/api/lookup", handleLookup)

	// Contacts
	r.Get("/api/contacts", handleContactsList)
	r.Post("/api/contacts", handleContactAdd)
	r.Put("/api/contacts/{id}", handleContactUpdate)
	r.Delete("/api/contacts/{id}", handleContactDelete)

	// Spam reports
	r.Post("/api/spam-reports", handleSpamReport)
	r.Get("/api/spam-reports", handleSpamReports)

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}

func main() {
	mustLoadEnv()
	cfg := loadConfig()

	dsn := cfg.DatabaseURL
	// local only: allow sslmode=disable if using localhost
	if strings.Contains(dsn, "localhost") && !strings.Contains(dsn, "sslmode=") {
		if strings.Contains(dsn, "?") {
			dsn += "&sslmode=disable"
		} else {
			dsn += "?sslmode=disable"
		}
	}

	// Quieter GORM logger
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold: 1500 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var err error
	DB, _, err = openGormIPv4(dsn, gLogger) // pgx simple protocol + IPv4 enforced
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	log.Println("[DB] connected")

	if err := autoMigrate(DB); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}

	resolver = NewResolver(DB)

	r := newRouter(cfg.CORSOrigin)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr, "CORS_ORIGIN:", cfg.CORSOrigin)
	log.Fatal(srv.ListenAndServe())
}

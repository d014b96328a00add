package main

import (
	"log"
	"net/http"
	"os"

	todoistauth "github.com/dmelnik/taskfence/internal/auth/todoist"
	"github.com/dmelnik/taskfence/internal/config"
	"github.com/dmelnik/taskfence/internal/db"
	"github.com/dmelnik/taskfence/internal/session"
	"github.com/dmelnik/taskfence/internal/todoist"
	"github.com/dmelnik/taskfence/internal/web/handlers"
	"github.com/dmelnik/taskfence/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load(os.Getenv("TASKFENCE_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database (InitDB migrates the schema)
	database, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Bootstrap mode: create the schema and exit
	if len(os.Args) >= 2 && os.Args[1] == "initdb" {
		log.Printf("Schema initialized at %s", cfg.DatabasePath)
		return
	}

	client := todoist.NewClient(cfg.Todoist)
	sessions := session.NewStore(cfg.SessionSecret)

	// Create router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Dashboard and OAuth flow
	r.Get("/", handlers.HomeHandler(sessions, database, client))
	r.Get("/authorize", todoistauth.HandleAuthorize(cfg, sessions))
	r.Get("/oauth/redirect", todoistauth.HandleCallback(cfg, sessions, database, client))

	// Provider-initiated webhook (no auth; the provider does not sign in)
	r.Post("/webhook", handlers.WebhookHandler(database, client))

	// Rule management (session required)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SessionAuth(sessions))
		r.Get("/rules", handlers.ListRulesHandler(database))
		r.Post("/rules", handlers.CreateRuleHandler(database))
		r.Put("/rules/{id}", handlers.UpdateRuleHandler(database))
		r.Delete("/rules/{id}", handlers.DeleteRuleHandler(database))
	})

	log.Printf("🚀 Taskfence starting on http://%s", cfg.ListenAddr)
	log.Printf("🔗 OAuth callback: %s/oauth/redirect", cfg.BaseURL)
	log.Printf("📬 Webhook endpoint: %s/webhook", cfg.BaseURL)

	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"

	"flowspace-backend/internal/ai"
	"flowspace-backend/internal/assist"
	"flowspace-backend/internal/auth"
	"flowspace-backend/internal/briefing"
	"flowspace-backend/internal/config"
	"flowspace-backend/internal/db"
	"flowspace-backend/internal/events"
	"flowspace-backend/internal/goals"
	"flowspace-backend/internal/links"
	"flowspace-backend/internal/tasks"
)

func main() {
	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	defer database.Close()
	log.Println("connected to PostgreSQL")

	// Providers are tried in this order; Gemini is primary, Groq the cheap
	// fallback. An unset key means the provider is simply not configured.
	var providers []ai.Provider
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, ai.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel))
	}
	if cfg.GroqAPIKey != "" {
		providers = append(providers, ai.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel))
	}
	if len(providers) == 0 {
		log.Println("warning: no AI provider configured, generation features will fail over to rule-based paths")
	}
	failover := ai.NewFailover(providers...)

	assistHandler := assist.NewHandler(
		assist.NewService(failover),
		briefing.NewAssembler(failover),
		links.NewScraper(cfg.LinkFetchTimeout),
		database,
	)

	authHandler := auth.NewHandler(database, []byte(cfg.JWTSecret))
	taskHandler := tasks.NewHandler(tasks.NewStore(database))
	eventHandler := events.NewHandler(events.NewStore(database))
	linkHandler := links.NewHandler(links.NewStore(database))

	mw := auth.NewMiddleware([]byte(cfg.JWTSecret))

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- USERS -----
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/users/login", authHandler.Login)
	mux.HandleFunc("GET /api/users/profile", mw.Wrap(authHandler.Profile))

	// ----- TASKS -----
	mux.HandleFunc("/api/tasks", mw.Wrap(taskHandler.Collection))
	mux.HandleFunc("/api/tasks/{id}", mw.Wrap(taskHandler.Item))

	// ----- EVENTS -----
	mux.HandleFunc("/api/events", mw.Wrap(eventHandler.Collection))
	mux.HandleFunc("/api/events/{id}", mw.Wrap(eventHandler.Item))

	// ----- LINKS -----
	mux.HandleFunc("/api/links", mw.Wrap(linkHandler.Collection))
	mux.HandleFunc("/api/links/{id}", mw.Wrap(linkHandler.Item))
	mux.HandleFunc("/api/links/{id}/pin", mw.Wrap(linkHandler.Pin))

	// ----- GOALS -----
	mux.HandleFunc("GET /api/goals", mw.Wrap(goals.ListGoalsHandler(database)))
	mux.HandleFunc("POST /api/goals", mw.Wrap(goals.CreateGoalHandler(database)))
	mux.HandleFunc("/api/goals/{id}", mw.Wrap(goals.GoalItemHandler(database)))

	// ----- AI -----
	mux.HandleFunc("POST /api/ai/generate-tasks", mw.Wrap(assistHandler.GenerateTasks))
	mux.HandleFunc("POST /api/ai/enrich-task", mw.Wrap(assistHandler.EnrichTask))
	mux.HandleFunc("POST /api/ai/search", mw.Wrap(assistHandler.Search))
	mux.HandleFunc("POST /api/ai/enrich-link", mw.Wrap(assistHandler.EnrichLink))
	mux.HandleFunc("POST /api/ai/briefing", mw.Wrap(assistHandler.Briefing))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("API server is running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(mux)))
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/careerforge/judge/internal/api"
	"github.com/careerforge/judge/internal/database"
	"github.com/careerforge/judge/internal/service"
	"github.com/careerforge/judge/internal/service/execution_service"
	"github.com/careerforge/judge/internal/service/progress_service"
	"github.com/careerforge/judge/internal/service/rate_limit_service"
	"github.com/careerforge/judge/internal/service/submission_service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var (
	apiConfig   *api.Api
	rateLimiter *rate_limit_service.RateLimiter
)

func initDatabase() *database.Queries {
	// get the database url
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		panic("dbURL not found")
	}

	// create a connection to the database
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		panic(err)
	}

	// get the query tool with this connection
	return database.New(pool)
}

// initRateLimiter picks the timestamp store from RATE_LIMIT_BACKEND.
// memory is the default, redis lets several instances share one limit.
func initRateLimiter() *rate_limit_service.RateLimiter {
	log.Info("initializing rate limiter")

	backend := os.Getenv("RATE_LIMIT_BACKEND")
	var store rate_limit_service.TimestampStore
	switch backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		store = rate_limit_service.NewRedisStore(rdb)
		log.Info("rate limiter backed by redis")
	case "", "memory":
		store = rate_limit_service.NewMemoryStore(0)
		log.Info("rate limiter backed by in-process memory")
	default:
		log.Warnf("unknown rate limit backend %q. falling back to memory", backend)
		store = rate_limit_service.NewMemoryStore(0)
	}

	return rate_limit_service.NewFromEnv(store)
}

func initApi(db *database.Queries) *api.Api {
	log.Info("initializing api config")

	executor := execution_service.NewFromEnv()
	log.Info("execution client created")

	ps := progress_service.New(db)
	log.Info("progress service created")

	ss := &submission_service.SubmissionService{
		DB:              db,
		ProblemStore:    db,
		Executor:        executor,
		ProgressService: ps,
	}
	log.Info("submission service created")

	return &api.Api{
		SubmissionServiceConfig: ss,
		ProgressServiceConfig:   ps,
	}
}

func setup() {
	godotenv.Load()
	service.InitializeServices()
	db := initDatabase()
	rateLimiter = initRateLimiter()
	apiConfig = initApi(db)
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: false,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func main() {
	setup()

	// initialize a new router
	router := chi.NewRouter()
	// fold forwarded headers into RemoteAddr so the rate limiter keys
	// on the real client behind a proxy
	router.Use(chimiddleware.RealIP)
	setCors(router)

	// mount v1 router
	v1router := NewV1Router()
	router.Mount("/v1", v1router)
	log.Info("v1 router has been mounted")

	// find port for the server to start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Warnf("port not found in environment. using default port %s", port)
	}

	// find the address to start the server
	apiAddress := os.Getenv("API_URL") + ":" + port

	log.Info("starting server")
	// create a server object to listen to all requests
	srv := http.Server{
		Handler: router,
		Addr:    apiAddress,
	}
	err := srv.ListenAndServe()
	if err != nil {
		log.Fatalf("Server cannot be started. Error: %v", err)
		return
	}
}

package main // Entry point package

import (
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/auth"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/config"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/database"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/handler"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/middleware"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/queue"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/repository"
	"github.com/piyushgyl01/FSP1-Assignment-Backend/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	teams := repository.NewTeamRepo(db)
	projects := repository.NewProjectRepo(db)
	tags := repository.NewTagRepo(db)
	tasks := repository.NewTaskRepo(db)

	tokens := auth.NewTokenService(cfg)
	cookies := auth.NewCookieWriter(tokens, cfg.CookieSecure)
	gate := middleware.RequireAuth(tokens)

	// Redis is optional: a nil client turns the limiter into a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; auth rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background consumer for task.completed audit events. It reconnects on
	// its own; a missing broker only costs the audit log.
	go func() {
		if err := queue.StartTaskConsumer(); err != nil {
			log.Printf("task consumer stopped: %v", err)
		}
	}()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, cookies), gate, limiter)
	router.RegisterResources(e, gate,
		handler.NewTaskHandler(tasks),
		handler.NewTeamHandler(teams),
		handler.NewProjectHandler(projects),
		handler.NewTagHandler(tags, rng),
	)
	router.RegisterReports(e, gate, handler.NewReportHandler(tasks))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

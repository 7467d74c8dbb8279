package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmorate/internal/config"
	"github.com/iliyamo/filmorate/internal/database"
	"github.com/iliyamo/filmorate/internal/handler"
	"github.com/iliyamo/filmorate/internal/middleware"
	"github.com/iliyamo/filmorate/internal/queue"
	"github.com/iliyamo/filmorate/internal/repository"
	"github.com/iliyamo/filmorate/internal/router"
	"github.com/iliyamo/filmorate/internal/service"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate
	// limiting without affecting the rest of the API.
	rdb := config.NewRedisClient()

	// Repositories over the shared connection pool.
	userRepo := repository.NewUserRepo(db)
	filmRepo := repository.NewFilmRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	friendRepo := repository.NewFriendRepo(db)
	eventRepo := repository.NewEventRepo(db)
	genreRepo := repository.NewGenreRepo(db)
	mpaRepo := repository.NewMpaRepo(db)
	directorRepo := repository.NewDirectorRepo(db)

	publisher := queue.NewPublisher()

	// Services wire repositories behind small store interfaces.
	userSvc := service.NewUserService(userRepo, friendRepo, likeRepo, filmRepo, publisher)
	filmSvc := service.NewFilmService(filmRepo, userRepo, likeRepo, genreRepo, mpaRepo, directorRepo, publisher)
	eventSvc := service.NewEventService(userRepo, eventRepo)
	directorSvc := service.NewDirectorService(directorRepo)

	userHandler := handler.NewUserHandler(userSvc, eventSvc)
	filmHandler := handler.NewFilmHandler(filmSvc)
	genreHandler := handler.NewGenreHandler(filmSvc)
	directorHandler := handler.NewDirectorHandler(directorSvc)
	authHandler := handler.NewAuthHandler(userSvc, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	readCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterUsers(e, userHandler)
	router.RegisterFilms(e, filmHandler, readCache)
	router.RegisterCatalog(e, genreHandler, directorHandler)

	// Drain activity messages into the audit log in the background.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

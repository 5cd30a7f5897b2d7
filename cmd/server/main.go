package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-rental/internal/config"
	"github.com/iliyamo/movie-rental/internal/database"
	"github.com/iliyamo/movie-rental/internal/handler"
	"github.com/iliyamo/movie-rental/internal/middleware"
	"github.com/iliyamo/movie-rental/internal/queue"
	"github.com/iliyamo/movie-rental/internal/repository"
	"github.com/iliyamo/movie-rental/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: when unreachable the browse middleware degrades to
	// pass-through and every request hits the database.
	rdb := config.NewRedisClient()
	browse := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	}

	genres := repository.NewGenreRepo(db)
	customers := repository.NewCustomerRepo(db)
	movies := repository.NewMovieRepo(db)
	rentals := repository.NewRentalRepo(db)
	users := repository.NewUserRepo(db)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users))
	router.RegisterGenres(e, handler.NewGenreHandler(genres), cfg.JWTSecret, browse...)
	router.RegisterCustomers(e, handler.NewCustomerHandler(customers), cfg.JWTSecret, browse...)
	router.RegisterMovies(e, handler.NewMovieHandler(movies, genres), cfg.JWTSecret, browse...)
	router.RegisterRentals(e, handler.NewRentalHandler(rentals, movies, customers), cfg.JWTSecret, browse...)

	// Background consumer records rental events to logs/rental.log. It runs
	// its own reconnect loop, so a missing broker only costs log lines.
	go func() {
		if err := queue.StartRentalConsumer(); err != nil {
			log.Printf("rental consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

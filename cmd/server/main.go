package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/agileboard/backend/internal/blacklist"
	"github.com/agileboard/backend/internal/config"
	"github.com/agileboard/backend/internal/es"
	"github.com/agileboard/backend/internal/handlers"
	"github.com/agileboard/backend/internal/logging"
	authmw "github.com/agileboard/backend/internal/middleware/auth"
	loggingmw "github.com/agileboard/backend/internal/middleware/logging"
	"github.com/agileboard/backend/internal/mykafka"
	"github.com/agileboard/backend/internal/repo"
	"github.com/agileboard/backend/internal/tokens"
	httpserver "github.com/agileboard/backend/internal/transport/http"
)

const sweepInterval = 5 * time.Minute

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	codec := &tokens.Codec{
		Secret: []byte(configuration.JWT_SECRET),
		TTL:    configuration.TokenTTL,
	}
	ledger := blacklist.New(codec)

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go ledger.Run(sweepCtx, sweepInterval)

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var searchHandler *handlers.SearchHandler
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler = &handlers.SearchHandler{ES: esClient, Index: "tasks"}
	}

	r := repo.New(db)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:           authmw.New(codec, ledger, r),
		AuthHandler:    &handlers.AuthHandler{Repo: r, Codec: codec, Ledger: ledger, Producer: producer},
		UserHandler:    &handlers.UserHandler{Repo: r},
		ProjectHandler: &handlers.ProjectHandler{Repo: r},
		TaskHandler:    &handlers.TaskHandler{Repo: r},
		SearchHandler:  searchHandler,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}

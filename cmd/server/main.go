package main // Entry point package

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/theaterops/theater-dashboard/internal/config"
	"github.com/theaterops/theater-dashboard/internal/database"
	"github.com/theaterops/theater-dashboard/internal/handler"
	"github.com/theaterops/theater-dashboard/internal/queue"
	"github.com/theaterops/theater-dashboard/internal/repository"
	"github.com/theaterops/theater-dashboard/internal/router"
	queue_publisher "github.com/theaterops/theater-dashboard/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}

	tickets := handler.TicketHandler{Tickets: repository.NewTicketRepo(db)}
	if cfg.AMQPURL != "" {
		url := cfg.AMQPURL
		tickets.Publish = func(ctx context.Context, ev queue.TicketPurchasedEvent) error {
			return queue_publisher.PublishTicketPurchased(ctx, url, ev)
		}
		// Sales-log consumer runs for the life of the process.
		go queue.StartTicketConsumer(url)
	}

	e := echo.New()
	router.RegisterRoutes(e, router.Handlers{
		Health:    &handler.HealthHandler{DB: db},
		Movies:    &handler.MovieHandler{Movies: repository.NewMovieRepo(db)},
		Showtimes: &handler.ShowtimeHandler{Showtimes: repository.NewShowtimeRepo(db)},
		Customers: &handler.CustomerHandler{Customers: repository.NewCustomerRepo(db)},
		Tickets:   &tickets,
		Reports:   &handler.ReportHandler{Reports: repository.NewReportRepo(db)},
	})

	go func() {
		addr := cfg.Addr()
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("http server stopped: %v", err)
		}
	}()

	// Drain on SIGINT/SIGTERM: stop accepting requests, let in-flight ones
	// finish, then close the connection pool.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("db close: %v", err)
	}
}

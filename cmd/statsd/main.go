package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/moveease/sitclock/internal/config"
	"github.com/moveease/sitclock/internal/statsdb"
)

func main() {
	cfg := config.Load()
	loc := cfg.Location()

	repo, err := openRepository(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/stats", getStats(repo, loc))
	r.Post("/api/stats", postStats(repo, loc))
	r.Post("/api/timer", postTimer(repo))
	r.Post("/api/update-profile", updateProfile(repo))
	r.Get("/api/announcements", listAnnouncements(repo))
	r.Post("/api/announcements", createAnnouncement(repo))

	srv := &http.Server{Addr: cfg.StatsAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("stats service listening on %s (days in %s)", cfg.StatsAddr, loc)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func openRepository(cfg *config.Config) (statsdb.Repository, error) {
	if cfg.PostgresDSN != "" {
		return statsdb.NewPostgresRepository(cfg.PostgresDSN)
	}
	return statsdb.NewSQLiteRepository(cfg.StatsDB)
}

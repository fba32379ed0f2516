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
	"github.com/moveease/sitclock/internal/engine"
	"github.com/moveease/sitclock/internal/httpapi"
	"github.com/moveease/sitclock/internal/statsapi"
	"github.com/moveease/sitclock/internal/storage"
)

func main() {
	cfg := config.Load()

	store, err := storage.NewSQLiteStore(cfg.SnapshotDB)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	client := statsapi.NewClient(cfg.StatsBaseURL)

	intervals := engine.Intervals{
		Tick: cfg.TickInterval,
		DND:  cfg.DNDInterval,
		Poll: cfg.PollInterval,
	}
	manager := engine.NewManager(store, client, cfg.Location(), intervals)
	defer manager.CloseAll()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(ExtractUserMiddleware)

	r.Post("/session", startSession(manager))
	r.Delete("/session", stopSession(manager))

	r.Get("/state", getState(manager))
	r.Get("/badges", getBadges(manager))
	r.Get("/events", httpapi.StreamEngineEvents(manager, GetUserId))

	r.Post("/monitoring/pause", engineAction(manager, (*engine.Engine).Pause))
	r.Post("/monitoring/resume", engineAction(manager, (*engine.Engine).Resume))
	r.Post("/break", engineAction(manager, (*engine.Engine).Break))
	r.Post("/workouts/complete", engineAction(manager, (*engine.Engine).CompleteWorkout))
	r.Post("/exercise/start", engineAction(manager, (*engine.Engine).StartExercise))
	r.Post("/exercise/end", engineAction(manager, (*engine.Engine).EndExercise))

	r.Post("/countdown", startCountdown(manager))
	r.Delete("/countdown", engineAction(manager, (*engine.Engine).CancelCountdown))

	r.Post("/visibility", setVisibility(manager))
	r.Put("/settings", updateSettings(manager))
	r.Put("/profile", updateProfile(manager))

	srv := &http.Server{Addr: cfg.EngineAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("sitclock engine listening on %s", cfg.EngineAddr)
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

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/errgroup"

	"tubewise/config"
	"tubewise/handlers"
	"tubewise/internal/logging"
	"tubewise/services/interactions"
	"tubewise/services/library"
	"tubewise/services/recommender"
	"tubewise/services/session"
	"tubewise/utils"
)

func main() {
	settingsPath := flag.String("settings", "settings.json", "path to the settings file")
	listen := flag.String("listen", "", "listen address, overrides server.host/port (e.g. :5173)")
	flag.Parse()

	manager := config.NewManager(*settingsPath)
	settings, err := manager.Load()
	if err != nil {
		log.Fatalf("[main] load settings from %s: %v", manager.Path(), err)
	}
	if *listen != "" {
		if err := settings.Server.SetListen(*listen); err != nil {
			log.Fatalf("[main] -listen: %v", err)
		}
	}

	logCloser := logging.Setup(settings.Log)
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, manager, settings); err != nil {
		log.Printf("[main] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, manager *config.Manager, settings config.Settings) error {
	client := recommender.NewClient(config.NewConfigAdapter(manager).ClientConfig())
	probeBackend(ctx, client, settings.Startup)

	cards, err := interactions.NewRegistry(settings.UI.MountCacheSize)
	if err != nil {
		return err
	}
	lists, err := library.NewService(client, settings.UI.MountCacheSize)
	if err != nil {
		return err
	}
	renderer, err := handlers.NewRenderer(settings.UI.Title, client.UserID())
	if err != nil {
		return err
	}
	recorder := interactions.NewRecorder(client)

	router := utils.NewRouter()
	handlers.Register(router, handlers.Deps{
		Backend:  client,
		Store:    session.NewStore(),
		Cards:    cards,
		Library:  lists,
		Recorder: recorder,
		Renderer: renderer,
		Logger:   log.Default(),
	})

	srv := &http.Server{
		Addr:              settings.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[main] serving on http://%s (backend %s, user %d)", srv.Addr, settings.Backend.BaseURL, client.UserID())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := time.Duration(settings.Server.ShutdownTimeoutSeconds) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		log.Printf("[main] shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := recorder.Wait(shutdownCtx); err != nil {
			log.Printf("[main] interaction writes still pending at exit: %v", err)
		}
		return nil
	})
	return g.Wait()
}

// probeBackend waits briefly for the recommendation service. The frontend
// starts either way; every page already copes with a missing backend.
func probeBackend(ctx context.Context, client *recommender.Client, s config.StartupSettings) {
	if s.ProbeAttempts == 0 {
		return
	}
	err := retry.Do(
		func() error { return client.Ping(ctx) },
		retry.Context(ctx),
		retry.Attempts(s.ProbeAttempts),
		retry.Delay(time.Duration(s.ProbeDelayMillis)*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("[main] backend not reachable yet (attempt %d): %v", n+1, err)
		}),
	)
	if err != nil {
		log.Printf("[main] backend unreachable, continuing anyway: %v", err)
		return
	}
	log.Printf("[main] backend reachable")
}

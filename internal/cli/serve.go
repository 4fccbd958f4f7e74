package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/notes-be/internal/api"
	"github.com/isdelr/notes-be/internal/auth"
	"github.com/isdelr/notes-be/internal/monitoring"
	"github.com/isdelr/notes-be/internal/services"
	"github.com/isdelr/notes-be/internal/views"
	"github.com/isdelr/notes-be/internal/websocket"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				c.cfg.ServerPort = port
			}
			return c.runServe()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides PORT)")
	return cmd
}

func (c *CLI) runServe() error {
	cfg := c.cfg

	// Set up database
	db, err := c.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Set up services
	eventService := services.NewEventService(db)
	userService := services.NewUserService(db, eventService)
	noteService := services.NewNoteService(db, eventService, hub)

	// Set up and run the background event pruning
	janitor, err := monitoring.NewJanitor(eventService, cfg.EventPruneSchedule, cfg.EventRetention)
	if err != nil {
		return err
	}
	janitor.Start()
	defer janitor.Stop()

	renderer, err := views.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	// Set up router
	router := api.NewRouter(api.Dependencies{
		Tokens:        auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
		Renderer:      renderer,
		Notes:         noteService,
		Users:         userService,
		Events:        eventService,
		Hub:           hub,
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.IsProduction(),
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}

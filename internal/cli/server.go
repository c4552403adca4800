package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/config"
	"playstyle-quiz-service/internal/scoring"
	transport "playstyle-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := config.InitLogger(cfg.Log.Level, cfg.Log.Format)

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}

	d, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer d.Close()

	scorer := scoring.NewScorer(log)
	quiz := app.NewQuizService(d.banks, cfg.Quiz.Bank, scorer)
	sessions := app.NewSessionService(d.store, d.banks, cfg.Quiz.Bank, scorer)
	stats := app.NewStatsService(d.backend, statsOptions(cfg), log)

	limiter := transport.NewSubmitLimiter(cfg.Submit.RatePerMinute, cfg.Submit.Burst)
	defer limiter.Close()

	opts := []transport.APIOption{transport.WithSubmitLimiter(limiter)}
	if d.redis != nil {
		opts = append(opts, transport.WithHealthCheck(func(ctx context.Context) error {
			return d.redis.Ping(ctx).Err()
		}))
	}
	api := transport.NewAPI(quiz, sessions, stats, opts...)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(api, transport.NewWSHandler(stats)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.WithField("port", finalPort).Info("starting playstyle quiz service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("failed to start server")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server...")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

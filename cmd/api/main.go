package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/temmaissaude/cotador/internal/auth"
	"github.com/temmaissaude/cotador/internal/chat"
	"github.com/temmaissaude/cotador/internal/config"
	"github.com/temmaissaude/cotador/internal/db"
	"github.com/temmaissaude/cotador/internal/feed"
	internalhttp "github.com/temmaissaude/cotador/internal/http"
	"github.com/temmaissaude/cotador/internal/metrics"
	"github.com/temmaissaude/cotador/internal/plano"
	"github.com/temmaissaude/cotador/internal/repo"
	"github.com/temmaissaude/cotador/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("redis parse: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	metricas := metrics.New(prometheus.DefaultRegisterer)

	repository := repo.New(pool)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(repository, redisClient, jwtManager, metricas, cfg.JWTRefreshTTL, cfg.AdminCPF, cfg.EmailDominio)
	usuarioService := service.NewUsuarioService(repository, metricas)
	planoService := plano.NewService(plano.NewRepository(pool))
	conversaService := chat.NewService(redisClient, cfg.ConversaTTL)

	hub := feed.NewHub()
	listener := feed.NewListener(pool, hub, log.With().Str("component", "feed").Logger())
	go listener.Run(ctx)

	handler := internalhttp.NewRouter(internalhttp.Deps{
		Config:      cfg,
		Pool:        pool,
		Redis:       redisClient,
		AuthService: authService,
		Usuarios:    usuarioService,
		Planos:      planoService,
		Conversas:   conversaService,
		Hub:         hub,
		Metricas:    metricas,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

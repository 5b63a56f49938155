package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/regutech/plataforma/internal/accion"
	"github.com/regutech/plataforma/internal/auditoria"
	"github.com/regutech/plataforma/internal/auth"
	"github.com/regutech/plataforma/internal/checklist"
	"github.com/regutech/plataforma/internal/cliente"
	"github.com/regutech/plataforma/internal/config"
	"github.com/regutech/plataforma/internal/db"
	internalhttp "github.com/regutech/plataforma/internal/http"
	"github.com/regutech/plataforma/internal/politica"
	"github.com/regutech/plataforma/internal/repo"
	"github.com/regutech/plataforma/internal/riesgo"
	"github.com/regutech/plataforma/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api terminada con error")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

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

	queries := repo.New(pool)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTSesionTTL, cfg.JWTResetTTL)

	authService := service.NewAuthService(queries, redisClient, tokens, cfg.JWTResetTTL)
	usuarioService := service.NewUsuarioService(queries)
	clienteService := cliente.NewService(cliente.NewPgRepository(pool))
	auditoriaService := auditoria.NewService(auditoria.NewPgRepository(pool))
	riesgoService := riesgo.NewService(riesgo.NewPgRepository(pool))
	accionService := accion.NewService(accion.NewPgRepository(pool))
	checklistService := checklist.NewService(checklist.NewPgRepository(pool))
	politicaService := politica.NewService(politica.NewPgRepository(pool))

	handler := internalhttp.NewRouter(internalhttp.Deps{
		Config:      cfg,
		Pool:        pool,
		Redis:       redisClient,
		Auth:        internalhttp.NewAuthHandler(authService, clienteService),
		AuthService: authService,
		Backoffice:  internalhttp.NewBackofficeHandler(clienteService, usuarioService),
		Auditorias:  auditoria.NewHandler(auditoriaService),
		Riesgos:     riesgo.NewHandler(riesgoService),
		Acciones:    accion.NewHandler(accionService),
		Checklists:  checklist.NewHandler(checklistService),
		Politicas:   politica.NewHandler(politicaService),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("API escuchando en :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("apagando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

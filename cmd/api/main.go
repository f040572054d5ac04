// @title        Animal Registry API
// @version      1.0
// @description  CRUD de animales y especies con jerarquía padre/hijos.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtauth "animal-registry/internal/adapters/auth/jwt"
	"animal-registry/internal/adapters/auth/bcrypt"
	pg "animal-registry/internal/adapters/storage/postgres"
	"animal-registry/internal/config"
	"animal-registry/internal/platform/logger"
	"animal-registry/internal/router"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// .env es opcional; en prod las variables vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:  "animal-registry",
		Usage: "API de animales, especies y usuarios",
		Commands: []*cli.Command{
			serveCommand(log),
			migrateCommand(log),
		},
		// Sin subcomando: serve.
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, log, "")
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		log.Error("fatal", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func serveCommand(log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "levanta el servidor HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "dirección de escucha (default :$PORT)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, log, c.String("addr"))
		},
	}
}

func migrateCommand(log logger.Logger) *cli.Command {
	run := func(fn func(context.Context, *sql.DB) error) cli.ActionFunc {
		return func(ctx context.Context, _ *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.DSN == "" {
				return errors.New("DB_DSN is required for migrations")
			}
			db, err := pg.Open(cfg.Database.DSN, pg.PoolConfig{MaxOpenConns: 1})
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer db.Close()
			return fn(ctx, db)
		}
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "administra el esquema de Postgres",
		Commands: []*cli.Command{
			{Name: "up", Usage: "aplica migraciones pendientes", Action: run(func(ctx context.Context, db *sql.DB) error {
				if err := pg.Migrate(ctx, db); err != nil {
					return err
				}
				log.Info("migrations applied", nil)
				return nil
			})},
			{Name: "down", Usage: "revierte la última migración", Action: run(pg.MigrateDown)},
			{Name: "status", Usage: "muestra el estado de las migraciones", Action: run(pg.MigrationStatus)},
		},
	}
}

func serve(ctx context.Context, log logger.Logger, addr string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	if addr == "" {
		addr = ":" + cfg.HTTP.Port
	}

	var db *sql.DB
	if cfg.Database.DSN != "" {
		db, err = pg.Open(cfg.Database.DSN, pg.PoolConfig{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			if err := pg.Migrate(ctx, db); err != nil {
				return err
			}
		}
	} else {
		log.Warn("DB_DSN not set, using in-memory store", nil)
	}

	tokens := jwtauth.NewManager(jwtauth.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.Auth.AccessTokenTTL,
		Issuer: cfg.App.Name,
	})

	h := router.NewRouter(router.Options{
		AuthVerifier:   tokens,
		TokenIssuer:    tokens,
		PasswordHasher: bcrypt.NewHasher(cfg.Auth.BcryptCost),
		DB:             db,
		Logger:         log,
		CORSOrigins:    cfg.HTTP.CORSAllowedOrigins,
		ProtectWrites:  cfg.Auth.ProtectWrites,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": addr, "env": cfg.App.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

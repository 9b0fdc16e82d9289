package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cadastro/internal/config"
	"cadastro/internal/hash"
	apphttp "cadastro/internal/http"
	"cadastro/internal/idgen"
	"cadastro/internal/repository"
	"cadastro/internal/repository/postgres"
	"cadastro/internal/repository/sqlite"
	"cadastro/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}
	if strings.TrimSpace(cfg.Auth.BootstrapSecret) == "" {
		logger.Fatalf("auth bootstrap secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, userRepo, err := buildRepository(cfg)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}

	hasher, err := hash.New(cfg.Hash.Pepper, cfg.Hash.Cost, nil)
	if err != nil {
		logger.Fatalf("setup hasher: %v", err)
	}

	clock := service.SystemClock{}
	userService := service.NewUserService(userRepo, hasher, idgen.NewUUID(), clock)
	adminService := service.NewAdminService(cfg.Auth.JWTSecret, cfg.Auth.AdminRole, cfg.Auth.TokenTTLDays, clock)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, adminService, cfg.Auth.BootstrapSecret, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildRepository(cfg config.Config) (*sql.DB, repository.UserRepository, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, sqlite.NewUserRepository(db), nil
	case "postgres":
		db, err := postgres.Open(postgres.Options{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewUserRepository(db), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

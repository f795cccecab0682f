package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	pgRepo "github.com/taskhive/task-service/internal/adapters/db/postgres"
	mailAdapter "github.com/taskhive/task-service/internal/adapters/mail"
	httpTransport "github.com/taskhive/task-service/internal/adapters/transport/http"
	authSvc "github.com/taskhive/task-service/internal/app/auth"
	taskSvc "github.com/taskhive/task-service/internal/app/task"
	"github.com/taskhive/task-service/internal/app/token"
	"github.com/taskhive/task-service/internal/app/verification"
	"github.com/taskhive/task-service/internal/domain/mail"
	"github.com/taskhive/task-service/internal/infra/config"
	lg "github.com/taskhive/task-service/internal/infra/log"
	"github.com/taskhive/task-service/internal/infra/migrate"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	validate := validator.New()

	userRepo := pgRepo.NewUserRepo(db)
	tokenRepo := pgRepo.NewRefreshTokenRepo(db)
	taskRepo := pgRepo.NewTaskRepo(db)

	tokens := token.New(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, tokenRepo)
	links := verification.New(cfg.JWTSecret, cfg.AppURL, cfg.VerificationLinkTTL)
	mailer := newMailer(cfg, zapLog)

	auth := authSvc.New(userRepo, tokens, links, mailer, zapLog, validate)
	tasks := taskSvc.New(taskRepo, validate)

	router := httpTransport.NewRouter(zapLog, auth, tasks, tokens, httpTransport.RouterOptions{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	g, _ := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		zapLog.Info("http server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutdown signal received")
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}

func newMailer(cfg *config.Config, log *zap.Logger) mail.Mailer {
	if cfg.SMTPHost == "" {
		return mailAdapter.NewLogMailer(log)
	}
	return mailAdapter.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"undangan/config"
	authadapter "undangan/internal/adapters/auth"
	emailadapter "undangan/internal/adapters/email"
	"undangan/internal/adapters/storage"
	web "undangan/internal/delivery/http"
	"undangan/internal/delivery/http/controllers"
	"undangan/internal/delivery/http/middleware"
	"undangan/internal/delivery/http/views"
	"undangan/internal/repository/postgres"
	"undangan/internal/services"
	"undangan/migrations"
)

const (
	bcryptCost     = 10
	serviceTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	if err := migrate(db); err != nil {
		logger.Error("migrate database", "err", err)
		os.Exit(1)
	}

	objectStore, err := storage.NewStore(ctx, storage.Config{
		Endpoint:       cfg.S3Endpoint,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		Region:         cfg.S3Region,
		Bucket:         cfg.S3Bucket,
		PublicBaseURL:  cfg.S3PublicBaseURL,
		ForcePathStyle: cfg.S3ForcePathStyle,
	})
	if err != nil {
		logger.Error("init object store", "err", err)
		os.Exit(1)
	}

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}

	renderer, err := views.NewRenderer(logger)
	if err != nil {
		logger.Error("init renderer", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	invitationRepo := postgres.NewInvitationRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	authService := services.NewAuthService(
		userRepo, sessionRepo,
		authadapter.NewBcryptHasher(bcryptCost),
		authadapter.NewSessionTokenSource(),
		emailService, cfg.SessionTTL, cfg.AdminEmail,
	)
	invitationService := services.NewInvitationService(invitationRepo, commentRepo, objectStore, logger, serviceTimeout)
	commentService := services.NewCommentService(invitationRepo, commentRepo, serviceTimeout)
	adminService := services.NewAdminService(userRepo, sessionRepo, invitationService, emailService, serviceTimeout)

	// Controllers
	dashboardController := controllers.NewDashboardController(logger, invitationService, adminService, renderer)
	authController := controllers.NewAuthController(logger, authService, renderer, cfg.SessionTTL)
	invitationController := controllers.NewInvitationController(logger, invitationService, renderer)
	publicController := controllers.NewPublicController(logger, invitationService, commentService, renderer)
	adminController := controllers.NewAdminController(logger, adminService)

	mux := web.NewRouter(authService, dashboardController, authController, invitationController, publicController, adminController)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.LoggingMiddleware(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

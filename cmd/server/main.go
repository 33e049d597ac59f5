package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	adminhandler "unibook/backend/internal/admin/handler"
	"unibook/backend/internal/audit"
	auditrepository "unibook/backend/internal/audit/repository"
	"unibook/backend/internal/authz"
	bookhandler "unibook/backend/internal/book/handler"
	bookrepository "unibook/backend/internal/book/repository"
	bookservice "unibook/backend/internal/book/service"
	"unibook/backend/internal/config"
	"unibook/backend/internal/db"
	"unibook/backend/internal/devcode"
	healthhandler "unibook/backend/internal/health/handler"
	identityhandler "unibook/backend/internal/identity/handler"
	identityservice "unibook/backend/internal/identity/service"
	"unibook/backend/internal/mailer"
	"unibook/backend/internal/security"
	"unibook/backend/internal/server"
	"unibook/backend/internal/server/middleware"
	userrepository "unibook/backend/internal/user/repository"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		return err
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		return err
	}
	tokens := security.NewTokenProvider(privateKey, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	hasher := security.NewHasher(cfg.BcryptCost)

	gate, err := authz.NewGate()
	if err != nil {
		return err
	}

	userRepo := userrepository.NewPostgresUserRepository(database)
	bookRepo := bookrepository.NewPostgresBookRepository(database)
	auditRepo := auditrepository.NewPostgresAuditRepository(database)
	auditLogger := audit.NewLogger(auditRepo, middleware.AuditIP, log)

	var sender mailer.Sender = mailer.NopSender{}
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Warn("SMTP_HOST not set, verification mail delivery disabled")
	}

	var devCodes *devcode.Store
	if cfg.CodeReturnToClient {
		devCodes = devcode.NewStore(cfg.CodeTTL())
		log.Warn("dev verification-code endpoint enabled")
	}

	identitySvc := identityservice.NewService(userRepo, hasher, tokens, sender, devCodes, auditLogger,
		cfg.AdminEmailList(), cfg.CodeTTL(), log)
	bookSvc := bookservice.NewService(bookRepo, userRepo, gate, auditLogger)

	router := server.NewRouter(server.Deps{
		Auth:           middleware.NewAuthenticator(tokens, userRepo),
		Identity:       identityhandler.NewHandler(identitySvc, log),
		Books:          bookhandler.NewHandler(bookSvc, log),
		Admin:          adminhandler.NewHandler(identitySvc, bookSvc, log),
		Health:         healthhandler.NewHandler(database),
		Log:            log,
		DevCodeEnabled: cfg.CodeReturnToClient,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

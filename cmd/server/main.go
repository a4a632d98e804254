package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/easybookevent/artistcal/internal/api"
	"github.com/easybookevent/artistcal/internal/app"
	"github.com/easybookevent/artistcal/internal/app/maintenance"
	iauth "github.com/easybookevent/artistcal/internal/auth"
	"github.com/easybookevent/artistcal/internal/database"
	"github.com/easybookevent/artistcal/internal/services"
	"github.com/easybookevent/artistcal/internal/storage"
	"github.com/easybookevent/artistcal/pkg/logger"
	"github.com/easybookevent/artistcal/pkg/mail"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("artistcal-server", flag.ContinueOnError)
	fs.SetOutput(os.Stdout)

	var configPath string
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := app.ConfigureLogging(cfg.Server.LogLevel); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	defer logger.Sync() // best effort

	log := logger.WithModule("bootstrap")

	db, err := initialiseDatabase(cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(db, log)

	jwtService, err := iauth.NewJWTService(cfg.Auth.JWTServiceConfig())
	if err != nil {
		return fmt.Errorf("initialise jwt service: %w", err)
	}

	mailer, err := mail.NewSMTPMailer(cfg.Email.SMTPSettings())
	if err != nil {
		return fmt.Errorf("initialise mailer: %w", err)
	}

	files, err := storage.NewFileStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialise file store: %w", err)
	}

	userSvc, err := services.NewUserService(db)
	if err != nil {
		return fmt.Errorf("initialise user service: %w", err)
	}
	inviteSvc, err := services.NewInviteService(db, mailer,
		services.WithInviteBaseURL(cfg.Email.InviteBaseURL),
		services.WithInviteExpiry(cfg.Calendar.InviteExpiry),
	)
	if err != nil {
		return fmt.Errorf("initialise invite service: %w", err)
	}
	profileSvc, err := services.NewProfileService(db)
	if err != nil {
		return fmt.Errorf("initialise profile service: %w", err)
	}
	availabilitySvc, err := services.NewAvailabilityService(db,
		services.WithMaxMonthsAhead(cfg.Calendar.MaxMonthsAhead),
	)
	if err != nil {
		return fmt.Errorf("initialise availability service: %w", err)
	}
	blockedSvc, err := services.NewBlockedDateService(db)
	if err != nil {
		return fmt.Errorf("initialise blocked date service: %w", err)
	}
	exportSvc, err := services.NewExportService(availabilitySvc, blockedSvc)
	if err != nil {
		return fmt.Errorf("initialise export service: %w", err)
	}

	sweeper := maintenance.NewSweeper(inviteSvc,
		maintenance.WithSweepSchedule(cfg.Calendar.InviteSweepSpec),
	)
	if err := sweeper.Start(); err != nil {
		return fmt.Errorf("start maintenance jobs: %w", err)
	}
	defer func() {
		stopCtx := sweeper.Stop()
		if err := sweeper.RunOnce(stopCtx); err != nil {
			log.Warn("final invitation sweep failed", zap.Error(err))
		}
	}()

	router, err := api.NewRouter(api.Deps{
		Config:       cfg,
		JWT:          jwtService,
		Users:        userSvc,
		Invites:      inviteSvc,
		Profiles:     profileSvc,
		Availability: availabilitySvc,
		Blocked:      blockedSvc,
		Export:       exportSvc,
		Files:        files,
	})
	if err != nil {
		return fmt.Errorf("build api router: %w", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err, ok := <-serverErr; ok && err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	switch {
	case strings.TrimSpace(path) == "":
		return app.LoadConfig()
	default:
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				return app.LoadConfig(path)
			}
			return app.LoadConfig(filepath.Dir(path))
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config path %q does not exist", path)
		}
		return nil, fmt.Errorf("stat config path: %w", err)
	}
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	db, err := database.OpenAndMigrate(convertDatabaseConfig(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.Auth.Admin.Email != "" && cfg.Auth.Admin.Password != "" {
		if err := database.EnsureAdmin(db, cfg.Auth.Admin.Email, cfg.Auth.Admin.Password); err != nil {
			return nil, fmt.Errorf("seed admin account: %w", err)
		}
	} else {
		logger.WithModule("database").Warn("admin seed skipped, auth.admin.email and auth.admin.password are not set")
	}

	logger.WithModule("database").Info("database ready",
		zap.String("driver", strings.ToLower(cfg.Database.Driver)))
	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	out := database.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}

	switch strings.ToLower(cfg.Database.Driver) {
	case "postgres", "postgresql":
		out.Host = cfg.Database.Postgres.Host
		out.Port = cfg.Database.Postgres.Port
		out.Name = cfg.Database.Postgres.Database
		out.User = cfg.Database.Postgres.Username
		out.Password = cfg.Database.Postgres.Password
	case "mysql":
		out.Host = cfg.Database.MySQL.Host
		out.Port = cfg.Database.MySQL.Port
		out.Name = cfg.Database.MySQL.Database
		out.User = cfg.Database.MySQL.Username
		out.Password = cfg.Database.MySQL.Password
	}

	return out
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("database close failed", zap.Error(err))
	}
}

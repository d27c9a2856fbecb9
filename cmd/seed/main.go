// Package main seeds the administrator account.
//
// is_admin is never settable through the API; this tool is the out-of-band
// path that grants it. Run it once after deployment:
//
//	ADMIN_EMAIL=admin@example.com ADMIN_PASSWORD=... go run ./cmd/seed
//
// It is idempotent — if the user already exists it only ensures the admin
// flag is set.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/auth"
	"github.com/ekaracan/vetaris/internal/config"
	sqliteRepo "github.com/ekaracan/vetaris/internal/repository/sqlite"
	"github.com/ekaracan/vetaris/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	authSvc := service.NewAuthService(db, db, auth.NewPasswordService(), logger)

	user, err := authSvc.Register(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			logger.Error("failed to create admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
		// Already registered — look the user up so we can still flip the flag.
		user, err = db.GetUserByEmail(ctx, cfg.AdminEmail)
		if err != nil {
			logger.Error("failed to load existing admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("admin user already exists", slog.String("email", user.Email))
	}

	if err := db.SetAdmin(ctx, user.ID, true); err != nil {
		logger.Error("failed to set admin flag", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("admin user ready",
		slog.Int64("userID", user.ID),
		slog.String("email", user.Email),
	)
}

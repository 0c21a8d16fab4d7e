package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/cache"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/contact"
	contactStore "github.com/MrJamesThe3rd/tally/internal/contact/store"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	authHandler "github.com/MrJamesThe3rd/tally/internal/http/auth"
	contactHandler "github.com/MrJamesThe3rd/tally/internal/http/contact"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/middleware"
	permissionHandler "github.com/MrJamesThe3rd/tally/internal/http/permission"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	roleHandler "github.com/MrJamesThe3rd/tally/internal/http/role"
	settingsHandler "github.com/MrJamesThe3rd/tally/internal/http/settings"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	userHandler "github.com/MrJamesThe3rd/tally/internal/http/user"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/observability"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	permissionStore "github.com/MrJamesThe3rd/tally/internal/permission/store"
	"github.com/MrJamesThe3rd/tally/internal/report"
	reportStore "github.com/MrJamesThe3rd/tally/internal/report/store"
	"github.com/MrJamesThe3rd/tally/internal/role"
	roleStore "github.com/MrJamesThe3rd/tally/internal/role/store"
	"github.com/MrJamesThe3rd/tally/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/tally/internal/settings/store"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
	"github.com/MrJamesThe3rd/tally/internal/user"
	userStore "github.com/MrJamesThe3rd/tally/internal/user/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpen:     cfg.DB.MaxOpenConns,
		MaxIdle:     cfg.DB.MaxIdleConns,
		MaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	metrics := observability.NewMetrics()
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	var (
		reports     report.Reports = report.NewService(reportStore.New(db))
		txOpts      []transaction.Option
		contactOpts []contact.Option
		contacts    = contactStore.New(db)
	)

	if cfg.Redis.Addr != "" {
		client, err := cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("report cache disabled", "error", err)
		} else {
			defer client.Close()

			cached := report.NewCached(reports, cache.New(client, "reports", cfg.Redis.ReportTTL), logger,
				report.WithLookupObserver(metrics.CacheResult))
			reports = cached
			txOpts = append(txOpts, transaction.WithInvalidator(cached))
			contactOpts = append(contactOpts, contact.WithInvalidator(cached))
		}
	}

	var (
		permissionService = permission.NewService(permissionStore.New(db))
		roleService       = role.NewService(roleStore.New(db))
		userService       = user.NewService(userStore.New(db))
		customerService   = contact.NewService(contacts, contact.KindCustomer, contactOpts...)
		vendorService     = contact.NewService(contacts, contact.KindVendor, contactOpts...)
		transactionSvc    = transaction.NewService(txStore.New(db), txOpts...)
		settingsService   = settings.NewService(settingsStore.New(db))
		importService     = importer.NewService()
		exportService     = export.NewService(transactionSvc)
	)

	if cfg.Auth.AdminEmail != "" {
		admin, err := userService.Bootstrap(ctx, user.BootstrapParams{
			Email:    cfg.Auth.AdminEmail,
			Password: cfg.Auth.AdminPassword,
			Name:     cfg.Auth.AdminName,
			RoleName: permission.RoleSuperAdmin.String(),
		})
		if err != nil {
			logger.Error("failed to bootstrap admin user", "error", err)
			os.Exit(1)
		}

		if admin != nil {
			logger.Info("created first user", "email", admin.Email, "role", admin.RoleName)
		}
	}

	gate := middleware.NewGate(access.NewGuard(permissionService), logger)

	router := tallyHttp.New(tallyHttp.Options{
		Logger:         logger,
		Tokens:         tokens,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.Server.Timeout,
		Production:     cfg.IsProduction(),
		Health:         db.PingContext,
	}, tallyHttp.Handlers{
		Auth:         authHandler.NewHandler(userService, permissionService, tokens, logger),
		Users:        userHandler.NewHandler(userService, gate, logger),
		Roles:        roleHandler.NewHandler(roleService, gate, logger),
		Permissions:  permissionHandler.NewHandler(permissionService, gate, logger),
		Customers:    contactHandler.NewHandler(customerService, transactionSvc, gate, logger),
		Vendors:      contactHandler.NewHandler(vendorService, transactionSvc, gate, logger),
		Transactions: txHandler.NewHandler(transactionSvc, settingsService, gate, logger),
		Import:       importHandler.NewHandler(importService, transactionSvc, gate, logger),
		Export:       exportHandler.NewHandler(exportService, settingsService, gate, logger),
		Reports:      reportHandler.NewHandler(reports, gate, logger),
		Settings:     settingsHandler.NewHandler(settingsService, gate, logger),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("starting server", "addr", server.Addr, "env", cfg.App.Env)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newLogger(format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Conversly/community-api/internal/api"
	"github.com/Conversly/community-api/internal/config"
	"github.com/Conversly/community-api/internal/loaders"
	"github.com/Conversly/community-api/internal/queries"
	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "community-api",
		Short:         "Residential community management API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd())
	return root
}

// bootstrap loads config, starts the logger and opens the database.
func bootstrap(ctx context.Context) (*config.Config, *loaders.PostgresClient, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := utils.InitLogger(cfg.LogLevel, cfg.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := loaders.NewPostgresClient(ctx, cfg.DatabaseURL, loaders.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: 30 * time.Minute,
		ConnectAttempts: uint(cfg.DBConnectAttempts),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, db, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			defer utils.Zlog.Sync()

			if err := utils.RegisterValidators(); err != nil {
				return fmt.Errorf("failed to register validators: %w", err)
			}
			if cfg.RunMigrations {
				if err := db.MigrateUp(); err != nil {
					return err
				}
			}

			if !cfg.Debug {
				gin.SetMode(gin.ReleaseMode)
			}
			engine := gin.New()
			tokens := shared.NewTokenManager(cfg.JwtSecret, cfg.JwtRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, cfg.ServiceName)
			api.RegisterRoutes(engine, queries.New(db.DB), cfg, tokens)

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           engine,
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErr := make(chan error, 1)
			go func() {
				utils.Zlog.Info("Server starting",
					zap.String("port", cfg.Port),
					zap.String("environment", cfg.Environment),
					zap.String("timezone", cfg.Location.String()))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			select {
			case err := <-serverErr:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			utils.Zlog.Info("Shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			utils.Zlog.Info("Server stopped")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			return db.MigrateUp()
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.MigrateDown(steps); err != nil {
				return err
			}
			utils.Zlog.Info("Rolled back migrations", zap.Int("steps", steps))
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(up, down)
	return migrateCmd
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a platform super admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}
			_, db, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			hash, err := shared.HashPassword(password)
			if err != nil {
				return err
			}
			user, err := queries.New(db.DB).CreateUser(cmd.Context(), types.User{
				Name:         strings.TrimSpace(name),
				Email:        strings.ToLower(strings.TrimSpace(email)),
				PasswordHash: hash,
				Role:         types.RoleSuperAdmin,
				Status:       types.AccountActive,
			})
			if errors.Is(err, queries.ErrDuplicate) {
				return fmt.Errorf("an account with email %s already exists", email)
			}
			if err != nil {
				return err
			}
			utils.Zlog.Info("Super admin created", zap.String("userId", user.ID), zap.String("email", user.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Platform Admin", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

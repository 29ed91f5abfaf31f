package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Migrates the schema and, when -admin-email is given, creates or promotes
// that account to administrator.

type seedAdmin struct {
	Name     string
	Email    string
	Password string
}

type migrateParams struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB
	Users  repository.UserRepository
	Hasher service.PasswordHasher
	Logger *slog.Logger
	Admin  seedAdmin
}

func main() {
	name := flag.String("admin-name", "Administrator", "Display name of the seeded admin")
	email := flag.String("admin-email", "", "Email of the admin account to create or promote")
	password := flag.String("admin-password", os.Getenv("STOREFRONT_ADMIN_PASSWORD"), "Password for a newly created admin")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall migration timeout")
	flag.Parse()

	app := fx.New(
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewUserRepository,
			auth.NewBcryptHasher,
		),
		fx.Supply(seedAdmin{Name: *name, Email: *email, Password: *password}),
		fx.Invoke(registerMigration),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := app.Stop(ctx); err != nil {
		slog.Error("Failed to shutdown gracefully", slog.Any("error", err))
		os.Exit(1)
	}
}

// registerMigration runs after the database OnStart ping succeeds.
func registerMigration(params migrateParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			started := time.Now()
			if err := postgres.Migrate(ctx, params.DB); err != nil {
				return err
			}
			params.Logger.Info("Schema migrated", slog.Duration("elapsed", time.Since(started)))

			if params.Admin.Email == "" {
				return nil
			}

			return ensureAdmin(ctx, params)
		},
	})
}

func ensureAdmin(ctx context.Context, params migrateParams) error {
	email := strings.ToLower(strings.TrimSpace(params.Admin.Email))

	user, err := params.Users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role.IsAdmin() {
			params.Logger.Info("Admin already present", slog.String("email", email))

			return nil
		}
		user.Role = entity.RoleAdmin
		if err := params.Users.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to promote admin")
		}
		params.Logger.Info("Promoted existing user to admin", slog.String("email", email))

		return nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to look up admin")
	}

	if len(params.Admin.Password) < 6 {
		return errors.New("admin password of at least 6 characters is required to create an admin")
	}
	hash, err := params.Hasher.Hash(params.Admin.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	admin := entity.NewUser(params.Admin.Name, email, hash)
	admin.Role = entity.RoleAdmin
	if err := params.Users.Create(ctx, admin); err != nil {
		return errors.Wrap(err, "failed to create admin")
	}
	params.Logger.Info("Created admin", slog.String("email", email), slog.Any("userID", admin.ID))

	return nil
}

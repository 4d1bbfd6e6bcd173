package postgres

import (
	"context"
	"fmt"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/ports"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
	"github.com/tsmfield/os-backend/internal/domain/valueobjects"
	"github.com/tsmfield/os-backend/internal/infrastructure/config"
)

// SeedAdmin cria o administrador inicial na primeira subida do sistema.
// O registro de novos usuários é restrito a admins, então sem esse seed
// não haveria como entrar no sistema.
func SeedAdmin(
	ctx context.Context,
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	cfg config.SeedConfig,
	log ports.Logger,
) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		total, err := userRepo.Count(ctx)
		if err != nil {
			return err
		}
		if total == 0 {
			// Sem seed e sem usuários não há como entrar no sistema
			log.Warn("admin seed skipped: ADMIN_EMAIL/ADMIN_PASSWORD not configured and no users exist; login is impossible until one is created")
		} else {
			log.Debug("admin seed skipped: ADMIN_EMAIL/ADMIN_PASSWORD not configured")
		}
		return nil
	}

	username, err := valueobjects.NewUsername(cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("invalid ADMIN_EMAIL: %w", err)
	}

	existing, err := userRepo.FindByUsername(ctx, username.String())
	if err != nil {
		return err
	}
	if existing != nil {
		log.Debug("admin seed skipped: user already exists", "email", username.String())
		return nil
	}

	digest, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &entities.User{
		Username:     username,
		Name:         cfg.AdminName,
		PasswordHash: digest,
		Role:         entities.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("admin user seeded", "email", username.String())
	return nil
}

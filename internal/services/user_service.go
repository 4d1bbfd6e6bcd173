package services

import (
	"context"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/ports"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
)

// UserService contém a lógica de negócio para gestão de usuários
type UserService struct {
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(userRepo repositories.UserRepository, logger ports.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers lista todos os usuários. Restrito a administradores.
func (s *UserService) ListUsers(ctx context.Context, caller *entities.User) ([]*entities.User, error) {
	if !caller.HasPermission(entities.PermissionUserList) {
		return nil, errors.ErrForbidden
	}

	return s.userRepo.List(ctx)
}

// DeleteUser remove um usuário. Restrito a administradores, e um
// administrador nunca pode deletar a própria conta.
func (s *UserService) DeleteUser(ctx context.Context, caller *entities.User, targetID string) error {
	if !caller.HasPermission(entities.PermissionUserDelete) {
		return errors.ErrForbidden
	}

	if caller.ID == targetID {
		return errors.ErrSelfDeletion
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return errors.ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		"user_id", targetID,
		"deleted_by", caller.ID,
	)

	return nil
}

package services

import (
	"context"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/ports"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
	"github.com/tsmfield/os-backend/internal/domain/valueobjects"
)

// AuthService contém a lógica de autenticação e emissão de sessões
type AuthService struct {
	userRepo repositories.UserRepository
	uow      ports.UnitOfWork
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	logger   ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	uow ports.UnitOfWork,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		uow:      uow,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     entities.Role
}

// Register cria um novo usuário. Apenas administradores podem registrar:
// a regra é avaliada antes de qualquer efeito no banco.
func (s *AuthService) Register(ctx context.Context, caller *entities.User, input RegisterInput) (*entities.User, string, error) {
	if !caller.HasPermission(entities.PermissionUserRegister) {
		return nil, "", errors.ErrForbidden
	}

	username, err := valueobjects.NewUsername(input.Email)
	if err != nil {
		return nil, "", err
	}

	role := input.Role
	if role == "" {
		role = entities.RoleUser
	}

	user := &entities.User{
		Username: username,
		Name:     input.Name,
		Role:     role,
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = digest

	// Verificação de duplicidade e insert na mesma transação
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.userRepo.FindByUsername(txCtx, username.String())
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrEmailAlreadyExists
		}

		return s.userRepo.Create(txCtx, user)
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered",
		"email", username.String(),
		"role", string(role),
		"registered_by", caller.ID,
	)

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login autentica por username/senha e emite um token de sessão.
// A falha é uniforme: usuário inexistente e senha errada produzem o
// mesmo erro, sem revelar qual identidade existe.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	username, err := valueobjects.NewUsername(email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, username.String())
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ResolveToken valida o token e recarrega o usuário atual do banco.
// O usuário é sempre re-buscado (nunca cacheado do token): um usuário
// deletado tem seus tokens pré-emitidos rejeitados imediatamente.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*entities.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrTokenInvalid
	}

	return user, nil
}

package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"tillpoint/internal/core/apperror"
	"tillpoint/internal/core/id"
	"tillpoint/internal/core/sequence"
	"tillpoint/internal/core/tx"
	"tillpoint/internal/domain"
	"tillpoint/pkg/logger"
)

// UserRepository persists users.
type UserRepository interface {
	domain.CatalogRepository[*User]

	// GetByEmail retrieves a user by email, including the resolved
	// role name.
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// RoleRepository persists roles.
type RoleRepository interface {
	domain.CatalogRepository[*Role]
}

// RoleService provides business logic for roles.
type RoleService struct {
	*domain.CatalogService[*Role]
}

// NewRoleService creates a role service with code generation wired in.
func NewRoleService(repo RoleRepository, txManager tx.Manager, seq sequence.Generator) *RoleService {
	svc := &RoleService{
		CatalogService: domain.NewCatalogService[*Role](repo, txManager),
	}

	svc.Hooks().OnBeforeCreate(func(ctx context.Context, r *Role) error {
		if r.Code != "" {
			return nil
		}
		code, err := seq.Next(ctx, sequence.Roles)
		if err != nil {
			return err
		}
		r.Code = code
		return nil
	})

	return svc
}

// UserService provides business logic for user accounts.
type UserService struct {
	*domain.CatalogService[*User]
	users UserRepository
	roles RoleRepository
}

// NewUserService creates a user service with code generation wired in.
func NewUserService(users UserRepository, roles RoleRepository, txManager tx.Manager, seq sequence.Generator) *UserService {
	svc := &UserService{
		CatalogService: domain.NewCatalogService[*User](users, txManager),
		users:          users,
		roles:          roles,
	}

	svc.Hooks().OnBeforeCreate(func(ctx context.Context, u *User) error {
		if u.Code != "" {
			return nil
		}
		code, err := seq.Next(ctx, sequence.Users)
		if err != nil {
			return err
		}
		u.Code = code
		return nil
	})

	svc.Hooks().OnBeforeCreate(svc.checkEmailFree)
	svc.Hooks().OnBeforeCreate(svc.checkRoleExists)
	svc.Hooks().OnBeforeUpdate(svc.checkRoleExists)

	return svc
}

func (s *UserService) checkEmailFree(ctx context.Context, u *User) error {
	existing, err := s.users.GetByEmail(ctx, u.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != u.ID {
		return apperror.NewDuplicate("user", "email", u.Email)
	}
	return nil
}

func (s *UserService) checkRoleExists(ctx context.Context, u *User) error {
	exists, err := s.roles.Exists(ctx, u.RoleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NewNotFound("role", u.RoleID.String())
	}
	return nil
}

// SetPassword hashes the plaintext password onto the user.
func (s *UserService) SetPassword(u *User, plaintext string) error {
	if len(plaintext) < 6 {
		return apperror.NewValidation("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("hash password: %w", err))
	}
	u.PasswordHash = string(hash)
	return nil
}

// Service handles authentication.
type Service struct {
	users  UserRepository
	roles  RoleRepository
	tokens *TokenManager
}

// NewService creates an auth service.
func NewService(users UserRepository, roles RoleRepository, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		roles:  roles,
		tokens: tokens,
	}
}

// Login verifies credentials and issues an access token. Failures
// never reveal whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if creds.Email == "" || creds.Password == "" {
		var missing []apperror.MissingField
		if creds.Email == "" {
			missing = append(missing, apperror.MissingField{Name: "email", Message: "Email is required"})
		}
		if creds.Password == "" {
			missing = append(missing, apperror.MissingField{Name: "password", Message: "Password is required"})
		}
		return nil, apperror.NewMissingFields(missing)
	}

	user, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	if !user.Active {
		return nil, apperror.NewForbidden("account is deactivated")
	}

	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if !role.Active {
		return nil, apperror.NewForbidden("role is deactivated")
	}

	token, err := s.tokens.Generate(user.ID, user.Email, role.Name, role.Modules)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "role", role.Name)

	return &Session{
		Token:   token,
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    role.Name,
		Modules: role.Modules,
	}, nil
}

// ResolveModules returns the module grants of a user's role.
// Used when token claims need refreshing.
func (s *Service) ResolveModules(ctx context.Context, userID id.ID) ([]string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	return role.Modules, nil
}

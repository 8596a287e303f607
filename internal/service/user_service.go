package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/mapper"
	"github.com/brushworks/fieldops-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	db           *gorm.DB
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
	tokens       *auth.TokenManager
	logger       *zap.Logger
}

func NewUserService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	tokens *auth.TokenManager,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		db:           db,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login verifies credentials and issues a session token. Failures are
// indistinguishable to the caller whether the username or the password
// was wrong.
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account disabled: %w", ErrPermissionDenied)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)
	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      mapper.ToUserDTO(user),
	}, nil
}

// Create adds an account. Requires an admin actor; the password is hashed
// before it ever reaches the store.
func (s *UserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("user management requires admin: %w", ErrPermissionDenied)
	}

	role := domain.UserRole(req.Role)
	// Only a superadmin may mint another superadmin
	if role == domain.RoleSuperAdmin && !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("only a superadmin can create superadmin accounts: %w", ErrPermissionDenied)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			if isDuplicateKeyError(err) {
				return fmt.Errorf("username %q already taken: %w", req.Username, ErrConflict)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("User created: %s", user.Username),
			Description: fmt.Sprintf("Account %q created with role %s", user.Username, user.Role),
			Type:        domain.ActivityTypeUser,
			RelatedID:   &user.ID,
			RelatedType: "user",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateUserRequest) (*domain.User, error) {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("user management requires admin: %w", ErrPermissionDenied)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Changing a superadmin account, or promoting to superadmin,
	// is reserved for superadmins
	if (user.Role == domain.RoleSuperAdmin || (req.Role != nil && domain.UserRole(*req.Role) == domain.RoleSuperAdmin)) && !actor.IsSuperAdmin() {
		return nil, fmt.Errorf("superadmin accounts can only be changed by a superadmin: %w", ErrPermissionDenied)
	}

	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = domain.UserRole(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes an account. Two guards are absolute: nobody deletes their
// own account, and only a superadmin may delete a superadmin.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := actorFromContext(ctx)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("user management requires admin: %w", ErrPermissionDenied)
	}
	if actor.UserID == id {
		return fmt.Errorf("cannot delete your own account: %w", ErrPermissionDenied)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleSuperAdmin && !actor.IsSuperAdmin() {
		return fmt.Errorf("superadmin accounts can only be deleted by a superadmin: %w", ErrPermissionDenied)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		activity := &domain.Activity{
			Title:       fmt.Sprintf("User deleted: %s", user.Username),
			Type:        domain.ActivityTypeUser,
			RelatedID:   &user.ID,
			RelatedType: "user",
			CreatedBy:   actor.UserID,
		}
		return s.activityRepo.WithTx(tx).Create(ctx, activity)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted",
		zap.String("user_id", id.String()),
		zap.String("username", user.Username),
	)
	return nil
}

// EnsureAdminUser creates the initial superadmin account when the store
// has no users at all, so a fresh deployment is reachable.
func (s *UserService) EnsureAdminUser(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     "Administrator",
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create initial admin: %w", err)
	}
	s.logger.Info("initial superadmin created", zap.String("username", username))
	return nil
}


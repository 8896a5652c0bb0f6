package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/pkg/jwtutil"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"go.uber.org/zap"
)

// AdminInput carries the fields of a new admin user
type AdminInput struct {
	Username string
	FullName string
	Password string
}

// LoginResult is a session token and the admin it belongs to
type LoginResult struct {
	Token string           `json:"token"`
	Admin *model.AdminUser `json:"admin"`
}

// AdminService manages admin users and their session tokens
type AdminService struct {
	store *repository.Store
	jwt   *jwtutil.JWTUtil
}

// NewAdminService creates an AdminService
func NewAdminService(store *repository.Store, jwt *jwtutil.JWTUtil) *AdminService {
	return &AdminService{store: store, jwt: jwt}
}

// Create registers an admin user
func (s *AdminService) Create(ctx context.Context, in AdminInput) (*model.AdminUser, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.FullName == "" || in.Password == "" {
		return nil, ErrValidation("username, full_name and password are required")
	}

	admin := &model.AdminUser{
		Username: in.Username,
		FullName: in.FullName,
		Password: in.Password,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict("Username already exists")
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}

	logger.FromContext(ctx).Info("Admin user created",
		zap.String("admin_id", admin.ID),
		zap.String("username", admin.Username))
	return admin, nil
}

// List returns every admin user
func (s *AdminService) List(ctx context.Context) ([]model.AdminUser, error) {
	admins, err := s.store.ListAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Delete removes an admin user
func (s *AdminService) Delete(ctx context.Context, id string) error {
	err := s.store.DeleteAdmin(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound("User not found")
	}
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	logger.FromContext(ctx).Info("Admin user deleted", zap.String("admin_id", id))
	return nil
}

// Login checks credentials and issues a session token
func (s *AdminService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrValidation("username and password are required")
	}
	admin, err := s.store.FindAdminByCredentials(ctx, username, password)
	if errors.Is(err, repository.ErrNotFound) {
		logger.FromContext(ctx).Warn("Admin login failed", zap.String("username", username))
		return nil, ErrUnauthorized("Invalid username or password")
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	token, err := s.jwt.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	logger.FromContext(ctx).Info("Admin logged in", zap.String("admin_id", admin.ID))
	return &LoginResult{Token: token, Admin: admin}, nil
}

// Authenticate resolves a session token to its admin user
func (s *AdminService) Authenticate(ctx context.Context, token string) (*model.AdminUser, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, ErrUnauthorized("Invalid or expired token")
	}
	admin, err := s.store.FindAdminByID(ctx, claims.AdminID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized("Invalid admin")
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return admin, nil
}

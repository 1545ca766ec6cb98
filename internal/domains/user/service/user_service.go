package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/MiguelRodac/api-books/internal/domains/user/model"
	"github.com/MiguelRodac/api-books/internal/domains/user/repository"
	"github.com/MiguelRodac/api-books/internal/shared/apperror"
	"github.com/MiguelRodac/api-books/pkg/jwt"
)

// Service gom auth operations và user CRUD
type Service interface {
	// Auth
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Refresh(ctx context.Context, userID uuid.UUID) (string, error)

	// CRUD
	GetAll(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo   repository.UserRepository
	tokens *jwt.Manager
	hasher PasswordHasher
}

// NewUserService tạo service instance, inject dependencies qua constructor
func NewUserService(repo repository.UserRepository, tokens *jwt.Manager, hasher PasswordHasher) Service {
	return &userService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo user mới và mint token luôn (auto-login sau đăng ký)
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	// 2. BUSINESS RULE: email phải unique
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD
	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 4. PERSIST
	newUser := &model.User{
		Nickname: req.Nickname,
		Email:    req.Email,
		Password: passwordHash,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// 5. MINT TOKEN
	token, err := s.tokens.Generate(newUser.ID, newUser.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &model.AuthResponse{User: newUser, Token: token}, nil
}

// Login xác thực credentials và trả về token
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return "", apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	// 2. FIND USER BY EMAIL
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			// Không expose "email not found"
			return "", model.ErrInvalidCredentials
		}
		return "", err
	}

	// 3. VERIFY PASSWORD
	if err := s.hasher.Compare(u.Password, req.Password); err != nil {
		return "", model.ErrPasswordMismatch
	}

	// 4. MINT TOKEN
	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Me trả về identity hiện tại (subject đã được Auth gate verify)
func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Refresh re-resolve subject và mint token mới với expiry window mới
// Token cũ không bị revoke - valid đến khi tự expire (known limitation)
func (s *userService) Refresh(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		// Subject không còn tồn tại → Unauthorized, không phải NotFound
		if apperror.IsKind(err, apperror.KindNotFound) {
			return "", model.ErrUnauthorized
		}
		return "", err
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ========================================
// USER CRUD
// ========================================

func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, model.ErrUserNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Unprocessable("Validation failed").WithDetail(err.Error())
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		u.Nickname = *req.Nickname
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

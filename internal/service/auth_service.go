package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RawanAyoub/TaskTaco-sub000/internal/auth"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/database"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/domain"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/dto"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/repository"
	"github.com/RawanAyoub/TaskTaco-sub000/internal/response"
)

const minPasswordLength = 8

// AuthService handles accounts, credentials and access tokens
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout revokes the token until it would have expired anyway
	Logout(ctx context.Context, tokenStr string) error
	// ValidateToken returns the user a live, unrevoked token belongs to
	ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error
}

type authServiceImpl struct {
	tx           database.Transactor
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	tokens       *auth.TokenManager
	blacklist    auth.Blacklist
	bcryptCost   int
	s3Client     S3Client
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService. blacklist and s3Client may be nil.
func NewAuthService(
	tx database.Transactor,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	tokens *auth.TokenManager,
	blacklist auth.Blacklist,
	bcryptCost int,
	s3Client S3Client,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		tx:           tx,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		tokens:       tokens,
		blacklist:    blacklist,
		bcryptCost:   bcryptCost,
		s3Client:     s3Client,
		logger:       logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	displayName := strings.TrimSpace(req.DisplayName)
	if email == "" || displayName == "" {
		return nil, response.NewValidationError("Email and display name are required", "")
	}
	if len(req.Password) < minPasswordLength {
		return nil, response.NewValidationError("Password must be at least 8 characters", "")
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, response.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{Email: email, PasswordHash: hash, DisplayName: displayName}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			return response.NewAppError(response.ErrCodeAlreadyExists, "Email is already registered", "")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewInternalError("Failed to check email", err)
		}

		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.NewAppError(response.ErrCodeAlreadyExists, "Email is already registered", "")
			}
			return response.NewInternalError("Failed to create user", err)
		}
		if err := s.settingsRepo.Save(ctx, domain.DefaultSettings(user.ID)); err != nil {
			return response.NewInternalError("Failed to create settings", err)
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "Failed to register")
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return s.issue(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	invalid := response.NewUnauthorizedError("Invalid email or password", "")

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, response.NewInternalError("Failed to fetch user", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, invalid
	}

	return s.issue(user)
}

func (s *authServiceImpl) issue(user *domain.User) (*dto.AuthResponse, error) {
	token, claims, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, response.NewInternalError("Failed to issue token", err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        *toUserResponse(user, s.s3Client),
	}, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return response.NewUnauthorizedError("Invalid or expired token", "")
	}
	if s.blacklist == nil {
		return nil
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return response.NewAppError(response.ErrCodeServiceUnavailable, "Failed to revoke token", err.Error())
	}
	return nil
}

// ValidateToken fails closed: a blacklist lookup error rejects the token
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	claims, err := s.tokens.Parse(tokenStr)
	if err != nil {
		return uuid.Nil, response.NewUnauthorizedError("Invalid or expired token", "")
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("Token blacklist lookup failed", zap.Error(err))
			return uuid.Nil, response.NewUnauthorizedError("Unable to verify token", "")
		}
		if revoked {
			return uuid.Nil, response.NewUnauthorizedError("Token has been revoked", "")
		}
	}

	userID := claims.UserUUID()
	if userID == uuid.Nil {
		return uuid.Nil, response.NewUnauthorizedError("Invalid token subject", "")
	}
	// Tokens of deleted accounts stop working immediately
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, response.NewUnauthorizedError("User no longer exists", "")
		}
		return uuid.Nil, response.NewInternalError("Failed to fetch user", err)
	}
	return userID, nil
}

func (s *authServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req *dto.ChangePasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return response.NewValidationError("Password must be at least 8 characters", "")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return lookupError(err, "User not found", "Failed to fetch user")
	}
	if err := auth.CheckPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.NewUnauthorizedError("Current password is incorrect", "")
	}

	hash, err := auth.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return response.NewInternalError("Failed to hash password", err)
	}
	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return response.NewInternalError("Failed to update password", err)
	}
	return nil
}

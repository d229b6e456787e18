package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/models/response_models"
	"payledger/internal/repositories"
	"payledger/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.UserResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error)
}

type AuthService struct {
	userRepo  repositories.UserRepository
	merchants MerchantLookup
	tokens    *utils.TokenIssuer
	log       *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, merchants MerchantLookup, tokens *utils.TokenIssuer, log *zap.Logger) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		merchants: merchants,
		tokens:    tokens,
		log:       log.Named("auth"),
	}
}

func (a *AuthService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.UserResponse, error) {
	role := request.Role
	if role == "" {
		role = db_models.RoleUser
	}
	if role != db_models.RoleAdmin && role != db_models.RoleUser {
		return nil, utils.Invalid("Role must be Admin or User")
	}

	if request.MerchantID != nil {
		merchant, err := a.merchants.FindById(ctx, *request.MerchantID)
		if err != nil {
			return nil, fmt.Errorf("find merchant: %w", err)
		}
		if merchant == nil {
			return nil, utils.NotFound("Merchant not found")
		}
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &db_models.User{
		Username:     strings.TrimSpace(request.Username),
		PasswordHash: hashed,
		Role:         role,
		MerchantID:   request.MerchantID,
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, utils.Conflict("Username already exists")
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	a.log.Info("user registered", zap.String("username", user.Username), zap.String("role", user.Role))

	return &response_models.UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Role:       user.Role,
		MerchantID: user.MerchantID,
	}, nil
}

func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.LoginResponse, error) {
	startTime := time.Now()

	user, err := a.userRepo.FindByUsername(ctx, strings.TrimSpace(request.Username))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		a.log.Warn("login failed: unknown user", zap.String("username", request.Username))
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		a.log.Warn("login failed: bad password", zap.String("username", request.Username))
		return nil, utils.ErrInvalidCredentials
	}

	merchantID := ""
	if user.MerchantID != nil {
		merchantID = user.MerchantID.String()
	}

	token, err := a.tokens.CreateToken(user.ID.String(), user.Role, merchantID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	a.log.Info("login succeeded",
		zap.String("username", user.Username),
		zap.Duration("took", time.Since(startTime)))

	return &response_models.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(a.tokens.TTL()).UTC(),
		Role:      user.Role,
	}, nil
}

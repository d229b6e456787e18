package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	dbm "payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/repositories"
	"payledger/internal/testutil"
	"payledger/pkg/utils"
)

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	merchant := testutil.CreateMerchant(t, db, "TechMart")
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewMerchantRepository(db), tokens, zaptest.NewLogger(t))

	user, err := svc.Register(ctx, request_models.RegisterRequest{
		Username:   "techmart_user",
		Password:   "User@123",
		MerchantID: &merchant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, dbm.RoleUser, user.Role)
	require.NotNil(t, user.MerchantID)
	assert.Equal(t, merchant.ID, *user.MerchantID)

	login, err := svc.Login(ctx, request_models.LoginRequest{Username: "techmart_user", Password: "User@123"})
	require.NoError(t, err)
	assert.Equal(t, dbm.RoleUser, login.Role)
	assert.True(t, login.ExpiresAt.After(time.Now()))

	claims, err := tokens.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, dbm.RoleUser, claims.Role)
	assert.Equal(t, merchant.ID.String(), claims.MerchantID)

	_, err = svc.Login(ctx, request_models.LoginRequest{Username: "techmart_user", Password: "wrong"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Username: "nobody", Password: "User@123"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAuthServiceRegisterFailures(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewAuthService(repositories.NewUserRepository(db), repositories.NewMerchantRepository(db),
		utils.NewTokenIssuer("test-secret", time.Hour), zaptest.NewLogger(t))

	_, err := svc.Register(ctx, request_models.RegisterRequest{Username: "admin", Password: "Admin@123", Role: dbm.RoleAdmin})
	require.NoError(t, err)

	_, err = svc.Register(ctx, request_models.RegisterRequest{Username: "admin", Password: "Other@123"})
	requireKind(t, err, utils.KindConflict, "Username already exists")

	_, err = svc.Register(ctx, request_models.RegisterRequest{Username: "root", Password: "Admin@123", Role: "Owner"})
	requireKind(t, err, utils.KindInvalid, "Role must be Admin or User")

	missing := uuid.New()
	_, err = svc.Register(ctx, request_models.RegisterRequest{Username: "ghost", Password: "User@123", MerchantID: &missing})
	requireKind(t, err, utils.KindNotFound, "Merchant not found")
}

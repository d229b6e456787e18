package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.CreateToken("user-1", "Admin", "merchant-9")
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "merchant-9", claims.MerchantID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, time.Hour, issuer.TTL())
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	expired, err := NewTokenIssuer("secret", -time.Minute).CreateToken("user-1", "User", "")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	forged, err := NewTokenIssuer("other", time.Hour).CreateToken("user-1", "Admin", "")
	require.NoError(t, err)
	_, err = issuer.ValidateToken(forged)
	assert.Error(t, err)

	// alg none must never validate
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.ValidateToken(unsigned)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("User@123")
	require.NoError(t, err)
	assert.NotEqual(t, "User@123", hash)
	assert.NoError(t, ComparePasswords(hash, "User@123"))
	assert.Error(t, ComparePasswords(hash, "user@123"))
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(1, 1))
	assert.NoError(t, ValidatePage(3, MaxPageSize))
	assert.ErrorIs(t, ValidatePage(0, 10), ErrInvalidPage)
	assert.ErrorIs(t, ValidatePage(1, 0), ErrInvalidPageSize)
	assert.ErrorIs(t, ValidatePage(1, MaxPageSize+1), ErrInvalidPageSize)
}

func TestServiceErrorKinds(t *testing.T) {
	wrapped := fmt.Errorf("approve: %w", Conflict("Refund request already approved"))

	se, ok := AsServiceError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindConflict, se.Kind)
	assert.Equal(t, "Refund request already approved", se.Message)
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}

func TestHandleServiceErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{NotFound("Account not found"), http.StatusNotFound, "not_found"},
		{Conflict("Reference number already exists"), http.StatusConflict, "conflict"},
		{Invalid("Amount must be greater than zero"), http.StatusBadRequest, "invalid"},
		{Unauthorized("no"), http.StatusUnauthorized, "unauthorized"},
		{Forbidden("no"), http.StatusForbidden, "forbidden"},
		{ErrInvalidPage, http.StatusBadRequest, "invalid"},
		{ErrInvalidPageSize, http.StatusBadRequest, "invalid"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{errors.New("connection reset"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.kind, body.Kind)
			assert.Equal(t, "trace-1", body.TraceID)
			if tt.status == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", body.Message)
			}
		})
	}
}

type amountPayload struct {
	Amount decimal.Decimal `validate:"required,gt=0"`
	Ref    string          `validate:"required,max=5"`
}

func TestDecimalValidation(t *testing.T) {
	v := validator.New()
	RegisterDecimalType(v)

	assert.NoError(t, v.Struct(amountPayload{Amount: decimal.RequireFromString("0.01"), Ref: "A"}))

	err := v.Struct(amountPayload{Amount: decimal.RequireFromString("-3"), Ref: "A"})
	require.Error(t, err)
	assert.Equal(t, "Amount must be greater than 0", DescribeBindError(err))

	err = v.Struct(amountPayload{Amount: decimal.RequireFromString("1"), Ref: "TOO-LONG"})
	require.Error(t, err)
	assert.Equal(t, "Ref must be at most 5 characters", DescribeBindError(err))

	err = v.Struct(amountPayload{})
	require.Error(t, err)
	assert.Equal(t, "Amount is required; Ref is required", DescribeBindError(err))

	assert.Equal(t, "Invalid request format", DescribeBindError(errors.New("unexpected EOF")))
}

package request_models

import "github.com/google/uuid"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username   string     `json:"username" binding:"required,min=3,max=100"`
	Password   string     `json:"password" binding:"required,min=6"`
	Role       string     `json:"role" binding:"omitempty,oneof=Admin User"`
	MerchantID *uuid.UUID `json:"merchant_id"`
}

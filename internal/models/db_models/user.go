package db_models

import "github.com/google/uuid"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	BaseModel
	Username     string     `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string     `gorm:"not null"`
	Role         string     `gorm:"size:20;not null;default:User"`
	MerchantID   *uuid.UUID `gorm:"type:uuid;index"` // nil for admins
}

package db_models

type PaymentMethod struct {
	BaseModel
	MethodName string `gorm:"size:100;not null"` // e.g. Credit Card, UPI
	Provider   string `gorm:"size:100"`          // e.g. Visa, Google Pay
}

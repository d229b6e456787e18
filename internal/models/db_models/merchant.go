package db_models

type Merchant struct {
	BaseModel
	Name  string `gorm:"size:100;not null"`
	Email string `gorm:"size:150;not null;uniqueIndex"`
}

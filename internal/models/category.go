package models

// Category is the top level of the product taxonomy.
type Category struct {
	BaseModel

	Name   string `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Status Status `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
}

package models

// Company owns products.
type Company struct {
	BaseModel

	Name    string `gorm:"size:128;not null" json:"name"`
	Address string `gorm:"size:255" json:"address"`
	Phone   string `gorm:"size:64" json:"phone"`
	Website string `gorm:"size:128" json:"website"`
	Status  Status `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
}

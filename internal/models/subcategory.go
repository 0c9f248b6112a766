package models

// Subcategory optionally nests under a category.
type Subcategory struct {
	BaseModel

	Name       string    `gorm:"size:64;not null;uniqueIndex" json:"name"`
	Status     Status    `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	CategoryID *string   `gorm:"type:uuid;index" json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

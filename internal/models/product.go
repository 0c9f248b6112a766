package models

// Product belongs to a company and a category, and optionally to a subcategory.
type Product struct {
	BaseModel

	Name          string  `gorm:"size:255;not null" json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Barcode       string  `gorm:"size:64;index" json:"barcode"`
	Status        Status  `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	StockQuantity int     `gorm:"not null;default:0" json:"stockQuantity"`

	CompanyID     string  `gorm:"type:uuid;not null;index" json:"companyId"`
	CategoryID    string  `gorm:"type:uuid;not null;index" json:"categoryId"`
	SubcategoryID *string `gorm:"type:uuid;index" json:"subcategoryId"`

	Company     *Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
}

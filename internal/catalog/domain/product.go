package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product is the canonical product entity. Upstream shapes with localized
// or mixed-type fields are normalized into this struct at the catalog
// boundary; nothing past this point branches on field presence.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Category    string         `json:"category" gorm:"index"`
	Image       string         `json:"image"`
	RatingRate  float64        `json:"-" gorm:"column:rating_rate"`
	RatingCount int            `json:"-" gorm:"column:rating_count"`
	Featured    bool           `json:"featured" gorm:"default:false"`
	IsActive    bool           `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "productos"
}

// Rating is the nested rating shape exposed over the API
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Rating returns the product rating in its API shape
func (p *Product) Rating() Rating {
	return Rating{Rate: p.RatingRate, Count: p.RatingCount}
}

// IsAvailable checks if product can be added to a cart
func (p *Product) IsAvailable() bool {
	return p.Stock > 0 && p.IsActive
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll() ([]Product, error)
	FindCategories() ([]string, error)
	Update(product *Product) error
	Delete(id uint) error
	Count() (int64, error)
	UpdateStock(id uint, stock int) error
	Upsert(product *Product) error
}

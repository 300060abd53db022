package models

import "time"

// Product represents a catalog product row. Optional physical attributes and
// SEO fields are nullable in the store and surface as pointers.
type Product struct {
	ID              int      `db:"id" json:"id"`
	Name            string   `db:"name" json:"name"`
	SKU             string   `db:"sku" json:"sku"`
	CategoryName    *string  `db:"category_name" json:"category_name"`
	SubcategoryName *string  `db:"subcategory_name" json:"subcategory_name"`
	Occasion        *string  `db:"occasion" json:"occasion"`
	Pattern         *string  `db:"pattern" json:"pattern"`
	Price           float64  `db:"price" json:"price"`
	DiscountPrice   *float64 `db:"discount_price" json:"discount_price"`
	StockQty        int      `db:"stock_qty" json:"stock_qty"`
	Weight          *float64 `db:"weight" json:"weight"`
	Length          *float64 `db:"length" json:"length"`
	Width           *float64 `db:"width" json:"width"`
	Height          *float64 `db:"height" json:"height"`
	Color           *string  `db:"color" json:"color"`
	FabricType      *string  `db:"fabric_type" json:"fabric_type"`
	WeavingType     *string  `db:"weaving_type" json:"weaving_type"`
	Description     *string  `db:"description" json:"description"`
	Highlights      *string  `db:"highlights" json:"highlights"`
	ImageURL        *string  `db:"image_url" json:"image_url"`
	Active          bool     `db:"active" json:"active"`
	MetaTitle       *string  `db:"meta_title" json:"meta_title"`
	MetaDescription *string  `db:"meta_description" json:"meta_description"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Ordered gallery image URLs, stored in product_images.
	GalleryImages []string `db:"-" json:"gallery_images,omitempty"`
}

// ProductSummary is the trimmed shape used by paginated listings.
type ProductSummary struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	SKU           string    `db:"sku" json:"sku"`
	CategoryName  *string   `db:"category_name" json:"category_name"`
	Price         float64   `db:"price" json:"price"`
	DiscountPrice *float64  `db:"discount_price" json:"discount_price"`
	StockQty      int       `db:"stock_qty" json:"stock_qty"`
	ImageURL      *string   `db:"image_url" json:"image_url"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// LowStockProduct is a row of the low-stock report.
type LowStockProduct struct {
	ID       int    `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	SKU      string `db:"sku" json:"sku"`
	StockQty int    `db:"stock_qty" json:"stock_qty"`
}

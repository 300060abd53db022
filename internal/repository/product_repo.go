package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/loomline/admin-api/internal/models"
	"github.com/loomline/admin-api/internal/utils"
)

// productColumns is the full column list for products, kept in one place so
// scans stay aligned with the table definition.
const productColumns = `id, name, sku, category_name, subcategory_name,
	occasion, pattern, price, discount_price, stock_qty,
	weight, length, width, height, color, fabric_type, weaving_type,
	description, highlights, image_url, active, meta_title, meta_description,
	created_at, updated_at`

// ProductRepository provides data access for the products catalog.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List retrieves all products, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY id DESC`
	var out []models.Product
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPaginated returns one page of products plus the total row count.
// The count and data queries are independent round trips; no snapshot
// isolation is guaranteed between them.
func (r *ProductRepository) ListPaginated(ctx context.Context, page, limit int) ([]models.ProductSummary, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, err
	}

	const q = `
		SELECT id, name, sku, category_name, price, discount_price, stock_qty, image_url, active, created_at
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	offset := (page - 1) * limit
	var out []models.ProductSummary
	if err := r.db.SelectContext(ctx, &out, q, limit, offset); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID returns a single product with its gallery images.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	const imgQ = `SELECT image_url FROM product_images WHERE product_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &p.GalleryImages, imgQ, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new product and its gallery images in one transaction.
// A unique violation on sku is reported as utils.ErrDuplicateSKU.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO products (
			name, sku, category_name, subcategory_name,
			occasion, pattern, price, discount_price, stock_qty,
			weight, length, width, height, color, fabric_type, weaving_type,
			description, highlights, image_url, active, meta_title, meta_description
		) VALUES (
			$1,$2,$3,$4,
			$5,$6,$7,$8,$9,
			$10,$11,$12,$13,$14,$15,$16,
			$17,$18,$19,$20,$21,$22
		) RETURNING id, created_at, updated_at`

	err = tx.QueryRowxContext(ctx, q,
		p.Name, p.SKU, p.CategoryName, p.SubcategoryName,
		p.Occasion, p.Pattern, p.Price, p.DiscountPrice, p.StockQty,
		p.Weight, p.Length, p.Width, p.Height, p.Color, p.FabricType, p.WeavingType,
		p.Description, p.Highlights, p.ImageURL, p.Active, p.MetaTitle, p.MetaDescription,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translateUniqueViolation(err, utils.ErrDuplicateSKU)
	}

	if err := insertGalleryTx(ctx, tx, p.ID, p.GalleryImages); err != nil {
		return err
	}
	return tx.Commit()
}

// Update replaces a product row. When gallery is non-nil the gallery images
// are replaced wholesale; a nil gallery leaves existing images untouched.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const q = `
		UPDATE products SET
			name = $1, sku = $2, category_name = $3, subcategory_name = $4,
			occasion = $5, pattern = $6, price = $7, discount_price = $8, stock_qty = $9,
			weight = $10, length = $11, width = $12, height = $13,
			color = $14, fabric_type = $15, weaving_type = $16,
			description = $17, highlights = $18, image_url = $19, active = $20,
			meta_title = $21, meta_description = $22,
			updated_at = NOW()
		WHERE id = $23
		RETURNING updated_at`

	err = tx.QueryRowxContext(ctx, q,
		p.Name, p.SKU, p.CategoryName, p.SubcategoryName,
		p.Occasion, p.Pattern, p.Price, p.DiscountPrice, p.StockQty,
		p.Weight, p.Length, p.Width, p.Height, p.Color, p.FabricType, p.WeavingType,
		p.Description, p.Highlights, p.ImageURL, p.Active, p.MetaTitle, p.MetaDescription,
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return translateUniqueViolation(err, utils.ErrDuplicateSKU)
	}

	if p.GalleryImages != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = $1`, p.ID); err != nil {
			return err
		}
		if err := insertGalleryTx(ctx, tx, p.ID, p.GalleryImages); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Delete removes a product. Gallery images cascade at the store level.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// LowStock lists products at or below the threshold, ascending by stock.
func (r *ProductRepository) LowStock(ctx context.Context, threshold int) ([]models.LowStockProduct, error) {
	const q = `
		SELECT id, name, sku, stock_qty
		FROM products
		WHERE stock_qty <= $1
		ORDER BY stock_qty ASC`

	var out []models.LowStockProduct
	if err := r.db.SelectContext(ctx, &out, q, threshold); err != nil {
		return nil, err
	}
	return out, nil
}

func insertGalleryTx(ctx context.Context, tx *sqlx.Tx, productID int, urls []string) error {
	const q = `INSERT INTO product_images (product_id, image_url) VALUES ($1, $2)`
	for _, u := range urls {
		if _, err := tx.ExecContext(ctx, q, productID, u); err != nil {
			return err
		}
	}
	return nil
}

// translateUniqueViolation maps a PostgreSQL unique-constraint violation to
// the given sentinel, passing any other error through unchanged.
func translateUniqueViolation(err error, sentinel error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return sentinel
	}
	return err
}

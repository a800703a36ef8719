package repository

import (
	"context"
	"errors"
	"fmt"

	"vibegadget/catalog-service/internal/app/catalog/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productRepository struct {
	db *pgxpool.Pool // пул соединений с PostgreSQL
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, category, image, gallery, stock, rating, review_count, created_at, updated_at`

// Create создает новый товар в PostgreSQL
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, category, image, gallery, stock, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Category, product.Image, product.Gallery, product.Stock,
		product.Rating, product.ReviewCount, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID получает товар по ID
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&p.Image, &p.Gallery, &p.Stock, &p.Rating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// GetAll получает все товары, новые первыми
func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByCategory получает товары одной категории
func (r *productRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// Update обновляет карточку товара.
// Рейтинг и счетчик отзывов намеренно не трогаем - их ведет worker.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5,
		    image = $6, gallery = $7, stock = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Category, product.Image, product.Gallery, product.Stock,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete жестко удаляет товар (только административное действие)
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func scanProducts(rows pgx.Rows) ([]entity.Product, error) {
	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.Image, &p.Gallery, &p.Stock, &p.Rating, &p.ReviewCount,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

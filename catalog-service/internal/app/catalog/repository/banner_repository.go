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

type bannerRepository struct {
	db *pgxpool.Pool
}

// NewBannerRepository создает новый репозиторий баннеров
func NewBannerRepository(db *pgxpool.Pool) BannerRepository {
	return &bannerRepository{db: db}
}

const bannerColumns = `id, title, image, product_id, position, active, created_at`

func (r *bannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	query := `
		INSERT INTO banners (id, title, image, product_id, position, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		banner.ID, banner.Title, banner.Image, banner.ProductID,
		banner.Position, banner.Active, banner.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`

	var b entity.Banner
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Image, &b.ProductID, &b.Position, &b.Active, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}

	return &b, nil
}

// GetActive получает активные баннеры в порядке позиций карусели
func (r *bannerRepository) GetActive(ctx context.Context) ([]entity.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE active = true ORDER BY position ASC`
	return r.queryBanners(ctx, query)
}

// GetAll получает все баннеры для административной панели
func (r *bannerRepository) GetAll(ctx context.Context) ([]entity.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners ORDER BY position ASC`
	return r.queryBanners(ctx, query)
}

func (r *bannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	query := `
		UPDATE banners
		SET title = $2, image = $3, product_id = $4, position = $5, active = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		banner.ID, banner.Title, banner.Image, banner.ProductID, banner.Position, banner.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBannerNotFound
	}

	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBannerNotFound
	}

	return nil
}

func (r *bannerRepository) queryBanners(ctx context.Context, query string) ([]entity.Banner, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	var banners []entity.Banner
	for rows.Next() {
		var b entity.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.Image, &b.ProductID, &b.Position, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate banners: %w", err)
	}

	return banners, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"miniapp-market-backend/internal/features/product/models"
	"miniapp-market-backend/internal/features/product/repository"
)

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) repository.ProductRepository {
	return &postgresRepository{db: db}
}

const productColumns = `id, user_profile_id, title, description, price, currency, media_url, media_type, link, created_at, updated_at`

// Create вставляет новый товар
func (r *postgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO user_products (id, user_profile_id, title, description, price, currency, media_url, media_type, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + productColumns

	row := r.db.QueryRow(ctx, query,
		uuid.New(), product.UserProfileID, product.Title, product.Description,
		product.Price, product.Currency, product.MediaURL, product.MediaType, product.Link)

	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return created, nil
}

// UpdateOwned обновляет товар. Предикат владельца входит в сам UPDATE:
// проверка прав атомарна с мутацией, отдельного чтения нет.
func (r *postgresRepository) UpdateOwned(ctx context.Context, productID, ownerID string, product *models.Product) (*models.Product, error) {
	query := `
		UPDATE user_products
		SET title = $3, description = $4, price = $5, currency = $6,
			media_url = $7, media_type = $8, link = $9, updated_at = NOW()
		WHERE id = $1 AND user_profile_id = $2
		RETURNING ` + productColumns

	row := r.db.QueryRow(ctx, query,
		productID, ownerID, product.Title, product.Description,
		product.Price, product.Currency, product.MediaURL, product.MediaType, product.Link)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// DeleteOwned удаляет товар с тем же предикатом владельца
func (r *postgresRepository) DeleteOwned(ctx context.Context, productID, ownerID string) error {
	query := `DELETE FROM user_products WHERE id = $1 AND user_profile_id = $2`

	tag, err := r.db.Exec(ctx, query, productID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.UserProfileID, &p.Title, &p.Description, &p.Price,
		&p.Currency, &p.MediaURL, &p.MediaType, &p.Link, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

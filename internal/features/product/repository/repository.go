package repository

import (
	"context"
	"errors"

	"miniapp-market-backend/internal/features/product/models"
)

// ErrProductNotFound covers both a missing row and a row owned by someone
// else: the owner predicate is part of every write, so the two cases are
// indistinguishable by construction.
var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateOwned(ctx context.Context, productID, ownerID string, product *models.Product) (*models.Product, error)
	DeleteOwned(ctx context.Context, productID, ownerID string) error
}

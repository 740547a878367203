package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	apperrors "miniapp-market-backend/internal/common/errors"
	profileModels "miniapp-market-backend/internal/features/profile/models"
	"miniapp-market-backend/internal/features/product/models"
	"miniapp-market-backend/internal/features/product/repository"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

// ProductService executes the mutating product actions. Every entry point
// runs the entitlement gate before touching the datastore; ownership is
// enforced inside the write itself (see repository.UpdateOwned/DeleteOwned).
type ProductService interface {
	Create(ctx context.Context, profile *profileModels.Profile, input *models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, profile *profileModels.Profile, productID string, input *models.ProductInput) (*models.Product, error)
	Delete(ctx context.Context, profile *profileModels.Profile, productID string) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, profile *profileModels.Profile, input *models.ProductInput) (*models.Product, error) {
	if err := authorize(profile); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, buildProduct(profile.ID, input))
	if err != nil {
		return nil, apperrors.NewDatabaseError("create product", err)
	}

	return created, nil
}

func (s *productService) Update(ctx context.Context, profile *profileModels.Profile, productID string, input *models.ProductInput) (*models.Product, error) {
	if err := authorize(profile); err != nil {
		return nil, err
	}
	if err := validateProductID(productID); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateOwned(ctx, productID, profile.ID, buildProduct(profile.ID, input))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperrors.NewProductNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("update product", err)
	}

	return updated, nil
}

func (s *productService) Delete(ctx context.Context, profile *profileModels.Profile, productID string) error {
	if err := authorize(profile); err != nil {
		return err
	}
	if err := validateProductID(productID); err != nil {
		return err
	}

	if err := s.repo.DeleteOwned(ctx, productID, profile.ID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperrors.NewProductNotFoundError()
		}
		return apperrors.NewDatabaseError("delete product", err)
	}

	return nil
}

// authorize — the entitlement gate. Mutating product actions require the
// premium tier; ownership is not checked here but in the write predicate.
func authorize(profile *profileModels.Profile) error {
	if !profile.IsPremium() {
		return apperrors.NewNotEntitledError()
	}
	return nil
}

// validateProductID rejects ids that cannot be uuid column values, with the
// same response shape as a genuinely missing product.
func validateProductID(productID string) error {
	if _, err := uuid.Parse(productID); err != nil {
		return apperrors.NewProductNotFoundError()
	}
	return nil
}

func validateInput(input *models.ProductInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Title is required")
	}
	if len(title) > maxTitleLength {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Title is too long")
	}
	if len(input.Description) > maxDescriptionLength {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Description is too long")
	}
	if input.Price < 0 {
		return apperrors.New(apperrors.ErrCodeBadRequest, "Price cannot be negative")
	}
	return nil
}

func buildProduct(ownerID string, input *models.ProductInput) *models.Product {
	product := &models.Product{
		UserProfileID: ownerID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Price:         input.Price,
		Currency:      input.NormalizedCurrency(),
		MediaType:     models.DeriveMediaType(input.MediaURL),
	}
	if input.MediaURL != "" {
		product.MediaURL = &input.MediaURL
	}
	if input.Link != "" {
		product.Link = &input.Link
	}
	return product
}

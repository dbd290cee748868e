package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oskarlind/storefront-backend/internal/cart"
	"github.com/oskarlind/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
)

// Service exposes the catalog reads the storefront needs.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	// Snapshot resolves the product and captures the fields a cart line
	// stores. Called only at add-to-cart time; placement never re-reads
	// the catalog.
	Snapshot(ctx context.Context, id uuid.UUID) (cart.ProductSnapshot, error)
}

type service struct {
	repo Repository
}

// NewService builds a products service over the repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return list, nil
}

func (s *service) Snapshot(ctx context.Context, id uuid.UUID) (cart.ProductSnapshot, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return cart.ProductSnapshot{}, err
	}
	if !product.IsActive {
		return cart.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}
	return cart.ProductSnapshot{
		ID:       product.ID,
		Name:     product.Name,
		Brand:    product.Brand,
		Price:    product.Price,
		ImageURL: product.ImageURL,
	}, nil
}

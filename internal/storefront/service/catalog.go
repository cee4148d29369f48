package service

import (
	"context"
	"errors"

	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/internal/storefront/store"
)

type CatalogService struct {
	Store store.Store
}

// ListProducts returns every product, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.Store.Products().List(ctx)
	if err != nil {
		return nil, unavailable(ctx, "catalog.list", err)
	}
	return ps, nil
}

func (s *CatalogService) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	ps, err := s.Store.Products().ListFeatured(ctx)
	if err != nil {
		return nil, unavailable(ctx, "catalog.featured", err)
	}
	return ps, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := s.Store.Products().FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, unavailable(ctx, "catalog.get", err)
	}
	return p, nil
}

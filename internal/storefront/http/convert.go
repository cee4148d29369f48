package http

import (
	"github.com/Kareem09qyu/Okta/internal/storefront/domain"
	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
)

func toSDKUser(u domain.PublicUser) storefrontsdk.User {
	return storefrontsdk.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Address:   u.Address,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toSDKProduct(p domain.Product) storefrontsdk.Product {
	return storefrontsdk.Product{
		ID:                 p.ID,
		CategoryID:         p.CategoryID,
		Name:               p.Name,
		Description:        p.Description,
		PriceCents:         p.PriceCents,
		DiscountPriceCents: p.DiscountPriceCents,
		StockQuantity:      p.StockQuantity,
		ImageURL:           p.ImageURL,
		IsFeatured:         p.IsFeatured,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toSDKProducts(ps []domain.Product) []storefrontsdk.Product {
	out := make([]storefrontsdk.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toSDKProduct(p))
	}
	return out
}

func toSDKCartItems(items []domain.CartItem) []storefrontsdk.CartItem {
	out := make([]storefrontsdk.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, storefrontsdk.CartItem{
			ID:                it.ID,
			ProductID:         it.ProductID,
			Quantity:          it.Quantity,
			ProductName:       it.ProductName,
			ProductPriceCents: it.ProductPriceCents,
			ProductImage:      it.ProductImage,
			CreatedAt:         it.CreatedAt,
		})
	}
	return out
}

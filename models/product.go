package models

import (
	"fmt"
	"time"
)

// ProductImage is a single product photo. URL may be a full URL or an S3 object key.
type ProductImage struct {
	URL string `json:"url" bson:"url"`
}

// Product represents a catalog item as returned by the backend
type Product struct {
	ID              string         `json:"_id" bson:"_id"`
	ProductName     string         `json:"productName" bson:"productName"`
	Category        string         `json:"category" bson:"category"`
	Description     string         `json:"description,omitempty" bson:"description,omitempty"`
	Price           float64        `json:"price" bson:"price"`
	DiscountedPrice *float64       `json:"discountedPrice,omitempty" bson:"discountedPrice,omitempty"`
	Stock           int            `json:"stock" bson:"stock"`
	Images          []ProductImage `json:"images" bson:"images"`
	Rating          *float64       `json:"rating,omitempty" bson:"rating,omitempty"`
	Model3D         string         `json:"model3D,omitempty" bson:"model3D,omitempty"` // AR model (.glb) key or URL
	SellerID        string         `json:"sellerId,omitempty" bson:"sellerId,omitempty"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
}

// PrimaryImage returns the first image URL, or "" when the product has none.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].URL
}

// EffectivePrice is the price a shopper pays.
func (p Product) EffectivePrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// Validate checks the invariants the storefront relies on.
func (p Product) Validate() error {
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.DiscountedPrice != nil && *p.DiscountedPrice > p.Price {
		return fmt.Errorf("%w: discounted price %.2f exceeds price %.2f", ErrValidation, *p.DiscountedPrice, p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}
	return nil
}

// ProductDraft is a prefilled seller product form produced by the importer
type ProductDraft struct {
	SourceURL       string   `json:"source_url"`
	ProductName     string   `json:"productName"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	DiscountedPrice *float64 `json:"discountedPrice,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	Images          []string `json:"image_paths"`
}

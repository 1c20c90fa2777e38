// domain/product.go
package domain

import (
	"context"
	"time"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// ApplyBatch submits upserts and deletions as one unordered bulk write.
	// Upserts set client-owned fields only; counters are initialized on
	// insert and left untouched on update.
	ApplyBatch(ctx context.Context, upserts []Product, deleteIDs []string) (*BatchResult, error)

	// UpdateProductFields partially updates client-owned fields of one
	// product. The caller is responsible for validating the field set.
	UpdateProductFields(ctx context.Context, id string, updates map[string]interface{}) error

	DeleteProduct(ctx context.Context, id string) error

	// IncrementCounter atomically adds 1 to the counter for kind and stamps
	// the interaction time, returning the post-increment value.
	IncrementCounter(ctx context.Context, id string, kind RatingKind, at time.Time) (int64, error)
}

type AdvertisementRepository interface {
	GetAdvertisement(ctx context.Context) (*Advertisement, error)
	ReplaceAdvertisement(ctx context.Context, ad Advertisement) error
}

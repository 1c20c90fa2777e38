package domain

import "time"

// Product is the persisted shape of a catalog entry. FavoriteCount and
// StarCount are server-owned: uploads never carry them and the store-level
// update paths never $set them, so only the rating increments mutate them.
type Product struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Name            string    `json:"name" bson:"name"`
	Price           float64   `json:"price" bson:"price"`
	Offer           float64   `json:"offer" bson:"offer"`
	Image           string    `json:"image" bson:"image"`
	Description     string    `json:"description" bson:"description"`
	FavoriteCount   int64     `json:"favorite_count" bson:"favorite_count"`
	StarCount       int64     `json:"star_count" bson:"star_count"`
	LastInteraction time.Time `json:"last_interaction,omitempty" bson:"last_interaction,omitempty"`
}

// Advertisement is the single optional banner record. Its zero value is the
// canonical "inactive" default returned when nothing is configured.
type Advertisement struct {
	Active      bool   `json:"active" bson:"active"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Image       string `json:"image" bson:"image"`
}

// ProductView is the externally visible projection of a Product. The
// identifier is used only as the snapshot map key and is not repeated in the
// body; prices are coerced to the text representation consumer clients expect.
type ProductView struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	Offer         string `json:"offer"`
	Image         string `json:"image"`
	Description   string `json:"description"`
	FavoriteCount int64  `json:"favorite_count"`
	StarCount     int64  `json:"star_count"`
	RatingCount   int64  `json:"rating_count"`
}

// CatalogSnapshot maps product identifier to its projected attributes.
type CatalogSnapshot map[string]ProductView

type RatingKind string

const (
	RatingFavorite RatingKind = "favorite"
	RatingStar     RatingKind = "star"
)

// BatchResult reports what a bulk reconciliation actually did at the store.
type BatchResult struct {
	Matched  int64
	Upserted int64
	Deleted  int64
}

package repository

import (
	"catalog_service/internal/domain"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "productos"
	opTimeout          = 5 * time.Second
)

type mongoProductRepository struct {
	col *mongo.Collection
	log *logrus.Logger
}

func NewMongoProductRepository(client *mongo.Client, dbName string, logger *logrus.Logger) domain.ProductRepository {
	return &mongoProductRepository{
		col: client.Database(dbName).Collection(productsCollection),
		log: logger,
	}
}

// classifyStoreError folds connection-class failures into ErrStoreUnavailable
// so the delivery layer can answer 503 instead of a generic 500. Server
// selection timeouts are covered by mongo.IsTimeout.
func classifyStoreError(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *mongoProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, classifyStoreError("could not list products", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	for cursor.Next(ctx) {
		var product domain.Product
		if err := cursor.Decode(&product); err != nil {
			r.log.Warnf("Skipping undecodable product document: %v", err)
			continue
		}
		products = append(products, product)
	}
	if err = cursor.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, classifyStoreError("error iterating products", err)
	}
	r.log.Infof("Retrieved %d products", len(products))
	return products, nil
}

func (r *mongoProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product := &domain.Product{}
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Product with ID %s not found", id)
			return nil, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get product by ID %s: %v", id, err)
		return nil, classifyStoreError("could not get product by id", err)
	}
	return product, nil
}

// clientOwnedFields is the $set document for one upsert. Counters are
// deliberately absent: they are initialized by $setOnInsert and afterwards
// belong to the rating increments alone.
func clientOwnedFields(p domain.Product) bson.M {
	return bson.M{
		"name":        p.Name,
		"price":       p.Price,
		"offer":       p.Offer,
		"image":       p.Image,
		"description": p.Description,
	}
}

func (r *mongoProductRepository) ApplyBatch(ctx context.Context, upserts []domain.Product, deleteIDs []string) (*domain.BatchResult, error) {
	if len(upserts) == 0 && len(deleteIDs) == 0 {
		return &domain.BatchResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	writes := make([]mongo.WriteModel, 0, len(upserts)+len(deleteIDs))
	for _, p := range upserts {
		update := bson.M{
			"$set": clientOwnedFields(p),
			"$setOnInsert": bson.M{
				"favorite_count": int64(0),
				"star_count":     int64(0),
			},
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetUpdate(update).
			SetUpsert(true))
	}
	for _, id := range deleteIDs {
		writes = append(writes, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": id}))
	}

	res, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	result := &domain.BatchResult{}
	if res != nil {
		result.Matched = res.MatchedCount
		result.Upserted = res.UpsertedCount
		result.Deleted = res.DeletedCount
	}
	if err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			msgs := make([]string, 0, len(bwe.WriteErrors))
			for _, we := range bwe.WriteErrors {
				msgs = append(msgs, fmt.Sprintf("op %d: %s", we.Index, we.Message))
			}
			r.log.Errorf("Bulk write applied partially (%d upserted, %d deleted), %d operations failed: %s",
				result.Upserted, result.Deleted, len(bwe.WriteErrors), strings.Join(msgs, "; "))
			return result, fmt.Errorf("%w: %s", domain.ErrPartialBatch, strings.Join(msgs, "; "))
		}
		r.log.Errorf("Bulk write failed: %v", err)
		return result, classifyStoreError("could not apply catalog batch", err)
	}

	r.log.Infof("Bulk write applied: %d matched, %d upserted, %d deleted",
		result.Matched, result.Upserted, result.Deleted)
	return result, nil
}

func (r *mongoProductRepository) UpdateProductFields(ctx context.Context, id string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.M{}
	for key, value := range updates {
		switch key {
		case "name", "price", "offer", "image", "description":
			set[key] = value
		default:
			r.log.Warnf("Skipping unknown field '%s' provided for product update ID %s", key, id)
		}
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		r.log.Errorf("Failed to update product ID %s: %v", id, err)
		return classifyStoreError("could not update product", err)
	}
	if res.MatchedCount == 0 {
		r.log.Warnf("Product with ID %s not found for update", id)
		return fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Product updated successfully with ID: %s", id)
	return nil
}

func (r *mongoProductRepository) DeleteProduct(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", id, err)
		return classifyStoreError("could not delete product", err)
	}
	if res.DeletedCount == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", id)
		return fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
	}
	r.log.Infof("Product deleted successfully with ID: %s", id)
	return nil
}

func (r *mongoProductRepository) IncrementCounter(ctx context.Context, id string, kind domain.RatingKind, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var field string
	switch kind {
	case domain.RatingFavorite:
		field = "favorite_count"
	case domain.RatingStar:
		field = "star_count"
	default:
		return 0, fmt.Errorf("%w: unknown rating kind %q", domain.ErrInvalidInput, kind)
	}

	// Single atomic read-modify-write at the store. No upsert: rating an
	// unknown product must not create a phantom record.
	update := bson.M{
		"$inc": bson.M{field: int64(1)},
		"$set": bson.M{"last_interaction": at},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.log.Warnf("Rating %s for unknown product ID %s", kind, id)
			return 0, fmt.Errorf("product with id %s: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to increment %s for product ID %s: %v", field, id, err)
		return 0, classifyStoreError("could not increment counter", err)
	}

	count := updated.FavoriteCount
	if kind == domain.RatingStar {
		count = updated.StarCount
	}
	r.log.Infof("Counter %s incremented for product ID %s, new value %d", field, id, count)
	return count, nil
}

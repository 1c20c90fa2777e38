package repository

import (
	"catalog_service/internal/domain"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	configCollection = "config"
	advertisementID  = "advertisement"
)

type mongoAdvertisementRepository struct {
	col *mongo.Collection
	log *logrus.Logger
}

func NewMongoAdvertisementRepository(client *mongo.Client, dbName string, logger *logrus.Logger) domain.AdvertisementRepository {
	return &mongoAdvertisementRepository{
		col: client.Database(dbName).Collection(configCollection),
		log: logger,
	}
}

func (r *mongoAdvertisementRepository) GetAdvertisement(ctx context.Context) (*domain.Advertisement, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	ad := &domain.Advertisement{}
	err := r.col.FindOne(ctx, bson.M{"_id": advertisementID}).Decode(ad)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("advertisement: %w", domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get advertisement: %v", err)
		return nil, classifyStoreError("could not get advertisement", err)
	}
	return ad, nil
}

// ReplaceAdvertisement overwrites the single banner document. The fixed _id
// guarantees at most one live record; a second upload replaces, never appends.
func (r *mongoAdvertisementRepository) ReplaceAdvertisement(ctx context.Context, ad domain.Advertisement) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := bson.M{
		"_id":         advertisementID,
		"active":      ad.Active,
		"title":       ad.Title,
		"description": ad.Description,
		"image":       ad.Image,
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": advertisementID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		r.log.Errorf("Failed to replace advertisement: %v", err)
		return classifyStoreError("could not replace advertisement", err)
	}
	r.log.Infof("Advertisement replaced (active=%t, title=%q)", ad.Active, ad.Title)
	return nil
}

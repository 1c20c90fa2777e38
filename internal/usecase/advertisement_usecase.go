package usecase

import (
	"catalog_service/internal/domain"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

type AdvertisementUseCase interface {
	GetAdvertisement(ctx context.Context) domain.Advertisement
}

type advertisementUseCase struct {
	adRepo domain.AdvertisementRepository
	log    *logrus.Logger
}

func NewAdvertisementUseCase(adRepo domain.AdvertisementRepository, logger *logrus.Logger) AdvertisementUseCase {
	return &advertisementUseCase{
		adRepo: adRepo,
		log:    logger,
	}
}

// GetAdvertisement never fails: no configured banner, a malformed record or
// an unreachable store all collapse into the inactive default. Consumers
// treat the banner as strictly optional.
func (uc *advertisementUseCase) GetAdvertisement(ctx context.Context) domain.Advertisement {
	ad, err := uc.adRepo.GetAdvertisement(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warnf("Use Case: Falling back to inactive advertisement: %v", err)
		}
		return domain.Advertisement{}
	}
	return *ad
}
